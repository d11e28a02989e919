package commands

import "context"

const helpText = `Commands:
  add <name> <waypoint> <state> [velocity]   place a character
  remove <name>                              take a character off the scene
  move <name> <waypoint> [velocity]          start a movement
  state <name> <newstate>                    change a character's state
  status                                     show the scene snapshot
  waypoints                                  list waypoints
  watch [character]                          stream scene events
  quit                                       end the session
`

// handleHelp prints the verb table.
func (h *Handler) handleHelp(ctx context.Context, sess *Session, args []string) error {
	sess.Printf("%s", helpText)
	return nil
}

// handleQuit ends the session.
func (h *Handler) handleQuit(ctx context.Context, sess *Session, args []string) error {
	sess.Printf("Goodbye.\n")
	return errQuit
}
