package commands

import "context"

// handleState swaps a character's state.
// Usage: state <name> <newstate>
func (h *Handler) handleState(ctx context.Context, sess *Session, args []string) error {
	if len(args) != 2 {
		return NewUserError("Usage: state <name> <newstate>")
	}

	if err := h.sc.UpdateState(args[0], args[1]); err != nil {
		return userError(err)
	}

	sess.Printf("%s is now %s.\n", args[0], args[1])
	return nil
}
