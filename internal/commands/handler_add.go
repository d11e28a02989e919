package commands

import (
	"context"
	"strconv"
)

// handleAdd places a new character on the scene.
// Usage: add <name> <waypoint> <state> [velocity]
func (h *Handler) handleAdd(ctx context.Context, sess *Session, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return NewUserError("Usage: add <name> <waypoint> <state> [velocity]")
	}

	var velocity float64
	if len(args) == 4 {
		v, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return NewUserError("Velocity must be a number.")
		}
		velocity = v
	}

	c, err := h.sc.AddCharacter(args[0], args[1], args[2], velocity)
	if err != nil {
		return userError(err)
	}

	pos := c.Position()
	sess.Printf("Added %s at %s (%d,%d), state %s.\n",
		c.Name(), args[1], pos.X(), pos.Y(), c.State().Name())
	return nil
}
