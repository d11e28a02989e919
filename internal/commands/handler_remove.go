package commands

import "context"

// handleRemove takes a character off the scene.
// Usage: remove <name>
func (h *Handler) handleRemove(ctx context.Context, sess *Session, args []string) error {
	if len(args) != 1 {
		return NewUserError("Usage: remove <name>")
	}

	if err := h.sc.RemoveCharacter(args[0]); err != nil {
		return userError(err)
	}

	sess.Printf("Removed %s.\n", args[0])
	return nil
}
