package commands

import "context"

// handleWatch streams scene events into the session until the next input
// line. With a character name only that character's events are streamed.
// Usage: watch [character]
func (h *Handler) handleWatch(ctx context.Context, sess *Session, args []string) error {
	if h.sub == nil {
		return NewUserError("Event stream is not available on this server.")
	}
	if len(args) > 1 {
		return NewUserError("Usage: watch [character]")
	}

	subject := "scene.>"
	if len(args) == 1 {
		subject = "scene.character." + args[0]
	}

	unsub, err := h.sub.Subscribe(subject, func(data []byte) {
		sess.Printf("%s\n", data)
	})
	if err != nil {
		return err
	}
	defer unsub()

	sess.Printf("Watching %s. Press enter to stop.\n", subject)
	sess.scanner.Scan()
	return nil
}
