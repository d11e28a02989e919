package commands

import (
	"context"
	"strconv"

	"github.com/pixil98/go-scene/internal/scene"
)

// handleMove starts a movement toward a waypoint. The session is told when
// the character arrives; the report comes from the scheduler goroutine while
// the session keeps accepting input.
// Usage: move <name> <waypoint> [velocity]
func (h *Handler) handleMove(ctx context.Context, sess *Session, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return NewUserError("Usage: move <name> <waypoint> [velocity]")
	}

	var velocity float64
	if len(args) == 3 {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return NewUserError("Velocity must be a number.")
		}
		velocity = v
	}

	m, err := h.sc.MoveCharacter(args[0], args[1], velocity, scene.MovementEndFunc(func(m *scene.Movement) {
		sess.Printf("%s arrived at %s.\n", m.Character().Name(), m.End().Name())
	}))
	if err != nil {
		return userError(err)
	}

	sess.Printf("%s moving %s -> %s, eta %s.\n",
		m.Character().Name(), m.Start().Name(), m.End().Name(), m.Duration())
	return nil
}
