package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pixil98/go-scene/internal/display"
	"github.com/pixil98/go-scene/internal/scene"
)

// errQuit signals a clean, user-requested end of session.
var errQuit = errors.New("quit")

// Subscriber provides the ability to subscribe to event subjects, used by the
// watch command to stream scene events into a session.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

type handlerFunc func(ctx context.Context, sess *Session, args []string) error

// Handler runs control sessions against a scene: each connection gets a
// read-dispatch loop over a fixed verb table.
type Handler struct {
	sc       *scene.Scene
	sub      Subscriber
	handlers map[string]handlerFunc
}

func NewHandler(sc *scene.Scene, sub Subscriber) *Handler {
	h := &Handler{
		sc:  sc,
		sub: sub,
	}
	h.handlers = map[string]handlerFunc{
		"add":       h.handleAdd,
		"remove":    h.handleRemove,
		"move":      h.handleMove,
		"state":     h.handleState,
		"status":    h.handleStatus,
		"waypoints": h.handleWayPoints,
		"watch":     h.handleWatch,
		"help":      h.handleHelp,
		"quit":      h.handleQuit,
	}
	return h
}

// RunSession reads verbs from conn until the user quits, the connection
// drops, or the context is canceled.
func (h *Handler) RunSession(ctx context.Context, conn io.ReadWriter) error {
	sess := &Session{
		out:     &syncWriter{w: conn},
		scanner: bufio.NewScanner(conn),
	}

	sess.Printf("connected to scene %dx%d, %d character(s) live. Type 'help' for commands.\n",
		h.sc.Width(), h.sc.Height(), len(h.sc.Characters()))

	for {
		if ctx.Err() != nil {
			return nil
		}

		sess.prompt()
		if !sess.scanner.Scan() {
			return sess.scanner.Err()
		}

		fields := strings.Fields(sess.scanner.Text())
		if len(fields) == 0 {
			continue
		}

		fn, ok := h.handlers[strings.ToLower(fields[0])]
		if !ok {
			sess.Printf("Unknown command %q. Type 'help' for commands.\n", fields[0])
			continue
		}

		err := fn(ctx, sess, fields[1:])
		var uerr *UserError
		switch {
		case errors.As(err, &uerr):
			sess.Printf("%s\n", uerr.Message)
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			return err
		}
	}
}

// Session is one connected controller. Its writer is safe for concurrent use
// because movement end listeners report arrivals from the scheduler goroutine
// while the session keeps accepting input.
type Session struct {
	out     *syncWriter
	scanner *bufio.Scanner
}

// Printf word-wraps and writes a message to the session.
func (s *Session) Printf(format string, args ...any) {
	s.out.write([]byte(display.Wrap(fmt.Sprintf(format, args...))))
}

func (s *Session) prompt() {
	s.out.write([]byte("> "))
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) write(data []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.w.Write(data)
}

// userError converts the model's sentinel failures into session messages;
// anything else is a real error and ends the session.
func userError(err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		scene.ErrUnknownWayPoint,
		scene.ErrUnknownState,
		scene.ErrUnknownCharacter,
		scene.ErrCharacterExists,
		scene.ErrCharacterMoving,
		scene.ErrInvalidVelocity,
	} {
		if errors.Is(err, sentinel) {
			return NewUserError(display.Capitalize(err.Error()) + ".")
		}
	}

	return err
}
