package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-scene/internal/scene"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-testutil"
)

// fakeConn scripts a session's input and captures its output.
type fakeConn struct {
	in  *strings.Reader
	out bytes.Buffer
}

func newFakeConn(input string) *fakeConn {
	return &fakeConn{in: strings.NewReader(input)}
}

func (c *fakeConn) Read(p []byte) (int, error) { return c.in.Read(p) }

func (c *fakeConn) Write(p []byte) (int, error) { return c.out.Write(p) }

type fakeSubscriber struct {
	subject  string
	unsubbed bool
}

func (s *fakeSubscriber) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	s.subject = subject
	handler([]byte(`{"kind":"character_added"}`))
	return func() { s.unsubbed = true }, nil
}

func newCommandScene(t *testing.T) *scene.Scene {
	t.Helper()

	home, err := scene.NewWayPoint("home", 100, 100)
	if err != nil {
		t.Fatalf("creating waypoint: %v", err)
	}
	work, err := scene.NewWayPoint("work", 400, 100)
	if err != nil {
		t.Fatalf("creating waypoint: %v", err)
	}
	factory := scene.AppearanceFunc(func(c *scene.Character) scene.Appearance { return c.Name() })
	idle, err := scene.NewState("idle", factory)
	if err != nil {
		t.Fatalf("creating state: %v", err)
	}
	busy, err := scene.NewState("busy", factory)
	if err != nil {
		t.Fatalf("creating state: %v", err)
	}

	sc, err := scene.NewScene([]*scene.WayPoint{home, work}, []*scene.State{idle, busy})
	if err != nil {
		t.Fatalf("creating scene: %v", err)
	}
	return sc
}

func TestRunSession(t *testing.T) {
	tests := map[string]struct {
		input      string
		expOutput  []string
		notOutput  []string
	}{
		"add and quit": {
			input:     "add bob home idle\nquit\n",
			expOutput: []string{"Added bob at home (100,100), state idle.", "Goodbye."},
		},
		"add with velocity": {
			input:     "add bob home idle 2.5\nquit\n",
			expOutput: []string{"Added bob at home (100,100), state idle."},
		},
		"add usage": {
			input:     "add bob\nquit\n",
			expOutput: []string{"Usage: add <name> <waypoint> <state> [velocity]"},
		},
		"add bad velocity": {
			input:     "add bob home idle fast\nquit\n",
			expOutput: []string{"Velocity must be a number."},
		},
		"add duplicate": {
			input:     "add bob home idle\nadd bob home idle\nquit\n",
			expOutput: []string{"Character already exists: bob."},
		},
		"add unknown waypoint": {
			input:     "add bob nowhere idle\nquit\n",
			expOutput: []string{"Unknown waypoint: nowhere."},
		},
		"remove": {
			input:     "add bob home idle\nremove bob\nquit\n",
			expOutput: []string{"Removed bob."},
		},
		"remove unknown": {
			input:     "remove ghost\nquit\n",
			expOutput: []string{"Unknown character: ghost."},
		},
		"move": {
			input:     "add bob home idle\nmove bob work\nquit\n",
			expOutput: []string{"bob moving home -> work, eta 3s."},
		},
		"move while moving": {
			input:     "add bob home idle\nmove bob work\nmove bob work\nquit\n",
			expOutput: []string{"Character is already moving: bob."},
		},
		"state change": {
			input:     "add bob home idle\nstate bob busy\nquit\n",
			expOutput: []string{"bob is now busy."},
		},
		"state unknown": {
			input:     "add bob home idle\nstate bob sleeping\nquit\n",
			expOutput: []string{"Unknown state: sleeping."},
		},
		"status": {
			input:     "add bob home idle\nstatus\nquit\n",
			expOutput: []string{"Scene 450x150, 1 character(s), 0 movement(s) in flight.", "bob", "idle", "(100,100)"},
		},
		"waypoints": {
			input:     "waypoints\nquit\n",
			expOutput: []string{"Waypoints:", "home(100,100)", "work(400,100)"},
		},
		"help": {
			input:     "help\nquit\n",
			expOutput: []string{"Commands:", "move <name> <waypoint> [velocity]"},
		},
		"unknown verb": {
			input:     "dance\nquit\n",
			expOutput: []string{`Unknown command "dance".`},
		},
		"blank lines ignored": {
			input:     "\n\nquit\n",
			expOutput: []string{"Goodbye."},
			notOutput: []string{"Unknown command"},
		},
		"case insensitive verbs": {
			input:     "HELP\nquit\n",
			expOutput: []string{"Commands:"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHandler(newCommandScene(t), nil)
			conn := newFakeConn(tt.input)

			if err := h.RunSession(context.Background(), conn); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := conn.out.String()
			for _, want := range tt.expOutput {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, not := range tt.notOutput {
				if strings.Contains(out, not) {
					t.Errorf("output should not contain %q:\n%s", not, out)
				}
			}
		})
	}
}

func TestRunSession_EOF(t *testing.T) {
	h := NewHandler(newCommandScene(t), nil)
	conn := newFakeConn("add bob home idle\n")

	if err := h.RunSession(context.Background(), conn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "greeting",
		strings.Contains(conn.out.String(), "connected to scene 450x150"), true)
}

func TestRunSession_Watch(t *testing.T) {
	sub := &fakeSubscriber{}
	h := NewHandler(newCommandScene(t), sub)
	conn := newFakeConn("watch bob\n\nquit\n")

	if err := h.RunSession(context.Background(), conn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := conn.out.String()
	testutil.AssertEqual(t, "subject", sub.subject, "scene.character.bob")
	testutil.AssertEqual(t, "unsubscribed", sub.unsubbed, true)
	testutil.AssertEqual(t, "event streamed",
		strings.Contains(out, `{"kind":"character_added"}`), true)
}

func TestRunSession_WatchWithoutBroker(t *testing.T) {
	h := NewHandler(newCommandScene(t), nil)
	conn := newFakeConn("watch\nquit\n")

	if err := h.RunSession(context.Background(), conn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "message",
		strings.Contains(conn.out.String(), "Event stream is not available"), true)
}

func TestUserError(t *testing.T) {
	tests := map[string]struct {
		err    error
		expMsg string
	}{
		"sentinel":  {scene.ErrUnknownWayPoint, "Unknown waypoint."},
		"wrapped":   {fmt.Errorf("%w: bob", scene.ErrCharacterMoving), "Character is already moving: bob."},
		"not found": {fmt.Errorf("%w: ghost", scene.ErrUnknownCharacter), "Unknown character: ghost."},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := userError(tt.err)

			var uerr *UserError
			if !errors.As(err, &uerr) {
				t.Fatalf("expected UserError, got %T", err)
			}
			testutil.AssertEqual(t, "message", uerr.Message, tt.expMsg)
		})
	}
}

func TestUserError_Passthrough(t *testing.T) {
	testutil.AssertEqual(t, "nil", userError(nil) == nil, true)

	real := errors.New("disk on fire")
	testutil.AssertEqual(t, "real error", userError(real), error(real), cmpopts.EquateErrors())
}

func TestExpandTemplate(t *testing.T) {
	out, err := ExpandTemplate(`{{ .Name | trunc 3 | upper }}`, struct{ Name string }{"bobby"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "output", out, "BOB")

	_, err = ExpandTemplate(`{{ .Name`, nil)
	testutil.AssertErrorContains(t, err, "parsing template")
}
