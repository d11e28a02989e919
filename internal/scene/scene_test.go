package scene

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pixil98/go-testutil"
)

func testFactory(label string) AppearanceFactory {
	return AppearanceFunc(func(c *Character) Appearance {
		return label + ":" + c.Name()
	})
}

// newTestScene builds a scene with waypoints home(100,100), work(400,100),
// cafe(100,300) and states idle/busy.
func newTestScene(t *testing.T, opts ...Option) *Scene {
	t.Helper()

	home, err := NewWayPoint("home", 100, 100)
	if err != nil {
		t.Fatalf("creating waypoint: %v", err)
	}
	work, err := NewWayPoint("work", 400, 100)
	if err != nil {
		t.Fatalf("creating waypoint: %v", err)
	}
	cafe, err := NewWayPoint("cafe", 100, 300)
	if err != nil {
		t.Fatalf("creating waypoint: %v", err)
	}

	idle, err := NewState("idle", testFactory("idle"))
	if err != nil {
		t.Fatalf("creating state: %v", err)
	}
	busy, err := NewState("busy", testFactory("busy"))
	if err != nil {
		t.Fatalf("creating state: %v", err)
	}

	s, err := NewScene([]*WayPoint{home, work, cafe}, []*State{idle, busy}, opts...)
	if err != nil {
		t.Fatalf("creating scene: %v", err)
	}
	return s
}

// recorder captures listener callbacks as strings for order assertions.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) record(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.events...)
}

func (r *recorder) OnCharacterAdded(c *Character) { r.record("added:" + c.Name()) }

func (r *recorder) OnCharacterRemoved(c *Character) { r.record("removed:" + c.Name()) }

func (r *recorder) OnMovementStart(m *Movement) {
	r.record(fmt.Sprintf("movestart:%s:%s>%s", m.Character().Name(), m.Start().Name(), m.End().Name()))
}

func (r *recorder) OnMovementEnd(m *Movement) {
	r.record(fmt.Sprintf("moveend:%s:%s", m.Character().Name(), m.End().Name()))
}

func (r *recorder) OnStateChanged(c *Character, previous *State) {
	r.record(fmt.Sprintf("state:%s:%s>%s", c.Name(), previous.Name(), c.State().Name()))
}

func TestNewScene_Validation(t *testing.T) {
	wp, _ := NewWayPoint("a", 10, 10)
	wpDup, _ := NewWayPoint("a", 20, 20)
	st, _ := NewState("idle", testFactory("idle"))
	stDup, _ := NewState("idle", testFactory("other"))

	tests := map[string]struct {
		wayPoints []*WayPoint
		states    []*State
		expErr    string
	}{
		"no waypoints": {
			wayPoints: nil,
			states:    []*State{st},
			expErr:    "at least one waypoint",
		},
		"no states": {
			wayPoints: []*WayPoint{wp},
			states:    nil,
			expErr:    "at least one state",
		},
		"duplicate waypoint": {
			wayPoints: []*WayPoint{wp, wpDup},
			states:    []*State{st},
			expErr:    `duplicate waypoint name "a"`,
		},
		"duplicate state": {
			wayPoints: []*WayPoint{wp},
			states:    []*State{st, stDup},
			expErr:    `duplicate state name "idle"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewScene(tt.wayPoints, tt.states)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestNewScene_Dimensions(t *testing.T) {
	s := newTestScene(t)

	testutil.AssertEqual(t, "width", s.Width(), 450)
	testutil.AssertEqual(t, "height", s.Height(), 350)
}

func TestAddCharacter(t *testing.T) {
	s := newTestScene(t)
	rec := &recorder{}
	s.AddListener(rec)

	c, err := s.AddCharacter("bob", "home", "idle", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "name", c.Name(), "bob")
	testutil.AssertEqual(t, "velocity", c.Velocity(), StandardVelocity)
	testutil.AssertEqual(t, "state", c.State().Name(), "idle")
	testutil.AssertEqual(t, "moving", c.IsMoving(), false)
	testutil.AssertEqual(t, "x", c.Position().X(), 100)
	testutil.AssertEqual(t, "y", c.Position().Y(), 100)
	testutil.AssertEqual(t, "lookup", s.Character("bob"), c, cmp.Comparer(samePointer[Character]))
	testutil.AssertEqual(t, "events", len(rec.list()), 1)
	testutil.AssertEqual(t, "event", rec.list()[0], "added:bob")
}

func TestAddCharacter_Errors(t *testing.T) {
	tests := map[string]struct {
		name     string
		wayPoint string
		state    string
		velocity float64
		expErr   error
	}{
		"unknown waypoint": {"bob", "nowhere", "idle", 0, ErrUnknownWayPoint},
		"unknown state":    {"bob", "home", "sleeping", 0, ErrUnknownState},
		"duplicate name":   {"dup", "home", "idle", 0, ErrCharacterExists},
		"bad velocity":     {"bob", "home", "idle", -1, ErrInvalidVelocity},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestScene(t)
			orig, err := s.AddCharacter("dup", "work", "busy", 2.0)
			if err != nil {
				t.Fatalf("seeding character: %v", err)
			}
			rec := &recorder{}
			s.AddListener(rec)

			_, err = s.AddCharacter(tt.name, tt.wayPoint, tt.state, tt.velocity)
			if !errors.Is(err, tt.expErr) {
				t.Fatalf("expected %v, got %v", tt.expErr, err)
			}

			// The failure left the scene untouched.
			testutil.AssertEqual(t, "character count", len(s.Characters()), 1)
			testutil.AssertEqual(t, "original", s.Character("dup"), orig, cmp.Comparer(samePointer[Character]))
			testutil.AssertEqual(t, "original state", orig.State().Name(), "busy")
			testutil.AssertEqual(t, "events", len(rec.list()), 0)
		})
	}
}

func TestRemoveCharacter(t *testing.T) {
	s := newTestScene(t)
	rec := &recorder{}
	s.AddListener(rec)

	if _, err := s.AddCharacter("bob", "home", "idle", 0); err != nil {
		t.Fatalf("adding character: %v", err)
	}
	if err := s.RemoveCharacter("bob"); err != nil {
		t.Fatalf("removing character: %v", err)
	}

	testutil.AssertEqual(t, "lookup", s.Character("bob") == nil, true)
	testutil.AssertEqual(t, "events", len(rec.list()), 2)
	testutil.AssertEqual(t, "event", rec.list()[1], "removed:bob")
}

func TestRemoveCharacter_NotFound(t *testing.T) {
	s := newTestScene(t)
	rec := &recorder{}
	s.AddListener(rec)

	err := s.RemoveCharacter("ghost")
	if !errors.Is(err, ErrUnknownCharacter) {
		t.Fatalf("expected ErrUnknownCharacter, got %v", err)
	}
	testutil.AssertEqual(t, "events", len(rec.list()), 0)
}

func TestUpdateState(t *testing.T) {
	s := newTestScene(t)
	if _, err := s.AddCharacter("bob", "home", "idle", 0); err != nil {
		t.Fatalf("adding character: %v", err)
	}
	rec := &recorder{}
	s.AddListener(rec)

	if err := s.UpdateState("bob", "busy"); err != nil {
		t.Fatalf("updating state: %v", err)
	}

	testutil.AssertEqual(t, "state", s.Character("bob").State().Name(), "busy")
	testutil.AssertEqual(t, "event", rec.list()[0], "state:bob:idle>busy")
}

func TestUpdateState_Errors(t *testing.T) {
	s := newTestScene(t)
	if _, err := s.AddCharacter("bob", "home", "idle", 0); err != nil {
		t.Fatalf("adding character: %v", err)
	}
	rec := &recorder{}
	s.AddListener(rec)

	err := s.UpdateState("bob", "sleeping")
	if !errors.Is(err, ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}
	err = s.UpdateState("ghost", "busy")
	if !errors.Is(err, ErrUnknownCharacter) {
		t.Fatalf("expected ErrUnknownCharacter, got %v", err)
	}

	testutil.AssertEqual(t, "state unchanged", s.Character("bob").State().Name(), "idle")
	testutil.AssertEqual(t, "events", len(rec.list()), 0)
}

func TestAddCharacter_Concurrent(t *testing.T) {
	s := newTestScene(t)

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.AddCharacter(fmt.Sprintf("char-%d", i), "home", "idle", 0)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("add %d failed: %v", i, err)
		}
	}
	testutil.AssertEqual(t, "character count", len(s.Characters()), n)
}

func TestAddCharacter_ConcurrentSameName(t *testing.T) {
	s := newTestScene(t)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.AddCharacter("bob", "home", "idle", 0)
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else if !errors.Is(err, ErrCharacterExists) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	testutil.AssertEqual(t, "winners", won, 1)
	testutil.AssertEqual(t, "character count", len(s.Characters()), 1)
}

func TestCharacter_Appearance(t *testing.T) {
	s := newTestScene(t)
	c, err := s.AddCharacter("bob", "home", "idle", 0)
	if err != nil {
		t.Fatalf("adding character: %v", err)
	}

	testutil.AssertEqual(t, "appearance", c.Appearance().(string), "idle:bob")
}
