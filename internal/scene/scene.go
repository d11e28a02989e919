package scene

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

// dimensionMargin is added to the furthest waypoint coordinate when sizing
// the scene, as a presentation hint for renderers.
const dimensionMargin = 50

// MovementScheduler periodically advances scheduled work until it reports
// done. Satisfied by *scheduler.Scheduler.
type MovementScheduler interface {
	Schedule(id string, tick func(ctx context.Context) bool)
}

// Scene is the façade over the whole model and its single mutation point.
// Every operation is safe to call concurrently from unrelated goroutines;
// registered listeners observe each character's transitions in the order they
// were applied.
type Scene struct {
	width     int
	height    int
	wayPoints map[string]*WayPoint
	states    map[string]*State

	sched MovementScheduler
	now   func() time.Time

	mu         sync.RWMutex
	characters map[string]*Character
	movements  map[uuid.UUID]*Movement

	lmu       sync.Mutex
	listeners []SceneListener
}

// Option configures a Scene at construction.
type Option func(*Scene)

// WithScheduler sets the shared ticker that advances this scene's movements.
// Without one, movements are created but never advance.
func WithScheduler(sched MovementScheduler) Option {
	return func(s *Scene) {
		s.sched = sched
	}
}

// NewScene builds a scene over the given waypoint and state sets. Both sets
// must be non-empty and free of duplicate names; the scene's dimensions are
// the furthest coordinates plus a fixed margin.
func NewScene(wayPoints []*WayPoint, states []*State, opts ...Option) (*Scene, error) {
	el := errors.NewErrorList()

	if len(wayPoints) == 0 {
		el.Add(fmt.Errorf("at least one waypoint is required"))
	}
	if len(states) == 0 {
		el.Add(fmt.Errorf("at least one state is required"))
	}

	wps := make(map[string]*WayPoint, len(wayPoints))
	var w, h int
	for _, wp := range wayPoints {
		if _, ok := wps[wp.name]; ok {
			el.Add(fmt.Errorf("duplicate waypoint name %q", wp.name))
			continue
		}
		wps[wp.name] = wp
		if wp.x > w {
			w = wp.x
		}
		if wp.y > h {
			h = wp.y
		}
	}

	sts := make(map[string]*State, len(states))
	for _, st := range states {
		if _, ok := sts[st.name]; ok {
			el.Add(fmt.Errorf("duplicate state name %q", st.name))
			continue
		}
		sts[st.name] = st
	}

	if err := el.Err(); err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	s := &Scene{
		width:      w + dimensionMargin,
		height:     h + dimensionMargin,
		wayPoints:  wps,
		states:     sts,
		now:        time.Now,
		characters: map[string]*Character{},
		movements:  map[uuid.UUID]*Movement{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Width returns the scene's horizontal extent in pixels.
func (s *Scene) Width() int {
	return s.width
}

// Height returns the scene's vertical extent in pixels.
func (s *Scene) Height() int {
	return s.height
}

// WayPoints returns the scene's waypoints. The set is fixed for the scene's
// lifetime.
func (s *Scene) WayPoints() []*WayPoint {
	wps := make([]*WayPoint, 0, len(s.wayPoints))
	for _, wp := range s.wayPoints {
		wps = append(wps, wp)
	}
	return wps
}

// WayPoint returns the named waypoint, or nil if the scene doesn't have it.
func (s *Scene) WayPoint(name string) *WayPoint {
	return s.wayPoints[name]
}

// States returns the states characters on this scene can carry.
func (s *Scene) States() []*State {
	sts := make([]*State, 0, len(s.states))
	for _, st := range s.states {
		sts = append(sts, st)
	}
	return sts
}

// Characters returns a point-in-time snapshot of the live characters.
func (s *Scene) Characters() []*Character {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cs := make([]*Character, 0, len(s.characters))
	for _, c := range s.characters {
		cs = append(cs, c)
	}
	return cs
}

// Character returns the named character, or nil if it is not on the scene.
func (s *Scene) Character(name string) *Character {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.characters[name]
}

// Movements returns a point-in-time snapshot of the in-flight movements.
func (s *Scene) Movements() []*Movement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ms := make([]*Movement, 0, len(s.movements))
	for _, m := range s.movements {
		ms = append(ms, m)
	}
	return ms
}

// AddCharacter creates a character settled on the named waypoint with the
// named state and notifies listeners. A velocity of 0 selects
// StandardVelocity. The insert is atomic: on any error the scene is
// unchanged.
func (s *Scene) AddCharacter(name, wayPoint, state string, velocity float64) (*Character, error) {
	wp := s.wayPoints[wayPoint]
	if wp == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWayPoint, wayPoint)
	}

	st := s.states[state]
	if st == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, state)
	}

	if name == "" {
		return nil, fmt.Errorf("character name is required")
	}

	if velocity == 0 {
		velocity = StandardVelocity
	}
	if velocity < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVelocity, velocity)
	}

	c := newCharacter(name, wp, st, velocity)

	s.mu.Lock()
	if _, exists := s.characters[name]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrCharacterExists, name)
	}
	s.characters[name] = c
	s.mu.Unlock()

	for _, l := range s.snapshotListeners() {
		l.OnCharacterAdded(c)
	}

	return c, nil
}

// RemoveCharacter removes the named character from the scene and notifies
// listeners.
func (s *Scene) RemoveCharacter(name string) error {
	s.mu.Lock()
	c, exists := s.characters[name]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownCharacter, name)
	}
	delete(s.characters, name)
	s.mu.Unlock()

	for _, l := range s.snapshotListeners() {
		l.OnCharacterRemoved(c)
	}

	return nil
}

// MoveCharacter starts a movement from the character's current waypoint to
// the named target and notifies listeners before the first tick. A velocity
// of 0 uses the character's own; end may be nil. A character can ride at most
// one movement at a time: a second call while one is in flight is rejected,
// not queued.
func (s *Scene) MoveCharacter(name, target string, velocity float64, end MovementEndListener) (*Movement, error) {
	wp := s.wayPoints[target]
	if wp == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWayPoint, target)
	}

	s.mu.Lock()
	c, exists := s.characters[name]
	if !exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharacter, name)
	}

	start, settled := c.Position().(*WayPoint)
	if !settled {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrCharacterMoving, name)
	}

	if velocity == 0 {
		velocity = c.velocity
	}

	var listeners []MovementEndListener
	if end != nil {
		listeners = append(listeners, end)
	}

	m, err := newMovement(s, c, start, wp, velocity, listeners...)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.movements[m.id] = m
	s.mu.Unlock()

	for _, l := range s.snapshotListeners() {
		l.OnMovementStart(m)
	}

	m.begin()
	if s.sched != nil {
		s.sched.Schedule(m.id.String(), m.Tick)
	}

	return m, nil
}

// UpdateState swaps the named character's state and notifies listeners with
// the previous state.
func (s *Scene) UpdateState(name, newState string) error {
	st := s.states[newState]
	if st == nil {
		return fmt.Errorf("%w: %s", ErrUnknownState, newState)
	}

	s.mu.RLock()
	c, exists := s.characters[name]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCharacter, name)
	}

	old := c.swapState(st)

	for _, l := range s.snapshotListeners() {
		l.OnStateChanged(c, old)
	}

	return nil
}

// AddListener registers an observer for all future scene transitions.
// Duplicates are not detected. A listener added while a notification is in
// flight does not receive that notification.
func (s *Scene) AddListener(l SceneListener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	// Copy-on-write so fan-out can iterate a stable snapshot lock-free.
	listeners := make([]SceneListener, 0, len(s.listeners)+1)
	listeners = append(listeners, s.listeners...)
	s.listeners = append(listeners, l)
}

func (s *Scene) snapshotListeners() []SceneListener {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	return s.listeners
}

// movementEnded reconciles scene bookkeeping for a completed movement and
// fans the completion out to scene listeners. Runs on the scheduler
// goroutine; by the time it is called the character is already settled on the
// destination, so the registry removal and the fan-out cannot observe a
// half-updated character. Listener panics are isolated so one observer cannot
// stall the scheduler or the remaining observers.
func (s *Scene) movementEnded(ctx context.Context, m *Movement) {
	s.mu.Lock()
	delete(s.movements, m.id)
	s.mu.Unlock()

	for _, l := range s.snapshotListeners() {
		s.notifyMovementEnd(ctx, l, m)
	}
}

func (s *Scene) notifyMovementEnd(ctx context.Context, l SceneListener, m *Movement) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "scene listener panicked on movement end",
				"movement", m.id,
				"character", m.character.Name(),
				"panic", r)
		}
	}()

	l.OnMovementEnd(m)
}
