package scene

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ReferenceSpeed is the number of scene pixels a character with velocity 1.0
// travels per second.
const ReferenceSpeed = 100

// Movement is a character's position while it travels between two waypoints.
// It becomes the character's position at construction, advances as a function
// of elapsed wall-clock time each scheduler tick, and hands the position over
// to the destination waypoint exactly once, when the remaining time reaches
// zero.
//
// The mutable fields are written only by the scheduler goroutine; readers get
// consistent snapshots through At.
type Movement struct {
	id        uuid.UUID
	scene     *Scene
	character *Character
	start     *WayPoint
	end       *WayPoint
	velocity  float64
	duration  time.Duration
	listeners []MovementEndListener
	now       func() time.Time

	mu        sync.RWMutex
	remaining time.Duration
	progress  float64
	x         int
	y         int
	lastTick  time.Time
	done      bool
}

// newMovement computes the total duration from the Euclidean distance between
// the waypoints, the reference speed, and the velocity multiplier, rounded to
// milliseconds, and installs itself as the character's position.
func newMovement(sc *Scene, c *Character, start, end *WayPoint, velocity float64, listeners ...MovementEndListener) (*Movement, error) {
	if velocity <= 0 {
		return nil, ErrInvalidVelocity
	}

	dx := float64(end.x - start.x)
	dy := float64(end.y - start.y)
	ms := math.Round(math.Hypot(dx, dy) * 1000 / (ReferenceSpeed * velocity))

	m := &Movement{
		id:        uuid.New(),
		scene:     sc,
		character: c,
		start:     start,
		end:       end,
		velocity:  velocity,
		duration:  time.Duration(ms) * time.Millisecond,
		listeners: listeners,
		now:       sc.now,
		x:         start.x,
		y:         start.y,
	}
	m.remaining = m.duration

	c.setPosition(m)
	return m, nil
}

// ID identifies this movement instance. Two concurrent movements with
// identical parameters still have distinct ids.
func (m *Movement) ID() uuid.UUID {
	return m.id
}

func (m *Movement) Character() *Character {
	return m.character
}

func (m *Movement) Start() *WayPoint {
	return m.start
}

func (m *Movement) End() *WayPoint {
	return m.end
}

// Duration returns the total time the movement takes from start to end.
func (m *Movement) Duration() time.Duration {
	return m.duration
}

// Remaining returns the time left before the movement completes. It never
// increases and reaches exactly zero exactly once.
func (m *Movement) Remaining() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.remaining
}

// Progress returns how far along the movement is, from 0.0 at start to 1.0 at
// the destination. It never decreases.
func (m *Movement) Progress() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.progress
}

func (m *Movement) X() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.x
}

func (m *Movement) Y() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.y
}

// IsMoving reports whether the movement is still in progress. It is true from
// construction and false at and after completion.
func (m *Movement) IsMoving() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return !m.done
}

// At returns the current coordinates and moving flag as one consistent
// snapshot, for readers polling from other goroutines.
func (m *Movement) At() (x, y int, moving bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.x, m.y, !m.done
}

// Equivalent reports whether two movements share start, end, character, and
// total duration. Distinct concurrent movements can be equivalent; use ID for
// identity.
func (m *Movement) Equivalent(o *Movement) bool {
	if o == nil {
		return false
	}
	return m.start.name == o.start.name &&
		m.end.name == o.end.name &&
		m.character.name == o.character.name &&
		m.duration == o.duration
}

// begin records the initial tick timestamp. Called once, before the movement
// is handed to the scheduler.
func (m *Movement) begin() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastTick = m.now()
}

// Tick advances the movement by the wall-clock time elapsed since the
// previous tick, so traveled distance stays correct even when ticks are
// delayed or skipped. It reports whether the movement has completed and
// should be dropped from the schedule.
func (m *Movement) Tick(ctx context.Context) bool {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return true
	}

	now := m.now()
	m.remaining -= now.Sub(m.lastTick)
	m.lastTick = now

	if m.remaining <= 0 {
		m.remaining = 0
		m.progress = 1.0
		m.x = m.end.x
		m.y = m.end.y
		m.done = true
		m.mu.Unlock()

		m.complete(ctx)
		return true
	}

	p := 1 - float64(m.remaining)/float64(m.duration)
	if p < m.progress {
		// Clamp against floating error: progress never regresses.
		p = m.progress
	}
	m.progress = p
	m.x = m.start.x + int(math.Round(float64(m.end.x-m.start.x)*p))
	m.y = m.start.y + int(math.Round(float64(m.end.y-m.start.y)*p))
	m.mu.Unlock()

	return false
}

// complete runs the completion protocol in two phases: the character is
// settled on the destination and the scene's bookkeeping reconciled first,
// then listeners are notified. A failing listener cannot undo or skip the
// internal phase, and cannot stop the listeners after it.
func (m *Movement) complete(ctx context.Context) {
	m.character.setPosition(m.end)

	if m.scene != nil {
		m.scene.movementEnded(ctx, m)
	}

	for _, l := range m.listeners {
		notifyMovementEnd(ctx, l, m)
	}
}

// notifyMovementEnd isolates a single end listener: a panic is logged and
// does not reach the scheduler loop or the remaining listeners.
func notifyMovementEnd(ctx context.Context, l MovementEndListener, m *Movement) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "movement end listener panicked",
				"movement", m.id,
				"character", m.character.Name(),
				"panic", r)
		}
	}()

	l.OnMovementEnd(m)
}
