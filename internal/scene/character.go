package scene

import "sync"

// StandardVelocity is the default multiplier applied to the reference
// movement speed when none is given.
const StandardVelocity = 1.0

// Character is a named actor on a scene. Its state and position belong to the
// scene and its movements; external callers mutate them only through Scene
// operations. Two characters are the same character iff their names match.
type Character struct {
	name     string
	velocity float64

	mu       sync.RWMutex
	state    *State
	position Position
}

func newCharacter(name string, start *WayPoint, state *State, velocity float64) *Character {
	return &Character{
		name:     name,
		velocity: velocity,
		state:    state,
		position: start,
	}
}

// Name returns the character's identity.
func (c *Character) Name() string {
	return c.name
}

// Velocity returns the multiplier applied to the reference movement speed
// when this character moves without an explicit velocity.
func (c *Character) Velocity() float64 {
	return c.velocity
}

// State returns the character's current state.
func (c *Character) State() *State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// Position returns the character's current position: the waypoint it is
// settled on, or the movement it is riding.
func (c *Character) Position() Position {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.position
}

// IsMoving reports whether the character is currently in transit.
func (c *Character) IsMoving() bool {
	return c.Position().IsMoving()
}

// Appearance builds the character's display artifact using its current
// state's factory.
func (c *Character) Appearance() Appearance {
	return c.State().BuildAppearance(c)
}

func (c *Character) setPosition(p Position) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.position = p
}

// swapState installs the new state and returns the previous one in one step,
// so listeners can be told the correct previous state.
func (c *Character) swapState(s *State) *State {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.state
	c.state = s
	return old
}
