package scene

// SceneListener observes every transition on a Scene. Callbacks may arrive on
// any goroutine, including the movement scheduler's; implementations that
// need thread affinity must marshal to their own goroutine.
type SceneListener interface {
	OnCharacterAdded(c *Character)
	OnCharacterRemoved(c *Character)
	OnMovementStart(m *Movement)
	OnMovementEnd(m *Movement)
	OnStateChanged(c *Character, previous *State)
}

// MovementEndListener is notified exactly once when a movement completes. By
// that point the character is already settled on the destination waypoint.
type MovementEndListener interface {
	OnMovementEnd(m *Movement)
}

// MovementEndFunc adapts a plain function to a MovementEndListener.
type MovementEndFunc func(m *Movement)

func (f MovementEndFunc) OnMovementEnd(m *Movement) {
	f(m)
}
