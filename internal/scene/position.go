package scene

// Position is a location on a scene. It is implemented by WayPoint (settled,
// never moving) and Movement (in transit until completion). A character's
// position is always exactly one of the two.
type Position interface {
	// X is the horizontal coordinate in scene pixels.
	X() int

	// Y is the vertical coordinate in scene pixels.
	Y() int

	// IsMoving reports whether the position is still advancing.
	IsMoving() bool
}
