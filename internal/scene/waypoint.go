package scene

import (
	"errors"
	"fmt"
)

// WayPoint is a named anchor characters travel between. Immutable; two
// waypoints are the same waypoint iff their names match.
type WayPoint struct {
	name string
	x    int
	y    int
}

// NewWayPoint creates a waypoint. Coordinates must be strictly positive.
func NewWayPoint(name string, x, y int) (*WayPoint, error) {
	if name == "" {
		return nil, errors.New("waypoint name is required")
	}
	if x <= 0 || y <= 0 {
		return nil, fmt.Errorf("waypoint %q: coordinates must be greater than 0", name)
	}

	return &WayPoint{
		name: name,
		x:    x,
		y:    y,
	}, nil
}

// Name returns the waypoint's identity.
func (w *WayPoint) Name() string {
	return w.name
}

func (w *WayPoint) X() int {
	return w.x
}

func (w *WayPoint) Y() int {
	return w.y
}

// IsMoving is always false: a waypoint is a settled position.
func (w *WayPoint) IsMoving() bool {
	return false
}

func (w *WayPoint) String() string {
	return fmt.Sprintf("%s(%d,%d)", w.name, w.x, w.y)
}
