package scene

import "errors"

var (
	ErrUnknownWayPoint  = errors.New("unknown waypoint")
	ErrUnknownState     = errors.New("unknown state")
	ErrUnknownCharacter = errors.New("unknown character")
	ErrCharacterExists  = errors.New("character already exists")
	ErrCharacterMoving  = errors.New("character is already moving")
	ErrInvalidVelocity  = errors.New("velocity must be greater than 0")
)
