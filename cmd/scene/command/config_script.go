package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-scene/internal/scene"
	"github.com/pixil98/go-scene/internal/script"
)

type ScriptConfig struct {
	Characters []ScriptCharacter `json:"characters,omitempty"`
	Pause      string            `json:"pause,omitempty"`
}

type ScriptCharacter struct {
	Name     string  `json:"name"`
	WayPoint string  `json:"waypoint"`
	State    string  `json:"state"`
	Velocity float64 `json:"velocity,omitempty"`
}

func (c *ScriptConfig) Validate() error {
	el := errors.NewErrorList()

	for i, sc := range c.Characters {
		if sc.Name == "" {
			el.Add(fmt.Errorf("script character %d: name is required", i))
		}
		if sc.WayPoint == "" {
			el.Add(fmt.Errorf("script character %d: waypoint is required", i))
		}
		if sc.State == "" {
			el.Add(fmt.Errorf("script character %d: state is required", i))
		}
		if sc.Velocity < 0 {
			el.Add(fmt.Errorf("script character %d: velocity must not be negative", i))
		}
	}

	if c.Pause != "" {
		d, err := time.ParseDuration(c.Pause)
		if err != nil {
			el.Add(fmt.Errorf("parsing pause: %w", err))
		} else if d < 0 {
			el.Add(fmt.Errorf("pause must not be negative"))
		}
	}

	return el.Err()
}

func (c *ScriptConfig) BuildWanderer(sc *scene.Scene) (*script.Wanderer, error) {
	pause := time.Second
	if c.Pause != "" {
		d, err := time.ParseDuration(c.Pause)
		if err != nil {
			return nil, fmt.Errorf("parsing pause: %w", err)
		}
		pause = d
	}

	spawns := make([]script.Spawn, 0, len(c.Characters))
	for _, ch := range c.Characters {
		spawns = append(spawns, script.Spawn{
			Name:     ch.Name,
			WayPoint: ch.WayPoint,
			State:    ch.State,
			Velocity: ch.Velocity,
		})
	}

	return script.NewWanderer(sc, spawns, pause), nil
}
