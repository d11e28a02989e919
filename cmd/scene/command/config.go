package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Assets       AssetsConfig     `json:"assets"`
	Nats         NatsConfig       `json:"nats"`
	Listeners    []ListenerConfig `json:"listeners"`
	Animation    AnimationConfig  `json:"animation"`
	Script       ScriptConfig     `json:"script"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("tick_interval must be positive"))
		}
	}

	el.Add(c.Assets.Validate())
	el.Add(c.Nats.Validate())

	for i, l := range c.Listeners {
		if err := l.Validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Animation.Validate())
	el.Add(c.Script.Validate())

	return el.Err()
}
