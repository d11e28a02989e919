package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-scene/internal/animation"
	"github.com/pixil98/go-scene/internal/scene"
)

type AnimationConfig struct {
	Enabled bool   `json:"enabled"`
	Refresh string `json:"refresh,omitempty"`
}

func (c *AnimationConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Refresh != "" {
		d, err := time.ParseDuration(c.Refresh)
		if err != nil {
			el.Add(fmt.Errorf("parsing refresh: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("refresh must be positive"))
		}
	}

	return el.Err()
}

func (c *AnimationConfig) BuildView(sc *scene.Scene) (*animation.View, error) {
	var opts []animation.ViewOpt
	if c.Refresh != "" {
		d, err := time.ParseDuration(c.Refresh)
		if err != nil {
			return nil, fmt.Errorf("parsing refresh: %w", err)
		}
		opts = append(opts, animation.WithRefresh(d))
	}

	return animation.NewView(sc, opts...), nil
}
