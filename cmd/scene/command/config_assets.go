package command

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-scene/internal/animation"
	"github.com/pixil98/go-scene/internal/scene"
	"github.com/pixil98/go-scene/internal/storage"
)

type AssetsConfig struct {
	WayPoints AssetConfig[*WayPointSpec] `json:"waypoints"`
	States    AssetConfig[*StateSpec]    `json:"states"`
}

func (c *AssetsConfig) Validate() error {
	el := errors.NewErrorList()

	el.Add(c.WayPoints.Validate("waypoints"))
	el.Add(c.States.Validate("states"))

	return el.Err()
}

// BuildScene loads the waypoint and state assets and constructs the scene
// over them.
func (c *AssetsConfig) BuildScene(sched scene.MovementScheduler) (*scene.Scene, error) {
	wpStore, err := c.WayPoints.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating waypoint store: %w", err)
	}
	stStore, err := c.States.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating state store: %w", err)
	}

	var wayPoints []*scene.WayPoint
	for id, spec := range wpStore.GetAll() {
		wp, err := scene.NewWayPoint(spec.Name, spec.X, spec.Y)
		if err != nil {
			return nil, fmt.Errorf("waypoint %s: %w", id, err)
		}
		wayPoints = append(wayPoints, wp)
	}

	var states []*scene.State
	for id, spec := range stStore.GetAll() {
		st, err := scene.NewState(spec.Name, spec.Appearance.buildFactory())
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", id, err)
		}
		states = append(states, st)
	}

	return scene.NewScene(wayPoints, states, scene.WithScheduler(sched))
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

// WayPointSpec is the asset file shape of a waypoint.
type WayPointSpec struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *WayPointSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("waypoint name is required"))
	}
	if s.X <= 0 || s.Y <= 0 {
		el.Add(fmt.Errorf("waypoint coordinates must be greater than 0"))
	}

	return el.Err()
}

// StateSpec is the asset file shape of a character state.
type StateSpec struct {
	Name       string         `json:"name"`
	Appearance AppearanceSpec `json:"appearance"`
}

func (s *StateSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("state name is required"))
	}
	el.Add(s.Appearance.validate())

	return el.Err()
}

// AppearanceSpec selects and styles the appearance factory for a state.
type AppearanceSpec struct {
	Kind       string `json:"kind"` // "glyph", "circle", "square", "diamond", or "badge"
	Glyph      string `json:"glyph,omitempty"`
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
}

var appearanceShapes = map[string]animation.Shape{
	"circle":  animation.ShapeCircle,
	"square":  animation.ShapeSquare,
	"diamond": animation.ShapeDiamond,
}

func (s *AppearanceSpec) validate() error {
	el := errors.NewErrorList()

	switch s.Kind {
	case "glyph":
		if utf8.RuneCountInString(s.Glyph) != 1 {
			el.Add(fmt.Errorf("glyph appearance requires exactly one character, got %q", s.Glyph))
		}
	case "badge":
	default:
		if _, ok := appearanceShapes[s.Kind]; !ok {
			el.Add(fmt.Errorf("unknown appearance kind %q", s.Kind))
		}
	}

	return el.Err()
}

func (s *AppearanceSpec) buildFactory() scene.AppearanceFactory {
	if s.Kind == "badge" {
		f := animation.NewBadgeFactory()
		if s.Foreground != "" {
			f = f.Foreground(tcell.GetColor(s.Foreground))
		}
		return f
	}

	var f *animation.GlyphFactory
	if shape, ok := appearanceShapes[s.Kind]; ok {
		f = animation.NewShapeFactory(shape)
	} else {
		glyph, _ := utf8.DecodeRuneInString(s.Glyph)
		f = animation.NewGlyphFactory(glyph)
	}
	if s.Foreground != "" {
		f = f.Foreground(tcell.GetColor(s.Foreground))
	}
	if s.Background != "" {
		f = f.Background(tcell.GetColor(s.Background))
	}
	return f
}
