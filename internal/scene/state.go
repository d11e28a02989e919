package scene

import "errors"

// Appearance is the display artifact a rendering collaborator derives from a
// character. The model never inspects it; it only carries the capability to
// build one.
type Appearance any

// AppearanceFactory builds the display artifact for a character. Factories
// are owned by states and invoked by rendering collaborators, never by the
// model itself.
type AppearanceFactory interface {
	BuildAppearance(c *Character) Appearance
}

// AppearanceFunc adapts a plain function to an AppearanceFactory.
type AppearanceFunc func(c *Character) Appearance

func (f AppearanceFunc) BuildAppearance(c *Character) Appearance {
	return f(c)
}

// State is a named label a character can carry, bundled with the appearance
// factory used to draw characters in that state. Immutable; two states are
// the same state iff their names match.
type State struct {
	name    string
	factory AppearanceFactory
}

// NewState creates a state with its appearance factory.
func NewState(name string, factory AppearanceFactory) (*State, error) {
	if name == "" {
		return nil, errors.New("state name is required")
	}
	if factory == nil {
		return nil, errors.New("state appearance factory is required")
	}

	return &State{
		name:    name,
		factory: factory,
	}, nil
}

// Name returns the state's identity.
func (s *State) Name() string {
	return s.name
}

// BuildAppearance builds the display artifact for a character in this state.
func (s *State) BuildAppearance(c *Character) Appearance {
	return s.factory.BuildAppearance(c)
}
