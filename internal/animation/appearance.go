package animation

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pixil98/go-scene/internal/scene"
)

// Sprite is the terminal display artifact built for a character: the glyph
// drawn at its position, the label next to it, and the style for both.
type Sprite struct {
	Glyph rune
	Label string
	Style tcell.Style
}

// GlyphFactory builds sprites around a fixed glyph. Styling is layered on
// with the fluent setters so factories compose as values:
//
//	animation.NewGlyphFactory('@').Foreground(tcell.ColorRed)
type GlyphFactory struct {
	glyph rune
	fg    tcell.Color
	bg    tcell.Color
}

func NewGlyphFactory(glyph rune) *GlyphFactory {
	return &GlyphFactory{
		glyph: glyph,
		fg:    tcell.ColorYellow,
		bg:    tcell.ColorDefault,
	}
}

func (f *GlyphFactory) Foreground(c tcell.Color) *GlyphFactory {
	f.fg = c
	return f
}

func (f *GlyphFactory) Background(c tcell.Color) *GlyphFactory {
	f.bg = c
	return f
}

func (f *GlyphFactory) BuildAppearance(c *scene.Character) scene.Appearance {
	return Sprite{
		Glyph: f.glyph,
		Label: c.Name(),
		Style: tcell.StyleDefault.Foreground(f.fg).Background(f.bg),
	}
}

// Shape selects the filled glyph a shape factory draws.
type Shape rune

const (
	ShapeCircle  Shape = '●'
	ShapeSquare  Shape = '■'
	ShapeDiamond Shape = '◆'
)

// NewShapeFactory builds sprites from a filled shape, the terminal analogue
// of drawing circles and rectangles.
func NewShapeFactory(s Shape) *GlyphFactory {
	return NewGlyphFactory(rune(s))
}

// BadgeFactory builds sprites that show the character's name in brackets
// instead of a glyph, for states where the label is the point.
type BadgeFactory struct {
	fg tcell.Color
}

func NewBadgeFactory() *BadgeFactory {
	return &BadgeFactory{fg: tcell.ColorWhite}
}

func (f *BadgeFactory) Foreground(c tcell.Color) *BadgeFactory {
	f.fg = c
	return f
}

func (f *BadgeFactory) BuildAppearance(c *scene.Character) scene.Appearance {
	return Sprite{
		Glyph: '[',
		Label: c.Name() + "]",
		Style: tcell.StyleDefault.Foreground(f.fg),
	}
}
