package animation

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pixil98/go-scene/internal/scene"
)

// Cell size in scene pixels. Terminal cells are roughly twice as tall as they
// are wide, so the vertical divisor is doubled to keep distances visually
// proportional.
const (
	cellWidth  = 10
	cellHeight = 20
)

// DefaultRefresh matches the movement refresh rate.
const DefaultRefresh = 16 * time.Millisecond

// View renders a scene in a terminal. It implements scene.SceneListener;
// since the model makes no thread-affinity guarantee, every callback only
// flags the view dirty and all drawing happens on the render goroutine. While
// movements are in flight the refresh ticker keeps polling their positions.
type View struct {
	sc      *scene.Scene
	screen  tcell.Screen
	refresh time.Duration
	updates chan struct{}
}

type ViewOpt func(*View)

// WithScreen injects a screen, used by tests to render into a simulation
// screen.
func WithScreen(screen tcell.Screen) ViewOpt {
	return func(v *View) {
		v.screen = screen
	}
}

func WithRefresh(d time.Duration) ViewOpt {
	return func(v *View) {
		v.refresh = d
	}
}

func NewView(sc *scene.Scene, opts ...ViewOpt) *View {
	v := &View{
		sc:      sc,
		refresh: DefaultRefresh,
		updates: make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Start runs the render loop until the context is canceled.
func (v *View) Start(ctx context.Context) error {
	screen := v.screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		screen = s
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	ticker := time.NewTicker(v.refresh)
	defer ticker.Stop()

	v.draw(screen)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-v.updates:
			v.draw(screen)
		case <-ticker.C:
			// Only movements change position between events.
			if len(v.sc.Movements()) > 0 {
				v.draw(screen)
			}
		}
	}
}

func (v *View) draw(screen tcell.Screen) {
	screen.Clear()

	wpStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for _, wp := range v.sc.WayPoints() {
		col, row := v.cell(wp.X(), wp.Y())
		screen.SetContent(col, row, 'o', nil, wpStyle)
		drawText(screen, col+2, row, wp.Name(), wpStyle)
	}

	for _, c := range v.sc.Characters() {
		pos := c.Position()
		col, row := v.cell(pos.X(), pos.Y())

		sprite, ok := c.Appearance().(Sprite)
		if !ok {
			sprite = Sprite{Glyph: '?', Label: c.Name(), Style: tcell.StyleDefault}
		}
		screen.SetContent(col, row, sprite.Glyph, nil, sprite.Style)
		drawText(screen, col+2, row, sprite.Label, sprite.Style)
	}

	screen.Show()
}

func (v *View) cell(x, y int) (col, row int) {
	return x / cellWidth, y / cellHeight
}

func drawText(screen tcell.Screen, col, row int, text string, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(col+i, row, r, nil, style)
	}
}

// invalidate flags the view dirty without blocking the caller; a slow redraw
// only coalesces later flags.
func (v *View) invalidate() {
	select {
	case v.updates <- struct{}{}:
	default:
	}
}

func (v *View) OnCharacterAdded(*scene.Character) { v.invalidate() }

func (v *View) OnCharacterRemoved(*scene.Character) { v.invalidate() }

func (v *View) OnMovementStart(*scene.Movement) { v.invalidate() }

func (v *View) OnMovementEnd(*scene.Movement) { v.invalidate() }

func (v *View) OnStateChanged(*scene.Character, *scene.State) { v.invalidate() }
