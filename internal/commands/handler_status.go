package commands

import (
	"context"
	"math"

	"github.com/pixil98/go-scene/internal/scene"
)

// statusTemplate renders the scene snapshot shown by the status command.
const statusTemplate = `Scene {{ .Width }}x{{ .Height }}, {{ len .Characters }} character(s), {{ .Movements }} movement(s) in flight.
{{- range .Characters }}
{{ .Name | trunc 16 | printf "%-16s" }} {{ .State | trunc 12 | printf "%-12s" }} ({{ .X }},{{ .Y }}){{ if .Moving }} moving, {{ .Progress }}%{{ end }}
{{- end }}
`

type statusCharacter struct {
	Name     string
	State    string
	X        int
	Y        int
	Moving   bool
	Progress int
}

type statusData struct {
	Width      int
	Height     int
	Movements  int
	Characters []statusCharacter
}

// handleStatus prints a point-in-time snapshot of the scene.
// Usage: status
func (h *Handler) handleStatus(ctx context.Context, sess *Session, args []string) error {
	data := statusData{
		Width:     h.sc.Width(),
		Height:    h.sc.Height(),
		Movements: len(h.sc.Movements()),
	}

	for _, c := range h.sc.Characters() {
		sc := statusCharacter{
			Name:  c.Name(),
			State: c.State().Name(),
		}
		switch pos := c.Position().(type) {
		case *scene.Movement:
			sc.X, sc.Y, sc.Moving = pos.At()
			sc.Progress = int(math.Round(pos.Progress() * 100))
		default:
			sc.X, sc.Y = pos.X(), pos.Y()
		}
		data.Characters = append(data.Characters, sc)
	}

	out, err := ExpandTemplate(statusTemplate, data)
	if err != nil {
		return err
	}

	sess.Printf("%s", out)
	return nil
}
