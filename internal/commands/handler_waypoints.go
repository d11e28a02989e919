package commands

import (
	"context"
	"sort"
	"strings"
)

// handleWayPoints lists the scene's anchors.
// Usage: waypoints
func (h *Handler) handleWayPoints(ctx context.Context, sess *Session, args []string) error {
	wps := h.sc.WayPoints()
	sort.Slice(wps, func(i, j int) bool { return wps[i].Name() < wps[j].Name() })

	var sb strings.Builder
	sb.WriteString("Waypoints:\n")
	for _, wp := range wps {
		sb.WriteString("  ")
		sb.WriteString(wp.String())
		sb.WriteString("\n")
	}

	sess.Printf("%s", sb.String())
	return nil
}
