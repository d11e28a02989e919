package script

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pixil98/go-scene/internal/scene"
)

// Spawn describes one character a Wanderer drives.
type Spawn struct {
	Name     string
	WayPoint string
	State    string
	Velocity float64
}

// Wanderer animates characters from independent goroutines, one per
// character, the way concurrency exercises drive the model: each goroutine
// adds its own actor and then walks it between random waypoints, waiting for
// every trip to finish before starting the next.
type Wanderer struct {
	sc     *scene.Scene
	spawns []Spawn
	pause  time.Duration
}

func NewWanderer(sc *scene.Scene, spawns []Spawn, pause time.Duration) *Wanderer {
	return &Wanderer{
		sc:     sc,
		spawns: spawns,
		pause:  pause,
	}
}

// Start runs until the context is canceled or every driver has stopped.
func (w *Wanderer) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, spawn := range w.spawns {
		wg.Add(1)
		go func(spawn Spawn) {
			defer wg.Done()
			w.drive(ctx, spawn)
		}(spawn)
	}
	wg.Wait()
	return nil
}

func (w *Wanderer) drive(ctx context.Context, spawn Spawn) {
	if _, err := w.sc.AddCharacter(spawn.Name, spawn.WayPoint, spawn.State, spawn.Velocity); err != nil {
		slog.ErrorContext(ctx, "spawning character", "character", spawn.Name, "error", err)
		return
	}

	wps := w.sc.WayPoints()
	if len(wps) < 2 {
		// Nowhere to go.
		return
	}

	for ctx.Err() == nil {
		target := wps[rand.IntN(len(wps))]

		c := w.sc.Character(spawn.Name)
		if c == nil {
			// Removed by another caller; this driver is done.
			return
		}
		if wp, ok := c.Position().(*scene.WayPoint); ok && wp.Name() == target.Name() {
			continue
		}

		arrived := make(chan struct{})
		_, err := w.sc.MoveCharacter(spawn.Name, target.Name(), 0, scene.MovementEndFunc(func(*scene.Movement) {
			close(arrived)
		}))
		if err != nil {
			if errors.Is(err, scene.ErrUnknownCharacter) {
				return
			}
			slog.WarnContext(ctx, "wandering", "character", spawn.Name, "error", err)
		} else {
			select {
			case <-ctx.Done():
				return
			case <-arrived:
			}
		}

		pause := w.pause + time.Duration(rand.Int64N(int64(w.pause)+1))
		select {
		case <-ctx.Done():
			return
		case <-time.After(pause):
		}
	}
}
