package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-scene/internal/commands"
	"github.com/pixil98/go-scene/internal/listener"
	"github.com/pixil98/go-scene/internal/messaging"
	"github.com/pixil98/go-scene/internal/scheduler"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Movement scheduler
	var schedOpts []scheduler.SchedulerOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		schedOpts = append(schedOpts, scheduler.WithInterval(d))
	}
	sched := scheduler.NewScheduler(schedOpts...)

	// Scene over the configured assets
	sc, err := cfg.Assets.BuildScene(sched)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	// Event broker and the bridge mirroring scene transitions onto it
	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	sc.AddListener(messaging.NewSceneEvents(natsServer))

	// Control listeners
	cmdHandler := commands.NewHandler(sc, natsServer)
	cm := listener.NewConnectionManager(cmdHandler)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}

	workers := service.WorkerList{
		"nats":      natsServer,
		"scheduler": sched,
		"listeners": &listeners,
	}

	if cfg.Animation.Enabled {
		view, err := cfg.Animation.BuildView(sc)
		if err != nil {
			return nil, fmt.Errorf("creating animation view: %w", err)
		}
		sc.AddListener(view)
		workers["animation"] = view
	}

	if len(cfg.Script.Characters) > 0 {
		wanderer, err := cfg.Script.BuildWanderer(sc)
		if err != nil {
			return nil, fmt.Errorf("creating script: %w", err)
		}
		workers["script"] = wanderer
	}

	return workers, nil
}
