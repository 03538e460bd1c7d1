package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akmonengine/p3"
	"github.com/akmonengine/p3/actor"
	"github.com/akmonengine/p3/internal/logging"
	"github.com/akmonengine/p3/scene"
	"go.uber.org/zap"
)

func main() {
	scenePath := flag.String("scene", "", "YAML scene file")
	demo := flag.String("demo", "bowling", fmt.Sprintf("demo scene, one of %v, ignored with -scene", scene.DemoNames()))
	steps := flag.Int("steps", 240, "number of steps to simulate")
	dt := flag.Float64("dt", 1.0/60, "step duration in seconds")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	logger := logging.New(*debug)
	defer logger.Sync()

	if err := run(logger, *scenePath, *demo, *steps, *dt); err != nil {
		logger.Error("sandbox failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, scenePath, demo string, steps int, dt float64) error {
	var (
		cfg *scene.Config
		err error
	)
	if scenePath != "" {
		cfg, err = scene.LoadFile(scenePath)
	} else {
		cfg, err = scene.Demo(demo)
	}
	if err != nil {
		return err
	}

	world, err := scene.Build(cfg, logger)
	if err != nil {
		return err
	}

	names := make(map[*actor.RigidBody]string, len(world.Bodies))
	for i, body := range world.Bodies {
		names[body] = cfg.Bodies[i].Name
	}

	var step int
	logEvent := func(event p3.Event) {
		a, b := event.Bodies()
		logger.Info(event.Type().String(),
			zap.Int("step", step),
			zap.String("body_a", names[a]),
			zap.String("body_b", names[b]),
		)
	}
	world.Events.Subscribe(p3.COLLISION_ENTER, logEvent)
	world.Events.Subscribe(p3.COLLISION_EXIT, logEvent)
	if logger.Core().Enabled(zap.DebugLevel) {
		world.Events.Subscribe(p3.COLLISION_STAY, logEvent)
	}

	logger.Info("simulation started",
		zap.String("scene", cfg.Name),
		zap.Int("bodies", len(world.Bodies)),
		zap.Int("steps", steps),
		zap.Float64("dt", dt),
	)

	for step = 1; step <= steps; step++ {
		world.Step(dt)
	}

	for _, body := range world.Bodies {
		logger.Info("final state",
			zap.String("body", names[body]),
			zap.Stringer("id", body.ID),
			zap.Float64s("position", body.Transform.Position[:]),
			zap.Float64s("velocity", body.Velocity[:]),
		)
	}
	logger.Info("simulation finished", zap.Uint64("state_hash", world.StateHash()))

	return nil
}
