// Headless simulation: runs the physics scheduler on its own goroutine while a
// frame loop advances particles, and prints what a renderer would consume.
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"kinetic3d/internal/config"
	"kinetic3d/internal/logging"
	"kinetic3d/internal/particles"
	"kinetic3d/internal/physics"
	"kinetic3d/internal/replay"
	"kinetic3d/internal/scenefile"

	"github.com/charmbracelet/log"
)

//go:embed scene.yaml
var defaultScene []byte

type options struct {
	duration  time.Duration
	fps       int
	scene     string
	saveScene string
	record    string
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "YAML config file")
	duration := flag.Duration("duration", 5*time.Second, "how long to run")
	fps := flag.Int("fps", 60, "frame loop rate")
	scene := flag.String("scene", "", "YAML scene file (default: built-in demo scene)")
	saveScene := flag.String("save-scene", "", "write the final scene state to this file")
	record := flag.String("record", "", "write msgpack snapshots to this file")
	writeDefault := flag.Bool("write-config", false, "write the default config to -config and exit")
	flag.Parse()

	if *writeDefault {
		if err := config.Save(*configPath, config.Default()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, closer, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := options{
		duration:  *duration,
		fps:       *fps,
		scene:     *scene,
		saveScene: *saveScene,
		record:    *record,
	}
	if err := run(ctx, cfg, logger, opts); err != nil {
		logger.Error("Simulation failed", "err", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *log.Logger, opts options) error {
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.fps)
	}
	mode, err := physics.ParseIntegrationMode(cfg.Integration)
	if err != nil {
		return err
	}

	world := physics.NewWorld(nil, physics.WorldOptions{
		Gravity:               cfg.Gravity,
		Mode:                  mode,
		GravitationalConstant: cfg.GravitationalConstant,
		ResolveContacts:       cfg.ResolveContacts,
		Restitution:           cfg.Restitution,
		Logger:                logger.WithPrefix("physics"),
	})
	sf, err := loadScene(opts.scene)
	if err != nil {
		return err
	}
	if err := sf.Build(world); err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	if opts.saveScene != "" {
		defer func() {
			captured, err := scenefile.Capture(world)
			if err == nil {
				err = captured.Save(opts.saveScene)
			}
			if err != nil {
				logger.Error("Scene not saved", "err", err)
				return
			}
			logger.Info("Scene saved", "file", opts.saveScene)
		}()
	}

	var expired int
	parts := particles.NewManager(particles.Options{
		Gravity:  &cfg.ParticleGravity,
		Limit:    cfg.ParticleLimit,
		OnExpire: func(*particles.Particle) { expired++ },
		Logger:   logger.WithPrefix("particles"),
	})

	// The emitter is only touched from the physics goroutine.
	sparks := particles.NewEmitter("spark", uint64(time.Now().UnixNano()))
	sparks.Lifespan = 0.8
	sparks.GravityScale = 0.2
	world.OnCollisionEnter.AddListener(func(c physics.Contact) {
		owner := c.B.Owner()
		if owner == nil {
			owner = c.A.Owner()
		}
		body, ok := world.Snapshot().Find(owner.Name)
		if !ok {
			return
		}
		for _, p := range sparks.Burst(body.Position, 12) {
			if err := parts.Add(p); err != nil {
				logger.Debug("Particle dropped", "err", err)
				return
			}
		}
	})

	var rec *replay.Recorder
	if opts.record != "" {
		f, err := os.Create(opts.record)
		if err != nil {
			return fmt.Errorf("create recording: %w", err)
		}
		defer f.Close()
		rec = replay.NewRecorder(f)
		defer func() {
			if err := rec.Flush(); err != nil {
				logger.Error("Recording flush failed", "err", err)
			}
			logger.Info("Recording written", "file", opts.record, "frames", rec.Frames())
		}()
	}

	sched, err := physics.NewScheduler(world, physics.SchedulerOptions{
		Rate:     cfg.TickRate,
		WaitStep: cfg.WaitStep,
		Logger:   logger.WithPrefix("scheduler"),
	})
	if err != nil {
		return err
	}
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	frame := time.NewTicker(time.Second / time.Duration(opts.fps))
	defer frame.Stop()
	report := time.NewTicker(time.Second)
	defer report.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			printSummary(world.Snapshot(), parts, expired)
			return nil
		case now := <-frame.C:
			parts.Update(float32(now.Sub(last).Seconds()))
			last = now
			if rec != nil {
				if _, err := rec.Record(world.Snapshot()); err != nil {
					return err
				}
			}
		case <-report.C:
			snap := world.Snapshot()
			logger.Info("Frame",
				"tick", snap.Tick,
				"contacts", snap.Contacts,
				"particles", parts.Len(),
				"buckets", len(parts.Keys()),
			)
		}
	}
}

func loadScene(path string) (*scenefile.SceneFile, error) {
	if path == "" {
		return scenefile.Parse(defaultScene)
	}
	return scenefile.Load(path)
}

func printSummary(snap *physics.Snapshot, parts *particles.Manager, expired int) {
	fmt.Printf("tick %d, %d contacts, %d live particles, %d expired\n", snap.Tick, snap.Contacts, parts.Len(), expired)
	for _, b := range snap.Bodies {
		fmt.Printf("  %-8s pos (%6.2f, %6.2f, %6.2f)  vel (%6.2f, %6.2f, %6.2f)\n",
			b.Name, b.Position.X, b.Position.Y, b.Position.Z, b.Velocity.X, b.Velocity.Y, b.Velocity.Z)
	}
	for _, batch := range parts.Batches() {
		fmt.Printf("  bucket %q: %d instances\n", batch.Key, len(batch.Instances))
	}
}
