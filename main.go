package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/node-collision-go/internal/collide"
	"github.com/olivierh59500/node-collision-go/internal/config"
	"github.com/olivierh59500/node-collision-go/internal/force"
	"github.com/olivierh59500/node-collision-go/internal/logging"
	"github.com/olivierh59500/node-collision-go/internal/palette"
	"github.com/olivierh59500/node-collision-go/internal/pointer"
	"github.com/olivierh59500/node-collision-go/internal/sound"
	"github.com/olivierh59500/node-collision-go/internal/term"
	"github.com/olivierh59500/node-collision-go/internal/wander"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	terminal := flag.Bool("terminal", false, "Render in the terminal instead of a window")
	soundFlag := flag.Bool("sound", false, "Play a blip on collision bursts")
	wanderFlag := flag.Bool("wander", false, "Let the anchor wander while the pointer is idle")
	seed := flag.Int64("seed", 0, "Random seed, 0 for time based")
	debug := flag.Bool("debug", false, "Write a debug log under logs/")
	flag.Parse()

	logFile, err := logging.Setup(logging.DefaultDir, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging disabled: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sound":
			cfg.Sound = *soundFlag
		case "wander":
			cfg.Wander = *wanderFlag
		case "seed":
			cfg.Seed = *seed
		}
	})
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log.Printf("starting: %+v terminal=%v", cfg, *terminal)

	if err := run(cfg, *terminal); err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, terminal bool) error {
	mode, err := force.ParseChargeMode(cfg.ChargeMode)
	if err != nil {
		return err
	}

	frames := force.NewFrames()
	sim := force.NewSimulation(frames, force.Options{
		Friction:   cfg.Friction,
		Theta:      cfg.Theta,
		Padding:    cfg.CollisionPadding,
		MinRadius:  cfg.MinRadius,
		MaxRadius:  cfg.MaxRadius,
		ChargeMode: mode,
		Seed:       cfg.Seed,
	})
	if err := sim.Initialize(cfg.ParticleCount, cfg.Width, cfg.Height, cfg.Gravity, cfg.Charge); err != nil {
		return err
	}
	sim.OnEnd(func() {
		log.Printf("layout at rest, residual overlap %.1f", collide.Penetration(sim.Particles()))
	})

	if cfg.Sound {
		spk, err := sound.OpenSpeaker()
		if err != nil {
			// Non-fatal, the visualisation runs without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer spk.Close()
			sim.OnTick(sound.NewImpacts(spk, sound.DefaultBurst, sound.DefaultCooldown).Observe)
		}
	}

	var w *wander.Wanderer
	if cfg.Wander {
		w = wander.New(cfg.Width, cfg.Height, cfg.Seed)
	}
	tracker := pointer.NewTracker(cfg.Width, cfg.Height, cfg.IdleFrames, w)
	colors := palette.NewCategory10()

	if err := sim.Start(); err != nil {
		return err
	}
	defer sim.Stop()

	if terminal {
		return runTerminal(sim, frames, tracker, colors, cfg.TPS)
	}
	return runWindow(sim, frames, tracker, colors, cfg.TPS)
}

func runWindow(sim *force.Simulation, frames *force.Frames, tracker *pointer.Tracker, colors *palette.Ordinal, tps int) error {
	game := NewGame(sim, frames, tracker, colors)

	ebiten.SetWindowSize(game.Width, game.Height)
	ebiten.SetWindowTitle("Node Collision")
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(sim *force.Simulation, frames *force.Frames, tracker *pointer.Tracker, colors *palette.Ordinal, tps int) error {
	screen, err := term.Open()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return term.New(screen, sim, frames, tracker, colors).Run(ctx, tps)
}
