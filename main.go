package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/droplet/config"
	"github.com/pthm-cable/droplet/game"
	"github.com/pthm-cable/droplet/renderer"
	"github.com/pthm-cable/droplet/ui"
)

const controlsLegend = "W/S pitch  A/D yaw  SPACE boost  P brake  ALT tactical  H attack  U flicker  K auto  O observer  arrows pan  TAB pause  F1 panel"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	observer := flag.Bool("observer", false, "Start in observer mode (auto-attack from the overview camera)")
	autopilot := flag.Bool("autopilot", false, "Let the throttle chase the locked target")
	stars := flag.Int("stars", 1500, "Background star count")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Observer:       *observer,
		Autopilot:      *autopilot,
	}

	if *headless {
		// A headless run with no pilot only makes sense with something flying.
		if !*observer && !*autopilot {
			opts.Observer = true
			opts.Autopilot = true
		}
		runHeadless(opts, *maxTicks)
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Droplet")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	host := renderer.New(rngSeed, *stars)
	opts.Host = host
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	runWindowed(g, host, *maxTicks)
}

func runHeadless(opts game.Options, maxTicks int) {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
	)

	for {
		snap := g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
		if snap.Alive == 0 && snap.Dying == 0 && snap.Effects == 0 {
			slog.Info("fleet destroyed", "tick", g.Tick(), "sim_time", snap.SimTime)
			return
		}
	}
}

func runWindowed(g *game.Game, host *renderer.Host, maxTicks int) {
	hud := ui.NewHUD()
	radarPanel := ui.NewRadarPanel()
	controls := ui.NewControlsPanel(200)
	sim := g.Simulation()

	var toggles ui.Toggles
	snap := sim.Last()

	for !rl.WindowShouldClose() {
		w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		if rl.IsWindowResized() {
			sim.Resize(float64(w), float64(h))
		}
		if rl.IsKeyPressed(rl.KeyF1) {
			controls.Toggle()
		}
		if rl.IsKeyPressed(rl.KeyTab) {
			toggles.Pause = true
		}
		if toggles.Pause {
			g.SetPaused(!g.Paused())
		}
		if toggles.Autopilot {
			sim.SetAutopilot(!snap.Autopilot)
		}

		in := renderer.PollControls(controls.Hovered(w)).Input()
		snap = g.Update(toggles.Apply(in))

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		host.Draw(snap.Camera, frameStyle(sim, snap))
		ui.DrawLabels(snap.Labels)
		radarPanel.Draw(sim.RadarFrame(), w, h)
		hud.Draw(ui.HUDData{
			Snapshot:     snap,
			FPS:          rl.GetFPS(),
			Paused:       g.Paused(),
			ScreenWidth:  w,
			ScreenHeight: h,
		})
		hud.DrawControls(w, h, controlsLegend)
		toggles = controls.Draw(snap, g.Paused(), w)
		rl.EndDrawing()
		g.RecordFrame()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}

func frameStyle(sim *game.Simulation, snap game.Snapshot) renderer.Style {
	style := renderer.Style{
		Exposure: snap.Flight.Exposure,
		Ring:     snap.Flight.RingIntensity,
	}
	if ref, ok := sim.Fleet().Selected(); ok {
		if ship, ok := sim.Fleet().Ship(ref); ok {
			style.Highlight = ship.Body
		}
	}
	return style
}
