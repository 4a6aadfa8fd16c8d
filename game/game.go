// Package game wires the flight, fleet and explosion systems into a
// fixed-step simulation with telemetry output.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/droplet/config"
	"github.com/pthm-cable/droplet/scene"
	"github.com/pthm-cable/droplet/telemetry"
)

// Options configures a game run.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	Observer       bool // start in observer mode
	Autopilot      bool // drive the throttle toward the lock

	// Host renders the scene. nil uses an in-memory host.
	Host scene.Host
}

// Game owns a simulation plus its telemetry pipeline.
type Game struct {
	cfg     *config.Config
	sim     *Simulation
	host    scene.Host
	rngSeed int64

	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	logStats         bool

	events        []telemetry.Event
	statsCallback func(telemetry.WindowStats)

	paused bool
}

// NewGameWithOptions creates a game using the global configuration.
func NewGameWithOptions(opts Options) (*Game, error) {
	return NewGame(config.Cfg(), opts)
}

// NewGame creates a game from an explicit configuration.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	host := opts.Host
	if host == nil {
		host = scene.NewMemoryHost()
	}

	windowSec := opts.StatsWindowSec
	if windowSec <= 0 {
		windowSec = cfg.Telemetry.StatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := &Game{
		cfg:              cfg,
		sim:              NewSimulation(cfg, host, rng),
		host:             host,
		rngSeed:          opts.Seed,
		collector:        telemetry.NewCollector(windowSec, cfg.Physics.DT),
		perfCollector:    telemetry.NewPerfCollector(int(1 / cfg.Physics.DT)),
		outputManager:    om,
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize),
		logStats:         opts.LogStats,
	}
	g.sim.SetPerf(g.perfCollector)
	g.sim.SetObserver(opts.Observer)
	g.sim.SetAutopilot(opts.Autopilot)

	slog.Info("game_created",
		"seed", opts.Seed,
		"ships", g.sim.Fleet().Total(),
		"headless", opts.Headless,
		"output_dir", om.Dir(),
	)
	return g, nil
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Update advances one tick with the given input.
func (g *Game) Update(in Input) Snapshot {
	if g.paused {
		return g.sim.Last()
	}
	g.perfCollector.StartTick()
	snap := g.sim.Step(g.cfg.Physics.DT, in)
	g.recordSnapshot(snap)
	g.perfCollector.EndTick()

	g.flushTelemetry()
	return snap
}

// UpdateHeadless advances one tick without player input.
func (g *Game) UpdateHeadless() Snapshot {
	return g.Update(Input{})
}

// SetPaused freezes or resumes the simulation.
func (g *Game) SetPaused(p bool) { g.paused = p }

// Paused reports whether the simulation is frozen.
func (g *Game) Paused() bool { return g.paused }

// RecordFrame records render frame timing.
func (g *Game) RecordFrame() { g.perfCollector.RecordFrame() }

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *Simulation { return g.sim }

// Host returns the scene host.
func (g *Game) Host() scene.Host { return g.host }

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.sim.Tick() }

// Unload flushes any buffered events and closes output files.
func (g *Game) Unload() {
	g.writeEvents()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
