package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Fleet at window end
	Alive       int     `csv:"alive"`
	Destroyed   int     `csv:"destroyed"`
	Total       int     `csv:"total"`
	Maneuvering bool    `csv:"maneuvering"`
	Countdown   float64 `csv:"countdown"`

	// Events during window
	Collisions     int `csv:"collisions"`
	Kills          int `csv:"kills"`
	MidBursts      int `csv:"mid_bursts"`
	TerminalBursts int `csv:"terminal_bursts"`
	Debris         int `csv:"debris"`

	// Explosion load at window end
	Dying   int `csv:"dying"`
	Effects int `csv:"effects"`

	// Player speed, sampled every tick
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`
	BoostMean float64 `csv:"boost_mean"`

	// Fraction of ticks with a target lock
	LockedFrac float64 `csv:"locked_frac"`
}

// ComputeSpeedStats returns the mean, median, 90th percentile and maximum.
func ComputeSpeedStats(values []float64) (mean, p50, p90, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	max = floats.Max(sorted)
	return mean, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("alive", s.Alive),
		slog.Int("destroyed", s.Destroyed),
		slog.Int("total", s.Total),
		slog.Bool("maneuvering", s.Maneuvering),
		slog.Float64("countdown", s.Countdown),
		slog.Int("collisions", s.Collisions),
		slog.Int("kills", s.Kills),
		slog.Int("mid_bursts", s.MidBursts),
		slog.Int("terminal_bursts", s.TerminalBursts),
		slog.Int("debris", s.Debris),
		slog.Int("dying", s.Dying),
		slog.Int("effects", s.Effects),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("boost_mean", s.BoostMean),
		slog.Float64("locked_frac", s.LockedFrac),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"alive", s.Alive,
		"destroyed", s.Destroyed,
		"total", s.Total,
		"maneuvering", s.Maneuvering,
		"countdown", s.Countdown,
		"collisions", s.Collisions,
		"kills", s.Kills,
		"mid_bursts", s.MidBursts,
		"terminal_bursts", s.TerminalBursts,
		"debris", s.Debris,
		"dying", s.Dying,
		"effects", s.Effects,
		"speed_mean", s.SpeedMean,
		"speed_p50", s.SpeedP50,
		"speed_max", s.SpeedMax,
		"locked_frac", s.LockedFrac,
	)
}
