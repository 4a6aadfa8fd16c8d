// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Flight    FlightConfig    `yaml:"flight"`
	Camera    CameraConfig    `yaml:"camera"`
	Fleet     FleetConfig     `yaml:"fleet"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Collision CollisionConfig `yaml:"collision"`
	Radar     RadarConfig     `yaml:"radar"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds the fixed timestep.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// FlightConfig holds the player craft tuning.
type FlightConfig struct {
	MaxSpeed      float64 `yaml:"max_speed"`
	SpeedKnee     float64 `yaml:"speed_knee"` // boost/brake rates switch above this
	BoostLow      float64 `yaml:"boost_low"`
	BoostHigh     float64 `yaml:"boost_high"`
	BrakeLow      float64 `yaml:"brake_low"`
	BrakeHigh     float64 `yaml:"brake_high"`
	BoostRise     float64 `yaml:"boost_rise"`
	BoostDecay    float64 `yaml:"boost_decay"`
	RotateRate    float64 `yaml:"rotate_rate"` // rad/s
	BankRatio     float64 `yaml:"bank_ratio"`
	LockRate      float64 `yaml:"lock_rate"`
	TrailSteps    int     `yaml:"trail_steps"`
	TrailInterval float64 `yaml:"trail_interval"`
	FlickerRate   float64 `yaml:"flicker_rate"`
	RingBase      float64 `yaml:"ring_base"`
	RingPulse     float64 `yaml:"ring_pulse"`
	RingJitter    float64 `yaml:"ring_jitter"`
	RingSpeedGain float64 `yaml:"ring_speed_gain"`
	SpeedOfLight  float64 `yaml:"speed_of_light"`
}

// CameraConfig holds the follow camera tuning.
type CameraConfig struct {
	FovY               float64    `yaml:"fov_y"` // degrees
	TacticalOffset     [3]float64 `yaml:"tactical_offset"`
	TacticalLerp       float64    `yaml:"tactical_lerp"`
	ChaseBaseDistance  float64    `yaml:"chase_base_distance"`
	ChaseExtraDistance float64    `yaml:"chase_extra_distance"`
	ChaseHeight        float64    `yaml:"chase_height"`
	ChaseDistanceLerp  float64    `yaml:"chase_distance_lerp"`
	ChaseLerp          float64    `yaml:"chase_lerp"`
	OrbitTargetLerp    float64    `yaml:"orbit_target_lerp"`
	OrbitPanSpeed      float64    `yaml:"orbit_pan_speed"`
	OrbitMinDistance   float64    `yaml:"orbit_min_distance"`
	OrbitMaxDistance   float64    `yaml:"orbit_max_distance"`
	OrbitPolarMargin   float64    `yaml:"orbit_polar_margin"`
	ObserverPosition   [3]float64 `yaml:"observer_position"`
}

// FleetConfig holds the fleet layout and trajectory tuning.
type FleetConfig struct {
	Columns       int        `yaml:"columns"`
	Rows          int        `yaml:"rows"`
	Spacing       float64    `yaml:"spacing"`
	Center        [3]float64 `yaml:"center"`
	Roll          float64    `yaml:"roll"` // radians about forward
	ShipRadius    float64    `yaml:"ship_radius"`
	CountdownMin  float64    `yaml:"countdown_min"`
	CountdownSpan float64    `yaml:"countdown_span"`
	LookAhead     float64    `yaml:"look_ahead"`

	AccelMin  float64 `yaml:"accel_min"`
	AccelSpan float64 `yaml:"accel_span"`
	Freq1Min  float64 `yaml:"freq1_min"`
	Freq1Span float64 `yaml:"freq1_span"`
	Amp1Min   float64 `yaml:"amp1_min"`
	Amp1Span  float64 `yaml:"amp1_span"`
	Freq2Min  float64 `yaml:"freq2_min"`
	Freq2Span float64 `yaml:"freq2_span"`
	Amp2Min   float64 `yaml:"amp2_min"`
	Amp2Span  float64 `yaml:"amp2_span"`
	Freq3Min  float64 `yaml:"freq3_min"`
	Freq3Span float64 `yaml:"freq3_span"`
	Amp3Min   float64 `yaml:"amp3_min"`
	Amp3Span  float64 `yaml:"amp3_span"`

	PathHistory float64 `yaml:"path_history"` // seconds
	PathFuture  float64 `yaml:"path_future"`  // seconds
	PathSteps   int     `yaml:"path_steps"`

	LineBaseOpacity      float64 `yaml:"line_base_opacity"`
	LineHighlightOpacity float64 `yaml:"line_highlight_opacity"`
	LineFadeRate         float64 `yaml:"line_fade_rate"`
	LineColorRate        float64 `yaml:"line_color_rate"`
	LabelLift            float64 `yaml:"label_lift"`
}

// ExplosionConfig holds the explosion tuning.
type ExplosionConfig struct {
	Duration          float64 `yaml:"duration"`
	DefaultRadius     float64 `yaml:"default_radius"`
	Shake             float64 `yaml:"shake"`
	BurstChance       float64 `yaml:"burst_chance"`
	MidScaleBase      float64 `yaml:"mid_scale_base"`
	TerminalScale     float64 `yaml:"terminal_scale"`
	ParticlesPerScale float64 `yaml:"particles_per_scale"`
	ParticleSpeedMin  float64 `yaml:"particle_speed_min"`
	ParticleSpeedSpan float64 `yaml:"particle_speed_span"`
	ParticleSizeMin   float64 `yaml:"particle_size_min"`
	ParticleSizeSpan  float64 `yaml:"particle_size_span"`
	AgePerScale       float64 `yaml:"age_per_scale"`
	Drag              float64 `yaml:"drag"`
	DarkenRate        float64 `yaml:"darken_rate"`
	DebrisCount       int     `yaml:"debris_count"`
	DebrisMaxAge      float64 `yaml:"debris_max_age"`
	DebrisShrink      float64 `yaml:"debris_shrink"`
	DebrisSpeedMin    float64 `yaml:"debris_speed_min"`
	DebrisSpeedSpan   float64 `yaml:"debris_speed_span"`
	DebrisSizeRatio   float64 `yaml:"debris_size_ratio"`
}

// CollisionConfig holds player/ship collision parameters.
type CollisionConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RadarConfig holds the tactical radar layout.
type RadarConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Scale      float64 `yaml:"scale"` // pixels per world unit
	ShowPaths  bool    `yaml:"show_paths"`
	PathStride int     `yaml:"path_stride"` // draw every Nth trajectory sample
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	ScreenW32 float32
	ScreenH32 float32
	FleetSize int // Columns * Rows
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Fleet.Columns < 0 || c.Fleet.Rows < 0 {
		return fmt.Errorf("fleet grid must not be negative, got %dx%d", c.Fleet.Columns, c.Fleet.Rows)
	}
	if c.Flight.MaxSpeed <= 0 {
		return fmt.Errorf("flight.max_speed must be positive, got %v", c.Flight.MaxSpeed)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.FleetSize = c.Fleet.Columns * c.Fleet.Rows

	if c.Telemetry.BookmarkHistorySize < 3 {
		c.Telemetry.BookmarkHistorySize = 3
	}
	if c.Radar.PathStride < 1 {
		c.Radar.PathStride = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
