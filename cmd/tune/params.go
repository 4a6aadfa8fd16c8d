package main

import (
	"github.com/pthm-cable/droplet/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of flight handling parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "lock_rate", Path: "flight.lock_rate", Min: 0.5, Max: 12, Default: 5},
			{Name: "rotate_rate", Path: "flight.rotate_rate", Min: 0.5, Max: 5, Default: 2},
			{Name: "boost_low", Path: "flight.boost_low", Min: 20, Max: 400, Default: 100},
			{Name: "boost_high", Path: "flight.boost_high", Min: 5, Max: 200, Default: 50},
			{Name: "brake_low", Path: "flight.brake_low", Min: 50, Max: 600, Default: 300},
			{Name: "brake_high", Path: "flight.brake_high", Min: 20, Max: 400, Default: 100},
			{Name: "boost_rise", Path: "flight.boost_rise", Min: 0.1, Max: 4, Default: 1},
			{Name: "boost_decay", Path: "flight.boost_decay", Min: 0.5, Max: 6, Default: 3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// fields returns pointers to the tuned config fields, in Specs order.
func fields(cfg *config.Config) []*float64 {
	f := &cfg.Flight
	return []*float64{
		&f.LockRate,
		&f.RotateRate,
		&f.BoostLow,
		&f.BoostHigh,
		&f.BrakeLow,
		&f.BrakeHigh,
		&f.BoostRise,
		&f.BoostDecay,
	}
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, p := range fields(cfg) {
		*p = clamped[i]
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	ptrs := fields(cfg)
	v := make([]float64, len(ptrs))
	for i, p := range ptrs {
		v[i] = *p
	}
	return v
}
