package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/droplet/config"
	"github.com/pthm-cable/droplet/telemetry"
)

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config default %v, spec default %v", spec.Path, got[i], spec.Default)
		}
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s: default %v outside [%v,%v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyClamps(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	v := pv.DefaultVector()
	v[0] = 1000
	v[1] = -5
	pv.ApplyToConfig(cfg, v)

	if cfg.Flight.LockRate != pv.Specs[0].Max {
		t.Errorf("lock_rate = %v, want clamped to %v", cfg.Flight.LockRate, pv.Specs[0].Max)
	}
	if cfg.Flight.RotateRate != pv.Specs[1].Min {
		t.Errorf("rotate_rate = %v, want clamped to %v", cfg.Flight.RotateRate, pv.Specs[1].Min)
	}
}

func TestComputeFitness(t *testing.T) {
	cfg, _ := config.Load("")
	fe := NewFitnessEvaluator(NewParamVector(), 600, []int64{1}, cfg)

	cleared := fe.computeFitness(&runResult{ticks: 300, destroyed: 4, total: 4})
	if math.Abs(cleared-5) > 1e-6 {
		t.Errorf("cleared fitness = %v, want 5s", cleared)
	}

	partial := fe.computeFitness(&runResult{ticks: 600, destroyed: 2, total: 4})
	if math.Abs(partial-15) > 1e-6 {
		t.Errorf("partial fitness = %v, want 10s + 2 * 2.5s", partial)
	}
	if partial <= cleared {
		t.Error("survivors should score worse than a clear")
	}
}

func TestLockFraction(t *testing.T) {
	if lockFraction(nil) != 0 {
		t.Error("no windows should score zero")
	}
	ws := []telemetry.WindowStats{{LockedFrac: 0.5}, {LockedFrac: 1}}
	if got := lockFraction(ws); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("lock fraction = %v, want 0.75", got)
	}
}
