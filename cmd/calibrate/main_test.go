package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pthm-cable/itemfield/probe"
)

func TestCalibrationTracksBest(t *testing.T) {
	cfg := loadDefaults(t)
	pv, err := NewParamVector(cfg, "lake")
	if err != nil {
		t.Fatalf("NewParamVector: %v", err)
	}
	var buf bytes.Buffer
	cal := newCalibration(pv, NewFitnessEvaluator(pv, Targets{Mean: 0}, cfg, probe.NewPool(1)), 3, &buf)

	// c spans [-20, 20], so 0.5 is c=0 and 0.75 is c=10.
	for _, x := range []float64{0.75, 0.5, 0.75} {
		cal.objective([]float64{x})
	}

	if cal.evals != 3 {
		t.Errorf("evals = %d, want 3", cal.evals)
	}
	if cal.bestFitness != 0 || cal.best[0] != 0 {
		t.Errorf("best = %v (fitness %v), want [0] (fitness 0)", cal.best, cal.bestFitness)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("log has %d lines, want header + 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "eval,fitness,mean,std,params" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "2,0,0,0,c=0.000000") {
		t.Errorf("second row = %q", lines[2])
	}
}
