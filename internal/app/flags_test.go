package app

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"firespread/internal/core"
	_ "firespread/internal/fire"
)

func TestConfigBindAndNewSim(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("view", pflag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"--sim", "diffusion", "--seed", "9", "--set", "size=16,diffusion_rate=0.4", "--scale", "4"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Scale != 4 || cfg.Seed != 9 || cfg.Set["size"] != "16" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	sim, err := cfg.NewSim()
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	if sim.Name() != "fire/diffusion" || sim.Size() != (core.Size{W: 16, H: 16}) {
		t.Fatalf("sim %q size %+v", sim.Name(), sim.Size())
	}
	burning := 0
	for _, c := range sim.Cells() {
		if c == 1 {
			burning++
		}
	}
	if burning != 1 {
		t.Fatalf("a fresh run should have one burning cell, got %d", burning)
	}
}

func TestNewSimErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim = "lava"
	if _, err := cfg.NewSim(); err == nil || !strings.Contains(err.Error(), "sir") {
		t.Fatalf("unknown sim should list the registered ones, got %v", err)
	}
	cfg = NewConfig()
	cfg.Set = map[string]string{"beta": "hot"}
	if _, err := cfg.NewSim(); err == nil {
		t.Fatal("malformed override should fail")
	}
}
