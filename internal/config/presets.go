package config

import "sort"

var Presets = map[string]*Config{
	"ideal": {
		Beads: 32, Diffusion: 1, Spring: 1, Dim: 3,
		Dt:     0.1,
		LagMin: 1e-3, LagMax: 1e3, LagPoints: 61,
	},
	"tethered": {
		Beads: 32, Diffusion: 1, Spring: 1, Dim: 3,
		Tethers: []TetherConfig{{Bead: 0, Stiffness: 1}},
		Dt:      0.1,
		LagMin:  1e-3, LagMax: 1e3, LagPoints: 61,
	},
	"looped": {
		Beads: 32, Diffusion: 1, Spring: 1, Dim: 3,
		Bonds:  []BondConfig{{I: 0, J: 31}},
		Dt:     0.1,
		LagMin: 1e-3, LagMax: 1e3, LagPoints: 61,
	},
	"driven": {
		Beads: 16, Diffusion: 1, Spring: 1, Dim: 3,
		Tethers: []TetherConfig{{Bead: 0, Stiffness: 1}},
		Forces:  []ForceConfig{{Bead: 15, Force: []float64{1, 0, 0}}},
		Dt:      0.05,
		LagMin:  1e-3, LagMax: 1e3, LagPoints: 61,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
