package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/polychrom/rouse"
)

const (
	DefaultBeads     = 32
	DefaultDiffusion = 1.0
	DefaultSpring    = 1.0
	DefaultDim       = 3
	DefaultDt        = 0.1
	DefaultLagMin    = 1e-3
	DefaultLagMax    = 1e3
	DefaultLagPoints = 61
)

// Config describes one chain setup plus the lag grid and sampling
// parameters the CLI runs with.
type Config struct {
	Beads     int     `yaml:"beads"`
	Diffusion float64 `yaml:"diffusion"`
	Spring    float64 `yaml:"spring"`
	Dim       int     `yaml:"dim"`

	Bonds   []BondConfig   `yaml:"bonds,omitempty"`
	Tethers []TetherConfig `yaml:"tethers,omitempty"`
	Forces  []ForceConfig  `yaml:"forces,omitempty"`

	Seed int64   `yaml:"seed"`
	Dt   float64 `yaml:"dt"`

	LagMin    float64 `yaml:"lag_min"`
	LagMax    float64 `yaml:"lag_max"`
	LagPoints int     `yaml:"lag_points"`
}

type BondConfig struct {
	I      int     `yaml:"i"`
	J      int     `yaml:"j"`
	Weight float64 `yaml:"weight,omitempty"`
}

type TetherConfig struct {
	Bead      int       `yaml:"bead"`
	Stiffness float64   `yaml:"stiffness"`
	Anchor    []float64 `yaml:"anchor,omitempty"`
}

type ForceConfig struct {
	Bead  int       `yaml:"bead"`
	Force []float64 `yaml:"force"`
}

func DefaultConfig() *Config {
	return &Config{
		Beads:     DefaultBeads,
		Diffusion: DefaultDiffusion,
		Spring:    DefaultSpring,
		Dim:       DefaultDim,
		Dt:        DefaultDt,
		LagMin:    DefaultLagMin,
		LagMax:    DefaultLagMax,
		LagPoints: DefaultLagPoints,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildModel constructs the chain the config describes.
func (c *Config) BuildModel() (*rouse.Model, error) {
	bonds := make([]rouse.Bond, 0, len(c.Bonds))
	for _, b := range c.Bonds {
		bonds = append(bonds, rouse.Bond{I: b.I, J: b.J, Weight: b.Weight})
	}
	m, err := rouse.NewWithOptions(c.Beads, c.Diffusion, c.Spring, rouse.Options{
		Dim:           c.Dim,
		Bonds:         bonds,
		DeferDynamics: true,
	})
	if err != nil {
		return nil, err
	}
	for _, t := range c.Tethers {
		if err := m.AddTether(t.Bead, t.Stiffness, t.Anchor); err != nil {
			return nil, err
		}
	}
	for _, f := range c.Forces {
		if err := m.SetForce(f.Bead, f.Force); err != nil {
			return nil, err
		}
	}
	if err := m.UpdateDynamics(); err != nil {
		return nil, err
	}
	return m, nil
}
