package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/polychrom/rouse"
	"github.com/polychrom/rouse/internal/config"
	"github.com/polychrom/rouse/internal/viz"
)

var (
	beads     int
	diffusion float64
	spring    float64
	dim       int
	seed      int64
	dt        float64
	lagMin    float64
	lagMax    float64
	lagPoints int
	locus      int
	loci       string
	logScale   bool
	preset     string
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rouse",
		Short: "analytic Rouse polymer dynamics",
	}

	for _, c := range []*cobra.Command{
		newMSDCmd(), newACFCmd(), newTwoLocusCmd(), newContactCmd(),
		newTimescalesCmd(), newLiveCmd(), newPresetsCmd(),
	} {
		rootCmd.AddCommand(c)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func chainFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&beads, "beads", config.DefaultBeads, "number of beads")
	cmd.Flags().Float64Var(&diffusion, "diffusion", config.DefaultDiffusion, "diffusion coefficient D")
	cmd.Flags().Float64Var(&spring, "spring", config.DefaultSpring, "spring constant k")
	cmd.Flags().IntVar(&dim, "dim", config.DefaultDim, "spatial dimension")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
}

func lagFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&lagMin, "lag-min", config.DefaultLagMin, "smallest time lag")
	cmd.Flags().Float64Var(&lagMax, "lag-max", config.DefaultLagMax, "largest time lag")
	cmd.Flags().IntVar(&lagPoints, "points", config.DefaultLagPoints, "number of log-spaced lags")
	cmd.Flags().BoolVar(&logScale, "log", true, "plot log10 of the curve")
}

// loadConfig resolves preset and config file, then lets changed flags win,
// the same precedence the flags themselves document.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("beads") {
		cfg.Beads = beads
	}
	if cmd.Flags().Changed("diffusion") {
		cfg.Diffusion = diffusion
	}
	if cmd.Flags().Changed("spring") {
		cfg.Spring = spring
	}
	if cmd.Flags().Changed("dim") {
		cfg.Dim = dim
	}
	if f := cmd.Flags().Lookup("lag-min"); f != nil && f.Changed {
		cfg.LagMin = lagMin
	}
	if f := cmd.Flags().Lookup("lag-max"); f != nil && f.Changed {
		cfg.LagMax = lagMax
	}
	if f := cmd.Flags().Lookup("points"); f != nil && f.Changed {
		cfg.LagPoints = lagPoints
	}
	if f := cmd.Flags().Lookup("dt"); f != nil && f.Changed {
		cfg.Dt = dt
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		cfg.Seed = seed
	}
	return cfg, nil
}

// weight resolves --loci/--locus into a bead weight vector.
func weight(n int) ([]float64, error) {
	if loci != "" {
		parts := strings.Split(loci, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("--loci wants two comma-separated bead indices, got %q", loci)
		}
		i, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		j, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= n || j < 0 || j >= n || i == j {
			return nil, fmt.Errorf("--loci indices out of range for N=%d", n)
		}
		w := make([]float64, n)
		w[i], w[j] = 1, -1
		return w, nil
	}
	if locus < 0 || locus >= n {
		return nil, fmt.Errorf("--locus out of range for N=%d", n)
	}
	w := make([]float64, n)
	w[locus] = 1
	return w, nil
}

func newMSDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msd",
		Short: "mean squared displacement over a log-spaced lag grid",
		RunE:  runMSD,
	}
	chainFlags(cmd)
	lagFlags(cmd)
	cmd.Flags().IntVar(&locus, "locus", 0, "bead whose displacement to track")
	cmd.Flags().StringVar(&loci, "loci", "", "two beads i,j to track as a relative coordinate")
	return cmd
}

func newACFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acf",
		Short: "steady-state autocovariance over a log-spaced lag grid",
		RunE:  runACF,
	}
	chainFlags(cmd)
	lagFlags(cmd)
	cmd.Flags().IntVar(&locus, "locus", 0, "bead whose displacement to track")
	cmd.Flags().StringVar(&loci, "loci", "", "two beads i,j to track as a relative coordinate")
	return cmd
}

func runMSD(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	chain, err := cfg.BuildModel()
	if err != nil {
		return err
	}
	w, err := weight(chain.N())
	if err != nil {
		return err
	}
	lags := floats.LogSpan(make([]float64, cfg.LagPoints), cfg.LagMin, cfg.LagMax)
	msd, err := chain.MSD(lags, w)
	if err != nil {
		return err
	}

	fmt.Println(chain)
	if logScale {
		fmt.Println(viz.LogLogCurve("MSD", lags, msd))
	} else {
		fmt.Println(viz.Curve("MSD", lags, msd))
	}
	return printCurve(lags, msd, "msd")
}

func runACF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	chain, err := cfg.BuildModel()
	if err != nil {
		return err
	}
	w, err := weight(chain.N())
	if err != nil {
		return err
	}
	lags := floats.LogSpan(make([]float64, cfg.LagPoints), cfg.LagMin, cfg.LagMax)
	acf, err := chain.ACF(lags, w)
	if err != nil {
		return err
	}

	fmt.Println(chain)
	fmt.Println(viz.Curve("ACF", lags, acf))
	return printCurve(lags, acf, "acf")
}

func newTwoLocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "twolocus",
		Short: "analytic two-locus MSD on an infinite chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			lags := floats.LogSpan(make([]float64, lagPoints), lagMin, lagMax)
			msd, err := rouse.TwoLocusMSD(lags, diffusion, spring)
			if err != nil {
				return err
			}
			if logScale {
				fmt.Println(viz.LogLogCurve("two-locus MSD", lags, msd))
			} else {
				fmt.Println(viz.Curve("two-locus MSD", lags, msd))
			}
			plateau, err := rouse.TwoLocusMSDAt(math.Inf(1), diffusion, spring)
			if err != nil {
				return err
			}
			fmt.Printf("plateau: %.6f\n", plateau)
			return nil
		},
	}
	cmd.Flags().Float64Var(&diffusion, "diffusion", config.DefaultDiffusion, "diffusion coefficient D")
	cmd.Flags().Float64Var(&spring, "spring", config.DefaultSpring, "spring constant k")
	lagFlags(cmd)
	return cmd
}

func newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "steady-state contact-frequency map",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			chain, err := cfg.BuildModel()
			if err != nil {
				return err
			}
			hic, err := chain.ContactFrequency()
			if err != nil {
				return err
			}
			fmt.Println(chain)
			fmt.Println(viz.ContactMap(hic))
			return nil
		},
	}
	chainFlags(cmd)
	return cmd
}

func newTimescalesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timescales",
		Short: "characteristic times, Gamma and end-to-end distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			chain, err := cfg.BuildModel()
			if err != nil {
				return err
			}
			ts, err := chain.Timescales()
			if err != nil {
				return err
			}

			fmt.Println(chain)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%.6g\n", rouse.TimescaleMicroscopic, ts[rouse.TimescaleMicroscopic])
			fmt.Fprintf(w, "%s\t%.6g\n", rouse.TimescaleRouse, ts[rouse.TimescaleRouse])
			fmt.Fprintf(w, "%s\t%.6g\n", rouse.TimescaleEquilibration, ts[rouse.TimescaleEquilibration])
			fmt.Fprintf(w, "Gamma\t%.6g\n", chain.Gamma())
			fmt.Fprintf(w, "rms_Ree\t%.6g\n", chain.RMSRee(0))
			return w.Flush()
		},
	}
	chainFlags(cmd)
	return cmd
}

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "live stochastic evolution of one realization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			chain, err := cfg.BuildModel()
			if err != nil {
				return err
			}
			s := cfg.Seed
			if s == 0 {
				s = time.Now().UnixNano()
			}
			l, err := viz.NewLive(chain, cfg.Dt, s)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(l).Run()
			return err
		},
	}
	chainFlags(cmd)
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "evolution timestep")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 means time-based)")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list named chain configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-10s N=%d D=%g k=%g bonds=%d tethers=%d\n",
					name, p.Beads, p.Diffusion, p.Spring, len(p.Bonds), len(p.Tethers))
			}
			return nil
		},
	}
}

func printCurve(lags, ys []float64, label string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "lag\t%s\n", label)
	step := len(lags) / 10
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(lags); i += step {
		fmt.Fprintf(w, "%.4g\t%.6g\n", lags[i], ys[i])
	}
	return w.Flush()
}
