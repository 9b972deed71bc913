package viz

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"

	"github.com/polychrom/rouse"
)

const traceCapacity = 400

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

type TickMsg time.Time

// Live is the bubbletea model behind `rouse live`: it repeatedly draws a new
// realization of the chain with Evolve and traces the end-to-end distance.
type Live struct {
	chain   *rouse.Model
	conf    *mat.Dense
	dt      float64
	rng     *rand.Rand
	t       float64
	trace   []float64
	running bool
	err     error
}

// NewLive samples a steady-state configuration to start from.
func NewLive(chain *rouse.Model, dt float64, seed int64) (Live, error) {
	rng := rand.New(rand.NewSource(seed))
	conf, err := chain.ConfSS(rng)
	if err != nil {
		return Live{}, err
	}
	l := Live{
		chain:   chain,
		conf:    conf,
		dt:      dt,
		rng:     rng,
		trace:   make([]float64, 0, traceCapacity),
		running: true,
	}
	l.trace = append(l.trace, endToEnd(conf))
	return l, nil
}

func (l Live) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			conf, err := l.chain.ConfSS(l.rng)
			if err != nil {
				l.err = err
				return l, tea.Quit
			}
			l.conf = conf
			l.t = 0
			l.trace = append(l.trace[:0], endToEnd(conf))
		}
		return l, nil

	case TickMsg:
		if l.running {
			next, err := l.chain.Evolve(l.conf, l.dt, l.rng)
			if err != nil {
				l.err = err
				return l, tea.Quit
			}
			l.conf = next
			l.t += l.dt
			l.trace = append(l.trace, endToEnd(next))
			if len(l.trace) > traceCapacity {
				l.trace = l.trace[len(l.trace)-traceCapacity:]
			}
		}
		return l, tick()
	}
	return l, nil
}

func (l Live) View() string {
	if l.err != nil {
		return errorStyle.Render(fmt.Sprintf("error: %v", l.err)) + "\n"
	}

	header := headerStyle.Render(l.chain.String())

	status := "running"
	if !l.running {
		status = "paused"
	}
	ree := endToEnd(l.conf)
	stats := labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2f", l.t)) + "\n" +
		labelStyle.Render("Ree") + valueStyle.Render(fmt.Sprintf("%.3f", ree)) + "\n" +
		labelStyle.Render("Ree (theory)") + valueStyle.Render(fmt.Sprintf("%.3f", l.chain.RMSRee(0))) + "\n" +
		labelStyle.Render("status") + valueStyle.Render(status)

	graph := graphStyle.Render(asciigraph.Plot(l.trace,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption("end-to-end distance"),
	))

	help := helpStyle.Render("space pause  r resample  q quit")

	return header + "\n" + stats + "\n" + graph + "\n" + help + "\n"
}

// endToEnd is the distance between the first and last bead across all axes.
func endToEnd(conf *mat.Dense) float64 {
	n, dim := conf.Dims()
	var sum float64
	for ax := 0; ax < dim; ax++ {
		d := conf.At(n-1, ax) - conf.At(0, ax)
		sum += d * d
	}
	return math.Sqrt(sum)
}
