package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shadelab/tui-smoother/internal/config"
	"github.com/shadelab/tui-smoother/internal/core"
	"github.com/shadelab/tui-smoother/internal/storage"
)

const (
	minTickRate = 1
	maxTickRate = 60
)

var (
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	settledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Model is the Bubble Tea model driving one universe.
type Model struct {
	universe *core.Universe
	cfg      config.SmootherConfig
	seed     int64
	store    *storage.Store

	keys KeyMap
	help help.Model

	tickRate int
	paused   bool
	settled  bool
	// Generation at which the grid stopped changing.
	settledAt uint64
	prev      []core.Shade

	runSaved bool
	quitting bool
}

// NewModel creates a model around an already-constructed universe.
// The seed is carried only for run records and reseeding display.
func NewModel(u *core.Universe, cfg config.SmootherConfig, seed int64, store *storage.Store) Model {
	return Model{
		universe: u,
		cfg:      cfg,
		seed:     seed,
		store:    store,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		tickRate: cfg.Display.TickRate,
		prev:     make([]core.Shade, len(u.View())),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused && !m.settled {
			m.advance()
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		if !m.settled {
			m.paused = true
			m.advance()
		}

	case key.Matches(msg, m.keys.Reset):
		return m.reseed()

	case key.Matches(msg, m.keys.Faster):
		if m.tickRate < maxTickRate {
			m.tickRate++
		}

	case key.Matches(msg, m.keys.Slower):
		if m.tickRate > minTickRate {
			m.tickRate--
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// advance runs one tick and checks whether the grid stopped changing.
// Settle detection lives here, not in the engine: it is a presentation
// concern and the engine makes no convergence promises.
func (m *Model) advance() {
	copy(m.prev, m.universe.View())
	m.universe.Tick()

	view := m.universe.View()
	for i, s := range view {
		if s != m.prev[i] {
			return
		}
	}
	m.settled = true
	m.settledAt = m.universe.Generation()
}

// reseed saves the current run and starts over with a fresh random grid.
func (m Model) reseed() (tea.Model, tea.Cmd) {
	m.saveRun()

	seed := time.Now().UnixNano()
	u, err := buildUniverse(m.cfg, seed)
	if err != nil {
		// Config was already validated; a failure here is a programming
		// error, so keep the old universe rather than crash the session.
		return m, nil
	}

	m.universe = u
	m.seed = seed
	m.settled = false
	m.settledAt = 0
	m.runSaved = false
	m.prev = make([]core.Shade, len(u.View()))
	return m, nil
}

// saveRun records the run so far. Best effort: the UI keeps working
// without storage.
func (m *Model) saveRun() {
	if m.store == nil || m.runSaved || m.universe.Generation() == 0 {
		return
	}

	weights, policy := m.universe.Rule()
	//nolint:errcheck // Best-effort save, session continues regardless
	m.store.SaveRun(storage.RunEntry{
		Width:          m.universe.Width(),
		Height:         m.universe.Height(),
		Seed:           m.seed,
		CardinalWeight: weights.Cardinal,
		DiagonalWeight: weights.Diagonal,
		Boundary:       string(policy),
		Ticks:          int(m.universe.Generation()),
		Settled:        m.settled,
		SettledAt:      int(m.settledAt),
	})
	m.runSaved = true
}

// View renders the HUD, the grid, and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	weights, policy := m.universe.Rule()
	hud := hudStyle.Render(fmt.Sprintf("gen %d  %dx%d  w=%d/%d  %s  %d tps",
		m.universe.Generation(),
		m.universe.Width(), m.universe.Height(),
		weights.Cardinal, weights.Diagonal,
		policy,
		m.tickRate,
	))

	switch {
	case m.settled:
		hud += "  " + settledStyle.Render(fmt.Sprintf("settled at gen %d", m.settledAt))
	case m.paused:
		hud += "  " + pausedStyle.Render("paused")
	}

	return hud + "\n" +
		RenderView(m.universe.View(), m.universe.Width()) + "\n" +
		m.help.View(m.keys)
}

// buildUniverse constructs a universe from the simulation configuration.
func buildUniverse(cfg config.SmootherConfig, seed int64) (*core.Universe, error) {
	return core.NewUniverse(
		cfg.Grid.Width,
		cfg.Grid.Height,
		core.WithSeed(seed),
		core.WithWeights(cfg.Rule.Weights()),
		core.WithBoundary(cfg.Rule.BoundaryPolicy()),
	)
}

// Run builds a universe from the configuration and starts the Bubble Tea
// program. Blocks until the user quits.
func Run(cfg config.SmootherConfig, seed int64, store *storage.Store) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	u, err := buildUniverse(cfg, seed)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewModel(u, cfg, seed, store),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
