package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pickfall/pickfall/internal/core"
	"github.com/pickfall/pickfall/internal/game"
	"github.com/pickfall/pickfall/internal/storage"
)

// Model is the Bubble Tea model driving the game loop.
type Model struct {
	game   *game.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig

	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool

	startedAt      time.Time
	saveEvery      int64 // Progress snapshot interval in ticks, 0 = off
	ticksSinceSave int64
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, saveIntervalSeconds float64) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var saveEvery int64
	if store != nil && saveIntervalSeconds > 0 {
		saveEvery = int64(saveIntervalSeconds * float64(cfg.TickRate))
	}

	return Model{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		startedAt:  time.Now(),
		saveEvery:  saveEvery,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	// Carry the ore collection over from the last session.
	if m.store != nil {
		if p, err := m.store.LoadProgress(); err == nil && p != nil {
			m.game.RestoreOreTally(p.Ores)
		}
	}

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		m.persistRun()
		return m, tea.Quit
	case "t":
		m.inputFrame.Set(core.ActionSpawnTnt)
	case "m":
		m.inputFrame.Set(core.ActionSpawnMega)
	case "p", "esc":
		m.inputFrame.Set(core.ActionPause)
	case "r":
		m.inputFrame.Set(core.ActionRestart)
	}

	return m, nil
}

// handleResize processes window resize events. The world width is bound to
// the screen, so a resize starts a fresh column.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Reset(m.config)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	// Credit chat viewers for what their TNT destroyed.
	if m.store != nil {
		for _, c := range m.game.TakeCredits() {
			//nolint:errcheck // Best-effort, the game continues regardless
			m.store.RecordBlocksBroken(c.OwnerID, c.Owner, c.Blocks)
		}
	}

	if m.saveEvery > 0 {
		m.ticksSinceSave++
		if m.ticksSinceSave >= m.saveEvery {
			m.ticksSinceSave = 0
			//nolint:errcheck // Best-effort snapshot
			m.store.SaveProgress(m.game.Depth(), m.game.OreTally())
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// persistRun saves the finished run once.
func (m *Model) persistRun() {
	if m.store == nil || m.runSaved || m.game.Depth() == 0 {
		return
	}
	duration := int(time.Since(m.startedAt).Seconds())
	//nolint:errcheck // Best-effort save on exit
	m.store.SaveRun(m.game.Depth(), duration)
	//nolint:errcheck
	m.store.SaveProgress(m.game.Depth(), m.game.OreTally())
	m.runSaved = true
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, saveIntervalSeconds float64) error {
	model := NewModel(g, store, cfg, saveIntervalSeconds)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
