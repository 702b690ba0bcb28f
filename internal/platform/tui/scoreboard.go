package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pickfall/pickfall/internal/storage"
)

// maxRows is how many entries each scoreboard tab loads.
const maxRows = 100

// scoreboardTab selects which table is shown.
type scoreboardTab int

const (
	tabRuns scoreboardTab = iota
	tabChatters
)

// ScoreboardModel is the Bubble Tea model for the scores screen: deepest
// runs on one tab, the chat destruction leaderboard on the other.
type ScoreboardModel struct {
	store    *storage.Store
	tab      scoreboardTab
	table    table.Model
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRows()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.height-6),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.tab == tabChatters {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Viewer", Width: 24},
			{Title: "Blocks", Width: 10},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Depth", Width: 10},
		{Title: "Duration", Width: 10},
		{Title: "Date", Width: 18},
	}
}

// loadRows fills the table for the active tab.
func (m *ScoreboardModel) loadRows() {
	m.table.SetColumns(m.columns())

	var rows []table.Row
	if m.store != nil {
		switch m.tab {
		case tabRuns:
			if runs, err := m.store.TopRuns(maxRows); err == nil {
				for i, r := range runs {
					rows = append(rows, table.Row{
						fmt.Sprintf("#%d", i+1),
						fmt.Sprintf("%d", r.Depth),
						fmt.Sprintf("%ds", r.Duration),
						r.CreatedAt.Format("Jan 02 15:04"),
					})
				}
			}
		case tabChatters:
			if top, err := m.store.TopChatters(maxRows); err == nil {
				for i, e := range top {
					rows = append(rows, table.Row{
						fmt.Sprintf("#%d", i+1),
						e.Author,
						fmt.Sprintf("%d", e.BlocksBroken),
					})
				}
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.tab == tabRuns {
				m.tab = tabChatters
			} else {
				m.tab = tabRuns
			}
			m.loadRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 6)
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	title := "Deepest Runs"
	if m.tab == tabChatters {
		title = "Chat Leaderboard"
	}

	header := lipgloss.NewStyle().Bold(true).Render(title)
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).
		Render("tab: switch  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, m.table.View(), help)
}

// RunScoreboard starts the scoreboard program.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
