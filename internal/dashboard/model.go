package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voltlab/volt/internal/power"
)

// Minimum terminal size for the full layout.
const (
	MinWidth  = 70
	MinHeight = 24
)

// DefaultRefresh is the render cadence: 5Hz regardless of how often the
// sampler produces new data. Redrawing unchanged data is harmless.
const DefaultRefresh = 200 * time.Millisecond

// Model is the Bubble Tea model for the power dashboard. Its Update loop
// is the orchestrator: key messages are the input events, the tick timer
// is the render cadence, and quitting cancels the sampler's context.
type Model struct {
	sampler *power.Sampler
	modes   *power.ModeController
	watts   *power.History
	temps   *power.History
	stop    context.CancelFunc

	refresh time.Duration
	width   int
	height  int
	frame   int
	boot    spinner.Model

	quitting bool
}

// tickMsg drives the fixed-cadence redraw.
type tickMsg time.Time

// NewModel creates the dashboard model. stop is invoked on quit to cancel
// the sampler's context; it must be non-nil.
func NewModel(sampler *power.Sampler, modes *power.ModeController, watts, temps *power.History, stop context.CancelFunc, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}

	boot := spinner.New()
	boot.Spinner = spinner.Spinner{
		Frames: []string{"◐", "◓", "◑", "◒"},
		FPS:    time.Second / 10,
	}
	boot.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		sampler: sampler,
		modes:   modes,
		watts:   watts,
		temps:   temps,
		stop:    stop,
		refresh: refresh,
		boot:    boot,
	}
}

// Init starts the render tick and the boot spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.boot.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.frame++
		return m, m.tickCmd()

	case spinner.TickMsg:
		// Only animate while waiting for the first sample.
		if m.sampler.Latest() == nil {
			var cmd tea.Cmd
			m.boot, cmd = m.boot.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the dashboard from the latest published snapshot.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
