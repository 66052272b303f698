package dashboard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voltlab/volt/internal/power"
)

// Key bindings. Letter keys are case-insensitive.
const (
	KeyPerformance = "p"
	KeyBalanced    = "b"
	KeyEco         = "e"
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
)

// HandleKeyMsg processes a key press. It returns whether the key was
// handled and any resulting command. Mode keys take effect on the
// sampler's next wake; quit cancels the sampler and exits.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()
	if len(key) == 1 {
		key = strings.ToLower(key)
	}

	switch key {
	case KeyPerformance:
		m.modes.SetMode(power.ModePerformance)
		return true, nil

	case KeyBalanced:
		m.modes.SetMode(power.ModeBalanced)
		return true, nil

	case KeyEco:
		m.modes.SetMode(power.ModeEco)
		return true, nil

	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		if m.stop != nil {
			m.stop()
		}
		return true, tea.Quit
	}

	return false, nil
}
