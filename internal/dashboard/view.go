package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/voltlab/volt/internal/power"
)

// Card layout constants
const (
	cardWidth    = 34
	cardMinWidth = 10
	graphWidth   = 68
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.width > 0 && (m.width < MinWidth || m.height < MinHeight) {
		return m.renderTooSmall()
	}

	snap := m.sampler.Latest()
	if snap == nil {
		return m.renderBooting()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(snap))
	b.WriteString("\n\n")

	// Top row: battery and health cards side by side
	battery := m.renderBatteryCard(snap)
	health := m.renderHealthCard(snap)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, battery, health))
	b.WriteString("\n")

	// Second row: live metrics and charger cards
	metrics := m.renderMetricsCard(snap)
	charger := m.renderChargerCard(snap)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, metrics, charger))
	b.WriteString("\n")

	b.WriteString(m.renderGraphCard())
	b.WriteString("\n")

	b.WriteString(m.renderFooter(snap))

	return b.String()
}

// renderBooting shows a spinner until the sampler publishes its first
// snapshot.
func (m Model) renderBooting() string {
	msg := m.boot.View() + " " + LabelStyle.Render("Reading power data...")
	return HeaderStyle.Render(CardTitleStyle.Render("volt")) + "\n\n  " + msg + "\n"
}

// renderTooSmall asks for a bigger terminal instead of rendering a
// mangled layout.
func (m Model) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small (%dx%d). Need at least %dx%d.",
		m.width, m.height, MinWidth, MinHeight)
	return "\n  " + StaleStyle.Render(msg) + "\n"
}

// renderHeader renders the title bar with the mode badge and data status.
func (m Model) renderHeader(snap *power.Snapshot) string {
	title := CardTitleStyle.Render("volt")

	mode := m.modes.Mode().String()
	badge := ModeStyle(mode).Render("[" + mode + "]")

	interval := MutedStyle.Render(fmt.Sprintf("poll %s", m.modes.Interval()))

	status := ""
	if snap.Unavailable {
		status = "  " + UnavailableStyle.Render("✗ data unavailable")
	} else if snap.Stale {
		status = "  " + StaleStyle.Render("⚠ stale")
	}

	return HeaderStyle.Render(title + "  " + badge + "  " + interval + status)
}

// renderBatteryCard renders charge level, state, and time remaining.
func (m Model) renderBatteryCard(snap *power.Snapshot) string {
	r := snap.Reading
	innerWidth := cardWidth - 4

	var lines []string
	lines = append(lines, CardTitleStyle.Render("BATTERY"))

	if r.Percent == nil {
		lines = append(lines, MutedStyle.Render("no battery data"))
		return CardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))
	}

	pct := *r.Percent
	pctText := LevelStyle(float64(pct)).Bold(true).Render(fmt.Sprintf("%d%%", pct))
	lines = append(lines, renderKeyValue("Charge", pctText, innerWidth))
	lines = append(lines, RenderBatteryBar(innerWidth-2, pct))

	stateText := stateStyle(r.State).Render(r.State.String())
	lines = append(lines, renderKeyValue("State", stateText, innerWidth))

	if r.State == power.StateCharging || r.State == power.StateDischarging {
		lines = append(lines, RenderFlow(r.State == power.StateCharging, m.frame))
	}

	if r.TimeRemainingMin != nil {
		lines = append(lines, renderKeyValue("Time left", ValueStyle.Render(formatMinutes(*r.TimeRemainingMin)), innerWidth))
	} else if r.State == power.StateCharging || r.State == power.StateDischarging {
		lines = append(lines, renderKeyValue("Time left", MutedStyle.Render("calculating..."), innerWidth))
	}

	return CardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// stateStyle picks a color for the charging state text.
func stateStyle(s power.ChargingState) lipgloss.Style {
	switch s {
	case power.StateCharging, power.StateFull:
		return lipgloss.NewStyle().Foreground(ColorHealthy)
	case power.StateDischarging:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	default:
		return MutedStyle
	}
}

// renderHealthCard renders long-lived battery health fields from the
// slow tier.
func (m Model) renderHealthCard(snap *power.Snapshot) string {
	r := snap.Reading
	innerWidth := cardWidth - 4

	var lines []string
	lines = append(lines, CardTitleStyle.Render("HEALTH"))

	if r.HealthPercent == nil && r.CycleCount == nil && r.Condition == nil {
		lines = append(lines, MutedStyle.Render("waiting for health data"))
		return CardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))
	}

	if r.HealthPercent != nil {
		h := *r.HealthPercent
		text := LevelStyle(h).Render(fmt.Sprintf("%.1f%%", h))
		lines = append(lines, renderKeyValue("Capacity", text, innerWidth))
	}
	if r.CycleCount != nil {
		lines = append(lines, renderKeyValue("Cycles", ValueStyle.Render(fmt.Sprintf("%d", *r.CycleCount)), innerWidth))
	}
	if r.Condition != nil {
		lines = append(lines, renderKeyValue("Condition", conditionStyle(*r.Condition).Render(*r.Condition), innerWidth))
	}
	if !snap.SlowAt.IsZero() {
		lines = append(lines, renderKeyValue("Checked", MutedStyle.Render(snap.SlowAt.Format("15:04:05")), innerWidth))
	}

	return CardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// conditionStyle colors the battery condition: anything other than
// Normal or Good deserves attention.
func conditionStyle(condition string) lipgloss.Style {
	switch strings.ToLower(condition) {
	case "normal", "good":
		return lipgloss.NewStyle().Foreground(ColorHealthy)
	default:
		return StaleStyle
	}
}

// renderMetricsCard renders the live electrical readings.
func (m Model) renderMetricsCard(snap *power.Snapshot) string {
	r := snap.Reading
	innerWidth := cardWidth - 4

	var lines []string
	lines = append(lines, CardTitleStyle.Render("POWER"))

	lines = append(lines, renderKeyValue("Draw", formatOptFloat(r.Watts, "%.2f W"), innerWidth))
	lines = append(lines, renderKeyValue("Current", formatOptAmps(r.AmperageMA), innerWidth))
	lines = append(lines, renderKeyValue("Voltage", formatOptFloat(r.VoltageV, "%.2f V"), innerWidth))
	lines = append(lines, renderKeyValue("Temp", formatOptFloat(r.TemperatureC, "%.1f °C"), innerWidth))

	return CardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// renderChargerCard renders the adapter details, or a placeholder when
// running on battery.
func (m Model) renderChargerCard(snap *power.Snapshot) string {
	r := snap.Reading
	innerWidth := cardWidth - 4

	var lines []string
	lines = append(lines, CardTitleStyle.Render("CHARGER"))

	if r.ChargerPresent == nil || !*r.ChargerPresent {
		lines = append(lines, MutedStyle.Render("no charger connected"))
		return CardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))
	}

	lines = append(lines, renderKeyValue("Rated", formatOptFloat(r.ChargerWatts, "%.0f W"), innerWidth))
	lines = append(lines, renderKeyValue("Voltage", formatOptFloat(r.ChargerVoltageV, "%.2f V"), innerWidth))
	lines = append(lines, renderKeyValue("Current", formatOptFloat(r.ChargerCurrentMA, "%.0f mA"), innerWidth))

	return CardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// renderGraphCard renders the wattage history sparkline.
func (m Model) renderGraphCard() string {
	width := graphWidth
	if m.width > 0 && m.width-6 < width {
		width = m.width - 6
	}
	if width < cardMinWidth {
		width = cardMinWidth
	}

	var lines []string
	lines = append(lines, CardTitleStyle.Render("POWER DRAW"))

	data := m.watts.Values(m.watts.Cap())
	if len(data) < 2 {
		lines = append(lines, MutedStyle.Render("collecting history..."))
	} else {
		lines = append(lines, RenderSparkline(data, width, ColorGraph))

		peak := data[0]
		for _, v := range data[1:] {
			if v > peak {
				peak = v
			}
		}
		scale := LabelStyle.Render(fmt.Sprintf("peak %.1f W over %d samples", peak, len(data)))
		lines = append(lines, scale)
	}

	if temps := m.temps.Values(m.temps.Cap()); len(temps) >= 2 {
		lines = append(lines, LabelStyle.Render("TEMP"))
		lines = append(lines, RenderSparkline(temps, width, ColorWarning))
	}

	return CardStyle.Width(width + 4).Render(strings.Join(lines, "\n"))
}

// renderFooter renders the keyboard help and the last poll latency.
func (m Model) renderFooter(snap *power.Snapshot) string {
	hints := []string{
		"p performance",
		"b balanced",
		"e eco",
		"q quit",
	}

	left := strings.Join(hints, " | ")
	right := ""
	if snap.Latency > 0 {
		right = fmt.Sprintf("  |  last poll %s", snap.Latency.Round(time.Millisecond))
	}

	return FooterStyle.Render(left + right)
}

// renderKeyValue renders a "Label   value" line with the value
// right-aligned to the card's inner width.
func renderKeyValue(label, value string, width int) string {
	l := LabelStyle.Render(label)
	padding := ""
	if gap := width - lipgloss.Width(l) - lipgloss.Width(value); gap > 0 {
		padding = strings.Repeat(" ", gap)
	}
	return l + padding + value
}

// formatMinutes renders a minute count as "2h 15m" or "45m".
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// formatOptFloat formats an optional float with the given verb, or a
// muted placeholder when the field is absent.
func formatOptFloat(v *float64, format string) string {
	if v == nil {
		return MutedStyle.Render("--")
	}
	return ValueStyle.Render(fmt.Sprintf(format, *v))
}

// formatOptAmps formats signed milliamps; negative means discharge.
func formatOptAmps(ma *int64) string {
	if ma == nil {
		return MutedStyle.Render("--")
	}
	return ValueStyle.Render(fmt.Sprintf("%d mA", *ma))
}
