package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparklineBlocks are block characters for 8-level vertical resolution
// (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// flowFrames animate power flowing toward (charging) or away from
// (discharging) the battery.
var (
	chargeFlowFrames = []string{
		"⚡ ━━▶━━ ",
		"━⚡━━▶━━",
		"━━⚡━▶━━",
		"━━━⚡▶━━",
		"━━━━⚡━━",
	}
	drainFlowFrames = []string{
		"━━◀━━ ⚡",
		"━━◀━━⚡━",
		"━━◀━⚡━━",
		"━━◀⚡━━━",
		"━━⚡━━━━",
	}
)

// RenderBatteryBar draws a bracketed fill bar colored by charge level.
func RenderBatteryBar(width, percent int) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := percent * width / 100
	fill := strings.Repeat("█", filled)
	empty := strings.Repeat("░", width-filled)

	barStyle := LevelStyle(float64(percent)).Bold(true)
	return MutedStyle.Render("[") +
		barStyle.Render(fill) +
		MutedStyle.Render(empty) +
		MutedStyle.Render("]")
}

// RenderSparkline renders a single-row sparkline scaled to the peak value
// in the data. Wattage has no natural 0-100 ceiling, so the graph
// auto-scales; an all-zero series renders as a flat baseline.
func RenderSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range data {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	resampled := resample(data, width)

	var b strings.Builder
	for _, v := range resampled {
		idx := int(v / maxVal * float64(len(sparklineBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparklineBlocks) {
			idx = len(sparklineBlocks) - 1
		}
		b.WriteRune(sparklineBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// RenderFlow returns the animated power-flow indicator for the frame.
func RenderFlow(charging bool, frame int) string {
	if charging {
		return lipgloss.NewStyle().Foreground(ColorHealthy).Bold(true).
			Render(chargeFlowFrames[frame%len(chargeFlowFrames)])
	}
	return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).
		Render(drainFlowFrames[frame%len(drainFlowFrames)])
}

// resample compresses or stretches data to the target size. When
// downsampling it keeps per-bucket maxima so spikes stay visible; when
// upsampling it interpolates linearly.
func resample(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)
		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}
	return result
}
