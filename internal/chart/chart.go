// Package chart provides sparkline rendering of a sensor's reading
// history, color-coded by where each reading sits in the sensor's range.
package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// LevelColor returns the color for a reading normalised to [0, 1] within
// its sensor's range.
func LevelColor(norm float64) lipgloss.Color {
	switch {
	case norm >= 0.9:
		return lipgloss.Color("196") // red
	case norm >= 0.7:
		return lipgloss.Color("208") // orange
	case norm >= 0.5:
		return lipgloss.Color("220") // yellow
	default:
		return lipgloss.Color("78") // soft green
	}
}

// Range returns the lowest and highest of values, or 0, 0 if empty.
func Range(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// RenderSparkline renders the last width values as color-coded blocks,
// scaled between rangeMin and rangeMax. Short histories are left-padded.
func RenderSparkline(values []float64, width int, rangeMin, rangeMax float64) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	if len(values) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(values) > width {
		values = values[len(values)-width:]
	}

	padLen := width - len(values)
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	for i := 0; i < padLen; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	for _, v := range values {
		norm := (v - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))

		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}
		style := lipgloss.NewStyle().Foreground(LevelColor(norm))
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}

	return sb.String()
}

// RenderScale renders a bar showing where current sits between rangeMin
// and rangeMax.
func RenderScale(current, rangeMin, rangeMax float64, width int) string {
	if width <= 0 {
		return ""
	}

	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}
	norm := math.Max(0, math.Min(1, (current-rangeMin)/span))
	curPos := int(float64(width-1) * norm)

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i == curPos {
			style := lipgloss.NewStyle().Foreground(LevelColor(norm)).Bold(true)
			sb.WriteString(style.Render("◆"))
			continue
		}
		sb.WriteString(dot.Render("·"))
	}
	return sb.String()
}
