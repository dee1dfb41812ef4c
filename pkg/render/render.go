// Package render formats harmonic level tables for humans
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/k5000wave/pkg/harmonic"
)

// List renders levels as a comma separated list
func List(levels harmonic.Levels) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = strconv.Itoa(int(l))
	}
	return strings.Join(parts, ", ")
}

// BarLength maps a level to a star count: level/10 steps of 6 characters,
// so a full level fills 72 columns.
func BarLength(level uint8) int {
	return (int(level) / 10) * 6
}

// Chart renders one line per harmonic with a bar proportional to its level
func Chart(levels harmonic.Levels) string {
	var s strings.Builder
	for i, l := range levels {
		fmt.Fprintf(&s, "%2d: %s\n", i+1, strings.Repeat("*", BarLength(l)))
	}
	return s.String()
}

var (
	lowColor  = lipgloss.Color("#39FF14")
	midColor  = lipgloss.Color("#FFFF00")
	highColor = lipgloss.Color("#FF5F00")
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// StyledChart renders a coloured bar chart scaled to width columns
func StyledChart(levels harmonic.Levels, width int) string {
	if width < 1 {
		width = 1
	}
	var s strings.Builder
	for i, l := range levels {
		n := int(l) * width / harmonic.MaxLevel
		color := lowColor
		switch {
		case l >= 110:
			color = highColor
		case l >= 80:
			color = midColor
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n))
		s.WriteString(dimStyle.Render(fmt.Sprintf("%2d ", i+1)))
		s.WriteString(bar)
		s.WriteString(dimStyle.Render(fmt.Sprintf(" %d", l)))
		s.WriteString("\n")
	}
	return s.String()
}
