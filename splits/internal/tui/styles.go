package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/subsplits/subsplits/splits/internal/compute"
)

const (
	nameWidth   = 20
	columnWidth = 10
)

var (
	oddRowStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#1A1A1A"))
	activeRowStyle = lipgloss.NewStyle().Bold(true)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6ADC8")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

func cellStyle(c compute.Cell) lipgloss.Style {
	hex := termColor(c.Color.Hex)
	if hex == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// termColor drops the alpha channel of #RRGGBBAA colors.
func termColor(hex string) string {
	if len(hex) == 9 {
		return hex[:7]
	}
	return hex
}
