package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vburojevic/xsim/internal/domain"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Message styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Info    lipgloss.Style
	Hint    lipgloss.Style

	// Device state styles
	Booted   lipgloss.Style
	Shutdown lipgloss.Style
	Busy     lipgloss.Style

	// Prompt styles
	Title    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}{
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),             // Cyan
	Hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),            // Gray

	Booted:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	Shutdown: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	Busy:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

	Title:    lipgloss.NewStyle().Background(lipgloss.Color("39")).Foreground(lipgloss.Color("0")).Padding(0, 1),
	Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// DisableColor strips ANSI styling from everything rendered afterwards.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// StateStyle returns the style used for a device state
func StateStyle(state domain.DeviceState) lipgloss.Style {
	switch state {
	case domain.DeviceStateBooted:
		return Styles.Booted
	case domain.DeviceStateShutdown:
		return Styles.Shutdown
	default:
		return Styles.Busy
	}
}

// AvailabilityText renders the availability column
func AvailabilityText(available bool) string {
	if available {
		return "yes"
	}
	return Styles.Danger.Render("no")
}
