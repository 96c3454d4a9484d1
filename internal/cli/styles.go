// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/adjustly/adjustly/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4ECDC4") // Teal
	// SuccessColor indicates a claimable price drop.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates caution states like possible drops or a
	// closing claim window.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors and expired items.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes such as the refund pass.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	TagIcon     = "🏷️"
	BellIcon    = "🔔"
)

// statusStyles maps each derived item status to its pill style.
var statusStyles = map[model.ItemStatus]lipgloss.Style{
	model.StatusTracking: InfoStyle,
	model.StatusPossible: WarningStyle,
	model.StatusReady:    SuccessStyle,
	model.StatusExpired:  SubtleStyle,
}

// StatusPill renders an item status as a colored label.
func StatusPill(status model.ItemStatus) string {
	style, ok := statusStyles[status]
	if !ok {
		style = SubtleStyle
	}
	return style.Render(string(status))
}

// DaysLeft renders a countdown, coloring it as the window closes.
func DaysLeft(days int) string {
	switch {
	case days <= 0:
		return SubtleStyle.Render("window closed")
	case days <= 5:
		return ErrorStyle.Render(fmt.Sprintf("%dd left", days))
	case days <= 10:
		return WarningStyle.Render(fmt.Sprintf("%dd left", days))
	default:
		return fmt.Sprintf("%dd left", days)
	}
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(TagIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
