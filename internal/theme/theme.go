package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Terminal backgrounds the row tint is blended over.
const (
	darkBase  = "#1A1B26"
	lightBase = "#FFFFFF"
)

// TintAmount is the share of the task color in a row background.
const TintAmount = 0.1

// Display modes accepted by Apply.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Apply forces the dark or light palette, or leaves detection to lipgloss
// for ModeAuto and "".
func Apply(mode string) error {
	switch mode {
	case "", ModeAuto:
	case ModeDark:
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		lipgloss.SetHasDarkBackground(false)
	default:
		return fmt.Errorf("unknown theme %q (want auto, dark or light)", mode)
	}
	return nil
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorStatusStyle replaces StatusBarStyle while an error is shown.
var ErrorStatusStyle = StatusBarStyle.
	Bold(true).
	Background(ColorRed)

// DetailPanelStyle wraps the task modal.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(1)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true)

// DimmedStyle marks completed tasks.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// LabelStyle is used for field names in the modal.
var LabelStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGray).
	Width(10)

// StarStyle colors filled priority stars.
var StarStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// EmptyStarStyle colors unfilled priority stars.
var EmptyStarStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

// DeadlineStyle is used for countdowns that are still in the future.
var DeadlineStyle = lipgloss.NewStyle().
	Foreground(ColorOrange)

// OverdueStyle is used for countdowns that have run out.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// FilterStyle renders the active category filter in the header.
var FilterStyle = lipgloss.NewStyle().
	Foreground(ColorGreen).
	Bold(true)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// Tint returns the row background for a task color: the color blended at
// TintAmount over the terminal background. Invalid colors blend white.
func Tint(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Dark:  blend(darkBase, hex, TintAmount),
		Light: blend(lightBase, hex, TintAmount),
	}
}

// Accent returns a task color for borders and swatches.
func Accent(hex string) lipgloss.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color(lightBase)
	}
	return lipgloss.Color(c.Hex())
}

func blend(base, hex string, t float64) string {
	b, _ := colorful.Hex(base)
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(lightBase)
	}
	return b.BlendRgb(c, t).Clamped().Hex()
}

// RowStyle returns the base style of a task row: tinted background and a
// thick left border in the task color.
func RowStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(Tint(hex)).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(Accent(hex))
}

// CountdownStyle picks the deadline style for days left.
func CountdownStyle(daysLeft int) lipgloss.Style {
	if daysLeft < 0 {
		return OverdueStyle
	}
	return DeadlineStyle
}
