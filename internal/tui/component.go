package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Component is the interface for all TUI components.
type Component interface {
	// Init initializes the component.
	Init() tea.Cmd

	// Update handles messages and returns the updated component.
	Update(msg tea.Msg) (Component, tea.Cmd)

	// View renders the component.
	View() string

	// Title returns the component title.
	Title() string

	// Focused returns true if the component is focused.
	Focused() bool

	// Focus sets the component as focused.
	Focus()

	// Blur removes focus from the component.
	Blur()

	// SetSize sets the component dimensions.
	SetSize(width, height int)
}

// FocusMsg is sent when a component should gain focus.
type FocusMsg struct{}

// BlurMsg is sent when a component should lose focus.
type BlurMsg struct{}

// Palette
var (
	ColorAccent  = lipgloss.Color("62")
	ColorBright  = lipgloss.Color("229")
	ColorMuted   = lipgloss.Color("243")
	ColorDim     = lipgloss.Color("238")
	ColorText    = lipgloss.Color("252")
	ColorBorder  = lipgloss.Color("244")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("160")
	ColorOK      = lipgloss.Color("34")
)

// RenderTitle renders a title bar.
func RenderTitle(title string, width int, focused bool) string {
	style := lipgloss.NewStyle().
		Width(width).
		Bold(true)

	if focused {
		style = style.Foreground(ColorBright).Background(ColorAccent)
	} else {
		style = style.Foreground(ColorText).Background(ColorDim)
	}

	return style.Render(title)
}

// RenderBorder renders content inside a rounded border.
func RenderBorder(content string, focused bool) string {
	style := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder())

	if focused {
		style = style.BorderForeground(ColorAccent)
	} else {
		style = style.BorderForeground(ColorBorder)
	}

	return style.Render(content)
}

// Truncate truncates a string to fit within a width.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// PadRight pads a string with spaces to a given display width.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
