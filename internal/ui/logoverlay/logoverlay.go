// Package logoverlay is an in-app viewer for recent debug log lines.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"qkart/internal/log"
	"qkart/internal/ui/overlay"
	"qkart/internal/ui/styles"
)

const (
	// Capacity is how many lines are kept; older lines fall off.
	Capacity = 500

	viewportMaxHeight = 20
	viewportMinHeight = 5
	boxMaxWidth       = 140
	boxMinWidth       = 40
)

// Model holds the captured lines and the overlay's view state.
type Model struct {
	visible  bool
	lines    []string
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden, empty overlay.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records a log line, evicting the oldest past Capacity.
func (m Model) Append(line string) Model {
	line = strings.TrimSuffix(line, "\n")
	if len(m.lines) >= Capacity {
		m.lines = append(m.lines[:0:0], m.lines[len(m.lines)-Capacity+1:]...)
	}
	m.lines = append(m.lines, line)
	if m.visible {
		m.refresh()
	}
	return m
}

// Len reports how many lines are held.
func (m Model) Len() int {
	return len(m.lines)
}

// Visible reports whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
	return m
}

// SetSize updates the screen dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.refresh()
	return m
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "c":
		m.lines = nil
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "esc", "ctrl+x":
		m.visible = false
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// Filtered returns the lines at or above the current level.
func (m Model) Filtered() []string {
	var out []string
	for _, line := range m.lines {
		if levelOf(line) >= m.minLevel {
			out = append(out, line)
		}
	}
	return out
}

// View renders the overlay box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", width))

	body := strings.Join([]string{
		styles.TitleStyle.PaddingLeft(1).Render("Logs"),
		divider,
		m.viewport.View(),
		divider,
		m.hints(),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Width(width).
		Render(body)
}

// Overlay draws the box centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Frame{Width: m.width, Height: m.height, Anchor: overlay.Center}, m.View(), bg)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	contentWidth := m.boxWidth() - 2
	m.viewport = viewport.New(contentWidth, height)
	m.viewport.SetContent(m.content(contentWidth))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	lines := m.Filtered()
	if len(lines) == 0 {
		return styles.MutedStyle.Italic(true).Render("No logs to display")
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width-3, "...")
		}
		out[i] = colorize(line)
	}
	return strings.Join(out, "\n")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) hints() string {
	muted := styles.MutedStyle
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)
	pick := func(level log.Level, label string) string {
		if m.minLevel == level {
			return active.Render(label)
		}
		return muted.Render(label)
	}
	return strings.Join([]string{
		muted.Render("[c] Clear"),
		pick(log.LevelDebug, "[d] Debug"),
		pick(log.LevelInfo, "[i] Info"),
		pick(log.LevelWarn, "[w] Warn"),
		pick(log.LevelError, "[e] Error"),
	}, "  ")
}

// levelOf reads the level tag written by log.Format. Untagged lines count
// as errors so they are never filtered out.
func levelOf(line string) log.Level {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(line, "["+l.String()+"]") {
			return l
		}
	}
	return log.LevelError
}

func colorize(line string) string {
	var color lipgloss.Color
	switch levelOf(line) {
	case log.LevelError:
		color = styles.ToastBorderErrorColor
	case log.LevelWarn:
		color = styles.TitleColor
	case log.LevelInfo:
		color = styles.ToastBorderInfoColor
	default:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(line)
}
