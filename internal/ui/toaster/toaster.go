// Package toaster renders transient notification toasts stacked in the top
// right corner of the screen.
package toaster

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"qkart/internal/ui/overlay"
	"qkart/internal/ui/styles"
)

// MaxStack is how many toasts are shown at once. Older ones are evicted.
const MaxStack = 3

// maxTextWidth is the wrap width for toast text.
const maxTextWidth = 44

// Variant selects the look of a toast.
type Variant int

const (
	VariantSuccess Variant = iota
	VariantError
	VariantInfo
)

type toast struct {
	id      int
	text    string
	variant Variant
}

// Model holds the visible toasts.
type Model struct {
	toasts []toast
	nextID int
}

// New creates an empty toaster.
func New() Model {
	return Model{}
}

// ShowMsg asks the owning model to show a toast.
type ShowMsg struct {
	Text    string
	Variant Variant
}

// DismissMsg removes the toast with the given id.
type DismissMsg struct {
	ID int
}

// Push adds a toast and returns the updated model with the toast's id.
func (m Model) Push(text string, v Variant) (Model, int) {
	m.nextID++
	id := m.nextID
	stack := make([]toast, 0, MaxStack)
	stack = append(stack, m.toasts...)
	stack = append(stack, toast{id: id, text: text, variant: v})
	if len(stack) > MaxStack {
		stack = stack[len(stack)-MaxStack:]
	}
	m.toasts = stack
	return m, id
}

// Show pushes a toast and schedules its dismissal after d.
func (m Model) Show(text string, v Variant, d time.Duration) (Model, tea.Cmd) {
	m, id := m.Push(text, v)
	return m, ScheduleDismiss(id, d)
}

// Dismiss removes a toast. Unknown ids are ignored.
func (m Model) Dismiss(id int) Model {
	kept := make([]toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.id != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
	return m
}

// Len reports how many toasts are visible.
func (m Model) Len() int {
	return len(m.toasts)
}

// Visible reports whether any toast is showing.
func (m Model) Visible() bool {
	return len(m.toasts) > 0
}

// View renders the stack, newest on top.
func (m Model) View() string {
	if len(m.toasts) == 0 {
		return ""
	}
	boxes := make([]string, 0, len(m.toasts))
	for i := len(m.toasts) - 1; i >= 0; i-- {
		boxes = append(boxes, render(m.toasts[i]))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

// Overlay draws the stack over bg.
func (m Model) Overlay(bg string, width, height int) string {
	if len(m.toasts) == 0 {
		return bg
	}
	return overlay.Place(overlay.Frame{
		Width:  width,
		Height: height,
		Anchor: overlay.TopRight,
		Margin: 1,
	}, m.View(), bg)
}

func render(t toast) string {
	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var icon string
	switch t.variant {
	case VariantError:
		box = box.BorderForeground(styles.ToastBorderErrorColor)
		icon = "✗ "
	case VariantInfo:
		box = box.BorderForeground(styles.ToastBorderInfoColor)
		icon = "i "
	default:
		box = box.BorderForeground(styles.ToastBorderSuccessColor)
		icon = "✓ "
	}

	text := strings.TrimSpace(wordwrap.String(t.text, maxTextWidth))
	return box.Render(icon + text)
}

// ScheduleDismiss returns a command that dismisses toast id after d.
func ScheduleDismiss(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{ID: id}
	})
}
