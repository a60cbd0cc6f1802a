package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Empty(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
	assert.Equal(t, "bg", m.Overlay("bg", 10, 1))
}

func TestPush_AssignsIncreasingIDs(t *testing.T) {
	m, first := New().Push("one", VariantSuccess)
	m, second := m.Push("two", VariantError)

	assert.Less(t, first, second)
	assert.Equal(t, 2, m.Len())
}

func TestPush_EvictsOldest(t *testing.T) {
	m := New()
	for _, text := range []string{"a1", "b2", "c3", "d4"} {
		m, _ = m.Push(text, VariantInfo)
	}

	require.Equal(t, MaxStack, m.Len())
	view := ansi.Strip(m.View())
	assert.NotContains(t, view, "a1")
	assert.Contains(t, view, "d4")
}

func TestDismiss(t *testing.T) {
	m, first := New().Push("first", VariantSuccess)
	m, _ = m.Push("second", VariantError)

	m = m.Dismiss(first)
	view := ansi.Strip(m.View())
	assert.NotContains(t, view, "first")
	assert.Contains(t, view, "second")

	m = m.Dismiss(999)
	assert.Equal(t, 1, m.Len())
}

func TestView_NewestOnTop(t *testing.T) {
	m, _ := New().Push("older", VariantSuccess)
	m, _ = m.Push("newer", VariantSuccess)

	view := ansi.Strip(m.View())
	assert.Less(t, strings.Index(view, "newer"), strings.Index(view, "older"))
}

func TestView_Icons(t *testing.T) {
	tests := []struct {
		variant Variant
		want    string
	}{
		{VariantSuccess, "✓ msg"},
		{VariantError, "✗ msg"},
		{VariantInfo, "i msg"},
	}
	for _, tt := range tests {
		m, _ := New().Push("msg", tt.variant)
		assert.Contains(t, ansi.Strip(m.View()), tt.want)
	}
}

func TestView_WrapsLongText(t *testing.T) {
	long := strings.Repeat("word ", 30)
	m, _ := New().Push(long, VariantError)

	for _, line := range strings.Split(ansi.Strip(m.View()), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), maxTextWidth+6)
	}
}

func TestOverlay_TopRight(t *testing.T) {
	m, _ := New().Push("hi", VariantSuccess)
	bg := strings.Repeat(strings.Repeat(".", 30)+"\n", 9) + strings.Repeat(".", 30)

	lines := strings.Split(ansi.Strip(m.Overlay(bg, 30, 10)), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, strings.Repeat(".", 30), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "╮."), "got %q", lines[1])
}

func TestShow_SchedulesDismiss(t *testing.T) {
	m, cmd := New().Show("bye", VariantInfo, time.Millisecond)
	require.NotNil(t, cmd)

	msg := cmd()
	dismiss, ok := msg.(DismissMsg)
	require.True(t, ok)
	assert.Equal(t, 0, m.Dismiss(dismiss.ID).Len())
}
