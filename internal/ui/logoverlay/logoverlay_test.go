package logoverlay

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qkart/internal/log"
)

func line(level log.Level, msg string) string {
	return log.Format(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), level, log.CatUI, msg)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_Hidden(t *testing.T) {
	m := New()
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
	assert.Equal(t, "bg", m.Overlay("bg"))
}

func TestAppend_EvictsOldest(t *testing.T) {
	m := New()
	for i := range Capacity + 10 {
		m = m.Append(line(log.LevelInfo, fmt.Sprintf("entry-%d", i)))
	}

	require.Equal(t, Capacity, m.Len())
	lines := m.Filtered()
	assert.Contains(t, lines[0], "entry-10")
	assert.Contains(t, lines[len(lines)-1], fmt.Sprintf("entry-%d", Capacity+9))
}

func TestUpdate_LevelFilter(t *testing.T) {
	m := New().SetSize(120, 40).Toggle()
	m = m.Append(line(log.LevelDebug, "dbg"))
	m = m.Append(line(log.LevelInfo, "inf"))
	m = m.Append(line(log.LevelWarn, "wrn"))
	m = m.Append(line(log.LevelError, "err"))
	m = m.Append("untagged")

	m, _ = m.Update(key("w"))
	got := m.Filtered()
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "wrn")

	m, _ = m.Update(key("e"))
	assert.Len(t, m.Filtered(), 2)

	m, _ = m.Update(key("d"))
	assert.Len(t, m.Filtered(), 5)
}

func TestUpdate_ClearAndClose(t *testing.T) {
	m := New().SetSize(120, 40).Toggle().Append(line(log.LevelInfo, "hello"))
	assert.Contains(t, ansi.Strip(m.View()), "hello")

	m, _ = m.Update(key("c"))
	assert.Zero(t, m.Len())
	assert.Contains(t, ansi.Strip(m.View()), "No logs to display")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Visible())
}

func TestUpdate_IgnoredWhenHidden(t *testing.T) {
	m := New().Append(line(log.LevelInfo, "kept"))
	m, cmd := m.Update(key("c"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Len())
}

func TestView_TruncatesLongLines(t *testing.T) {
	m := New().SetSize(50, 20).Toggle().Append(line(log.LevelInfo, strings.Repeat("x", 200)))
	for _, l := range strings.Split(ansi.Strip(m.View()), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(l), 48)
	}
}
