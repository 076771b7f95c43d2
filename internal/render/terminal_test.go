package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nowwaveradio/datepicker/internal/picker"
)

func newPicker(t *testing.T, opts picker.Options) (*picker.Controller, *Terminal, *picker.Bus, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	term := NewTerminal(&out, nil)
	bus := picker.NewBus()
	opts.Now = func() time.Time { return time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC) }
	return picker.New(term, bus, opts), term, bus, &out
}

func TestTerminalDrawsPopup(t *testing.T) {
	_, term, bus, out := newPicker(t, picker.Options{Triggers: []picker.TriggerID{"due"}})
	term.SetTriggerValue("due", "2024-12-25")
	out.Reset()

	bus.Focus("due")

	text := out.String()
	assert.Contains(t, text, "Dec / 2024")
	for _, w := range []string{"Sun", "Mon", "Sat"} {
		assert.Contains(t, text, w)
	}
	assert.Contains(t, text, "[25]")
	assert.Equal(t, 1, strings.Count(text, "["), "exactly one highlighted day")

	p, ok := term.Open()
	require.True(t, ok)
	assert.Equal(t, picker.TriggerID("due"), p.Anchor)
	assert.Len(t, p.Cells, 42)
}

func TestTerminalSelectWritesValue(t *testing.T) {
	c, term, bus, out := newPicker(t, picker.Options{
		DateFormat: "DD/MM/YYYY",
		Triggers:   []picker.TriggerID{"due"},
	})
	term.SetTriggerValue("due", "25/12/2024")
	bus.Focus("due")
	out.Reset()

	c.SelectCell(30)

	assert.Equal(t, "31/12/2024", term.TriggerValue("due"))
	assert.Contains(t, out.String(), "due = 31/12/2024")
	assert.Contains(t, out.String(), "popup closed")
	_, ok := term.Open()
	assert.False(t, ok)

	last, ok := term.LastPopup()
	require.True(t, ok)
	assert.Equal(t, "Dec / 2024", last.Header.Title)
}

func TestTerminalChineseHeader(t *testing.T) {
	_, _, bus, out := newPicker(t, picker.Options{Language: "zh", Triggers: []picker.TriggerID{"a"}})

	bus.Focus("a")

	assert.Contains(t, out.String(), "10月 / 2026")
	assert.Contains(t, out.String(), "日")
}

func TestTerminalStaleHandleIgnored(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, nil)

	first := term.RenderPopup("a", picker.HeaderModel{Title: "one"}, nil)
	second := term.RenderPopup("a", picker.HeaderModel{Title: "two"}, nil)
	out.Reset()

	term.RemovePopup(first)
	p, ok := term.Open()
	require.True(t, ok)
	assert.Equal(t, second, p.Handle)
	assert.Empty(t, out.String())

	term.RemovePopup(second)
	_, ok = term.Open()
	assert.False(t, ok)
}

func TestTerminalValues(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, nil)
	term.SetTriggerValue("end", "2024-03-05")
	term.SetTriggerValue("start", "2024-01-10")

	assert.Equal(t, []string{"end = 2024-03-05", "start = 2024-01-10"}, term.Values())
	assert.Equal(t, "", term.TriggerValue("missing"))
}

func TestDefaultStylesColours(t *testing.T) {
	styles := DefaultStyles(lipgloss.NewRenderer(&bytes.Buffer{}))

	assert.Equal(t, lipgloss.Color("#2ca4e9"), styles.Highlighted.GetBackground())
	assert.Equal(t, lipgloss.Color("#ffffff"), styles.Highlighted.GetForeground())
	assert.Equal(t, lipgloss.Color("#aaaaaa"), styles.Dimmed.GetForeground())
	assert.Equal(t, lipgloss.Color("#2ca4e9"), styles.Weekday.GetForeground())
	assert.Equal(t, lipgloss.NoColor{}, styles.Day.GetBackground())
}
