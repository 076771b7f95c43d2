package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nowwaveradio/datepicker/internal/calendar"
	"github.com/nowwaveradio/datepicker/internal/locale"
)

type renderCall struct {
	handle PopupHandle
	anchor TriggerID
	header HeaderModel
	cells  []CellView
}

// fakeRenderer records every call and keeps trigger values in a map
type fakeRenderer struct {
	values  map[TriggerID]string
	next    PopupHandle
	open    map[PopupHandle]renderCall
	renders []renderCall
	removed []PopupHandle
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		values: make(map[TriggerID]string),
		open:   make(map[PopupHandle]renderCall),
	}
}

func (r *fakeRenderer) RenderPopup(anchor TriggerID, header HeaderModel, cells []CellView) PopupHandle {
	r.next++
	call := renderCall{handle: r.next, anchor: anchor, header: header, cells: cells}
	r.open[r.next] = call
	r.renders = append(r.renders, call)
	return r.next
}

func (r *fakeRenderer) RemovePopup(h PopupHandle) {
	delete(r.open, h)
	r.removed = append(r.removed, h)
}

func (r *fakeRenderer) SetTriggerValue(id TriggerID, text string) { r.values[id] = text }
func (r *fakeRenderer) TriggerValue(id TriggerID) string          { return r.values[id] }

func (r *fakeRenderer) last() renderCall {
	return r.renders[len(r.renders)-1]
}

func fixedClock() time.Time {
	return time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)
}

func newTestController(t *testing.T, opts Options) (*Controller, *fakeRenderer, *Bus) {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedClock
	}
	r := newFakeRenderer()
	bus := NewBus()
	return New(r, bus, opts), r, bus
}

func TestEndToEndEuroFormat(t *testing.T) {
	c, r, bus := newTestController(t, Options{
		DateFormat: "DD/MM/YYYY",
		Triggers:   []TriggerID{"due"},
	})
	r.values["due"] = "25/12/2024"

	bus.Focus("due")

	state := c.State()
	require.True(t, state.IsOpen())
	assert.Equal(t, calendar.Month{Year: 2024, Month: 11}, state.Displayed())
	selected, ok := state.SelectedDate()
	require.True(t, ok)
	assert.Equal(t, calendar.Date{Year: 2024, Month: 11, Day: 25}, selected)

	require.Len(t, r.renders, 1)
	call := r.last()
	assert.Equal(t, TriggerID("due"), call.anchor)
	assert.Equal(t, "Dec / 2024", call.header.Title)
	require.Len(t, call.cells, 42)

	grid, ok := c.Grid()
	require.True(t, ok)
	idx := cellIndex(grid, calendar.Date{Year: 2024, Month: 11, Day: 31})
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "31/12/2024", call.cells[idx].Text)
	assert.True(t, call.cells[cellIndex(grid, selected)].Attributes.Highlighted)

	c.SelectCell(idx)

	assert.Equal(t, "31/12/2024", r.values["due"])
	assert.False(t, c.State().IsOpen())
	assert.Empty(t, r.open, "popup should be removed")
	selected, _ = c.State().SelectedDate()
	assert.Equal(t, calendar.Date{Year: 2024, Month: 11, Day: 31}, selected)
}

func TestFocusEmptyTriggerShowsCurrentMonth(t *testing.T) {
	c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"a"}})

	bus.Focus("a")

	assert.Equal(t, calendar.Month{Year: 2026, Month: 9}, c.State().Displayed())
	_, ok := c.State().SelectedDate()
	assert.False(t, ok)
	assert.Equal(t, "Oct / 2026", r.last().header.Title)
	for _, cell := range r.last().cells {
		assert.False(t, cell.Attributes.Highlighted)
	}
}

func TestFocusMismatchedTextDegradesToToday(t *testing.T) {
	c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"a"}})
	r.values["a"] = "tomorrow"

	bus.Focus("a")

	assert.True(t, c.State().IsOpen())
	assert.Equal(t, calendar.Month{Year: 2026, Month: 9}, c.State().Displayed())
	_, ok := c.State().SelectedDate()
	assert.False(t, ok)
	assert.Equal(t, "tomorrow", r.values["a"], "trigger text is left alone")
}

func TestStrictRolloverDegradesToToday(t *testing.T) {
	c, r, bus := newTestController(t, Options{Rollover: "strict", Triggers: []TriggerID{"a"}})
	r.values["a"] = "2024-02-30"

	bus.Focus("a")

	_, ok := c.State().SelectedDate()
	assert.False(t, ok)
	assert.Equal(t, calendar.Month{Year: 2026, Month: 9}, c.State().Displayed())
}

func TestDuplicateRegistrationSubscribesOnce(t *testing.T) {
	c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"a"}})

	assert.Equal(t, 0, c.AddTriggers("a"))
	assert.Equal(t, 1, c.AddTriggers("a", "b", "", "b"))
	assert.Equal(t, 1, bus.FocusSubscribers("a"))
	assert.Equal(t, 1, bus.FocusSubscribers("b"))
	assert.Equal(t, []TriggerID{"a", "b"}, c.Triggers())

	bus.Focus("a")
	assert.Len(t, r.renders, 1, "a single focus must open a single popup")
}

func TestUnregisteredTriggerIsIgnored(t *testing.T) {
	c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"a"}})

	bus.Focus("other")

	assert.False(t, c.State().IsOpen())
	assert.Empty(t, r.renders)
}

func TestOutsideClick(t *testing.T) {
	tests := []struct {
		name      string
		event     PointerEvent
		wantClose bool
	}{
		{name: "empty document area", event: PointerEvent{}, wantClose: true},
		{name: "unregistered element", event: PointerEvent{Target: "stranger"}, wantClose: true},
		{name: "inside popup", event: PointerEvent{InPopup: true}, wantClose: false},
		{name: "active trigger", event: PointerEvent{Target: "a"}, wantClose: false},
		{name: "other registered trigger", event: PointerEvent{Target: "b"}, wantClose: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"a", "b"}})
			r.values["a"] = "2024-12-25"
			bus.Focus("a")

			bus.Pointer(tt.event)

			assert.Equal(t, !tt.wantClose, c.State().IsOpen())
			if tt.wantClose {
				assert.Empty(t, r.open)
				selected, ok := c.State().SelectedDate()
				require.True(t, ok, "close keeps the selection")
				assert.Equal(t, calendar.Date{Year: 2024, Month: 11, Day: 25}, selected)
			} else {
				assert.Len(t, r.open, 1)
			}
		})
	}
}

func TestOutsideClickWhileClosed(t *testing.T) {
	c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"a"}})

	bus.Pointer(PointerEvent{})

	assert.False(t, c.State().IsOpen())
	assert.Empty(t, r.removed)
}

func TestChangeMonthReRenders(t *testing.T) {
	c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"a"}})
	r.values["a"] = "2024-12-25"
	bus.Focus("a")
	first := r.last().handle

	c.ChangeMonth(1)

	assert.Equal(t, calendar.Month{Year: 2025, Month: 0}, c.State().Displayed())
	require.Len(t, r.renders, 2)
	assert.Contains(t, r.removed, first)
	assert.Len(t, r.open, 1, "re-render replaces the popup")
	assert.Equal(t, "Jan / 2025", r.last().header.Title)
	for _, cell := range r.last().cells {
		assert.False(t, cell.Attributes.Highlighted, "selection is in December, not shown in January")
	}

	c.ChangeMonth(-1)
	assert.Equal(t, calendar.Month{Year: 2024, Month: 11}, c.State().Displayed())
	highlighted := 0
	for _, cell := range r.last().cells {
		if cell.Attributes.Highlighted {
			highlighted++
		}
	}
	assert.Equal(t, 1, highlighted)
}

func TestOperationsWhileClosedAreNoOps(t *testing.T) {
	c, r, _ := newTestController(t, Options{Triggers: []TriggerID{"a"}})
	before := c.State()

	c.ChangeMonth(1)
	c.SelectDate(calendar.Date{Year: 2024, Month: 0, Day: 1})
	c.SelectCell(3)
	c.Close()

	assert.Equal(t, before, c.State())
	assert.Empty(t, r.renders)
	assert.Empty(t, r.values)
	_, ok := c.Grid()
	assert.False(t, ok)
}

func TestFocusAnotherTriggerReplacesPopup(t *testing.T) {
	c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"start", "end"}})
	r.values["start"] = "2024-01-10"
	r.values["end"] = "2024-03-05"

	bus.Focus("start")
	bus.Focus("end")

	assert.Len(t, r.open, 1)
	assert.Equal(t, TriggerID("end"), c.State().Active())
	assert.Equal(t, calendar.Month{Year: 2024, Month: 2}, c.State().Displayed())

	c.SelectDate(calendar.Date{Year: 2024, Month: 2, Day: 9})
	assert.Equal(t, "2024-01-10", r.values["start"])
	assert.Equal(t, "2024-03-09", r.values["end"])
}

func TestSelectThenClose(t *testing.T) {
	c, _, bus := newTestController(t, Options{Triggers: []TriggerID{"a"}})
	bus.Focus("a")

	c.SelectCell(20)
	c.Close()

	assert.False(t, c.State().IsOpen())
	_, ok := c.State().SelectedDate()
	assert.True(t, ok)
}

func TestSelectCellOutOfRange(t *testing.T) {
	c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"a"}})
	bus.Focus("a")

	c.SelectCell(42)
	c.SelectCell(-1)

	assert.True(t, c.State().IsOpen())
	assert.Empty(t, r.values)
}

func TestDispose(t *testing.T) {
	c, r, bus := newTestController(t, Options{Triggers: []TriggerID{"a", "b"}})
	require.Equal(t, 1, bus.PointerSubscribers())
	bus.Focus("a")

	c.Dispose()
	c.Dispose()

	assert.Equal(t, 0, bus.PointerSubscribers())
	assert.Equal(t, 0, bus.FocusSubscribers("a"))
	assert.Equal(t, 0, bus.FocusSubscribers("b"))
	assert.Empty(t, r.open)
	assert.Empty(t, c.Triggers())
	assert.Equal(t, 0, c.AddTriggers("c"))

	renders := len(r.renders)
	bus.Focus("a")
	assert.Len(t, r.renders, renders)
}

func TestChineseLabels(t *testing.T) {
	_, r, bus := newTestController(t, Options{Language: "zh-CN", Triggers: []TriggerID{"a"}})
	r.values["a"] = "2024-12-25"

	bus.Focus("a")

	header := r.last().header
	assert.Equal(t, "12月 / 2024", header.Title)
	assert.Equal(t, "日", header.Weekdays[0])
	assert.Equal(t, locale.Chinese, header.Language)
	assert.Equal(t, "2024-12-25", r.last().cells[24].Text, "language never changes formatting")
}

func TestUnknownOptionsFallBack(t *testing.T) {
	c, r, bus := newTestController(t, Options{
		DateFormat:     "MM/DD/YYYY",
		Rollover:       "sometimes",
		HeaderTemplate: "{{.Nope}}",
		Triggers:       []TriggerID{"a"},
	})
	r.values["a"] = "2024-12-25"

	bus.Focus("a")

	assert.Equal(t, "2024-12-25", c.Codec().Format(calendar.Date{Year: 2024, Month: 11, Day: 25}))
	assert.Equal(t, "Dec / 2024", r.last().header.Title)
	assert.Equal(t, locale.English, c.Language())
}

func cellIndex(g calendar.Grid, d calendar.Date) int {
	for i, c := range g {
		if c.Date == d {
			return i
		}
	}
	return -1
}
