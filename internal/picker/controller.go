// Package picker drives a date picker shared by any number of text-input
// triggers: it parses the focused trigger's text, tracks the displayed month
// and selection, hands month grids to a Renderer and writes the picked date
// back into the trigger.
//
// A Controller is single-threaded. Every method is expected to run inside a
// host event callback and completes synchronously.
package picker

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/nowwaveradio/datepicker/internal/calendar"
	"github.com/nowwaveradio/datepicker/internal/dateformat"
	"github.com/nowwaveradio/datepicker/internal/errorutil"
	"github.com/nowwaveradio/datepicker/internal/locale"
	"github.com/nowwaveradio/datepicker/internal/template"
)

// Options configures a Controller. Zero values select the defaults: English
// labels, YYYY-MM-DD, permissive rollover and the built-in header template.
type Options struct {
	Language       string
	DateFormat     string
	Rollover       string
	HeaderTemplate string
	Triggers       []TriggerID
	Logger         *slog.Logger
	Now            func() time.Time
}

// Controller binds one picker State to a set of triggers.
type Controller struct {
	renderer Renderer
	events   EventSource
	codec    *dateformat.Codec
	lang     locale.Language
	header   *template.HeaderFormatter
	logger   *slog.Logger
	now      func() time.Time

	state    State
	grid     calendar.Grid
	popup    PopupHandle
	hasPopup bool

	triggers map[TriggerID]Subscription
	pointer  Subscription
	disposed bool
}

// New builds a controller, subscribes to outside clicks and registers
// opts.Triggers. Unrecognised option values fall back to their defaults
// with a warning.
func New(renderer Renderer, events EventSource, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	format, ok := dateformat.ParseFormat(opts.DateFormat)
	if !ok && opts.DateFormat != "" {
		logger.Warn("Unknown date format, using default",
			slog.String("date_format", opts.DateFormat),
			slog.String("default", format.Pattern()))
	}
	rollover, ok := dateformat.ParseRollover(opts.Rollover)
	if !ok && opts.Rollover != "" {
		logger.Warn("Unknown rollover policy, using default",
			slog.String("rollover", opts.Rollover),
			slog.String("default", rollover.String()))
	}

	header, err := template.NewHeaderFormatter(opts.HeaderTemplate)
	if err != nil {
		errorutil.LogWarning(logger, "header template", err)
		header = template.DefaultHeaderFormatter()
	}

	c := &Controller{
		renderer: renderer,
		events:   events,
		codec:    dateformat.NewCodec(format, rollover),
		lang:     locale.Match(opts.Language),
		header:   header,
		logger:   logger,
		now:      now,
		triggers: make(map[TriggerID]Subscription),
	}
	c.state = ClosedState(c.today())
	c.pointer = events.SubscribePointer(c.handlePointer)
	c.AddTriggers(opts.Triggers...)

	logger.Debug("Picker initialized",
		slog.String("language", c.lang.String()),
		slog.String("date_format", format.Pattern()),
		slog.String("rollover", rollover.String()),
		slog.String("header_template", header.Source()),
		slog.Int("triggers", len(c.triggers)))

	return c
}

// AddTriggers registers triggers added after construction. Each trigger gets
// exactly one focus subscription; already registered ids are skipped. It
// returns how many triggers were newly registered.
func (c *Controller) AddTriggers(ids ...TriggerID) int {
	if c.disposed {
		return 0
	}

	added := 0
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, exists := c.triggers[id]; exists {
			c.logger.Debug("Trigger already registered", slog.String("trigger", string(id)))
			continue
		}
		c.triggers[id] = c.events.SubscribeFocus(id, func() { c.handleFocus(id) })
		added++
	}
	return added
}

// Triggers returns the registered trigger ids in sorted order.
func (c *Controller) Triggers() []TriggerID {
	ids := make([]TriggerID, 0, len(c.triggers))
	for id := range c.triggers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// State returns the current state snapshot.
func (c *Controller) State() State {
	return c.state
}

// Codec returns the date codec the controller formats with.
func (c *Controller) Codec() *dateformat.Codec {
	return c.codec
}

// Language returns the label set in use.
func (c *Controller) Language() locale.Language {
	return c.lang
}

// Grid returns the grid of the open popup.
func (c *Controller) Grid() (calendar.Grid, bool) {
	if !c.state.IsOpen() {
		return calendar.Grid{}, false
	}
	return c.grid, true
}

func (c *Controller) handleFocus(id TriggerID) {
	if c.disposed {
		return
	}

	raw := c.renderer.TriggerValue(id)
	next, err := c.state.OpenFor(id, raw, c.codec, c.today())
	if err != nil {
		errorutil.LogRecovered(c.logger, "trigger value parse", err,
			append(errorutil.TriggerContext(string(id)), slog.String("value", raw))...)
	}
	c.state = next
	c.render()
}

func (c *Controller) handlePointer(ev PointerEvent) {
	if c.disposed || !c.state.IsOpen() || ev.InPopup {
		return
	}
	if _, registered := c.triggers[ev.Target]; registered {
		return
	}
	c.Close()
}

// ChangeMonth moves the displayed month by delta and re-renders.
// No-op while closed.
func (c *Controller) ChangeMonth(delta int) {
	if c.disposed || !c.state.IsOpen() {
		return
	}
	c.state = c.state.ChangeMonth(delta)
	c.render()
}

// SelectDate writes date into the active trigger and closes the popup.
// No-op while closed.
func (c *Controller) SelectDate(date calendar.Date) {
	if c.disposed {
		return
	}
	next, target := c.state.SelectDate(date)
	if target == "" {
		return
	}
	c.state = next

	text := c.codec.Format(date)
	c.renderer.SetTriggerValue(target, text)
	c.removePopup()

	c.logger.Debug("Date selected",
		slog.String("trigger", string(target)),
		slog.String("value", text))
}

// SelectCell selects the date of cell index (0-41) of the open grid.
// Out-of-range indexes and a closed popup are ignored.
func (c *Controller) SelectCell(index int) {
	if !c.state.IsOpen() || index < 0 || index >= len(c.grid) {
		return
	}
	c.SelectDate(c.grid[index].Date)
}

// Close hides the popup and keeps the selection. No-op while closed.
func (c *Controller) Close() {
	if !c.state.IsOpen() {
		return
	}
	c.state = c.state.Close()
	c.removePopup()
}

// Dispose closes the popup and drops every subscription. Events delivered
// afterwards are ignored.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.Close()
	for id, sub := range c.triggers {
		sub.Dispose()
		delete(c.triggers, id)
	}
	if c.pointer != nil {
		c.pointer.Dispose()
	}
	c.disposed = true
}

// render replaces any existing popup with one for the displayed month
func (c *Controller) render() {
	c.removePopup()

	month := c.state.Displayed()
	c.grid = calendar.BuildGrid(month.Year, month.Month)

	cells := make([]CellView, len(c.grid))
	for i, cell := range c.grid {
		cells[i] = CellView{
			Cell:       cell,
			Attributes: Attributes(cell, c.state),
			Text:       c.codec.Format(cell.Date),
		}
	}

	c.popup = c.renderer.RenderPopup(c.state.Active(), c.headerModel(month), cells)
	c.hasPopup = true
}

func (c *Controller) headerModel(month calendar.Month) HeaderModel {
	title, err := c.header.Render(c.lang, month)
	if err != nil {
		errorutil.LogWarning(c.logger, "header render", err)
		title = fmt.Sprintf("%s / %d", locale.MonthShort(c.lang, month.Month), month.Year)
	}
	return HeaderModel{
		Title:    title,
		Weekdays: locale.Weekdays(c.lang),
		Month:    month,
		Language: c.lang,
	}
}

func (c *Controller) removePopup() {
	if !c.hasPopup {
		return
	}
	c.renderer.RemovePopup(c.popup)
	c.hasPopup = false
}

func (c *Controller) today() calendar.Date {
	return calendar.FromTime(c.now())
}
