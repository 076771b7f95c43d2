// Package render draws picker popups on a terminal with lipgloss and keeps
// the text of every trigger in an in-memory document.
package render

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nowwaveradio/datepicker/internal/constants"
	"github.com/nowwaveradio/datepicker/internal/picker"
)

const cellWidth = 5

var (
	accentColor = lipgloss.Color("#2ca4e9")
	dimmedColor = lipgloss.Color("#aaaaaa")
)

// Popup is the popup currently shown by a Terminal.
type Popup struct {
	Handle picker.PopupHandle
	Anchor picker.TriggerID
	Header picker.HeaderModel
	Cells  []picker.CellView
}

// Styles holds the lipgloss styles used to draw a popup.
type Styles struct {
	Frame       lipgloss.Style
	Title       lipgloss.Style
	Weekday     lipgloss.Style
	Day         lipgloss.Style
	Highlighted lipgloss.Style
	Dimmed      lipgloss.Style
}

// DefaultStyles builds the popup styles on r.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	day := r.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	return Styles{
		Frame: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		Title: r.NewStyle().
			Bold(true).
			Width(cellWidth * constants.GridColumns).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("205")),
		Weekday:     day.Foreground(accentColor),
		Day:         day,
		Highlighted: day.Bold(true).Background(accentColor).Foreground(lipgloss.Color("#ffffff")),
		Dimmed:      day.Foreground(dimmedColor),
	}
}

// Terminal implements picker.Renderer by writing popups to an io.Writer.
// Only one popup is shown at a time; removing a stale handle is a no-op.
type Terminal struct {
	out    io.Writer
	styles Styles
	logger *slog.Logger

	values map[picker.TriggerID]string
	next   picker.PopupHandle
	open   *Popup
	last   *Popup
}

// NewTerminal creates a renderer writing to out. Colour support is detected
// from out, so writers that are not terminals get plain text.
func NewTerminal(out io.Writer, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Terminal{
		out:    out,
		styles: DefaultStyles(lipgloss.NewRenderer(out)),
		logger: logger,
		values: make(map[picker.TriggerID]string),
	}
}

// RenderPopup draws the popup and remembers it as the open one.
func (t *Terminal) RenderPopup(anchor picker.TriggerID, header picker.HeaderModel, cells []picker.CellView) picker.PopupHandle {
	t.next++
	p := &Popup{Handle: t.next, Anchor: anchor, Header: header, Cells: cells}
	if t.open != nil {
		t.logger.Debug("Replacing open popup", slog.Uint64("handle", uint64(t.open.Handle)))
	}
	t.open = p
	t.last = p

	fmt.Fprintf(t.out, "%s\n", t.View(p))
	return p.Handle
}

// RemovePopup closes the popup with handle h.
func (t *Terminal) RemovePopup(h picker.PopupHandle) {
	if t.open == nil || t.open.Handle != h {
		t.logger.Debug("Ignoring stale popup handle", slog.Uint64("handle", uint64(h)))
		return
	}
	t.open = nil
	fmt.Fprintln(t.out, "popup closed")
}

// SetTriggerValue replaces the text of trigger id.
func (t *Terminal) SetTriggerValue(id picker.TriggerID, text string) {
	t.values[id] = text
	fmt.Fprintf(t.out, "%s = %s\n", id, text)
}

// TriggerValue returns the text of trigger id, "" when unset.
func (t *Terminal) TriggerValue(id picker.TriggerID) string {
	return t.values[id]
}

// Open returns the popup currently shown.
func (t *Terminal) Open() (Popup, bool) {
	if t.open == nil {
		return Popup{}, false
	}
	return *t.open, true
}

// LastPopup returns the most recently rendered popup, open or not.
func (t *Terminal) LastPopup() (Popup, bool) {
	if t.last == nil {
		return Popup{}, false
	}
	return *t.last, true
}

// Values lists trigger values as "id = text" lines sorted by id.
func (t *Terminal) Values() []string {
	ids := make([]string, 0, len(t.values))
	for id := range t.values {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("%s = %s", id, t.values[picker.TriggerID(id)]))
	}
	return lines
}

// View renders p as a framed month table. The selected day is bracketed so
// it stays visible without colour.
func (t *Terminal) View(p *Popup) string {
	var b strings.Builder

	b.WriteString(t.styles.Title.Render(p.Header.Title))
	b.WriteString("\n")

	labels := make([]string, 0, len(p.Header.Weekdays))
	for _, w := range p.Header.Weekdays {
		labels = append(labels, t.styles.Weekday.Render(w))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labels...))

	for row := 0; row*constants.GridColumns < len(p.Cells); row++ {
		b.WriteString("\n")
		end := min((row+1)*constants.GridColumns, len(p.Cells))
		days := make([]string, 0, constants.GridColumns)
		for _, cell := range p.Cells[row*constants.GridColumns : end] {
			days = append(days, t.cell(cell))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, days...))
	}

	return t.styles.Frame.Render(b.String())
}

func (t *Terminal) cell(c picker.CellView) string {
	label := fmt.Sprintf("%d", c.Cell.Label)
	switch {
	case c.Attributes.Highlighted:
		return t.styles.Highlighted.Render("[" + label + "]")
	case c.Attributes.Dimmed:
		return t.styles.Dimmed.Render(label)
	default:
		return t.styles.Day.Render(label)
	}
}
