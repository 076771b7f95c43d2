package picker

import (
	"github.com/nowwaveradio/datepicker/internal/calendar"
	"github.com/nowwaveradio/datepicker/internal/locale"
)

// PopupHandle identifies a popup created by a Renderer.
type PopupHandle uint64

// Renderer is the host-side collaborator that owns layout, styling and the
// trigger elements. The controller only hands it data.
type Renderer interface {
	// RenderPopup shows a popup anchored near the trigger and returns its handle.
	RenderPopup(anchor TriggerID, header HeaderModel, cells []CellView) PopupHandle
	// RemovePopup tears the popup down. Unknown handles are ignored.
	RemovePopup(h PopupHandle)
	// SetTriggerValue replaces the text of a trigger.
	SetTriggerValue(id TriggerID, text string)
	// TriggerValue returns the current text of a trigger.
	TriggerValue(id TriggerID) string
}

// HeaderModel describes the popup header: title and weekday column labels.
type HeaderModel struct {
	Title    string
	Weekdays [7]string
	Month    calendar.Month
	Language locale.Language
}

// CellAttributes are the visual flags of one grid cell.
type CellAttributes struct {
	Highlighted bool // the selected date
	Dimmed      bool // adjacent-month day
}

// CellView is a grid cell as handed to the renderer.
type CellView struct {
	Cell       calendar.DayCell
	Attributes CellAttributes
	Text       string // the cell's date in the configured format
}

// Attributes maps a cell and a picker state to its visual flags.
func Attributes(cell calendar.DayCell, s State) CellAttributes {
	selected, ok := s.SelectedDate()
	return CellAttributes{
		Highlighted: ok && selected == cell.Date,
		Dimmed:      cell.Adjacent,
	}
}
