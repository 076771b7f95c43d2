package picker

import (
	"github.com/nowwaveradio/datepicker/internal/calendar"
	"github.com/nowwaveradio/datepicker/internal/dateformat"
)

// TriggerID identifies a text input in the host document.
type TriggerID string

// State is an immutable snapshot of the picker. Transitions return a new
// State; the receiver is never modified. The popup is open exactly when
// Active is non-empty.
type State struct {
	displayed   calendar.Month
	selected    calendar.Date
	hasSelected bool
	active      TriggerID
}

// ClosedState returns a closed state displaying the month of today.
func ClosedState(today calendar.Date) State {
	return State{displayed: today.InMonth()}
}

// IsOpen reports whether a trigger currently owns the popup.
func (s State) IsOpen() bool {
	return s.active != ""
}

// Active returns the trigger the popup belongs to, or "" when closed.
func (s State) Active() TriggerID {
	return s.active
}

// Displayed returns the month shown in the grid.
func (s State) Displayed() calendar.Month {
	return s.displayed
}

// SelectedDate returns the selected date, if any.
func (s State) SelectedDate() (calendar.Date, bool) {
	return s.selected, s.hasSelected
}

// OpenFor opens the popup for trigger. A non-empty rawText that validates
// and parses becomes the selection and decides the displayed month; anything
// else clears the selection and shows today's month. The returned error
// explains why rawText was not used and is informational only.
func (s State) OpenFor(trigger TriggerID, rawText string, codec *dateformat.Codec, today calendar.Date) (State, error) {
	next := State{active: trigger}

	if rawText != "" {
		date, err := codec.ParseValid(rawText)
		if err == nil {
			next.selected = date
			next.hasSelected = true
			next.displayed = date.InMonth()
			return next, nil
		}
		next.displayed = today.InMonth()
		return next, err
	}

	next.displayed = today.InMonth()
	return next, nil
}

// ChangeMonth moves the displayed month by delta. No-op when closed.
func (s State) ChangeMonth(delta int) State {
	if !s.IsOpen() {
		return s
	}
	s.displayed = s.displayed.AddMonths(delta)
	return s
}

// SelectDate selects date and closes the popup. It returns the trigger that
// should receive the formatted date; closed states return themselves and "".
func (s State) SelectDate(date calendar.Date) (State, TriggerID) {
	if !s.IsOpen() {
		return s, ""
	}
	target := s.active
	s.selected = date
	s.hasSelected = true
	s.active = ""
	return s, target
}

// Close closes the popup and keeps the selection. No-op when closed.
func (s State) Close() State {
	s.active = ""
	return s
}
