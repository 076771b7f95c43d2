package calendar

import "github.com/nowwaveradio/datepicker/internal/constants"

// DayCell is one square of the month grid.
type DayCell struct {
	Date     Date
	Label    int  // day-of-month shown in the cell
	Adjacent bool // belongs to the previous or next month
}

// Grid is a month laid out row-major, Sunday first, always 6 full weeks.
type Grid [constants.GridCells]DayCell

// BuildGrid lays out (year, month). Leading cells come from the previous
// month, trailing cells from the next month until the grid holds 42 cells,
// so some months end with a row made entirely of next-month days.
func BuildGrid(year, month int) Grid {
	m := MonthOf(year, month)
	prev := m.AddMonths(-1)
	next := m.AddMonths(1)

	firstWeekday := m.First().Weekday()
	daysInMonth := m.Days()
	daysInPrev := prev.Days()

	var grid Grid
	i := 0

	// Leading days of the previous month, counting up to its last day
	for day := daysInPrev - firstWeekday + 1; day <= daysInPrev; day++ {
		grid[i] = DayCell{Date: Date{Year: prev.Year, Month: prev.Month, Day: day}, Label: day, Adjacent: true}
		i++
	}

	for day := 1; day <= daysInMonth; day++ {
		grid[i] = DayCell{Date: Date{Year: m.Year, Month: m.Month, Day: day}, Label: day}
		i++
	}

	for day := 1; i < len(grid); day++ {
		grid[i] = DayCell{Date: Date{Year: next.Year, Month: next.Month, Day: day}, Label: day, Adjacent: true}
		i++
	}

	return grid
}

// Rows splits the grid into weeks.
func (g *Grid) Rows() [][]DayCell {
	rows := make([][]DayCell, 0, constants.GridRows)
	for r := 0; r < constants.GridRows; r++ {
		rows = append(rows, g[r*constants.GridColumns:(r+1)*constants.GridColumns])
	}
	return rows
}
