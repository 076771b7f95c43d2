// Package calendar provides the date value types and month arithmetic used by
// the picker, plus the fixed 6x7 month grid builder.
//
// Months are 0-based throughout (0 = January, 11 = December) so that month
// navigation is plain integer arithmetic with a year carry.
package calendar

import (
	"fmt"
	"time"

	"github.com/nowwaveradio/datepicker/internal/constants"
)

// Date is a calendar day. Values are always real dates: constructors
// normalise out-of-range components instead of storing them.
type Date struct {
	Year  int
	Month int // 0-11
	Day   int // 1-31
}

// NewDate builds a Date, rolling out-of-range months and days forward the
// way calendar date construction does (e.g. Feb 31 becomes Mar 2 or 3).
func NewDate(year, month, day int) Date {
	// Noon keeps the result clear of any DST edge
	return FromTime(time.Date(year, time.Month(month+1), day, 12, 0, 0, 0, time.UTC))
}

// IsValidDate reports whether the components name a real date without any
// normalisation.
func IsValidDate(year, month, day int) bool {
	if month < 0 || month >= constants.MonthsPerYear {
		return false
	}
	return day >= 1 && day <= DaysInMonth(year, month)
}

// FromTime takes the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}

// Time returns noon UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 12, 0, 0, 0, time.UTC)
}

// Weekday returns 0=Sun..6=Sat.
func (d Date) Weekday() int {
	return int(d.Time().Weekday())
}

// InMonth returns the month d belongs to.
func (d Date) InMonth() Month {
	return Month{Year: d.Year, Month: d.Month}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.Day)
}

// Month identifies a displayed month.
type Month struct {
	Year  int
	Month int // 0-11
}

// MonthOf normalises (year, month) so that month lands in 0-11,
// carrying whole years in either direction.
func MonthOf(year, month int) Month {
	total := year*constants.MonthsPerYear + month
	y := floorDiv(total, constants.MonthsPerYear)
	return Month{Year: y, Month: total - y*constants.MonthsPerYear}
}

// AddMonths moves m by delta months with year rollover at the 0/11 boundary.
func (m Month) AddMonths(delta int) Month {
	return MonthOf(m.Year, m.Month+delta)
}

// Days returns the number of days in m.
func (m Month) Days() int {
	return DaysInMonth(m.Year, m.Month)
}

// First returns the first day of m.
func (m Month) First() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Contains reports whether d falls inside m.
func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month+1)
}

// DaysInMonth returns the length of the 0-based month, normalising month first.
func DaysInMonth(year, month int) int {
	m := MonthOf(year, month)
	switch m.Month {
	case 0, 2, 4, 6, 7, 9, 11:
		return 31
	case 3, 5, 8, 10:
		return 30
	default:
		if IsLeapYear(m.Year) {
			return 29
		}
		return 28
	}
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	if year%400 == 0 {
		return true
	}
	if year%100 == 0 {
		return false
	}
	return year%4 == 0
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
