// Package locale holds the two label sets the picker can display. Language
// only affects weekday and month labels, never parsing or formatting.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Language selects a label set.
type Language int

const (
	English Language = iota
	Chinese
)

var chineseBase = language.MustParseBase("zh")

var (
	weekdays = map[Language][7]string{
		English: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Chinese: {"日", "一", "二", "三", "四", "五", "六"},
	}
	monthsShort = map[Language][12]string{
		English: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Chinese: {"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
	}
)

// Match resolves a BCP 47 tag such as "en", "zh-CN" or "zh-Hant" to a label
// set. Anything that is not Chinese falls back to English.
func Match(tag string) Language {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return English
	}
	base, conf := t.Base()
	if conf != language.No && base == chineseBase {
		return Chinese
	}
	return English
}

// IsSupported reports whether tag names one of the two label sets directly.
func IsSupported(tag string) bool {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return false
	}
	base, conf := t.Base()
	if conf == language.No {
		return false
	}
	return base == chineseBase || base.String() == "en"
}

// Tag returns the language tag of l.
func (l Language) Tag() language.Tag {
	if l == Chinese {
		return language.Chinese
	}
	return language.English
}

func (l Language) String() string {
	return l.Tag().String()
}

// Weekdays returns column labels Sunday through Saturday.
func Weekdays(l Language) [7]string {
	if w, ok := weekdays[l]; ok {
		return w
	}
	return weekdays[English]
}

// MonthShort returns the abbreviated name of the 0-based month.
func MonthShort(l Language, month int) string {
	names, ok := monthsShort[l]
	if !ok {
		names = monthsShort[English]
	}
	if month < 0 || month >= len(names) {
		return ""
	}
	return names[month]
}
