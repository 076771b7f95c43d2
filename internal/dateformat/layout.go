// Package dateformat implements the textual date formats a picker reads from
// and writes back into its triggers.
package dateformat

import (
	"strings"
)

// LayoutFor converts a user-facing date pattern to a Go time layout.
//
// Example conversions:
//   - "YYYY-MM-DD" -> "2006-01-02"
//   - "DD/MM/YYYY" -> "02/01/2006"
//   - "YYYYMMDD" -> "20060102"
func LayoutFor(pattern string) string {
	// Longer tokens first so "YYYY" never matches as two "YY"
	replacer := strings.NewReplacer(
		"YYYY", "2006",
		"YY", "06",
		"MM", "01",
		"M", "1",
		"DD", "02",
		"D", "2",
	)

	return replacer.Replace(strings.ToUpper(pattern))
}
