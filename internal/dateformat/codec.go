package dateformat

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nowwaveradio/datepicker/internal/calendar"
)

// Format selects one of the supported date patterns.
type Format int

const (
	// ISO is YYYY-MM-DD, the default
	ISO Format = iota
	// Euro is DD/MM/YYYY
	Euro
)

// Supported patterns as written in configuration
const (
	PatternISO  = "YYYY-MM-DD"
	PatternEuro = "DD/MM/YYYY"
)

var (
	isoPattern  = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)
	euroPattern = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/\d{4}$`)
)

// ParseFormat maps a pattern name to a Format. Matching is case-insensitive.
// Unknown patterns report false and yield ISO.
func ParseFormat(pattern string) (Format, bool) {
	switch strings.ToUpper(strings.TrimSpace(pattern)) {
	case PatternISO:
		return ISO, true
	case PatternEuro:
		return Euro, true
	default:
		return ISO, false
	}
}

// Pattern returns the user-facing pattern of f.
func (f Format) Pattern() string {
	if f == Euro {
		return PatternEuro
	}
	return PatternISO
}

func (f Format) String() string {
	return f.Pattern()
}

func (f Format) separator() string {
	if f == Euro {
		return "/"
	}
	return "-"
}

func (f Format) matcher() *regexp.Regexp {
	if f == Euro {
		return euroPattern
	}
	return isoPattern
}

// RolloverPolicy decides what Parse does with a day that does not exist in
// its month, such as 2024-02-31.
type RolloverPolicy int

const (
	// RolloverPermissive rolls the surplus days into the following month
	RolloverPermissive RolloverPolicy = iota
	// RolloverStrict rejects the text with ErrInvalidConstructedDate
	RolloverStrict
)

// ParseRollover maps "permissive" or "strict" to a policy.
func ParseRollover(name string) (RolloverPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "permissive":
		return RolloverPermissive, true
	case "strict":
		return RolloverStrict, true
	default:
		return RolloverPermissive, false
	}
}

func (p RolloverPolicy) String() string {
	if p == RolloverStrict {
		return "strict"
	}
	return "permissive"
}

var (
	// ErrFormatMismatch means the text does not match the configured pattern
	ErrFormatMismatch = errors.New("date text does not match format")
	// ErrMalformed means the text does not split into three numeric fields
	ErrMalformed = errors.New("date text is not three numeric fields")
	// ErrInvalidConstructedDate means the fields do not name a real calendar date
	ErrInvalidConstructedDate = errors.New("date fields do not form a calendar date")
)

// Codec validates, parses and formats dates for one Format.
type Codec struct {
	format   Format
	rollover RolloverPolicy
	layout   string
}

// NewCodec returns a codec for f using the given rollover policy.
func NewCodec(f Format, rollover RolloverPolicy) *Codec {
	return &Codec{
		format:   f,
		rollover: rollover,
		layout:   LayoutFor(f.Pattern()),
	}
}

// DateFormat returns the codec's Format.
func (c *Codec) DateFormat() Format {
	return c.format
}

// Rollover returns the codec's rollover policy.
func (c *Codec) Rollover() RolloverPolicy {
	return c.rollover
}

// Validate reports whether text matches the pattern exactly. It checks
// padding, separators and field ranges but not month lengths.
func (c *Codec) Validate(text string) bool {
	return c.format.matcher().MatchString(text)
}

// Parse splits text on the format's separator and builds a date. It does not
// validate the pattern first; call Validate or use ParseValid for that.
func (c *Codec) Parse(text string) (calendar.Date, error) {
	parts := strings.Split(text, c.format.separator())
	if len(parts) != 3 {
		return calendar.Date{}, fmt.Errorf("%w: %q", ErrMalformed, text)
	}

	fields := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return calendar.Date{}, fmt.Errorf("%w: %q", ErrMalformed, text)
		}
		fields[i] = n
	}

	year, month, day := fields[0], fields[1], fields[2]
	if c.format == Euro {
		day, month, year = fields[0], fields[1], fields[2]
	}

	if calendar.IsValidDate(year, month-1, day) {
		return calendar.Date{Year: year, Month: month - 1, Day: day}, nil
	}
	if c.rollover == RolloverStrict {
		return calendar.Date{}, fmt.Errorf("%w: %q", ErrInvalidConstructedDate, text)
	}
	return calendar.NewDate(year, month-1, day), nil
}

// ParseValid validates text against the pattern and then parses it.
func (c *Codec) ParseValid(text string) (calendar.Date, error) {
	if !c.Validate(text) {
		return calendar.Date{}, fmt.Errorf("%w %s: %q", ErrFormatMismatch, c.format.Pattern(), text)
	}
	return c.Parse(text)
}

// Format renders d with zero-padded month and day and a 4-digit year.
func (c *Codec) Format(d calendar.Date) string {
	return d.Time().Format(c.layout)
}
