// Package template renders the popup header title from a user-configurable
// text/template, e.g. "{{.MonthShort}} / {{.Year}}".
package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/nowwaveradio/datepicker/internal/calendar"
	"github.com/nowwaveradio/datepicker/internal/constants"
	"github.com/nowwaveradio/datepicker/internal/locale"
)

// HeaderFormatter renders header titles for a displayed month
type HeaderFormatter struct {
	tmpl   *template.Template
	source string
}

// HeaderData is the data structure passed to header templates
type HeaderData struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"` // 1-12
	MonthShort string `json:"month_short"`
	Language   string `json:"language"`
}

var funcMap = template.FuncMap{
	"upper":  strings.ToUpper,
	"lower":  strings.ToLower,
	"printf": fmt.Sprintf,
	"pad2": func(n int) string {
		return fmt.Sprintf("%02d", n)
	},
}

// NewHeaderFormatter parses text and test-executes it. An empty text uses the
// default "{{.MonthShort}} / {{.Year}}".
func NewHeaderFormatter(text string) (*HeaderFormatter, error) {
	if strings.TrimSpace(text) == "" {
		text = constants.DefaultHeaderTemplate
	}

	tmpl, err := template.New("header").Funcs(funcMap).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing header template: %w", err)
	}

	hf := &HeaderFormatter{tmpl: tmpl, source: text}
	if err := hf.validate(); err != nil {
		return nil, err
	}
	return hf, nil
}

// DefaultHeaderFormatter returns the formatter for the built-in template.
func DefaultHeaderFormatter() *HeaderFormatter {
	hf, err := NewHeaderFormatter(constants.DefaultHeaderTemplate)
	if err != nil {
		panic(fmt.Sprintf("default header template: %v", err))
	}
	return hf
}

// validate executes the template against sample data so field typos surface
// at load time instead of on the first render
func (hf *HeaderFormatter) validate() error {
	sample := HeaderData{Year: 2024, Month: 12, MonthShort: "Dec", Language: "en"}
	var buf bytes.Buffer
	if err := hf.tmpl.Execute(&buf, sample); err != nil {
		return fmt.Errorf("header template validation failed: %w", err)
	}
	return nil
}

// Render produces the title for month m in language l.
func (hf *HeaderFormatter) Render(l locale.Language, m calendar.Month) (string, error) {
	data := HeaderData{
		Year:       m.Year,
		Month:      m.Month + 1,
		MonthShort: locale.MonthShort(l, m.Month),
		Language:   l.String(),
	}

	var buf bytes.Buffer
	if err := hf.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing header template: %w", err)
	}
	return buf.String(), nil
}

// Source returns the template text in use.
func (hf *HeaderFormatter) Source() string {
	return hf.source
}
