package constants

// Calendar grid geometry
const (
	// GridRows is the number of week rows in every rendered month
	GridRows = 6

	// GridColumns is the number of weekday columns, Sunday first
	GridColumns = 7

	// GridCells is the fixed cell count of a month grid
	GridCells = GridRows * GridColumns

	// MonthsPerYear bounds the 0-based month index
	MonthsPerYear = 12
)

// Picker defaults
const (
	// DefaultLanguage for weekday and month labels
	DefaultLanguage = "en"

	// DefaultDateFormat written back into triggers
	DefaultDateFormat = "YYYY-MM-DD"

	// DefaultRollover keeps the permissive day rollover of calendar date construction
	DefaultRollover = "permissive"

	// DefaultHeaderTemplate renders e.g. "Dec / 2024"
	DefaultHeaderTemplate = "{{.MonthShort}} / {{.Year}}"
)

// Logging configuration
const (
	// DefaultLogLevel when none is configured
	DefaultLogLevel = "info"

	// DefaultLogFilename inside the log directory
	DefaultLogFilename = "datepicker-%Y%m%d.log"
)
