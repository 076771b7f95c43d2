package logger

import (
	"fmt"
	"runtime"
	"strings"
)

// FilenameValidationError represents an error in filename pattern validation
type FilenameValidationError struct {
	Pattern      string
	InvalidChars []rune
	Suggestion   string
}

func (e *FilenameValidationError) Error() string {
	charList := make([]string, len(e.InvalidChars))
	for i, char := range e.InvalidChars {
		charList[i] = fmt.Sprintf("'%c'", char)
	}

	msg := fmt.Sprintf("invalid log filename %q contains invalid characters: %s",
		e.Pattern, strings.Join(charList, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidateFilenamePattern checks that a log filename pattern names a single
// file. Directories belong in Config.Directory.
func ValidateFilenamePattern(pattern string) error {
	if pattern == "" {
		return nil
	}

	invalid := []rune{}
	for _, char := range invalidFilenameChars() {
		if strings.ContainsRune(pattern, char) {
			invalid = append(invalid, char)
		}
	}
	if len(invalid) == 0 {
		return nil
	}

	return &FilenameValidationError{
		Pattern:      pattern,
		InvalidChars: invalid,
		Suggestion:   suggestFilename(pattern, invalid),
	}
}

func invalidFilenameChars() []rune {
	chars := []rune{'/', '\\', '\x00'}
	if runtime.GOOS == "windows" {
		chars = append(chars, '<', '>', ':', '"', '|', '?', '*')
	}
	return chars
}

// suggestFilename replaces offending characters with safe ones
func suggestFilename(pattern string, invalid []rune) string {
	replacements := map[rune]string{
		'/':  "-",
		'\\': "-",
		':':  "-",
		'|':  "-",
		'*':  "X",
		'?':  "X",
	}

	suggestion := pattern
	for _, char := range invalid {
		suggestion = strings.ReplaceAll(suggestion, string(char), replacements[char])
	}
	for strings.Contains(suggestion, "--") {
		suggestion = strings.ReplaceAll(suggestion, "--", "-")
	}
	return suggestion
}
