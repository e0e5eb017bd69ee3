package parse

import "fmt"

// TokenizeError reports a single malformed line. It always carries the
// file name, 1-based line number, and the raw line text so the user can
// fix the input without knowing parser internals.
type TokenizeError struct {
	File   string
	Line   int
	Raw    string
	Reason string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.File, e.Line, e.Reason, e.Raw)
}

// DuplicateDayError reports a second day directive in one file. Line is
// the offending (second) occurrence.
type DuplicateDayError struct {
	File string
	Line int
}

func (e *DuplicateDayError) Error() string {
	return fmt.Sprintf("%s:%d: duplicate day directive", e.File, e.Line)
}

// MissingDayError reports a target file with no day directive. Files
// loaded as colour-only sources are exempt.
type MissingDayError struct {
	File string
}

func (e *MissingDayError) Error() string {
	return fmt.Sprintf("%s: missing day directive", e.File)
}
