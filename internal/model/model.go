package model

import (
	"errors"
	"fmt"
	"strings"
)

// Date is a calendar date as written in a day directive (DD-MM-YYYY).
// Digit counts and numeric ranges are enforced; actual calendar
// correctness is not (30-02-2024 is accepted).
type Date struct {
	Day   int
	Month int
	Year  int
}

// DateFromString parses a DD-MM-YYYY date string.
func DateFromString(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return Date{}, errors.New("expected DD-MM-YYYY date")
	}
	for _, p := range parts {
		if !allDigits(p) {
			return Date{}, errors.New("expected DD-MM-YYYY date")
		}
	}
	d := Date{
		Day:   atoiDigits(parts[0]),
		Month: atoiDigits(parts[1]),
		Year:  atoiDigits(parts[2]),
	}
	if d.Day < 1 || d.Day > 31 {
		return Date{}, errors.New("date day out of range")
	}
	if d.Month < 1 || d.Month > 12 {
		return Date{}, errors.New("date month out of range")
	}
	return d, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
}

// Time is a 24-hour wall-clock time as written in the HHMM text form.
type Time struct {
	Hour   int
	Minute int
}

// TimeFromString parses a 4-digit HHMM time string.
func TimeFromString(s string) (Time, error) {
	if len(s) != 4 || !allDigits(s) {
		return Time{}, errors.New("expected 4-digit time")
	}
	t := Time{
		Hour:   atoiDigits(s[:2]),
		Minute: atoiDigits(s[2:]),
	}
	if t.Hour > 23 {
		return Time{}, errors.New("time hour out of range")
	}
	if t.Minute > 59 {
		return Time{}, errors.New("time minute out of range")
	}
	return t, nil
}

func (t Time) String() string {
	return fmt.Sprintf("%02d%02d", t.Hour, t.Minute)
}

// Minutes returns the time as minutes since midnight.
func (t Time) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is numerically earlier in the day than u.
func (t Time) Before(u Time) bool {
	return t.Minutes() < u.Minutes()
}

// Colour is a 6-hex-digit RGB value, stored uppercase without the
// leading '#'.
type Colour string

// ColourFromString parses and normalizes a 6-hex-digit colour value.
func ColourFromString(s string) (Colour, error) {
	c := Colour(strings.ToUpper(s))
	if !c.Valid() {
		return "", errors.New("expected 6-digit hex colour")
	}
	return c, nil
}

// Valid reports whether the colour is exactly six uppercase hex digits.
func (c Colour) Valid() bool {
	if len(c) != 6 {
		return false
	}
	for i := 0; i < len(c); i++ {
		ch := c[i]
		if (ch < '0' || ch > '9') && (ch < 'A' || ch > 'F') {
			return false
		}
	}
	return true
}

// Hex returns the CSS form of the colour, e.g. "#E2531B".
func (c Colour) Hex() string {
	return "#" + string(c)
}

// EventKind distinguishes the two event variants of the file format.
type EventKind int

const (
	// KindRange is an activity with a start and end time (plain key).
	KindRange EventKind = iota
	// KindMarker is an activity pinned to a single time ("@" key).
	KindMarker
)

func (k EventKind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Event is one activity occurrence. Key strings are opaque: arbitrary
// non-whitespace text, including non-ASCII bytes, is carried through
// untouched. Repeated keys are distinct events and are never merged.
type Event struct {
	Key  string
	Kind EventKind

	// Range fields. End may be numerically earlier than Start; the
	// values are stored as written and SpansMidnight records the wrap.
	Start         Time
	End           Time
	SpansMidnight bool

	// Marker field.
	At Time
}

// Directive returns the event in its canonical file-format form.
func (e Event) Directive() string {
	if e.Kind == KindMarker {
		return "@" + e.Key + " " + e.At.String()
	}
	return e.Key + " " + e.Start.String() + "-" + e.End.String()
}

// Document is the parse result of one input file.
type Document struct {
	// File is the name the document was read from, kept for diagnostics.
	File string

	// Day is nil for colour-only source files.
	Day *Date

	// Colours holds inline colour directives, last write wins per key.
	Colours map[string]Colour

	// Events in file order.
	Events []Event
}

// Palette maps activity keys to their resolved display colour.
type Palette map[string]Colour

// DayChart pairs one chart date with its events.
type DayChart struct {
	Date   Date
	Events []Event
}

// RenderBundle is the aggregator output handed to the renderer: one
// entry per target file, in command-line order, plus the resolved
// palette. Keys missing from Palette are the renderer's problem.
type RenderBundle struct {
	Days    []DayChart
	Palette Palette
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func atoiDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
