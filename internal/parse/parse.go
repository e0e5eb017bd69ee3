// Package parse turns daycircle plaintext files into model.Documents.
//
// File format pseudo-grammar:
//
//	root     = metadata
//	         | key <whitespace> value
//	         ;
//	metadata = "day" <whitespace> date
//	         | "#" <string> <whitespace> rgbhex
//	         ;
//	key      = <string>        # range event
//	         | "@" <string>    # marker event
//	         ;
//	value    = time            # single time for marker events
//	         | time "-" time   # time range for range events
//	         ;
//	date     = DD "-" MM "-" YYYY
//	time     = HHMM            # 24h, 0000-2359
//	rgbhex   = 6 hex digits
//
// Blank lines and lines starting with "//" are skipped. Fields are
// separated by runs of whitespace; anything beyond the two expected
// fields is an error.
package parse

import (
	"strings"

	"daycircle/internal/model"
)

const (
	keywordDay    = "day"
	prefixColour  = "#"
	prefixMarker  = "@"
	prefixComment = "//"
)

// directiveKind classifies one tokenized line.
type directiveKind int

const (
	directiveDay directiveKind = iota
	directiveColour
	directiveEvent
)

// directive is the tokenizer output for one line.
type directive struct {
	kind   directiveKind
	line   int
	date   model.Date   // directiveDay
	key    string       // directiveColour / directiveEvent
	colour model.Colour // directiveColour
	event  model.Event  // directiveEvent
}

// Parse folds the content of one file into a Document. filename is used
// only for diagnostics. With colourOnly set the file is treated as a
// colour source: the day directive becomes optional and any events are
// still collected but carry no chart date.
//
// Any malformed line aborts the parse; there is no partial recovery.
func Parse(content, filename string, colourOnly bool) (*model.Document, error) {
	doc := &model.Document{
		File:    filename,
		Colours: make(map[string]model.Colour),
	}

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, prefixComment) {
			continue
		}

		d, err := tokenizeLine(filename, i+1, line)
		if err != nil {
			return nil, err
		}

		switch d.kind {
		case directiveDay:
			if doc.Day != nil {
				return nil, &DuplicateDayError{File: filename, Line: d.line}
			}
			date := d.date
			doc.Day = &date

		case directiveColour:
			// Re-declaring a colour key overwrites the previous value.
			doc.Colours[d.key] = d.colour

		case directiveEvent:
			doc.Events = append(doc.Events, d.event)
		}
	}

	if doc.Day == nil && !colourOnly {
		return nil, &MissingDayError{File: filename}
	}

	return doc, nil
}

// tokenizeLine splits one non-blank, non-comment line into a directive.
// line has already been whitespace-trimmed.
func tokenizeLine(filename string, lineNo int, line string) (directive, error) {
	fail := func(reason string) (directive, error) {
		return directive{}, &TokenizeError{File: filename, Line: lineNo, Raw: line, Reason: reason}
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fail("missing value field")
	}
	if len(fields) > 2 {
		return fail("unexpected extra field")
	}
	field0, field1 := fields[0], fields[1]

	switch {
	case field0 == keywordDay:
		date, err := model.DateFromString(field1)
		if err != nil {
			return fail(err.Error())
		}
		return directive{kind: directiveDay, line: lineNo, date: date}, nil

	case strings.HasPrefix(field0, prefixColour):
		key := field0[len(prefixColour):]
		if key == "" {
			return fail("empty colour key")
		}
		colour, err := model.ColourFromString(field1)
		if err != nil {
			return fail(err.Error())
		}
		return directive{kind: directiveColour, line: lineNo, key: key, colour: colour}, nil

	case strings.HasPrefix(field0, prefixMarker):
		key := field0[len(prefixMarker):]
		if key == "" {
			return fail("empty event key")
		}
		at, err := model.TimeFromString(field1)
		if err != nil {
			return fail(err.Error())
		}
		ev := model.Event{Key: key, Kind: model.KindMarker, At: at}
		return directive{kind: directiveEvent, line: lineNo, key: key, event: ev}, nil

	default:
		times := strings.Split(field1, "-")
		if len(times) != 2 {
			return fail("expected HHMM-HHMM time range")
		}
		start, err := model.TimeFromString(times[0])
		if err != nil {
			return fail(err.Error())
		}
		end, err := model.TimeFromString(times[1])
		if err != nil {
			return fail(err.Error())
		}
		ev := model.Event{
			Key:   field0,
			Kind:  model.KindRange,
			Start: start,
			End:   end,
			// Stored as written; a numerically earlier end means the
			// range wraps past midnight and the renderer must unwrap.
			SpansMidnight: end.Before(start),
		}
		return directive{kind: directiveEvent, line: lineNo, key: field0, event: ev}, nil
	}
}
