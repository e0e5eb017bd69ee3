// Package export serializes parsed day charts to an iCalendar file, so
// activity logs can be fed into ordinary calendar tooling.
package export

import (
	"fmt"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"

	"daycircle/internal/model"
)

// Calendar builds an iCalendar document from the given day charts. Each
// event becomes one VEVENT: range events get DTSTART/DTEND on the
// chart's date (a midnight-spanning range ends on the following day),
// marker events are zero-duration.
func Calendar(days []model.DayChart) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//daycircle//daycircle//EN")

	stamp := time.Now().UTC()

	for _, day := range days {
		// The file format has no timezone model, so times serialize as
		// UTC rather than shifting with the machine's local zone.
		base := time.Date(day.Date.Year, time.Month(day.Date.Month), day.Date.Day,
			0, 0, 0, 0, time.UTC)

		for i, ev := range day.Events {
			uid := fmt.Sprintf("%s-%d@daycircle", day.Date, i)
			ve := cal.AddEvent(uid)
			ve.SetDtStampTime(stamp)
			ve.SetSummary(ev.Key)

			switch ev.Kind {
			case model.KindRange:
				start := at(base, ev.Start)
				end := at(base, ev.End)
				if ev.SpansMidnight {
					end = end.AddDate(0, 0, 1)
				}
				ve.SetStartAt(start)
				ve.SetEndAt(end)
			case model.KindMarker:
				t := at(base, ev.At)
				ve.SetStartAt(t)
				ve.SetEndAt(t)
			}
		}
	}

	return cal
}

// WriteFile serializes the given day charts to an ICS file at path.
func WriteFile(path string, days []model.DayChart) error {
	cal := Calendar(days)
	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("export: failed to write ICS: %w", err)
	}
	return nil
}

func at(base time.Time, t model.Time) time.Time {
	return base.Add(time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute)
}
