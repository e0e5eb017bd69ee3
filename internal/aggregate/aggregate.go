// Package aggregate combines parsed documents into the render-ready
// bundle: one chart entry per target file plus the resolved palette.
package aggregate

import (
	"fmt"

	"daycircle/internal/model"
)

// AggregationError reports a failure while combining documents. It is
// also the extension point for multi-day averaging, which is not
// implemented.
type AggregationError struct {
	Reason string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate: %s", e.Reason)
}

// Aggregate builds a RenderBundle from the target documents, in order,
// overlaying the optional colour-source document's palette on top of
// the targets' inline colour directives.
//
// Rules:
//
//   - Each target contributes exactly one (date, events) entry. Two
//     targets declaring the same day stay separate entries; there is no
//     implicit merging or averaging.
//   - Palette precedence, lowest to highest: inline directives of
//     earlier targets, inline directives of later targets, then the
//     colour-source document.
//   - Event keys without a palette entry are left unresolved. The
//     renderer substitutes its own fallback; the aggregator never
//     invents a colour.
func Aggregate(targets []*model.Document, colourSource *model.Document) (*model.RenderBundle, error) {
	if len(targets) == 0 {
		return nil, &AggregationError{Reason: "no target documents"}
	}

	bundle := &model.RenderBundle{
		Days:    make([]model.DayChart, 0, len(targets)),
		Palette: make(model.Palette),
	}

	for _, t := range targets {
		if t == nil {
			return nil, &AggregationError{Reason: "nil target document"}
		}
		if t.Day == nil {
			return nil, &AggregationError{Reason: fmt.Sprintf("target %q has no day directive", t.File)}
		}
		bundle.Days = append(bundle.Days, model.DayChart{
			Date:   *t.Day,
			Events: t.Events,
		})
		if err := overlay(bundle.Palette, t.Colours, t.File); err != nil {
			return nil, err
		}
	}

	if colourSource != nil {
		if err := overlay(bundle.Palette, colourSource.Colours, colourSource.File); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}

// overlay copies src entries over dst, last write winning per key. The
// tokenizer already validated every colour value; re-checking here
// keeps a malformed palette from reaching the renderer if a document
// was built by hand.
func overlay(dst model.Palette, src map[string]model.Colour, file string) error {
	for key, colour := range src {
		if !colour.Valid() {
			return &AggregationError{
				Reason: fmt.Sprintf("invalid colour %q for key %q from %q", colour, key, file),
			}
		}
		dst[key] = colour
	}
	return nil
}
