package aggregate

import (
	"errors"
	"reflect"
	"testing"

	"daycircle/internal/model"
)

func targetDoc(file string, date model.Date, colours map[string]model.Colour, events ...model.Event) *model.Document {
	if colours == nil {
		colours = map[string]model.Colour{}
	}
	return &model.Document{File: file, Day: &date, Colours: colours, Events: events}
}

func TestAggregateSingleTarget(t *testing.T) {
	ev := model.Event{Key: "sleep", Kind: model.KindRange, Start: model.Time{Hour: 7}, End: model.Time{Hour: 17, Minute: 30}}
	doc := targetDoc("a.day", model.Date{Day: 25, Month: 10, Year: 2023},
		map[string]model.Colour{"sleep": "E2531B"}, ev)

	bundle, err := Aggregate([]*model.Document{doc}, nil)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	if len(bundle.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(bundle.Days))
	}
	if bundle.Days[0].Date != (model.Date{Day: 25, Month: 10, Year: 2023}) {
		t.Errorf("date = %v", bundle.Days[0].Date)
	}
	if !reflect.DeepEqual(bundle.Days[0].Events, []model.Event{ev}) {
		t.Errorf("events = %v", bundle.Days[0].Events)
	}
	if bundle.Palette["sleep"] != "E2531B" {
		t.Errorf("palette sleep = %q", bundle.Palette["sleep"])
	}
}

func TestAggregatePalettePrecedence(t *testing.T) {
	first := targetDoc("a.day", model.Date{Day: 1, Month: 1, Year: 2024},
		map[string]model.Colour{"sleep": "111111", "work": "222222"})
	second := targetDoc("b.day", model.Date{Day: 2, Month: 1, Year: 2024},
		map[string]model.Colour{"sleep": "333333"})
	colourSource := &model.Document{
		File:    "palette.day",
		Colours: map[string]model.Colour{"work": "444444"},
	}

	bundle, err := Aggregate([]*model.Document{first, second}, colourSource)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	// Later target overrides earlier target.
	if got := bundle.Palette["sleep"]; got != "333333" {
		t.Errorf("sleep = %q, want 333333", got)
	}
	// Colour source overrides every inline directive.
	if got := bundle.Palette["work"]; got != "444444" {
		t.Errorf("work = %q, want 444444", got)
	}
}

func TestAggregatePaletteOverlayIdempotent(t *testing.T) {
	target := targetDoc("a.day", model.Date{Day: 1, Month: 1, Year: 2024},
		map[string]model.Colour{"sleep": "111111"})
	colourSource := &model.Document{
		File:    "palette.day",
		Colours: map[string]model.Colour{"sleep": "ABCDEF", "work": "222222"},
	}

	once, err := Aggregate([]*model.Document{target}, colourSource)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	// Applying the same colour source on top again changes nothing.
	again := make(model.Palette, len(once.Palette))
	for k, v := range once.Palette {
		again[k] = v
	}
	if err := overlay(again, colourSource.Colours, colourSource.File); err != nil {
		t.Fatalf("overlay returned error: %v", err)
	}
	if !reflect.DeepEqual(once.Palette, again) {
		t.Errorf("overlay not idempotent: %v != %v", once.Palette, again)
	}
}

func TestAggregateDuplicateDatesKeptSeparate(t *testing.T) {
	date := model.Date{Day: 1, Month: 1, Year: 2024}
	a := targetDoc("a.day", date, nil, model.Event{Key: "x", Kind: model.KindMarker, At: model.Time{Hour: 1}})
	b := targetDoc("b.day", date, nil, model.Event{Key: "y", Kind: model.KindMarker, At: model.Time{Hour: 2}})

	bundle, err := Aggregate([]*model.Document{a, b}, nil)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if len(bundle.Days) != 2 {
		t.Fatalf("expected 2 separate entries, got %d", len(bundle.Days))
	}
	if bundle.Days[0].Events[0].Key != "x" || bundle.Days[1].Events[0].Key != "y" {
		t.Error("entries merged or reordered")
	}
}

func TestAggregateNoTargets(t *testing.T) {
	_, err := Aggregate(nil, nil)
	var aggErr *AggregationError
	if !errors.As(err, &aggErr) {
		t.Fatalf("error = %v, want *AggregationError", err)
	}
}

func TestAggregateTargetWithoutDay(t *testing.T) {
	doc := &model.Document{File: "a.day", Colours: map[string]model.Colour{}}
	_, err := Aggregate([]*model.Document{doc}, nil)
	var aggErr *AggregationError
	if !errors.As(err, &aggErr) {
		t.Fatalf("error = %v, want *AggregationError", err)
	}
}

func TestAggregateRejectsInvalidColour(t *testing.T) {
	doc := targetDoc("a.day", model.Date{Day: 1, Month: 1, Year: 2024},
		map[string]model.Colour{"sleep": "not-a-colour"})
	_, err := Aggregate([]*model.Document{doc}, nil)
	var aggErr *AggregationError
	if !errors.As(err, &aggErr) {
		t.Fatalf("error = %v, want *AggregationError", err)
	}
}

func TestAggregateLeavesUnresolvedKeysAlone(t *testing.T) {
	doc := targetDoc("a.day", model.Date{Day: 1, Month: 1, Year: 2024}, nil,
		model.Event{Key: "uncoloured", Kind: model.KindMarker, At: model.Time{Hour: 1}})

	bundle, err := Aggregate([]*model.Document{doc}, nil)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}
	if _, ok := bundle.Palette["uncoloured"]; ok {
		t.Error("aggregator invented a colour for an uncoloured key")
	}
}
