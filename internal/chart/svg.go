// Package chart renders one day of events as a circular 24-hour SVG
// chart: an hour wheel, one arc per range event, one tick per marker
// event, and a legend.
package chart

import (
	"fmt"
	"html"
	"math"
	"strings"

	"daycircle/internal/model"
)

// Canvas geometry. The chart is laid out on a fixed square canvas and
// scaled by the SVG viewport, so these are unitless.
const (
	canvasSize   = 640.0
	centerX      = canvasSize / 2
	centerY      = 300.0
	wheelRadius  = 170.0
	labelRadius  = 186.0
	arcRadius    = 215.0
	arcWidth     = 24.0
	markerLength = 244.0
	legendTop    = 556.0

	// Minimal visible span, in degrees, for zero-length ranges.
	minArcDeg = 1.5
)

// Options controls chart rendering.
type Options struct {
	// Font is the font family written into the SVG.
	Font string

	// Fallbacks is consulted for event keys the resolved palette does
	// not cover, before the built-in colour cycles.
	Fallbacks model.Palette

	// Size is the rendered width and height in pixels.
	Size int
}

// DefaultSize is the rendered chart size when Options.Size is zero.
const DefaultSize = 640

// Filename derives the output file name for one chart from its date,
// e.g. "25-10-2023.svg".
func Filename(date model.Date, format string) string {
	return date.String() + "." + format
}

// TimeToDeg converts a wall-clock time to a chart angle in math
// convention (0 degrees east, counterclockwise positive). 1200h lands
// at the top of the canvas, 0000h at the bottom, and time advances
// clockwise.
func TimeToDeg(t model.Time) float64 {
	h, m := t.Hour%24, t.Minute%60
	dh := float64(270 - h*15)
	if h >= 18 {
		dh += 360
	}
	return dh - 15*(float64(m)/60)
}

// Render produces the SVG document for one day chart.
func Render(day model.DayChart, palette model.Palette, opts Options) []byte {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Font == "" {
		opts.Font = "sans-serif"
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %g %g" font-family=%q>`+"\n",
		opts.Size, opts.Size, canvasSize, canvasSize, opts.Font)
	b.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")

	writeTitle(&b, day.Date)
	writeHourWheel(&b)
	writeEvents(&b, day.Events, palette, opts.Fallbacks)
	writeLegend(&b, day.Events, palette, opts.Fallbacks)

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func writeTitle(b *strings.Builder, date model.Date) {
	fmt.Fprintf(b,
		`<text x="%g" y="36" text-anchor="middle" font-size="22" fill="#333333">%s</text>`+"\n",
		centerX, date)
}

// writeHourWheel draws the 24 background wedges and their hour labels.
func writeHourWheel(b *strings.Builder) {
	for h := 0; h < 24; h++ {
		start := TimeToDeg(model.Time{Hour: h})
		end := start - 15
		p1x, p1y := pointAt(wheelRadius, start)
		p2x, p2y := pointAt(wheelRadius, end)
		fmt.Fprintf(b,
			`<path d="M%g,%g L%g,%g A%g,%g 0 0 1 %g,%g Z" fill="%s"/>`+"\n",
			centerX, centerY, p1x, p1y, wheelRadius, wheelRadius, p2x, p2y, hourPalette[h])

		lx, ly := pointAt(labelRadius, start-7.5)
		fmt.Fprintf(b,
			`<text x="%g" y="%g" text-anchor="middle" dominant-baseline="middle" font-size="13" fill="#555555">%d</text>`+"\n",
			lx, ly, h)
	}
}

func writeEvents(b *strings.Builder, events []model.Event, palette, fallbacks model.Palette) {
	rangeIdx, markerIdx := 0, 0
	for _, ev := range events {
		switch ev.Kind {
		case model.KindRange:
			colour := eventColour(ev, rangeIdx, palette, fallbacks)
			writeRangeArc(b, ev, colour)
			rangeIdx++
		case model.KindMarker:
			colour := eventColour(ev, markerIdx, palette, fallbacks)
			writeMarkerTick(b, ev, colour)
			markerIdx++
		}
	}
}

// writeRangeArc draws the arc covering [start, end]. A range whose end
// is numerically earlier than its start wraps past midnight; a
// zero-length range still gets a minimal visible slice.
func writeRangeArc(b *strings.Builder, ev model.Event, colour string) {
	span := ev.End.Minutes() - ev.Start.Minutes()
	if span < 0 {
		span += 24 * 60
	}
	deltaDeg := float64(span) / 4 // 1440 minutes over 360 degrees
	if deltaDeg < minArcDeg {
		deltaDeg = minArcDeg
	}

	startDeg := TimeToDeg(ev.Start)
	endDeg := startDeg - deltaDeg

	large := 0
	if deltaDeg > 180 {
		large = 1
	}

	p1x, p1y := pointAt(arcRadius, startDeg)
	p2x, p2y := pointAt(arcRadius, endDeg)
	fmt.Fprintf(b,
		`<path d="M%g,%g A%g,%g 0 %d 1 %g,%g" fill="none" stroke="%s" stroke-width="%g" stroke-linecap="butt"/>`+"\n",
		p1x, p1y, arcRadius, arcRadius, large, p2x, p2y, colour, arcWidth)
}

func writeMarkerTick(b *strings.Builder, ev model.Event, colour string) {
	x, y := pointAt(markerLength, TimeToDeg(ev.At))
	fmt.Fprintf(b,
		`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="4" stroke-linecap="round"/>`+"\n",
		centerX, centerY, x, y, colour)
}

// writeLegend lists each distinct event key once, in declaration order,
// with the same colour its shape was drawn in.
func writeLegend(b *strings.Builder, events []model.Event, palette, fallbacks model.Palette) {
	type entry struct {
		key    string
		colour string
	}

	seen := make(map[string]bool)
	entries := make([]entry, 0, len(events))
	rangeIdx, markerIdx := 0, 0
	for _, ev := range events {
		idx := rangeIdx
		if ev.Kind == model.KindMarker {
			idx = markerIdx
		}
		colour := eventColour(ev, idx, palette, fallbacks)
		if ev.Kind == model.KindMarker {
			markerIdx++
		} else {
			rangeIdx++
		}
		if seen[ev.Key] {
			continue
		}
		seen[ev.Key] = true
		entries = append(entries, entry{key: ev.Key, colour: colour})
	}

	const (
		perRow   = 4
		cellW    = 150.0
		rowH     = 24.0
		swatch   = 12.0
		leftPad  = 26.0
		textGap  = 18.0
		fontSize = 13
	)
	for i, en := range entries {
		x := leftPad + float64(i%perRow)*cellW
		y := legendTop + float64(i/perRow)*rowH
		fmt.Fprintf(b,
			`<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n",
			x, y, swatch, swatch, en.colour)
		fmt.Fprintf(b,
			`<text x="%g" y="%g" font-size="%d" dominant-baseline="middle" fill="#333333">%s</text>`+"\n",
			x+textGap, y+swatch/2, fontSize, html.EscapeString(en.key))
	}
}

// pointAt maps a radius and math-convention angle in degrees to canvas
// coordinates (y grows downward). Coordinates are rounded to keep the
// emitted paths compact.
func pointAt(radius, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return round3(centerX + radius*math.Cos(rad)), round3(centerY - radius*math.Sin(rad))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
