package chart

import (
	"fmt"
	"strconv"

	"daycircle/internal/model"
)

// hourPalette is the 24-entry background colour wheel, one colour per
// hour wedge, following a sun cycle: night, dawn, daylight, dusk.
var hourPalette = buildHourPalette()

func buildHourPalette() []string {
	colours := make([]string, 0, 24)
	colours = append(colours, blend("#0e0c09", "#080605", 5)...) // 0000-0400
	colours = append(colours, "#4f454b", "#f6b697", "#d5bd9e")   // 0500-0700
	colours = append(colours, blend("#b2bbaf", "#7c96a5", 5)...) // 0800-1200
	for i := 0; i < 5; i++ {                                     // 1300-1700
		colours = append(colours, "#7c96a5")
	}
	colours = append(colours, blend("#272f42", "#080605", 3)...) // 1800-2000
	colours = append(colours, blend("#080605", "#0e0c09", 3)...) // 2100-2300
	return colours
}

// Fallback cycles for events whose key has no palette entry. Ranges use
// a pastel cycle, markers a saturated one, so the two shapes stay
// visually distinct even uncoloured.
var (
	rangeFallback = []string{
		"#a1c9f4", "#8de5a1", "#ff9f9b", "#d0bbff", "#fffea3", "#b9f2f0",
	}
	markerFallback = []string{
		"#f77189", "#bb9832", "#50b131", "#36ada4", "#3ba3ec", "#e866f4",
	}
)

// blend linearly interpolates between two "#rrggbb" colours, endpoints
// inclusive, returning n colours.
func blend(from, to string, n int) []string {
	if n <= 1 {
		return []string{from}
	}
	fr, fg, fb := splitRGB(from)
	tr, tg, tb := splitRGB(to)

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		f := float64(i) / float64(n-1)
		r := lerp(fr, tr, f)
		g := lerp(fg, tg, f)
		b := lerp(fb, tb, f)
		out = append(out, fmt.Sprintf("#%02x%02x%02x", r, g, b))
	}
	return out
}

func splitRGB(hex string) (r, g, b int) {
	v, _ := strconv.ParseUint(hex[1:], 16, 32)
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func lerp(a, b int, f float64) int {
	return a + int(f*float64(b-a)+0.5)
}

// eventColour resolves the display colour for one event: the resolved
// palette first, then the configured fallback palette, then a
// deterministic per-kind cycle keyed by declaration index.
func eventColour(ev model.Event, idx int, palette, fallbacks model.Palette) string {
	if c, ok := palette[ev.Key]; ok {
		return c.Hex()
	}
	if c, ok := fallbacks[ev.Key]; ok {
		return c.Hex()
	}
	if ev.Kind == model.KindMarker {
		return markerFallback[idx%len(markerFallback)]
	}
	return rangeFallback[idx%len(rangeFallback)]
}
