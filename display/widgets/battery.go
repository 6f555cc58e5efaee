package widgets

import "strings"

// Charging marker prefixed to the battery glyph.
const chargingBolt = "⚡"

// BatteryGlyph returns a four-cell battery icon for percent, with a bolt
// when charging. Buckets: above 80 shows four cells, above 60 three,
// above 40 two, above 20 one, otherwise none.
func BatteryGlyph(percent float64, charging bool) string {
	var cells int
	switch {
	case percent > 80:
		cells = 4
	case percent > 60:
		cells = 3
	case percent > 40:
		cells = 2
	case percent > 20:
		cells = 1
	}

	glyph := "[" + strings.Repeat("█", cells) + strings.Repeat(" ", 4-cells) + "]"
	if charging {
		return chargingBolt + glyph
	}
	return glyph
}
