// ABOUTME: Fixed-point Weight and Distance value types with parse/format rules.
// ABOUTME: Weight counts 10 g units, Distance counts 10 m units, both 1..65535.
package models

import (
	"fmt"
	"math"
	"strconv"
)

// maxUnits is the largest representable count of fixed-point units.
// 65535 units = 655.35 kg or 655.35 km.
const maxUnits = math.MaxUint16

// Weight is a recorded weight in 10-gram units (0.01 kg resolution).
// A Weight is always positive; "not recorded" is represented by a nil
// *Weight, never by zero.
type Weight uint16

// Distance is a recorded distance in 10-metre units (0.01 km resolution).
// Same invariants as Weight.
type Distance uint16

// parseUnits converts a decimal string in the natural unit (kg or km) to a
// fixed-point unit count, rounding half away from zero to two decimals.
// Returns false for non-finite, non-positive, unparseable, or overflowing
// input. Overflow is rejected, not clamped.
func parseUnits(text string) (uint16, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	units := math.Floor(v*100 + 0.5)
	if units <= 0 || units > maxUnits {
		return 0, false
	}
	return uint16(units), true
}

// ParseWeight parses a kilogram string like "82.5" into a Weight.
func ParseWeight(text string) (Weight, bool) {
	u, ok := parseUnits(text)
	return Weight(u), ok
}

// ParseDistance parses a kilometre string like "5.2" into a Distance.
func ParseDistance(text string) (Distance, bool) {
	u, ok := parseUnits(text)
	return Distance(u), ok
}

// formatUnits renders a unit count as a decimal string in the natural unit,
// stripping unnecessary fractional zeros: whole values print without
// decimals, tenths print one digit.
func formatUnits(u uint16) string {
	whole := u / 100
	frac := u % 100
	switch {
	case frac == 0:
		return strconv.Itoa(int(whole))
	case frac%10 == 0:
		return fmt.Sprintf("%d.%d", whole, frac/10)
	default:
		return fmt.Sprintf("%d.%02d", whole, frac)
	}
}

// Format returns the weight in kilograms without a unit suffix, e.g. "82.5".
func (w Weight) Format() string {
	return formatUnits(uint16(w))
}

// String returns the weight with its unit, e.g. "82.5 kg".
func (w Weight) String() string {
	return w.Format() + " kg"
}

// Kilograms returns the weight as a float for analytics.
func (w Weight) Kilograms() float64 {
	return float64(w) / 100
}

// Format returns the distance in kilometres without a unit suffix.
func (d Distance) Format() string {
	return formatUnits(uint16(d))
}

// String returns the distance with its unit. Distances under one kilometre
// print in metres, e.g. "850 m"; otherwise kilometres, e.g. "5.2 km".
func (d Distance) String() string {
	if d < 100 {
		return strconv.Itoa(int(d)*10) + " m"
	}
	return d.Format() + " km"
}

// Kilometres returns the distance as a float for analytics.
func (d Distance) Kilometres() float64 {
	return float64(d) / 100
}
