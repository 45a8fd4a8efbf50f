// Package glucose holds the analytics core: unit conversion, reading
// validation, severity classification and window aggregation. Everything
// here is pure; storage and transport live elsewhere.
package glucose

import "math"

// MgdlPerMmol converts between the display unit (mmol/L) and the canonical
// storage unit (mg/dL). Defined once; every conversion and threshold goes
// through it.
const MgdlPerMmol = 18.0

// ToCanonical converts a display-unit value to the canonical integer unit,
// rounding half away from zero (math.Round).
func ToCanonical(mmol float64) int {
	return int(math.Round(mmol * MgdlPerMmol))
}

// FromCanonical converts a canonical value back to the display unit. The
// result is left unrounded; display precision is the caller's concern.
func FromCanonical(mgdl int) float64 {
	return float64(mgdl) / MgdlPerMmol
}
