// Package geo converts between decimal degrees and the sexagesimal
// (degrees/minutes/seconds plus hemisphere) form used by EXIF GPS tags.
package geo

import (
	"fmt"
	"math"
)

// DegToDMS splits a decimal-degree value into whole degrees, whole minutes,
// fractional seconds and a hemisphere sign. Magnitude components are always
// non-negative; the sign is carried by hemisphere alone, which is -1 for
// negative input and +1 otherwise (zero maps to +1).
func DegToDMS(deg float64) (degrees, minutes int, seconds float64, hemisphere int) {
	hemisphere = 1
	if deg < 0 {
		hemisphere = -1
	}

	total := math.Abs(deg) * 3600
	wholeMinutes := math.Floor(total / 60)
	seconds = total - wholeMinutes*60

	degrees = int(wholeMinutes / 60)
	minutes = int(wholeMinutes) - degrees*60
	return degrees, minutes, seconds, hemisphere
}

// DMSToDeg is the inverse of DegToDMS.
func DMSToDeg(degrees, minutes int, seconds float64, hemisphere int) float64 {
	return float64(hemisphere) * (float64(degrees) + float64(minutes)/60 + seconds/3600)
}

// FormatDMS renders a coordinate as the space-separated "D M S" triple that
// exiftool accepts for GPS position tags, and picks the hemisphere reference
// letter for the axis (e.g. "N"/"S" for latitude).
func FormatDMS(deg float64, positiveRef, negativeRef string) (string, string) {
	d, m, s, hemi := DegToDMS(deg)
	ref := positiveRef
	if hemi < 0 {
		ref = negativeRef
	}

	// Round to the printed precision first: a seconds value that rounds to
	// 60 must carry into the minute, and a full minute into the degree.
	s = math.Round(s*1e6) / 1e6
	if s >= 60 {
		s = 0
		m++
		if m >= 60 {
			m = 0
			d++
		}
	}
	return fmt.Sprintf("%d %d %.6f", d, m, s), ref
}
