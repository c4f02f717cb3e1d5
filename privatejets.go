// This package contains the types for turning a day of position reports into flight legs:
// trackpoints, tracks, legs and the segmenter. No network or storage imports.
package privatejets

const (
	// Legs shorter than this are the ones most easily replaced by a train or a car; the
	// story counts them separately.
	ShortLegKM = 300.0
)

// CountShortLegs splits legs into those shorter than ShortLegKM, and the rest.
func CountShortLegs(legs []Leg) (short, long int) {
	for _, l := range legs {
		if l.DistanceKM < ShortLegKM {
			short++
		} else {
			long++
		}
	}
	return
}
