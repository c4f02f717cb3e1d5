package privatejets

import (
	"fmt"
	"time"

	"github.com/skypies/geo"
)

// A Leg is one continuous airborne period: from the last ground sighting before takeoff
// (or the first airborne point, if there wasn't one) to the last airborne point before
// landing (or the end of the day's trace).
type Leg struct {
	Start      Trackpoint
	End        Trackpoint
	DistanceKM float64       // great circle, Start to End
	Duration   time.Duration // End minus Start; always positive

	Path Track // every usable point from Start to End, inclusive
}

func newLeg(start, end Trackpoint, path Track) Leg {
	return Leg{
		Start:      start,
		End:        end,
		DistanceKM: GreatCircleKM(start.Latlong, end.Latlong),
		Duration:   end.TimestampUTC.Sub(start.TimestampUTC),
		Path:       path,
	}
}

func (l Leg) String() string {
	return fmt.Sprintf("%s -> %s, %.1fKM (%.0f deg), %s", l.Start, l.End, l.DistanceKM,
		l.Start.BearingTowards(l.End.Latlong), l.Duration)
}

// PathKM is the distance flown along the reported positions. It is always at least as
// long as DistanceKM, and is not used for emissions.
func (l Leg) PathKM() float64 { return l.Path.PathKM() }

// PassesThrough is true if any point of the leg lies within the box.
func (l Leg) PassesThrough(box geo.LatlongBox) bool {
	if len(l.Path) == 0 {
		return box.Contains(l.Start.Latlong) || box.Contains(l.End.Latlong)
	}
	return l.Path.PassesThrough(box)
}

// Visit is the leg's first stay inside the box, if it had one.
func (l Leg) Visit(box geo.LatlongBox) (*TrackIntersection, bool) {
	if len(l.Path) == 0 {
		return Track{l.Start, l.End}.IntersectWith(box)
	}
	return l.Path.IntersectWith(box)
}

// Precedes is true if l ends no later than l2 starts.
func (l Leg) Precedes(l2 Leg) bool {
	return !l.End.TimestampUTC.After(l2.Start.TimestampUTC)
}
