package privatejets

import (
	"fmt"
	"time"

	"github.com/skypies/geo"
)

// TrackIntersection is a run of consecutive trackpoints, t[I] to t[J], that lie inside some
// region.
type TrackIntersection struct {
	Start, End Trackpoint
	I, J       int
}

func (ti TrackIntersection) Duration() time.Duration {
	return ti.End.TimestampUTC.Sub(ti.Start.TimestampUTC)
}

func (ti TrackIntersection) String() string {
	return fmt.Sprintf("[%d,%d] %s-%s (%s), alt %s -> %s", ti.I, ti.J,
		ti.Start.TimestampUTC.Format("15:04:05"), ti.End.TimestampUTC.Format("15:04:05"),
		ti.Duration(), altString(ti.Start), altString(ti.End))
}

func altString(tp Trackpoint) string {
	if tp.OnGround {
		return "gnd"
	} else if !tp.AltitudeValid {
		return "----"
	}
	return fmt.Sprintf("%.0fft", tp.Altitude)
}

// IntersectWith finds the first run of points inside the box. Note that an intersection may
// have only one point inside it, and that a line between two points that crosses the box
// without either point landing inside is not found.
func (t Track) IntersectWith(box geo.LatlongBox) (*TrackIntersection, bool) {
	iStart, iEnd := -1, -1
	for i, tp := range t {
		if iStart < 0 {
			if box.Contains(tp.Latlong) {
				iStart = i
			}
		} else if !box.Contains(tp.Latlong) {
			iEnd = i - 1
			break
		}
	}

	if iStart < 0 {
		return nil, false
	}
	if iEnd < 0 {
		iEnd = len(t) - 1 // track ended inside the box
	}

	return &TrackIntersection{Start: t[iStart], End: t[iEnd], I: iStart, J: iEnd}, true
}
