package privatejets

import (
	"fmt"
	"sort"
	"time"

	pgeo "github.com/paulmach/go.geo"
	"github.com/skypies/geo"
	"github.com/skypies/util/date"
)

// A Track is a slice of Trackpoints. They are ordered in time, beginning to end.
type Track []Trackpoint

type byTimestampAscending Track

func (a byTimestampAscending) Len() int      { return len(a) }
func (a byTimestampAscending) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byTimestampAscending) Less(i, j int) bool {
	return a[i].TimestampUTC.Before(a[j].TimestampUTC)
}

func (t Track) Start() time.Time        { return t[0].TimestampUTC }
func (t Track) End() time.Time          { return t[len(t)-1].TimestampUTC }
func (t Track) Times() (s, e time.Time) { return t.Start(), t.End() }
func (t Track) Duration() time.Duration { return t.End().Sub(t.Start()) }

func (t Track) String() string {
	if len(t) == 0 {
		return "Track: 0 points"
	}
	str := fmt.Sprintf("Track: %d points, start=%s", len(t),
		t[0].TimestampUTC.Format("2006.01.02 15:04:05"))
	if len(t) > 1 {
		s, e := t[0], t[len(t)-1]
		str += fmt.Sprintf(", %s, %.1fKM (%.0f deg)",
			e.TimestampUTC.Sub(s.TimestampUTC), GreatCircleKM(s.Latlong, e.Latlong),
			s.BearingTowards(e.Latlong))
		str += fmt.Sprintf(", src=%s", s.DataSource)
	}
	return str
}

func (t Track) LongSource() string {
	if len(t) == 0 {
		return "(no trackpoints)"
	}
	return t[0].LongSource()
}

// Merge folds t2 into t1, and re-sorts. Used when a day's data arrives in more than one
// fragment.
func (t1 *Track) Merge(t2 *Track) {
	*t1 = append(*t1, (*t2)...)
	sort.Stable(byTimestampAscending(*t1))
}

// CheckOrdering returns an *OutOfOrderError for the first point whose timestamp goes
// backwards, or nil if the track is non-decreasing throughout.
func (t Track) CheckOrdering() error {
	for i := 1; i < len(t); i++ {
		if t[i].TimestampUTC.Before(t[i-1].TimestampUTC) {
			return &OutOfOrderError{Index: i, Prev: t[i-1].TimestampUTC, Got: t[i].TimestampUTC}
		}
	}
	return nil
}

// ReliablePrefix returns the part of the track before the first ordering violation, along
// with the violation (if any).
func (t Track) ReliablePrefix() (Track, error) {
	err := t.CheckOrdering()
	if ooe, ok := err.(*OutOfOrderError); ok {
		return t[:ooe.Index], err
	}
	return t, nil
}

// Returns a (possibly empty) subtrack of points within [s,e] (inclusive).
// If padding is non-zero, we include that many additional points just to
// either side of the [s,e] (i.e neighboring points that don't quite lie in the range)
func (t *Track) TrimToTimes(s, e time.Time) *Track { return t.PaddedTrimToTimes(s, e, 0) }
func (t *Track) PaddedTrimToTimes(s, e time.Time, n int) *Track {
	ret := Track{}
	for i, tp := range *t {
		if !tp.TimestampUTC.Before(s) && !tp.TimestampUTC.After(e) {
			if len(ret) == 0 && n > 0 && i >= n {
				// We're just about to add the first legit point; add padding !
				ret = append(ret, (*t)[i-n:i]...)
			}
			ret = append(ret, tp)
		} else {
			if len(ret) > 0 && n > 0 && i < len(*t)-n {
				// We've just passed the final point; add padding if we need, then bail
				ret = append(ret, (*t)[i+1:i+n+1]...)
				return &ret
			}
		}
	}
	return &ret
}

// TrimToUTCDay keeps only the points that fall within the UTC calendar day containing t.
func (tr *Track) TrimToUTCDay(t time.Time) *Track {
	s := date.TruncateToUTCDay(t)
	e := s.AddDate(0, 0, 1).Add(-1 * time.Nanosecond)
	return tr.TrimToTimes(s, e)
}

// PathKM is the length of the path through every point, rather than the straight
// great-circle line between the ends.
func (t Track) PathKM() float64 {
	if len(t) < 2 {
		return 0.0
	}
	path := pgeo.NewPath()
	for _, tp := range t {
		path.Push(pgeo.NewPoint(tp.Long, tp.Lat))
	}
	return path.GeoDistance(true) / 1000.0 // metres, via haversine
}

// PassesThrough is true if any point in the track lies inside the box.
func (t Track) PassesThrough(box geo.LatlongBox) bool {
	_, ok := t.IntersectWith(box)
	return ok
}
