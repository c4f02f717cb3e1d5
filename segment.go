package privatejets

import (
	"time"
)

// SegmenterConfig holds the reference constants that drive leg segmentation.
type SegmenterConfig struct {
	GroundAltitudeFeet float64 // below this, a point counts as on the ground

	// The noise filter: a candidate leg must be at least this long, in both distance and
	// time, or it is silently dropped. A dip to the ground that lasts less than MinDuration
	// is noise too, and doesn't split the leg.
	MinDistanceKM float64
	MinDuration   time.Duration

	// If true, a trace going backwards in time is an error; otherwise the trace is
	// trusted only up to the violation.
	Strict bool

	Logger func(format string, args ...interface{}) // optional
}

func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		GroundAltitudeFeet: 1000,
		MinDistanceKM:      1.0,
		MinDuration:        5 * time.Minute,
	}
}

type Segmenter struct {
	SegmenterConfig // embedded
}

func NewSegmenter(cfg SegmenterConfig) *Segmenter {
	if cfg.GroundAltitudeFeet == 0 {
		cfg.GroundAltitudeFeet = DefaultSegmenterConfig().GroundAltitudeFeet
	}
	return &Segmenter{SegmenterConfig: cfg}
}

func (s *Segmenter) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger(format, args...)
	}
}

// Segment runs the whole trace, and returns its legs in chronological order. A trace
// that never leaves the ground yields no legs, and no error.
func (s *Segmenter) Segment(t Track) ([]Leg, error) {
	legs := []Leg{}
	it := s.NewLegIterator(t)
	for it.Iterate() {
		legs = append(legs, it.Leg())
	}
	if it.Err() != nil {
		return nil, it.Err()
	}
	return legs, nil
}

// {{{ LegIterator

/*

 it := segmenter.NewLegIterator(track)
 for it.Iterate() {
   leg := it.Leg()
   ...
 }
 if it.Err() != nil { ... }

*/

type openLeg struct {
	start Trackpoint
	last  Trackpoint // most recent airborne point
	path  Track
	dip   Track // ground points seen since the last airborne point
}

// LegIterator produces legs lazily, as it consumes the trace.
type LegIterator struct {
	s       *Segmenter
	track   Track
	i       int
	checked bool

	nUsable    int
	lastGround *Trackpoint // most recent ground point, while no leg is open
	open       *openLeg

	finished  bool
	val       Leg
	err       error
	violation error
}

func (s *Segmenter) NewLegIterator(t Track) *LegIterator {
	return &LegIterator{s: s, track: t}
}

func (it *LegIterator) Leg() Leg   { return it.val }
func (it *LegIterator) Err() error { return it.err }

// Violation returns the ordering problem that caused the trace to be truncated, in
// non-strict mode.
func (it *LegIterator) Violation() error { return it.violation }

func (it *LegIterator) Iterate() bool {
	if !it.checked {
		it.checked = true
		prefix, err := it.track.ReliablePrefix()
		if err != nil {
			if it.s.Strict {
				it.finished = true
				it.err = err
				return false
			}
			it.s.logf("segment: truncating trace: %v", err)
			it.violation = err
			it.track = prefix
		}
	}

	for !it.finished {
		if it.i >= len(it.track) {
			it.finished = true
			return it.finish()
		}

		tp := it.track[it.i]
		it.i++

		if !tp.HasUsablePosition() || !tp.HasUsableAltitude() {
			continue
		}
		it.nUsable++

		if leg, ok := it.step(tp); ok {
			it.val = leg
			return true
		}
	}
	return false
}

// step advances the state machine by one usable point, returning a leg if one closed.
func (it *LegIterator) step(tp Trackpoint) (Leg, bool) {
	grounded := tp.IsGrounded(it.s.GroundAltitudeFeet)

	if it.open == nil {
		if grounded {
			it.lastGround = &tp
			return Leg{}, false
		}
		// GROUND -> AIRBORNE (or the trace started airborne)
		o := &openLeg{start: tp, last: tp, path: Track{tp}}
		if it.lastGround != nil {
			o.start = *it.lastGround
			o.path = Track{*it.lastGround, tp}
		}
		it.open = o
		it.lastGround = nil
		return Leg{}, false
	}

	o := it.open
	if grounded {
		o.dip = append(o.dip, tp)
		return Leg{}, false
	}

	if len(o.dip) > 0 {
		if tp.TimestampUTC.Sub(o.dip[0].TimestampUTC) < it.s.MinDuration {
			// Too brief to be a landing; keep the leg going.
			o.path = append(o.path, o.dip...)
			o.dip = nil
		} else {
			// Landed, sat on the ground, and took off again.
			leg, ok := it.close(o)
			takeoff := o.dip[len(o.dip)-1]
			it.open = &openLeg{start: takeoff, last: tp, path: Track{takeoff, tp}}
			return leg, ok
		}
	}

	o.last = tp
	o.path = append(o.path, tp)
	return Leg{}, false
}

// finish handles the end of the trace.
func (it *LegIterator) finish() bool {
	if it.nUsable == 0 {
		it.err = ErrNoTraceData
		return false
	}
	if it.open == nil {
		return false
	}

	leg, ok := it.close(it.open)
	it.open = nil
	if ok {
		it.val = leg
	}
	return ok
}

// close ends the leg at its last airborne point, and applies the noise filter.
func (it *LegIterator) close(o *openLeg) (Leg, bool) {
	leg := newLeg(o.start, o.last, o.path)

	if leg.Duration <= 0 {
		return leg, false
	} else if leg.DistanceKM < it.s.MinDistanceKM || leg.Duration < it.s.MinDuration {
		it.s.logf("segment: dropping noise leg %s", leg)
		return leg, false
	}
	return leg, true
}

// }}}
