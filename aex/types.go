package aex

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/skypies/geo"

	pj "github.com/simonsan-contrib/private-jets"
)

// TraceFull is the per-aircraft, per-day history file the globe viewer loads when you
// click "show trace".
type TraceFull struct {
	Icao         string       `json:"icao"`  // "45d2ed"
	Registration string       `json:"r"`     // "OY-GFS"
	Type         string       `json:"t"`     // "C25B"
	Description  string       `json:"desc"`  // "CESSNA 525B CITATIONJET CJ3"
	Owner        string       `json:"ownOp"` // owner/operator, when known
	Year         string       `json:"year"`  // "2007"
	Timestamp    float64      `json:"timestamp"`
	Trace        []TraceEntry `json:"trace"`
}

// A TraceEntry is one row of the trace array:
//  [0] seconds after TraceFull.Timestamp
//  [1] lat
//  [2] long
//  [3] barometric altitude in feet, the string "ground", or null
//  [4] ground speed in knots, or null
//  [5] track in degrees, or null
//  [6] flags (bit 0: stale position, bit 1: start of a new leg)
//  [7] vertical rate in ft/min, or null
// Anything after that (aircraft details, geometric altitude, etc) is ignored.
type TraceEntry []interface{}

const (
	FlagStale  = 1
	FlagNewLeg = 2
)

func (te TraceEntry) float(i int) (float64, bool) {
	if i >= len(te) {
		return 0, false
	}
	f, ok := te[i].(float64)
	if ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return 0, false
	}
	return f, ok
}

func (te TraceEntry) Flags() int {
	f, _ := te.float(6)
	return int(f)
}

// ToTrackpoint decodes the entry. An error means the row is unusable (no time or no
// position); a missing altitude just leaves AltitudeValid false.
func (te TraceEntry) ToTrackpoint(base time.Time) (pj.Trackpoint, error) {
	tp := pj.Trackpoint{DataSource: "AEX"}

	dt, ok := te.float(0)
	if !ok {
		return tp, fmt.Errorf("trace entry %v: no time offset", []interface{}(te))
	}
	lat, okLat := te.float(1)
	long, okLong := te.float(2)
	if !okLat || !okLong {
		return tp, fmt.Errorf("trace entry %v: no position", []interface{}(te))
	}

	tp.TimestampUTC = base.Add(time.Duration(dt * float64(time.Second))).UTC()
	tp.Latlong = geo.Latlong{Lat: lat, Long: long}

	if len(te) > 3 {
		switch alt := te[3].(type) {
		case string:
			tp.OnGround = (alt == "ground")
		case float64:
			tp.Altitude, tp.AltitudeValid = alt, !math.IsNaN(alt)
		}
	}
	if gs, ok := te.float(4); ok {
		tp.GroundSpeed = gs
	}
	if trk, ok := te.float(5); ok {
		tp.Heading = trk
	}
	if vr, ok := te.float(7); ok {
		tp.VerticalRate = vr
	}

	return tp, nil
}

// ParseTrace decodes the body of a trace_full file.
func ParseTrace(b []byte) (*TraceFull, error) {
	tf := TraceFull{}
	if err := json.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("AEx/Decode error:%v", err)
	}
	return &tf, nil
}

func (tf TraceFull) Start() time.Time {
	secs, frac := math.Modf(tf.Timestamp)
	return time.Unix(int64(secs), int64(frac*1e9)).UTC()
}

// ToTrack converts every usable row; the number of rows skipped is returned alongside.
func (tf TraceFull) ToTrack() (pj.Track, int) {
	base := tf.Start()
	t := pj.Track{}
	skipped := 0
	for _, te := range tf.Trace {
		if tp, err := te.ToTrackpoint(base); err != nil {
			skipped++
		} else {
			t = append(t, tp)
		}
	}
	return t, skipped
}

func (tf TraceFull) Airframe() pj.Airframe {
	return pj.Airframe{
		Icao24:       tf.Icao,
		Registration: tf.Registration,
		Model:        tf.Description,
		Owner:        tf.Owner,
	}
}

func (tf TraceFull) String() string {
	return fmt.Sprintf("[%s] %s %s, %d entries from %s", tf.Icao, tf.Registration, tf.Type,
		len(tf.Trace), tf.Start().Format("2006.01.02 15:04:05"))
}
