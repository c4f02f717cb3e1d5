package privatejets

import (
	"fmt"
	"math"
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/geo"
)

// Trackpoint is a data point that locates an aircraft in space and time, as reported in
// a position trace.
type Trackpoint struct {
	DataSource   string    // What kind of trackpoint is this; "AEX" trace, local ADSB, etc
	ReceiverName string    // For local ADSB
	TimestampUTC time.Time // Always in UTC, to make life SIMPLE

	geo.Latlong // Embedded type, so we can call all the geo stuff directly on trackpoints

	Altitude      float64 // Barometric altitude, in feet. Only meaningful if AltitudeValid.
	AltitudeValid bool    // False when the trace had no (or junk) altitude for this point
	OnGround      bool    // The transponder reported the aircraft as on the ground
	GroundSpeed   float64 // In knots; zero if not reported
	Heading       float64 // [0.0, 360.0) degrees
	VerticalRate  float64 // In feet per minute
}

func (tp Trackpoint) String() string {
	alt := "----"
	if tp.OnGround {
		alt = "gnd"
	} else if tp.AltitudeValid {
		alt = fmt.Sprintf("%.0fft", tp.Altitude)
	}
	return fmt.Sprintf("[%s] %s %s, %.0fkts", tp.TimestampUTC.Format("15:04:05"), tp.Latlong,
		alt, tp.GroundSpeed)
}

func (tp Trackpoint) LongSource() string {
	switch tp.DataSource {
	case "":
		return "(none specified)"
	case "AEX":
		return "ADS-B Exchange, trace history"
	case "ADSB":
		return "Private receiver, ADS-B Mode-ES (" + tp.ReceiverName + ")"
	}
	return tp.DataSource
}

// HasUsablePosition is false for points whose lat/long can't be placed on the globe.
func (tp Trackpoint) HasUsablePosition() bool {
	lat, long := tp.Lat, tp.Long
	if math.IsNaN(lat) || math.IsNaN(long) || math.IsInf(lat, 0) || math.IsInf(long, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && long >= -180 && long <= 180
}

// HasUsableAltitude is true if we can tell whether the point was airborne; a ground flag
// counts, even when no altitude was sent.
func (tp Trackpoint) HasUsableAltitude() bool {
	if tp.OnGround {
		return true
	}
	return tp.AltitudeValid && !math.IsNaN(tp.Altitude)
}

// IsGrounded combines both signals with OR semantics: either the reported flag, or an
// altitude below the threshold. Altitude wins when the flag says airborne, since some
// transponders never report their ground status.
func (tp Trackpoint) IsGrounded(thresholdFeet float64) bool {
	if tp.OnGround {
		return true
	}
	return tp.AltitudeValid && tp.Altitude < thresholdFeet
}

// TrackpointFromADSB converts a single message. Surface messages carry no altitude, so
// the ground flag is what marks them as grounded.
func TrackpointFromADSB(m *adsb.CompositeMsg) Trackpoint {
	return Trackpoint{
		DataSource:    "ADSB",
		ReceiverName:  m.ReceiverName,
		TimestampUTC:  m.GeneratedTimestampUTC,
		Latlong:       m.Position,
		Altitude:      float64(m.Altitude),
		AltitudeValid: m.Altitude != 0, // zero means the message carried no altitude
		GroundSpeed:   float64(m.GroundSpeed),
		Heading:       float64(m.Track),
		VerticalRate:  float64(m.VerticalRate),
		OnGround:      m.IsOnGround,
	}
}
