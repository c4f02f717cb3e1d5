package privatejets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skypies/adsb"
)

// A TrackFragment is part of a track, built from ADSB messages picked up by a local
// receiver. A series of these are glued together (via Track.Merge) to form a day's trace,
// as they are received in batches.
type TrackFragment struct {
	IcaoId   adsb.IcaoId
	Callsign string // Might not yet be populated
	Track           // embedded Track
}

// MessagesToTrackFragment sorts the messages in place.
func MessagesToTrackFragment(msgs []*adsb.CompositeMsg) *TrackFragment {
	if len(msgs) == 0 {
		return nil
	}

	sort.Sort(adsb.CompositeMsgPtrByTimeAsc(msgs))

	frag := TrackFragment{
		IcaoId:   msgs[0].Icao24,
		Callsign: strings.TrimSpace(msgs[0].Callsign),
	}

	for _, m := range msgs {
		if frag.Callsign == "" && m.Callsign != "" {
			frag.Callsign = strings.TrimSpace(m.Callsign)
		}
		if m.Position.Lat == 0 && m.Position.Long == 0 {
			continue // identification messages still name the aircraft
		}
		frag.Track = append(frag.Track, TrackpointFromADSB(m))
	}

	return &frag
}

// Airframe is as much as the fragment itself can tell us about the aircraft.
func (frag TrackFragment) Airframe() Airframe {
	af := Airframe{Icao24: strings.ToLower(string(frag.IcaoId))}
	if r, err := RegistrationFromCallsign(frag.Callsign); err == nil {
		af.Registration = r.String()
	}
	return af
}

func (frag TrackFragment) String() string {
	n := len(frag.Track)
	if n == 0 {
		return fmt.Sprintf("[%s/%s] (0 points)", frag.Callsign, frag.IcaoId)
	}
	return fmt.Sprintf("[%s/%s]%s %s +%s (%d points)", frag.Callsign, frag.IcaoId,
		frag.Track[0].DataSource, frag.Track[0].TimestampUTC.Format("15:04:05 MST"),
		frag.Track[n-1].TimestampUTC.Sub(frag.Track[0].TimestampUTC), n)
}

// MergeFragments glues a receiver's fragments for one aircraft into a single track, and
// says what the fragments know about the airframe.
func MergeFragments(frags []*TrackFragment) (Track, Airframe) {
	t := Track{}
	af := Airframe{}
	for _, frag := range frags {
		if frag == nil {
			continue
		}
		t.Merge(&frag.Track)
		af.Overlay(frag.Airframe())
	}
	return t, af
}
