package aex

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/skypies/adsb"

	pj "github.com/simonsan-contrib/private-jets"
)

// TrackFromADSB builds a day's track out of messages from a local receiver, for aircraft
// that ADS-B Exchange doesn't have.
func TrackFromADSB(msgs []*adsb.CompositeMsg) (pj.Track, pj.Airframe) {
	frag := pj.MessagesToTrackFragment(msgs)
	if frag == nil {
		return pj.Track{}, pj.Airframe{}
	}
	return frag.Track, frag.Airframe()
}

// ReadReceiverDump reads a local receiver's log, one base64 batch of messages per line (as
// the receiver uploads them), and returns a fragment per batch for the given aircraft.
func ReadReceiverDump(r io.Reader, icao string) ([]*pj.TrackFragment, error) {
	icao = strings.ToLower(icao)
	frags := []*pj.TrackFragment{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		msgs, err := adsb.Base64DecodeMessages(line)
		if err != nil {
			return nil, fmt.Errorf("receiver dump, line %d: %v", n, err)
		}

		mine := []*adsb.CompositeMsg{}
		for _, m := range msgs {
			if icao == "" || strings.ToLower(string(m.Icao24)) == icao {
				mine = append(mine, m)
			}
		}
		if frag := pj.MessagesToTrackFragment(mine); frag != nil {
			frags = append(frags, frag)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("receiver dump: %v", err)
	}
	return frags, nil
}

// TrackFromReceiverDump is ReadReceiverDump, with the fragments glued into one track.
func TrackFromReceiverDump(r io.Reader, icao string) (pj.Track, pj.Airframe, error) {
	frags, err := ReadReceiverDump(r, icao)
	if err != nil {
		return nil, pj.Airframe{}, err
	}
	t, af := pj.MergeFragments(frags)
	return t, af, nil
}
