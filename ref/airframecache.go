package ref

import (
	"fmt"
	"io"
	"sort"
	"strings"

	pj "github.com/simonsan-contrib/private-jets"
)

// We build a big map, from Icao24 ADS-B Mode-S identifiers, to static data about the
// physical airframe. The registration index is how tail numbers get resolved.
type AirframeCache struct {
	Map   map[string]*pj.Airframe
	byReg map[string]string
}

func BlankAirframeCache() *AirframeCache {
	return &AirframeCache{Map: map[string]*pj.Airframe{}, byReg: map[string]string{}}
}

func normIcao(id string) string { return strings.ToLower(strings.TrimSpace(id)) }
func normReg(r string) string   { return pj.NewRegistration(r).String() }

func (ac *AirframeCache) Get(id string) *pj.Airframe { return ac.Map[normIcao(id)] }

func (ac *AirframeCache) Set(af *pj.Airframe) {
	af.Icao24 = normIcao(af.Icao24)
	if old, exists := ac.Map[af.Icao24]; exists && old.Registration != af.Registration {
		delete(ac.byReg, normReg(old.Registration))
	}
	ac.Map[af.Icao24] = af
	if af.Registration != "" {
		ac.byReg[normReg(af.Registration)] = af.Icao24
	}
}

// LookupRegistration resolves a tail number to an icao24 id.
func (ac *AirframeCache) LookupRegistration(reg string) (string, error) {
	if icao, exists := ac.byReg[normReg(reg)]; exists {
		return icao, nil
	}
	return "", fmt.Errorf("registration %q not found in %d airframes", reg, len(ac.Map))
}

// InRegister returns the airframes whose registrations carry the prefix, sorted.
func (ac *AirframeCache) InRegister(prefix string) []*pj.Airframe {
	ret := []*pj.Airframe{}
	for _, af := range ac.Map {
		if af.ParsedRegistration().InRegister(prefix) {
			ret = append(ret, af)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Registration < ret[j].Registration })
	return ret
}

func (ac AirframeCache) String() string {
	str := fmt.Sprintf("--- airframe cache (%d entries) ---\n", len(ac.Map))
	for _, v := range ac.Map {
		str += fmt.Sprintf(" %s\n", v)
	}
	return str
}

// LoadAirframesCSV reads rows of icao,registration,model (and optionally owner).
func LoadAirframesCSV(r io.Reader) (*AirframeCache, error) {
	rows, err := readCSV(r, "icao", "registration", "model")
	if err != nil {
		return nil, err
	}

	ac := BlankAirframeCache()
	for i, row := range rows {
		if row["icao"] == "" {
			return nil, fmt.Errorf("row %d: no icao", i+2)
		}
		ac.Set(&pj.Airframe{
			Icao24:       row["icao"],
			Registration: row["registration"],
			Model:        row["model"],
			Owner:        row["owner"],
		})
	}
	return ac, nil
}
