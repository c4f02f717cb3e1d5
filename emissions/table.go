// Package emissions turns legs into CO2e estimates, for the private flight and for the
// same trip flown commercially in first class, and puts both in terms of one person's
// yearly emissions.
package emissions

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

var ErrMissingEmissionsFactor = errors.New("missing emissions factor")

// A Bracket covers all distances up to MaxDistanceKM (and above the previous bracket's
// limit). Each flight gets DetourKM added, for taxi, holding and non-direct routing.
type Bracket struct {
	Name              string
	MaxDistanceKM     float64
	DetourKM          float64
	PrivateKgPerKM    float64 // kg CO2e per km, whole aircraft
	CommercialKgPerKM float64 // kg CO2e per km, one first class seat
}

func (b Bracket) String() string {
	return fmt.Sprintf("%s(<=%.0fKM, +%.0fKM, %.2f/%.2f kg/KM)", b.Name, b.MaxDistanceKM,
		b.DetourKM, b.PrivateKgPerKM, b.CommercialKgPerKM)
}

// A Table is the configuration for a Calculator; brackets must be in ascending order.
type Table struct {
	Brackets           []Bracket
	Country            string
	CitizenTonsPerYear float64 // tons CO2e per person per year
	Source             string  // where the factors come from
}

// CommercialToPrivateRatio is how many times more a private jet emits than a commercial
// first class seat, over the same route. Published estimates run from 5 to 14.
const CommercialToPrivateRatio = 10.0

// DefaultTable uses myclimate.org's first class figures for the commercial side, and
// CommercialToPrivateRatio times that for the private flight. The citizen figure is
// Denmark's.
func DefaultTable() Table {
	commercial := []Bracket{
		{Name: "short", MaxDistanceKM: 1500, DetourKM: 95, CommercialKgPerKM: 0.39},
		{Name: "medium", MaxDistanceKM: 4000, DetourKM: 95, CommercialKgPerKM: 0.36},
		{Name: "long", MaxDistanceKM: 20000, DetourKM: 95, CommercialKgPerKM: 0.42},
	}
	for i := range commercial {
		commercial[i].PrivateKgPerKM = commercial[i].CommercialKgPerKM * CommercialToPrivateRatio
	}

	dk := Denmark()
	return Table{
		Brackets:           commercial,
		Country:            dk.Name,
		CitizenTonsPerYear: dk.TonsPerYear,
		Source: "Commercial first class based on myclimate.org (retrieved 2023-10-19); " +
			"private jets at 10x, per transportenvironment.org",
	}
}

// ForCountry returns a copy of the table, normalized against the country's citizens.
func (t Table) ForCountry(c Country) Table {
	t.Country = c.Name
	t.CitizenTonsPerYear = c.TonsPerYear
	return t
}

func validFactor(f float64) bool { return f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0) }

// Validate checks that every bracket can produce a number.
func (t Table) Validate() error {
	if len(t.Brackets) == 0 {
		return fmt.Errorf("emissions table: no brackets: %w", ErrMissingEmissionsFactor)
	}
	prev := 0.0
	for i, b := range t.Brackets {
		if !validFactor(b.PrivateKgPerKM) {
			return fmt.Errorf("bracket %d (%s): private factor %v: %w", i, b.Name, b.PrivateKgPerKM,
				ErrMissingEmissionsFactor)
		} else if !validFactor(b.CommercialKgPerKM) {
			return fmt.Errorf("bracket %d (%s): commercial factor %v: %w", i, b.Name,
				b.CommercialKgPerKM, ErrMissingEmissionsFactor)
		} else if b.DetourKM < 0 || math.IsNaN(b.DetourKM) {
			return fmt.Errorf("bracket %d (%s): bad detour %v: %w", i, b.Name, b.DetourKM,
				ErrMissingEmissionsFactor)
		} else if b.MaxDistanceKM <= prev {
			return fmt.Errorf("bracket %d (%s): limit %.0fKM not above previous %.0fKM", i, b.Name,
				b.MaxDistanceKM, prev)
		}
		prev = b.MaxDistanceKM
	}
	if !validFactor(t.CitizenTonsPerYear) {
		return fmt.Errorf("emissions table: citizen tons/year %v: %w", t.CitizenTonsPerYear,
			ErrMissingEmissionsFactor)
	}
	return nil
}

// BracketFor picks the first bracket whose limit covers the distance; distances beyond
// the last bracket use the last bracket.
func (t Table) BracketFor(km float64) (Bracket, error) {
	if len(t.Brackets) == 0 {
		return Bracket{}, ErrMissingEmissionsFactor
	}
	for _, b := range t.Brackets {
		if km <= b.MaxDistanceKM {
			return b, nil
		}
	}
	return t.Brackets[len(t.Brackets)-1], nil
}

// LoadTable reads a JSON encoded Table, and validates it.
func LoadTable(filename string) (Table, error) {
	t := Table{}
	b, err := os.ReadFile(filename)
	if err != nil {
		return t, fmt.Errorf("LoadTable: %v", err)
	}
	if err := json.Unmarshal(b, &t); err != nil {
		return t, fmt.Errorf("LoadTable %s: %v", filename, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("LoadTable %s: %w", filename, err)
	}
	return t, nil
}
