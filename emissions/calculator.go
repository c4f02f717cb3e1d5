package emissions

import (
	"fmt"
	"math"

	pj "github.com/simonsan-contrib/private-jets"
)

type Estimate struct {
	DistanceKM       float64
	Bracket          string
	ActualCO2eKg     float64 // the private flight
	CommercialCO2eKg float64 // one first class seat, same route
}

func (e Estimate) String() string {
	return fmt.Sprintf("%.0fKM [%s]: %.0fkg CO2e (commercial: %.0fkg)", e.DistanceKM, e.Bracket,
		e.ActualCO2eKg, e.CommercialCO2eKg)
}

// Ratio is how many commercial seats' worth of emissions the private flight produced.
func (e Estimate) Ratio() float64 {
	if e.CommercialCO2eKg == 0 {
		return 0
	}
	return e.ActualCO2eKg / e.CommercialCO2eKg
}

type Calculator struct {
	Table
}

// NewCalculator validates the table up front, so that a bad config fails before any leg
// is looked at.
func NewCalculator(t Table) (*Calculator, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{Table: t}, nil
}

// EstimateKM is the estimate for a flight of the given great circle distance. A zero
// distance has zero emissions; a distance that isn't a number is an error.
func (c *Calculator) EstimateKM(km float64) (Estimate, error) {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return Estimate{}, fmt.Errorf("invalid distance %v km", km)
	}
	b, err := c.BracketFor(km)
	if err != nil {
		return Estimate{}, err
	}
	e := Estimate{DistanceKM: km, Bracket: b.Name}
	if km <= 0 {
		e.DistanceKM = 0
		return e, nil
	}
	if b.PrivateKgPerKM <= 0 || b.CommercialKgPerKM <= 0 {
		return e, fmt.Errorf("bracket %s: %w", b.Name, ErrMissingEmissionsFactor)
	}

	e.ActualCO2eKg = b.PrivateKgPerKM * (km + b.DetourKM)
	e.CommercialCO2eKg = b.CommercialKgPerKM * (km + b.DetourKM)
	return e, nil
}

func (c *Calculator) Estimate(leg pj.Leg) (Estimate, error) {
	return c.EstimateKM(pj.GreatCircleKM(leg.Start.Latlong, leg.End.Latlong))
}

// CitizenShare is the estimate as a fraction of one citizen's yearly emissions.
func (c *Calculator) CitizenShare(e Estimate) float64 {
	return e.ActualCO2eKg / (c.CitizenTonsPerYear * 1000.0)
}

type LegEstimate struct {
	Leg          pj.Leg
	Estimate     Estimate
	CitizenShare float64
}

// A DaySummary is everything the renderers need about one aircraft's day (or, in country
// mode, one register's day).
type DaySummary struct {
	Legs []LegEstimate

	DistanceKM       float64
	ActualCO2eKg     float64
	CommercialCO2eKg float64
	CitizenYears     float64 // total actual emissions, in citizen-years
	ShortLegs        int     // under pj.ShortLegKM
	LongLegs         int

	Country            string
	CitizenTonsPerYear float64
}

func (s DaySummary) ActualCO2eTons() float64     { return s.ActualCO2eKg / 1000.0 }
func (s DaySummary) CommercialCO2eTons() float64 { return s.CommercialCO2eKg / 1000.0 }

func (s DaySummary) String() string {
	return fmt.Sprintf("%d legs, %.0fKM, %.1ft CO2e (commercial %.1ft), %.2f citizen-years (%s)",
		len(s.Legs), s.DistanceKM, s.ActualCO2eTons(), s.CommercialCO2eTons(), s.CitizenYears,
		s.Country)
}

// Summarize estimates every leg, and totals them. No legs gives a zero summary.
func (c *Calculator) Summarize(legs []pj.Leg) (DaySummary, error) {
	s := DaySummary{
		Legs:               []LegEstimate{},
		Country:            c.Country,
		CitizenTonsPerYear: c.CitizenTonsPerYear,
	}

	for i, leg := range legs {
		e, err := c.Estimate(leg)
		if err != nil {
			return DaySummary{}, fmt.Errorf("leg %d: %w", i, err)
		}
		s.Legs = append(s.Legs, LegEstimate{Leg: leg, Estimate: e, CitizenShare: c.CitizenShare(e)})
		s.DistanceKM += e.DistanceKM
		s.ActualCO2eKg += e.ActualCO2eKg
		s.CommercialCO2eKg += e.CommercialCO2eKg
	}

	s.ShortLegs, s.LongLegs = pj.CountShortLegs(legs)
	if c.CitizenTonsPerYear > 0 {
		s.CitizenYears = s.ActualCO2eKg / (c.CitizenTonsPerYear * 1000.0)
	}
	return s, nil
}

// Merge folds another aircraft's day into s, for country-wide totals.
func (s *DaySummary) Merge(s2 DaySummary) {
	s.Legs = append(s.Legs, s2.Legs...)
	s.DistanceKM += s2.DistanceKM
	s.ActualCO2eKg += s2.ActualCO2eKg
	s.CommercialCO2eKg += s2.CommercialCO2eKg
	s.CitizenYears += s2.CitizenYears
	s.ShortLegs += s2.ShortLegs
	s.LongLegs += s2.LongLegs
}
