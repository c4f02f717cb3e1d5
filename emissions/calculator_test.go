package emissions

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skypies/geo"

	pj "github.com/simonsan-contrib/private-jets"
)

var tBase = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

func mkLeg(from, to geo.Latlong, dur time.Duration) pj.Leg {
	s := pj.Trackpoint{TimestampUTC: tBase, Latlong: from, OnGround: true}
	e := pj.Trackpoint{TimestampUTC: tBase.Add(dur), Latlong: to, Altitude: 1500, AltitudeValid: true}
	return pj.Leg{Start: s, End: e, DistanceKM: pj.GreatCircleKM(from, to), Duration: dur,
		Path: pj.Track{s, e}}
}

func newCalc(t *testing.T) *Calculator {
	c, err := NewCalculator(DefaultTable())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return c
}

func TestEstimateScenario(t *testing.T) {
	c := newCalc(t)
	leg := mkLeg(geo.Latlong{Lat: 55, Long: 12}, geo.Latlong{Lat: 56, Long: 10}, time.Hour)

	e, err := c.Estimate(leg)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	b := DefaultTable().Brackets[0]
	d := pj.GreatCircleKM(leg.Start.Latlong, leg.End.Latlong)

	if e.Bracket != "short" {
		t.Errorf("expected short bracket, got %s", e.Bracket)
	}
	if math.Abs(e.DistanceKM-168.0087) > 0.001 {
		t.Errorf("expected 168.0087KM, got %f", e.DistanceKM)
	}
	if expected := b.PrivateKgPerKM * (d + b.DetourKM); math.Abs(e.ActualCO2eKg-expected) > 1e-9 {
		t.Errorf("actual: expected %f, got %f", expected, e.ActualCO2eKg)
	}
	if expected := b.CommercialKgPerKM * (d + b.DetourKM); math.Abs(e.CommercialCO2eKg-expected) > 1e-9 {
		t.Errorf("commercial: expected %f, got %f", expected, e.CommercialCO2eKg)
	}
	if math.Abs(e.Ratio()-CommercialToPrivateRatio) > 1e-9 {
		t.Errorf("expected ratio %.0f, got %f", CommercialToPrivateRatio, e.Ratio())
	}
}

func TestEstimateZeroDistance(t *testing.T) {
	c := newCalc(t)
	pos := geo.Latlong{Lat: 47.486, Long: 9.553}
	e, err := c.Estimate(mkLeg(pos, pos, 20*time.Minute))
	if err != nil {
		t.Fatalf("zero distance gave error: %v", err)
	}
	if e.ActualCO2eKg != 0 || e.CommercialCO2eKg != 0 || e.DistanceKM != 0 {
		t.Errorf("expected zero estimate, got %s", e)
	}
}

func TestEstimateInvalidDistance(t *testing.T) {
	c := newCalc(t)
	for _, km := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if e, err := c.EstimateKM(km); err == nil {
			t.Errorf("%v km: expected an error, got %s", km, e)
		}
	}
}

func TestEstimateMonotonicWithinBracket(t *testing.T) {
	c := newCalc(t)
	for _, b := range DefaultTable().Brackets {
		prev := -1.0
		for km := b.MaxDistanceKM - 1000; km <= b.MaxDistanceKM; km += 50 {
			e, err := c.EstimateKM(km)
			if err != nil {
				t.Fatalf("%.0fKM: %v", km, err)
			}
			if e.Bracket != b.Name {
				continue
			}
			if e.ActualCO2eKg < prev {
				t.Errorf("%s: %.0fKM has %f, less than shorter leg's %f", b.Name, km, e.ActualCO2eKg, prev)
			}
			prev = e.ActualCO2eKg
		}
	}
}

func TestEstimateClampsToLastBracket(t *testing.T) {
	c := newCalc(t)
	e, err := c.EstimateKM(25000)
	if err != nil {
		t.Fatalf("EstimateKM: %v", err)
	}
	last := DefaultTable().Brackets[len(DefaultTable().Brackets)-1]
	if e.Bracket != last.Name {
		t.Errorf("expected %s bracket, got %s", last.Name, e.Bracket)
	}
	if expected := last.PrivateKgPerKM * (25000 + last.DetourKM); math.Abs(e.ActualCO2eKg-expected) > 1e-6 {
		t.Errorf("expected %f, got %f", expected, e.ActualCO2eKg)
	}
}

func TestValidate(t *testing.T) {
	noPrivate := DefaultTable()
	noPrivate.Brackets = append([]Bracket{}, noPrivate.Brackets...)
	noPrivate.Brackets[1].PrivateKgPerKM = 0

	noCommercial := DefaultTable()
	noCommercial.Brackets = append([]Bracket{}, noCommercial.Brackets...)
	noCommercial.Brackets[2].CommercialKgPerKM = math.NaN()

	noCitizen := DefaultTable()
	noCitizen.CitizenTonsPerYear = 0

	tests := []struct {
		Name string
		T    Table
	}{
		{"no brackets", Table{CitizenTonsPerYear: 5.1}},
		{"no private factor", noPrivate},
		{"no commercial factor", noCommercial},
		{"no citizen figure", noCitizen},
	}

	for _, test := range tests {
		if _, err := NewCalculator(test.T); !errors.Is(err, ErrMissingEmissionsFactor) {
			t.Errorf("%s: expected ErrMissingEmissionsFactor, got %v", test.Name, err)
		}
	}

	unordered := DefaultTable()
	unordered.Brackets = []Bracket{unordered.Brackets[1], unordered.Brackets[0]}
	if err := unordered.Validate(); err == nil {
		t.Errorf("unordered brackets passed validation")
	}
}

func TestSummarize(t *testing.T) {
	c := newCalc(t)
	legs := []pj.Leg{
		mkLeg(geo.Latlong{Lat: 55.618, Long: 12.651}, geo.Latlong{Lat: 55.740, Long: 9.152}, 40*time.Minute),  // CPH-BLL
		mkLeg(geo.Latlong{Lat: 55.740, Long: 9.152}, geo.Latlong{Lat: 47.486, Long: 9.553}, 100*time.Minute),  // BLL-LSZR
		mkLeg(geo.Latlong{Lat: 47.486, Long: 9.553}, geo.Latlong{Lat: 40.472, Long: -3.561}, 130*time.Minute), // LSZR-MAD
	}

	s, err := c.Summarize(legs)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(s.Legs) != 3 || s.ShortLegs != 1 || s.LongLegs != 2 {
		t.Errorf("bad leg counts: %s (short=%d, long=%d)", s, s.ShortLegs, s.LongLegs)
	}

	total, shares := 0.0, 0.0
	for _, le := range s.Legs {
		total += le.Estimate.ActualCO2eKg
		shares += le.CitizenShare
	}
	if math.Abs(total-s.ActualCO2eKg) > 1e-6 {
		t.Errorf("total %f doesn't match sum of legs %f", s.ActualCO2eKg, total)
	}
	if expected := s.ActualCO2eKg / 5100.0; math.Abs(s.CitizenYears-expected) > 1e-9 {
		t.Errorf("expected %f citizen-years, got %f", expected, s.CitizenYears)
	}
	if math.Abs(shares-s.CitizenYears) > 1e-9 {
		t.Errorf("per-leg shares %f don't add up to %f", shares, s.CitizenYears)
	}
}

func TestSummarizeAllGround(t *testing.T) {
	tr := pj.Track{}
	for i := 0; i < 50; i++ {
		tr = append(tr, pj.Trackpoint{TimestampUTC: tBase.Add(time.Duration(i) * time.Minute),
			Latlong: geo.Latlong{Lat: 55.618, Long: 12.651}, OnGround: true})
	}
	legs, err := pj.NewSegmenter(pj.DefaultSegmenterConfig()).Segment(tr)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}

	s, err := newCalc(t).Summarize(legs)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(s.Legs) != 0 || s.ActualCO2eKg != 0 || s.CommercialCO2eKg != 0 || s.CitizenYears != 0 {
		t.Errorf("expected zero summary, got %s", s)
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	os.WriteFile(good, []byte(`{
  "Country": "Spain",
  "CitizenTonsPerYear": 5.2,
  "Brackets": [
    {"Name":"short", "MaxDistanceKM":1500, "DetourKM":95, "PrivateKgPerKM":3.9, "CommercialKgPerKM":0.39},
    {"Name":"long", "MaxDistanceKM":20000, "DetourKM":95, "PrivateKgPerKM":4.2, "CommercialKgPerKM":0.42}
  ]
}`), 0644)
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"CitizenTonsPerYear": 5.2, "Brackets": [{"Name":"short", "MaxDistanceKM":1500}]}`), 0644)

	tbl, err := LoadTable(good)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if len(tbl.Brackets) != 2 || tbl.Country != "Spain" {
		t.Errorf("table not loaded: %+v", tbl)
	}

	if _, err := LoadTable(bad); !errors.Is(err, ErrMissingEmissionsFactor) {
		t.Errorf("expected ErrMissingEmissionsFactor, got %v", err)
	}
	if _, err := LoadTable(filepath.Join(dir, "nope.json")); err == nil {
		t.Errorf("missing file gave no error")
	}
}

func TestForCountry(t *testing.T) {
	c, err := ForCountry(" germany")
	if err != nil {
		t.Fatalf("ForCountry: %v", err)
	}
	if c.TonsPerYear != 8.0 || c.TailPrefix != "D-" {
		t.Errorf("bad country: %+v", c)
	}
	if tbl := DefaultTable().ForCountry(c); tbl.CitizenTonsPerYear != 8.0 || tbl.Country != "Germany" {
		t.Errorf("ForCountry didn't rebase table: %+v", tbl)
	}
	if _, err := ForCountry("Atlantis"); err == nil {
		t.Errorf("unknown country gave no error")
	}
	if len(CountryNames()) != 4 {
		t.Errorf("expected 4 countries, got %v", CountryNames())
	}
}
