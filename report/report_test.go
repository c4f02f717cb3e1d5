package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skypies/geo"

	pj "github.com/simonsan-contrib/private-jets"
	"github.com/simonsan-contrib/private-jets/emissions"
)

var tDay = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

func mkLeg(from, to geo.Latlong, startSecs, durSecs int) pj.Leg {
	s := pj.Trackpoint{TimestampUTC: tDay.Add(time.Duration(startSecs) * time.Second),
		Latlong: from, OnGround: true}
	e := pj.Trackpoint{TimestampUTC: s.TimestampUTC.Add(time.Duration(durSecs) * time.Second),
		Latlong: to, Altitude: 1500, AltitudeValid: true}
	return pj.Leg{Start: s, End: e, DistanceKM: pj.GreatCircleKM(from, to),
		Duration: e.TimestampUTC.Sub(s.TimestampUTC), Path: pj.Track{s, e}}
}

var (
	posCPH   = geo.Latlong{Lat: 55.618, Long: 12.651}
	posBLL   = geo.Latlong{Lat: 55.740, Long: 9.152}
	posDavos = geo.Latlong{Lat: 47.486, Long: 9.553}
)

func newCalc(t *testing.T) *emissions.Calculator {
	c, err := emissions.NewCalculator(emissions.DefaultTable())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return c
}

func TestAddAircraftDay(t *testing.T) {
	r := BlankReport("aircraft", Options{Date: tDay})
	af := pj.Airframe{Icao24: "45d2ed", Registration: "OY-GFS", Model: "Cessna Citation CJ3"}
	legs := []pj.Leg{
		mkLeg(posCPH, posBLL, 3600, 2400),
		mkLeg(posBLL, posDavos, 10800, 6000),
	}

	if err := r.AddAircraftDay(af, legs, newCalc(t)); err != nil {
		t.Fatalf("AddAircraftDay: %v", err)
	}
	if len(r.RowsText) != 2 || r.Summary.ShortLegs != 1 || r.Summary.LongLegs != 1 {
		t.Errorf("bad report: %d rows, %s", len(r.RowsText), r.Summary)
	}
	if r.AircraftWithLegs() != 1 {
		t.Errorf("expected 1 aircraft with legs, got %d", r.AircraftWithLegs())
	}

	var buf bytes.Buffer
	if err := r.OutputAsCSV(&buf); err != nil {
		t.Fatalf("OutputAsCSV: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV back: %v", err)
	}
	if len(recs) != 3 || recs[1][0] != "OY-GFS" || recs[2][4] != "2" {
		t.Errorf("bad CSV: %v", recs)
	}

	found := false
	for _, row := range r.MetadataTable() {
		found = found || (row[0] == "[A] Aircraft processed" && row[1] == "1")
	}
	if !found {
		t.Errorf("metadata missing counter: %v", r.MetadataTable())
	}
}

func TestLocationFilter(t *testing.T) {
	davos, err := LocationByName("Davos")
	if err != nil {
		t.Fatalf("LocationByName: %v", err)
	}
	if _, err := LocationByName("gstaad"); err == nil {
		t.Errorf("unknown location gave no error")
	}

	r := BlankReport("aircraft", Options{Date: tDay, Location: davos})
	legs := []pj.Leg{
		mkLeg(posCPH, posBLL, 3600, 2400),
		mkLeg(posBLL, posDavos, 10800, 6000),
	}
	if err := r.AddAircraftDay(pj.Airframe{Registration: "OY-GFS"}, legs, newCalc(t)); err != nil {
		t.Fatalf("AddAircraftDay: %v", err)
	}
	if len(r.Summary.Legs) != 1 || r.Summary.Legs[0].Leg.End.Latlong != posDavos {
		t.Errorf("expected only the Davos leg, got %v", r.Summary.Legs)
	}
}

func TestAircraftStory(t *testing.T) {
	r := BlankReport("aircraft", Options{Date: tDay})
	af := pj.Airframe{Icao24: "45d2ed", Registration: "OY-GFS", Model: "Cessna Citation CJ3",
		Owner: "Example Aviation ApS"}
	r.AddAircraftDay(af, []pj.Leg{mkLeg(posCPH, posBLL, 3600, 2400)}, newCalc(t))

	out, err := RenderStory("aircraft", r.StoryContext(emissions.DefaultTable()))
	if err != nil {
		t.Fatalf("RenderStory: %v", err)
	}
	for _, want := range []string{"# OY-GFS on 2024-01-20", "owned by Example Aviation ApS",
		"Leg 1:", "Danes", "1 leg(s) were under 300 km"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("story missing %q:\n%s", want, out)
		}
	}
}

func TestCountryStory(t *testing.T) {
	de, _ := emissions.ForCountry("Germany")
	tbl := emissions.DefaultTable().ForCountry(de)
	calc, err := emissions.NewCalculator(tbl)
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}

	r := BlankReport("country", Options{Date: tDay, Country: &de})
	r.AddAircraftDay(pj.Airframe{Registration: "D-IEFB"}, []pj.Leg{mkLeg(posBLL, posDavos, 0, 6000)}, calc)
	r.AddAircraftDay(pj.Airframe{Registration: "D-IABC"}, []pj.Leg{}, calc)

	ctx := r.StoryContext(tbl)
	if ctx.NumberOfPrivateJets.Claim != "1" || ctx.NumberOfLegs.Claim != "1" {
		t.Errorf("bad counts: %+v", ctx)
	}
	out, err := RenderStory("country", ctx)
	if err != nil {
		t.Fatalf("RenderStory: %v", err)
	}
	if !strings.Contains(string(out), "# German private jets on 2024-01-20") ||
		!strings.Contains(string(out), "Germans emit") {
		t.Errorf("bad story:\n%s", out)
	}
}

func TestLoadStory(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "short.md")
	os.WriteFile(filename, []byte(`{{.Date}}: {{.NumberOfLegs.Claim}} legs`), 0644)
	if err := LoadStory("short", filename); err != nil {
		t.Fatalf("LoadStory: %v", err)
	}

	r := BlankReport("short", Options{Date: tDay})
	out, err := RenderStory("short", r.StoryContext(emissions.DefaultTable()))
	if err != nil || string(out) != "2024-01-20: 0 legs" {
		t.Errorf("got %q, %v", out, err)
	}

	if _, err := RenderStory("nonesuch", StoryContext{}); err == nil {
		t.Errorf("unknown story gave no error")
	}
}

func TestCommas(t *testing.T) {
	tests := map[int]string{0: "0", 12: "12", 999: "999", 1000: "1,000", 1234567: "1,234,567",
		-4500: "-4,500"}
	for n, expected := range tests {
		if actual := commas(n); actual != expected {
			t.Errorf("%d: expected %q, got %q", n, expected, actual)
		}
	}
}
