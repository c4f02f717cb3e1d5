package report

import (
	"fmt"
	"sort"

	"github.com/skypies/util/histogram"

	pj "github.com/simonsan-contrib/private-jets"
	"github.com/simonsan-contrib/private-jets/emissions"
)

type ReportLogLevel int

const (
	DEBUG ReportLogLevel = iota
	INFO
)

// An AircraftDay is one airframe's legs for the day, with their emissions.
type AircraftDay struct {
	pj.Airframe
	Summary emissions.DaySummary
}

type Report struct {
	Name    string
	Options // embedded

	Summary  emissions.DaySummary // every aircraft, merged
	Aircraft []AircraftDay

	// Output state
	RowsText    [][]string
	HeadersText []string

	I map[string]int
	F map[string]float64
	S map[string]string
	H histogram.Histogram // leg distances, in KM

	Log string
}

func BlankReport(name string, opt Options) Report {
	return Report{
		Name:     name,
		Options:  opt,
		Aircraft: []AircraftDay{},
		Summary:  emissions.DaySummary{Legs: []emissions.LegEstimate{}},
		RowsText: [][]string{},
		HeadersText: []string{"Registration", "Icao24", "Model", "Owner", "Leg", "From", "To",
			"StartUTC", "EndUTC", "Duration", "DistanceKM", "Bracket", "PrivateCO2eKg",
			"CommercialCO2eKg", "CitizenShare"},
		I: map[string]int{},
		F: map[string]float64{},
		S: map[string]string{},
		H: histogram.Histogram{ValMin: 0, ValMax: 5000, NumBuckets: 25},
	}
}

func (r *Report) Logger(level ReportLogLevel, s string) {
	if level < r.Options.ReportLogLevel {
		return
	}
	r.Log += s
}
func (r *Report) Infof(s string, args ...interface{})  { r.Logger(INFO, fmt.Sprintf(s, args...)) }
func (r *Report) Debugf(s string, args ...interface{}) { r.Logger(DEBUG, fmt.Sprintf(s, args...)) }

func (r *Report) AddRow(text []string) { r.RowsText = append(r.RowsText, text) }

// AddAircraftDay filters the legs by location, estimates their emissions, and folds them
// into the report.
func (r *Report) AddAircraftDay(af pj.Airframe, legs []pj.Leg, calc *emissions.Calculator) error {
	r.I["[A] Aircraft processed"]++
	r.I["[B] Legs found"] += len(legs)

	kept := r.FilterLegs(legs)
	if len(kept) < len(legs) {
		r.I["[C] Legs eliminated: not near "+r.Location.Name] += len(legs) - len(kept)
	}
	if r.Location != nil {
		for _, l := range kept {
			if ti, ok := l.Visit(r.Location.Box); ok {
				r.Debugf("%s: at %s %s\n", af.Registration, r.Location.Name, ti)
			}
		}
	}

	s, err := calc.Summarize(kept)
	if err != nil {
		return fmt.Errorf("%s: %w", af.Registration, err)
	}
	r.Debugf("%s: %s\n", af, s)

	if len(kept) > 0 {
		r.I["[D] <b>Aircraft with legs</b>"]++
	}
	r.Aircraft = append(r.Aircraft, AircraftDay{Airframe: af, Summary: s})

	if len(r.Aircraft) == 1 {
		r.Summary.Country, r.Summary.CitizenTonsPerYear = s.Country, s.CitizenTonsPerYear
	}
	r.Summary.Merge(s)

	for i, le := range s.Legs {
		r.H.Add(histogram.ScalarVal(le.Estimate.DistanceKM))
		r.AddRow(legRow(af, i+1, le))
	}
	return nil
}

func legRow(af pj.Airframe, n int, le emissions.LegEstimate) []string {
	l, e := le.Leg, le.Estimate
	return []string{
		af.Registration, af.Icao24, af.Model, af.Owner,
		fmt.Sprintf("%d", n),
		fmt.Sprintf("%.4f,%.4f", l.Start.Lat, l.Start.Long),
		fmt.Sprintf("%.4f,%.4f", l.End.Lat, l.End.Long),
		l.Start.TimestampUTC.Format("2006-01-02T15:04:05Z"),
		l.End.TimestampUTC.Format("2006-01-02T15:04:05Z"),
		l.Duration.String(),
		fmt.Sprintf("%.1f", e.DistanceKM),
		e.Bracket,
		fmt.Sprintf("%.0f", e.ActualCO2eKg),
		fmt.Sprintf("%.0f", e.CommercialCO2eKg),
		fmt.Sprintf("%.4f", le.CitizenShare),
	}
}

// AircraftWithLegs counts the airframes that flew at least one (kept) leg.
func (r *Report) AircraftWithLegs() int {
	n := 0
	for _, ad := range r.Aircraft {
		if len(ad.Summary.Legs) > 0 {
			n++
		}
	}
	return n
}

func (r *Report) MetadataTable() [][]string {
	all := map[string]string{}

	for k, v := range r.I {
		all[k] = fmt.Sprintf("%d", v)
	}
	for k, v := range r.F {
		all[k] = fmt.Sprintf("%.1f", v)
	}
	for k, v := range r.S {
		all[k] = v
	}

	if stats, valid := r.H.Stats(); valid {
		all["[Z] leg KM,  <b>N</b>"] = fmt.Sprintf("%d", stats.N)
		all["[Z] leg KM, Mean"] = fmt.Sprintf("%.0f", stats.Mean)
		all["[Z] leg KM, Stddev"] = fmt.Sprintf("%.0f", stats.Stddev)
		all["[Z] leg KM, 50%ile"] = fmt.Sprintf("%d", stats.Percentile50)
		all["[Z] leg KM, 90%ile"] = fmt.Sprintf("%d", stats.Percentile90)
	}

	keys := []string{}
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := [][]string{}
	for _, k := range keys {
		out = append(out, []string{k, all[k]})
	}
	return out
}
