package report

import (
	"fmt"
	"time"

	"github.com/simonsan-contrib/private-jets/emissions"
)

func init() {
	HandleStory("aircraft", "One aircraft's day, leg by leg", aircraftStory)
	HandleStory("country", "Every private jet in a country's register, for one day", countryStory)
}

// A Fact is a claim in the story, with where it came from.
type Fact struct {
	Claim  string
	Source string
	Date   string
}

type StoryLeg struct {
	N              int
	From, To       string
	Start, End     string // HH:MM UTC
	Duration       string
	DistanceKM     string
	CO2Tons        string
	CommercialTons string
	CitizenShare   float64
}

// StoryContext is everything the story templates can refer to.
type StoryContext struct {
	Date     string
	Location string // " at Davos airport (LSZR)", or empty

	Registration string
	Icao24       string
	Model        string
	Owner        string

	Country emissions.Country

	NumberOfPrivateJets Fact
	NumberOfLegs        Fact
	EmissionsTons       Fact
	CommercialTons      string
	CitizenYears        Fact
	LegsUnder300KM      int
	LegsOver300KM       int
	Ratio               string

	Legs []StoryLeg
}

func tons(kg float64) string { return fmt.Sprintf("%.1f", kg/1000.0) }

// StoryContext pulls the figures out of a completed report.
func (r *Report) StoryContext(tbl emissions.Table) StoryContext {
	s := r.Summary
	ctx := StoryContext{
		Date:           r.DateString(),
		CommercialTons: tons(s.CommercialCO2eKg),
		LegsUnder300KM: s.ShortLegs,
		LegsOver300KM:  s.LongLegs,
		Ratio:          fmt.Sprintf("%.0f", emissions.CommercialToPrivateRatio),
		Legs:           []StoryLeg{},
	}
	if r.Location != nil {
		ctx.Location = " at " + r.Location.Name
	}

	if r.Country != nil {
		ctx.Country = *r.Country
	} else if c, err := emissions.ForCountry(tbl.Country); err == nil {
		ctx.Country = c
	} else {
		ctx.Country = emissions.Denmark()
	}

	if len(r.Aircraft) == 1 {
		af := r.Aircraft[0].Airframe
		ctx.Registration, ctx.Icao24, ctx.Model, ctx.Owner = af.Registration, af.Icao24, af.Model,
			af.Owner
	}

	adsbx := "[adsbexchange.com](https://globe.adsbexchange.com)"
	today := time.Now().UTC().Format("2006-01-02")

	ctx.NumberOfPrivateJets = Fact{
		Claim: commas(r.AircraftWithLegs()),
		Source: fmt.Sprintf("All aircraft in %s whose model is a private jet, registered in %s, "+
			"and with at least one leg", adsbx, ctx.Country.Name),
		Date: today,
	}
	ctx.NumberOfLegs = Fact{
		Claim:  commas(len(s.Legs)),
		Source: fmt.Sprintf("%s on %s", adsbx, ctx.Date),
		Date:   today,
	}
	ctx.EmissionsTons = Fact{
		Claim: tons(s.ActualCO2eKg),
		Source: fmt.Sprintf("Commercial flights would have emitted %s tons of CO2e. %s",
			ctx.CommercialTons, tbl.Source),
		Date: today,
	}
	ctx.CitizenYears = Fact{
		Claim:  fmt.Sprintf("%.1f", s.CitizenYears),
		Source: ctx.Country.Source,
		Date:   ctx.Country.SourceDate,
	}

	for i, le := range s.Legs {
		l := le.Leg
		ctx.Legs = append(ctx.Legs, StoryLeg{
			N:              i + 1,
			From:           fmt.Sprintf("%.3f,%.3f", l.Start.Lat, l.Start.Long),
			To:             fmt.Sprintf("%.3f,%.3f", l.End.Lat, l.End.Long),
			Start:          l.Start.TimestampUTC.Format("15:04"),
			End:            l.End.TimestampUTC.Format("15:04"),
			Duration:       l.Duration.Round(time.Minute).String(),
			DistanceKM:     fmt.Sprintf("%.0f", le.Estimate.DistanceKM),
			CO2Tons:        tons(le.Estimate.ActualCO2eKg),
			CommercialTons: tons(le.Estimate.CommercialCO2eKg),
			CitizenShare:   le.CitizenShare,
		})
	}
	return ctx
}

const aircraftStory = `# {{.Registration}} on {{.Date}}

{{.Registration}} ({{.Model}}{{if .Owner}}, owned by {{.Owner}}{{end}}) flew {{.NumberOfLegs.Claim}} leg(s){{.Location}} on {{.Date}}.
{{range .Legs}}
* Leg {{.N}}: {{.From}} to {{.To}}, {{.Start}}-{{.End}} UTC ({{.Duration}}), {{.DistanceKM}} km.
  About {{.CO2Tons}} tons of CO2e; the same trip in commercial first class would be {{.CommercialTons}} tons.
  That is {{pct .CitizenShare}} of what one of the {{$.Country.Plural}} emits in a year.
{{- end}}

In total, {{.EmissionsTons.Claim}} tons of CO2e{{if .Legs}}, or {{.CitizenYears.Claim}} years of a {{.Country.Possessive}} person's emissions{{end}}.
{{.LegsUnder300KM}} leg(s) were under 300 km, and {{.LegsOver300KM}} were longer.

Sources:
* {{.NumberOfLegs.Source}}
* {{.EmissionsTons.Source}}
* {{.CitizenYears.Source}} ({{.CitizenYears.Date}})
`

const countryStory = `# {{.Country.Possessive}} private jets on {{.Date}}

On {{.Date}}, {{.NumberOfPrivateJets.Claim}} private jets registered in {{.Country.Name}} flew {{.NumberOfLegs.Claim}} legs{{.Location}}.

They emitted about {{.EmissionsTons.Claim}} tons of CO2e, as much as {{.CitizenYears.Claim}} {{.Country.Plural}} emit in a whole year.
Had the passengers flown commercial first class, it would have been {{.CommercialTons}} tons; private jets emit around {{.Ratio}} times more.

{{.LegsUnder300KM}} of the legs were shorter than 300 km, a distance easily covered by train or car; {{.LegsOver300KM}} were longer.

Sources:
* {{.NumberOfPrivateJets.Source}} ({{.NumberOfPrivateJets.Date}})
* {{.NumberOfLegs.Source}}
* {{.EmissionsTons.Source}}
* {{.CitizenYears.Source}} ({{.CitizenYears.Date}})
`
