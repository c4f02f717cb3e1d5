package bqexport

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/skypies/util/date"

	pj "github.com/simonsan-contrib/private-jets"
	"github.com/simonsan-contrib/private-jets/emissions"
)

// LegForBigQuery is a denormalized representation of a leg, with its airframe and its
// emissions estimate inlined. It is designed for import into BigQuery, for analysis.
type LegForBigQuery struct {
	Icao         string
	Registration string
	Model        string
	Owner        string

	Date       string // Use the same format as BQ's DATE() function
	Start, End time.Time
	Minutes    float64

	FromLat, FromLong float64
	ToLat, ToLong     float64
	DistanceKM        float64
	PathKM            float64

	Bracket          string
	CO2eKg           float64
	CommercialCO2eKg float64
	CitizenShare     float64
	Country          string
}

func (lbq LegForBigQuery) String() string {
	return fmt.Sprintf("%s %s %s-%s %.0fKM %.0fkg", lbq.Registration, lbq.Date,
		lbq.Start.Format("15:04"), lbq.End.Format("15:04"), lbq.DistanceKM, lbq.CO2eKg)
}

func RowsFromSummary(af pj.Airframe, day time.Time, s emissions.DaySummary) []LegForBigQuery {
	rows := []LegForBigQuery{}
	d := date.TruncateToUTCDay(day).Format("2006-01-02")
	for _, le := range s.Legs {
		rows = append(rows, LegForBigQuery{
			Icao:             af.Icao24,
			Registration:     af.Registration,
			Model:            af.Model,
			Owner:            af.Owner,
			Date:             d,
			Start:            le.Leg.Start.TimestampUTC,
			End:              le.Leg.End.TimestampUTC,
			Minutes:          le.Leg.Duration.Minutes(),
			FromLat:          le.Leg.Start.Lat,
			FromLong:         le.Leg.Start.Long,
			ToLat:            le.Leg.End.Lat,
			ToLong:           le.Leg.End.Long,
			DistanceKM:       le.Estimate.DistanceKM,
			PathKM:           le.Leg.PathKM(),
			Bracket:          le.Estimate.Bracket,
			CO2eKg:           le.Estimate.ActualCO2eKg,
			CommercialCO2eKg: le.Estimate.CommercialCO2eKg,
			CitizenShare:     le.CitizenShare,
			Country:          s.Country,
		})
	}
	return rows
}

// EncodeRows writes one JSON object per line, which is what BigQuery's JSON loader wants.
func EncodeRows(w io.Writer, rows []LegForBigQuery) (int, error) {
	encoder := json.NewEncoder(w)
	for i, row := range rows {
		if err := encoder.Encode(row); err != nil {
			return i, err
		}
	}
	return len(rows), nil
}
