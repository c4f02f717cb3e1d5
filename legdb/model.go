package legdb

import (
	"time"

	"github.com/skypies/geo"
	"github.com/skypies/util/date"

	pj "github.com/simonsan-contrib/private-jets"
	"github.com/simonsan-contrib/private-jets/emissions"
)

// LegRecord is one leg, with its emissions estimate, as stored in the leg table.
type LegRecord struct {
	LegID        int    `gorm:"column:id_leg;primaryKey;autoIncrement" json:"leg_id"`
	Icao         string `gorm:"column:icao;type:text;not null;index:idx_leg_day" json:"icao"`
	Registration string `gorm:"column:registration;type:text;index" json:"registration"`
	Model        string `gorm:"column:model;type:text" json:"model"`

	Date      time.Time `gorm:"column:date;type:date;not null;index:idx_leg_day" json:"date"`
	Departure time.Time `gorm:"column:departure;type:timestamptz;not null" json:"departure"`
	Arrival   time.Time `gorm:"column:arrival;type:timestamptz;not null" json:"arrival"`
	NumLeg    int       `gorm:"column:num_leg;type:integer;not null" json:"num_leg"`

	FromLat  float64 `gorm:"column:from_lat;type:numeric;not null" json:"from_lat"`
	FromLong float64 `gorm:"column:from_long;type:numeric;not null" json:"from_long"`
	ToLat    float64 `gorm:"column:to_lat;type:numeric;not null" json:"to_lat"`
	ToLong   float64 `gorm:"column:to_long;type:numeric;not null" json:"to_long"`

	DistanceKM       float64 `gorm:"column:distance_km;type:numeric;not null" json:"distance_km"`
	Bracket          string  `gorm:"column:bracket;type:text" json:"bracket"`
	CO2eKg           float64 `gorm:"column:co2e_kg;type:numeric;not null" json:"co2e_kg"`
	CommercialCO2eKg float64 `gorm:"column:commercial_co2e_kg;type:numeric;not null" json:"commercial_co2e_kg"`
	CitizenShare     float64 `gorm:"column:citizen_share;type:numeric" json:"citizen_share"`
	Country          string  `gorm:"column:country;type:text" json:"country"`
}

func (LegRecord) TableName() string {
	return "leg"
}

func (r LegRecord) Duration() time.Duration { return r.Arrival.Sub(r.Departure) }

// Leg rebuilds the endpoints of the leg; the path is not stored.
func (r LegRecord) Leg() pj.Leg {
	start := pj.Trackpoint{DataSource: "DB", TimestampUTC: r.Departure.UTC(),
		Latlong: geo.Latlong{Lat: r.FromLat, Long: r.FromLong}}
	end := pj.Trackpoint{DataSource: "DB", TimestampUTC: r.Arrival.UTC(),
		Latlong: geo.Latlong{Lat: r.ToLat, Long: r.ToLong}}
	return pj.Leg{
		Start:      start,
		End:        end,
		DistanceKM: r.DistanceKM,
		Duration:   r.Duration(),
	}
}

// RecordsFromSummary flattens one aircraft's day into rows.
func RecordsFromSummary(af pj.Airframe, day time.Time, s emissions.DaySummary) []LegRecord {
	recs := []LegRecord{}
	for i, le := range s.Legs {
		recs = append(recs, LegRecord{
			Icao:             af.Icao24,
			Registration:     af.Registration,
			Model:            af.Model,
			Date:             date.TruncateToUTCDay(day),
			Departure:        le.Leg.Start.TimestampUTC,
			Arrival:          le.Leg.End.TimestampUTC,
			NumLeg:           i,
			FromLat:          le.Leg.Start.Lat,
			FromLong:         le.Leg.Start.Long,
			ToLat:            le.Leg.End.Lat,
			ToLong:           le.Leg.End.Long,
			DistanceKM:       le.Estimate.DistanceKM,
			Bracket:          le.Estimate.Bracket,
			CO2eKg:           le.Estimate.ActualCO2eKg,
			CommercialCO2eKg: le.Estimate.CommercialCO2eKg,
			CitizenShare:     le.CitizenShare,
			Country:          s.Country,
		})
	}
	return recs
}
