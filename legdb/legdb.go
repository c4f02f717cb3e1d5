// Package legdb persists segmented legs, and their emissions estimates, in PostgreSQL.
package legdb

/*

  import "github.com/simonsan-contrib/private-jets/legdb"

	db,err := legdb.Open(legdb.DSNFromEnv())
	dao := legdb.NewLegDAO(db)
	if err := dao.Migrate(); err != nil { ... }

	n,err := dao.SaveDay(airframe, day, summary)
	recs,err := dao.Find(legdb.NewQuery().InRegister("OY").ForDay(day))

*/

import (
	"fmt"
	"os"
	"time"

	"github.com/skypies/util/date"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pj "github.com/simonsan-contrib/private-jets"
	"github.com/simonsan-contrib/private-jets/emissions"
)

// DSNFromEnv builds a postgres DSN from DB_HOST, DB_PORT, DB_USERNAME, DB_PASSWORD and
// DB_NAME. If DATABASE_URL is set, it is used as-is.
func DSNFromEnv() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		get("DB_HOST", "localhost"), os.Getenv("DB_USERNAME"), os.Getenv("DB_PASSWORD"),
		get("DB_NAME", "private_jets"), get("DB_PORT", "5432"))
}

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("legdb: connect: %w", err)
	}
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type LegDAO struct {
	db     *gorm.DB
	Logger func(format string, args ...interface{}) // optional
}

func NewLegDAO(db *gorm.DB) *LegDAO {
	return &LegDAO{db: db}
}

func (dao *LegDAO) logf(format string, args ...interface{}) {
	if dao.Logger != nil {
		dao.Logger(format, args...)
	}
}

func (dao *LegDAO) Migrate() error {
	return dao.db.AutoMigrate(&LegRecord{})
}

// {{{ dao.SaveDay

// SaveDay replaces whatever was stored for the aircraft on that day with the summary's
// legs, in a single transaction. It returns the number of legs written.
func (dao *LegDAO) SaveDay(af pj.Airframe, day time.Time, s emissions.DaySummary) (int, error) {
	recs := RecordsFromSummary(af, day, s)

	err := dao.db.Transaction(func(tx *gorm.DB) error {
		del := tx.Where("icao = ? AND date = ?", af.Icao24, date.TruncateToUTCDay(day)).
			Delete(&LegRecord{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected > 0 {
			dao.logf("legdb: replacing %d legs for %s on %s", del.RowsAffected, af.Icao24,
				day.Format("2006-01-02"))
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.Create(&recs).Error
	})
	if err != nil {
		return 0, fmt.Errorf("legdb: save %s: %w", af.Icao24, err)
	}

	return len(recs), nil
}

// }}}
// {{{ dao.Find

func (dao *LegDAO) Find(q *Query) ([]LegRecord, error) {
	dao.logf("legdb: %s", q)
	recs := []LegRecord{}
	if result := q.apply(dao.db).Find(&recs); result.Error != nil {
		return nil, result.Error
	}
	return recs, nil
}

// }}}
// {{{ dao.Totals

type Totals struct {
	Legs             int
	DistanceKM       float64
	CO2eKg           float64
	CommercialCO2eKg float64
}

// Totals sums the emissions for every leg matching the query.
func (dao *LegDAO) Totals(q *Query) (Totals, error) {
	t := Totals{}
	agg := Query{Filters: q.Filters} // no ordering or limit on an aggregate
	row := agg.apply(dao.db.Model(&LegRecord{})).
		Select("count(*), coalesce(sum(distance_km),0), coalesce(sum(co2e_kg),0), " +
			"coalesce(sum(commercial_co2e_kg),0)").Row()
	if err := row.Scan(&t.Legs, &t.DistanceKM, &t.CO2eKg, &t.CommercialCO2eKg); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
