// privatejets fetches the day's ADS-B trace for a private jet (or for every private jet in a
// country's register), cuts it into legs, and writes a story about the emissions.
//
//	privatejets -tail OY-GFS -date 2024-01-20 -pdf oy-gfs.pdf
//	privatejets -country denmark -location davos -date 2024-01-20 -csv legs.csv
//	privatejets -icao 45d2ed -adsbdump receiver.log -date 2024-01-20
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/skypies/util/date"
	"gopkg.in/natefinch/lumberjack.v2"

	pj "github.com/simonsan-contrib/private-jets"
	"github.com/simonsan-contrib/private-jets/aex"
	"github.com/simonsan-contrib/private-jets/emissions"
	"github.com/simonsan-contrib/private-jets/ref"
	"github.com/simonsan-contrib/private-jets/report"
	"github.com/simonsan-contrib/private-jets/tracecache"
)

var (
	ctx = context.Background()

	fVerbosity int
	fIcao      string
	fTail      string
	fDate      string
	fCountry   string
	fLocation  string
	fStrict    bool
	fADSBDump  string

	fEmissions string
	fRefDir    string
	fStory     string
	fOut       string
	fPDF       string
	fCSV       string
	fLogfile   string

	fCacheDir  string
	fCacheSize int
	fGCSCache  string

	fDB        bool
	fBQProject string
	fBQBucket  string
	fBQDataset string
	fBQTable   string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
	flag.StringVar(&fIcao, "icao", "", "ICAO id for airframe (6-digit hex)")
	flag.StringVar(&fTail, "tail", "", "registration (tail number) of the airframe, e.g. OY-GFS")
	flag.StringVar(&fDate, "date", "", "UTC day to report on, as 2006-01-02 (default: yesterday)")
	flag.StringVar(&fCountry, "country", "", "report on every private jet in this country's register")
	flag.StringVar(&fLocation, "location", "", "only keep legs that pass through this location (e.g. davos)")
	flag.BoolVar(&fStrict, "strict", false, "fail on out-of-order traces, instead of truncating them")
	flag.StringVar(&fADSBDump, "adsbdump", "", "read the track from a local receiver's message dump, not ADS-B Exchange")

	flag.StringVar(&fEmissions, "emissions", "", "JSON file with the emissions table (default: built in)")
	flag.StringVar(&fRefDir, "refdir", "data", "directory holding aircraft.csv, private_jets.csv, owners.csv")
	flag.StringVar(&fStory, "story", "", "text/template file to render, instead of the built-in story")
	flag.StringVar(&fOut, "out", "", "where to write the story (default: stdout)")
	flag.StringVar(&fPDF, "pdf", "", "write a day profile PDF here (single aircraft only)")
	flag.StringVar(&fCSV, "csv", "", "write the leg table as CSV here")
	flag.StringVar(&fLogfile, "logfile", "", "also log into this (rotated) file")

	flag.StringVar(&fCacheDir, "cache", "", "trace cache directory (default: user cache dir; 'none' disables)")
	flag.IntVar(&fCacheSize, "cachesize", 64, "in-memory trace cache entries")
	flag.StringVar(&fGCSCache, "gcscache", "", "GCS bucket to use as a shared trace cache")

	flag.BoolVar(&fDB, "db", false, "store the legs in postgres (DSN from the environment)")
	flag.StringVar(&fBQProject, "bqproject", "", "publish the legs to BigQuery in this project")
	flag.StringVar(&fBQBucket, "bqbucket", "", "GCS bucket for staging BigQuery loads")
	flag.StringVar(&fBQDataset, "bqdataset", "public", "BigQuery dataset")
	flag.StringVar(&fBQTable, "bqtable", "legs", "BigQuery table")
	flag.Parse()
}

// {{{ setupLogging

func setupLogging() {
	if fLogfile == "" {
		return
	}
	lj := &lumberjack.Logger{
		Filename:   fLogfile,
		MaxSize:    32, // MB
		MaxBackups: 5,
		MaxAge:     28, // days
	}
	log.SetOutput(io.MultiWriter(os.Stderr, lj))
}

func debugf(format string, args ...interface{}) {
	if fVerbosity > 0 {
		log.Printf(format, args...)
	}
}

// }}}
// {{{ optionsFromArgs

func dayFromArgs() (time.Time, error) {
	if fDate == "" {
		return date.TruncateToUTCDay(time.Now().UTC()).AddDate(0, 0, -1), nil
	}
	t, err := time.Parse("2006-01-02", fDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("-date: %v", err)
	}
	return t.UTC(), nil
}

func optionsFromArgs() (report.Options, error) {
	opt := report.Options{ReportLogLevel: report.INFO}
	if fVerbosity > 0 {
		opt.ReportLogLevel = report.DEBUG
	}

	var err error
	if opt.Date, err = dayFromArgs(); err != nil {
		return opt, err
	}
	if fCountry != "" {
		c, err := emissions.ForCountry(fCountry)
		if err != nil {
			return opt, err
		}
		opt.Country = &c
	}
	if fLocation != "" {
		if opt.Location, err = report.LocationByName(fLocation); err != nil {
			return opt, err
		}
	}
	return opt, nil
}

// The emissions are always normalized against a country; Denmark unless told otherwise.
func tableFromArgs(opt report.Options) (emissions.Table, error) {
	tbl := emissions.DefaultTable()
	if fEmissions != "" {
		var err error
		if tbl, err = emissions.LoadTable(fEmissions); err != nil {
			return tbl, err
		}
	}
	if opt.Country != nil {
		tbl = tbl.ForCountry(*opt.Country)
	}
	return tbl, tbl.Validate()
}

// }}}
// {{{ airframesFromArgs

func airframesFromArgs(opt report.Options) ([]pj.Airframe, error) {
	if opt.Country != nil {
		tables, err := ref.LoadTables(fRefDir)
		if err != nil {
			return nil, err
		}
		return tables.PrivateJetsInRegister(opt.Country.TailPrefix), nil
	}

	id := fIcao
	if id == "" {
		id = fTail
	}
	if id == "" {
		return nil, fmt.Errorf("need one of -icao, -tail or -country")
	}

	tables, err := ref.LoadTables(fRefDir)
	if err != nil {
		if fIcao == "" {
			return nil, err // need the tables to turn a tail into an icao
		}
		debugf("no reference tables (%v), using the trace's own metadata", err)
		return []pj.Airframe{{Icao24: aex.NormalizeIcao(fIcao)}}, nil
	}

	af, err := tables.Resolve(id)
	if err != nil {
		if fIcao == "" {
			return nil, err
		}
		af = pj.Airframe{Icao24: aex.NormalizeIcao(fIcao)}
	}
	return []pj.Airframe{af}, nil
}

// }}}
// {{{ fetcherFromArgs

func fetcherFromArgs() (*tracecache.CachingFetcher, func(), error) {
	cookie := os.Getenv("AEX_COOKIE")
	if cookie == "" {
		log.Printf("AEX_COOKIE not set; ADS-B Exchange will probably refuse the requests")
	}
	src := aex.New(&http.Client{Timeout: 60 * time.Second}, cookie)

	stores := []tracecache.Store{}
	cleanup := func() {}

	if fCacheSize > 0 {
		ms, err := tracecache.NewMemoryStore(fCacheSize)
		if err != nil {
			return nil, cleanup, err
		}
		stores = append(stores, ms)
	}
	if fCacheDir != "none" {
		dir := fCacheDir
		if dir == "" {
			var err error
			if dir, err = tracecache.DefaultDir(); err != nil {
				return nil, cleanup, err
			}
		}
		stores = append(stores, tracecache.DiskStore{Dir: dir})
	}
	if fGCSCache != "" {
		gs, err := tracecache.NewGCSStore(ctx, fGCSCache, "traces")
		if err != nil {
			return nil, cleanup, err
		}
		stores = append(stores, gs)
		cleanup = func() { gs.Close() }
	}

	cf := tracecache.New(src, stores...)
	cf.Logger = debugf
	return cf, cleanup, nil
}

// }}}
// {{{ trackForAircraft

// trackForAircraft returns the airframe (updated from the trace's own metadata) and its
// track for the day.
func trackForAircraft(f tracecache.Fetcher, af pj.Airframe, day time.Time) (pj.Airframe, pj.Track, error) {
	if fADSBDump != "" {
		fh, err := os.Open(fADSBDump)
		if err != nil {
			return af, nil, err
		}
		defer fh.Close()
		track, af2, err := aex.TrackFromReceiverDump(fh, af.Icao24)
		if err != nil {
			return af, nil, err
		}
		af.Overlay(af2)
		return af, *track.TrimToUTCDay(day), nil
	}

	body, err := f.FetchRaw(ctx, af.Icao24, day)
	if err != nil {
		return af, nil, err
	}
	tf, err := aex.ParseTrace(body)
	if err != nil {
		return af, nil, err
	}
	af.Overlay(tf.Airframe())

	track, skipped := tf.ToTrack()
	if skipped > 0 {
		debugf("%s: skipped %d unparseable trace rows", af.Icao24, skipped)
	}
	return af, *track.TrimToUTCDay(day), nil
}

// }}}
// {{{ legsForAircraft

// legsForAircraft returns the airframe and its track and legs for the day.
func legsForAircraft(f tracecache.Fetcher, af pj.Airframe, day time.Time) (pj.Airframe, pj.Track, []pj.Leg, error) {
	af, track, err := trackForAircraft(f, af, day)
	if err != nil {
		return af, nil, nil, err
	}
	if len(track) > 0 {
		debugf("%s: %s (%s)", af.Icao24, track, track.LongSource())
	}

	cfg := pj.DefaultSegmenterConfig()
	cfg.Strict = fStrict
	cfg.Logger = func(format string, args ...interface{}) {
		log.Printf(af.Icao24+": "+format, args...)
	}

	legs, err := pj.NewSegmenter(cfg).Segment(track)
	if err != nil {
		return af, track, nil, err
	}
	return af, track, legs, nil
}

// }}}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf(".env: %v", err)
	}
	setupLogging()

	opt, err := optionsFromArgs()
	if err != nil {
		log.Fatal(err)
	}
	tbl, err := tableFromArgs(opt)
	if err != nil {
		log.Fatal(err)
	}
	calc, err := emissions.NewCalculator(tbl)
	if err != nil {
		log.Fatal(err)
	}
	airframes, err := airframesFromArgs(opt)
	if err != nil {
		log.Fatal(err)
	}

	fetcher, cleanup, err := fetcherFromArgs()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	name := "aircraft"
	if opt.Country != nil {
		name = "country"
	}
	r := report.BlankReport(name, opt)
	tracks := map[string]pj.Track{}

	for _, af := range airframes {
		af2, track, legs, err := legsForAircraft(fetcher, af, opt.Date)
		if errors.Is(err, pj.ErrNoTraceData) && opt.Country != nil {
			r.I["[A] Aircraft with no trace"]++
			r.Debugf("%s: no trace data for %s\n", af, opt.DateString())
			continue
		} else if err != nil {
			log.Fatalf("%s: %v", af, err)
		}
		tracks[af2.Icao24] = track
		if err := r.AddAircraftDay(af2, legs, calc); err != nil {
			log.Fatal(err)
		}
	}

	if err := writeOutputs(&r, tbl, tracks); err != nil {
		log.Fatal(err)
	}
	if err := publish(&r); err != nil {
		log.Fatal(err)
	}

	if fVerbosity > 0 {
		for _, row := range r.MetadataTable() {
			log.Printf("%-40s %s", row[0], row[1])
		}
		log.Print(r.Log)
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
