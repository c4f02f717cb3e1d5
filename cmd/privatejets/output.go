package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	pj "github.com/simonsan-contrib/private-jets"
	"github.com/simonsan-contrib/private-jets/bqexport"
	"github.com/simonsan-contrib/private-jets/emissions"
	"github.com/simonsan-contrib/private-jets/fpdf"
	"github.com/simonsan-contrib/private-jets/legdb"
	"github.com/simonsan-contrib/private-jets/report"
)

// {{{ writeOutputs

// writeOutputs renders everything into memory first, so that a failure leaves no
// half-written documents behind.
func writeOutputs(r *report.Report, tbl emissions.Table, tracks map[string]pj.Track) error {
	if fStory != "" {
		if err := report.LoadStory(r.Name, fStory); err != nil {
			return err
		}
	}
	story, err := report.RenderStory(r.Name, r.StoryContext(tbl))
	if err != nil {
		return err
	}

	var csvBuf bytes.Buffer
	if fCSV != "" {
		if err := r.OutputAsCSV(&csvBuf); err != nil {
			return err
		}
	}

	var pdfBuf bytes.Buffer
	if fPDF != "" {
		if len(r.Aircraft) != 1 {
			return fmt.Errorf("-pdf needs a single aircraft, have %d", len(r.Aircraft))
		}
		ad := r.Aircraft[0]
		if err := fpdf.WriteDayProfile(&pdfBuf, ad.Airframe, r.Date, tracks[ad.Icao24], ad.Summary); err != nil {
			return err
		}
	}

	if fOut == "" {
		os.Stdout.Write(story)
	} else if err := os.WriteFile(fOut, story, 0644); err != nil {
		return err
	}
	if fCSV != "" {
		if err := os.WriteFile(fCSV, csvBuf.Bytes(), 0644); err != nil {
			return err
		}
	}
	if fPDF != "" {
		if err := os.WriteFile(fPDF, pdfBuf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

// }}}
// {{{ publish

// publish sends the legs to the optional sinks: postgres, and BigQuery.
func publish(r *report.Report) error {
	if fDB {
		db, err := legdb.Open(legdb.DSNFromEnv())
		if err != nil {
			return err
		}
		defer legdb.Close(db)

		dao := legdb.NewLegDAO(db)
		dao.Logger = debugf
		if err := dao.Migrate(); err != nil {
			return err
		}
		for _, ad := range r.Aircraft {
			n, err := dao.SaveDay(ad.Airframe, r.Date, ad.Summary)
			if err != nil {
				return err
			}
			debugf("legdb: %s: %d legs saved", ad.Registration, n)
		}
	}

	if fBQProject != "" {
		if fBQBucket == "" {
			return fmt.Errorf("-bqproject needs -bqbucket")
		}
		p, err := bqexport.NewPublisher(ctx, fBQProject, fBQBucket, fBQDataset, fBQTable)
		if err != nil {
			return err
		}
		defer p.Close()
		p.Logger = log.Printf

		rows := []bqexport.LegForBigQuery{}
		for _, ad := range r.Aircraft {
			rows = append(rows, bqexport.RowsFromSummary(ad.Airframe, r.Date, ad.Summary)...)
		}
		batch := r.Name
		if len(r.Aircraft) == 1 {
			batch = r.Aircraft[0].Icao24
		} else if r.Country != nil {
			batch = r.Country.Name
		}
		if _, err := p.Publish(ctx, bqexport.Filename(batch, r.Date), rows); err != nil {
			return err
		}
	}

	return nil
}

// }}}
