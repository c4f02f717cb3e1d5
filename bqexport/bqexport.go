// Package bqexport publishes a day's legs into BigQuery: it writes them as a JSON file into
// Cloud Storage, and then submits a load request for that file.
package bqexport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// The dataset may live in an entirely different google cloud project to the bucket. In
// that case the bigquery project's service account needs read access to the bucket.
type Publisher struct {
	Storage  *storage.Client
	BigQuery *bigquery.Client

	Bucket  string // GCS bucket where the JSON files are staged
	Folder  string // optional object prefix within the bucket
	Dataset string
	Table   string

	Logger func(format string, args ...interface{}) // optional
}

func NewPublisher(ctx context.Context, project, bucket, dataset, table string, opts ...option.ClientOption) (*Publisher, error) {
	sc, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("Creating storage client: %v", err)
	}
	bc, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		sc.Close()
		return nil, fmt.Errorf("Creating bigquery client: %v", err)
	}
	return &Publisher{Storage: sc, BigQuery: bc, Bucket: bucket, Folder: "bigquery-legs",
		Dataset: dataset, Table: table}, nil
}

func (p *Publisher) Close() error {
	err1 := p.Storage.Close()
	err2 := p.BigQuery.Close()
	return errors.Join(err1, err2)
}

func (p *Publisher) logf(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger(format, args...)
	}
}

func (p *Publisher) objectName(filename string) string {
	if p.Folder == "" {
		return filename
	}
	return p.Folder + "/" + filename
}

// Filename is where a given day's batch (for one aircraft, or one register) gets staged.
func Filename(name string, day time.Time) string {
	return fmt.Sprintf("legs-%s-%s.json", name, day.UTC().Format("2006.01.02"))
}

// {{{ p.Publish

// Publish stages the rows and loads them. A file that was already staged is not loaded a
// second time, so reruns for the same day don't duplicate rows.
func (p *Publisher) Publish(ctx context.Context, filename string, rows []LegForBigQuery) (int, error) {
	tStart := time.Now()

	n, err := p.WriteGCSFile(ctx, filename, rows)
	if err != nil {
		return 0, err
	} else if n == 0 {
		p.logf("bqexport: gs://%s/%s already present (or empty), not loading", p.Bucket,
			p.objectName(filename))
		return 0, nil
	}

	if err := p.SubmitLoadJob(ctx, filename); err != nil {
		return 0, fmt.Errorf("submitLoadJob failed: %v", err)
	}

	p.logf("bqexport: %d legs written to gs://%s/%s and loaded - took %s", n, p.Bucket,
		p.objectName(filename), time.Since(tStart))
	return n, nil
}

// }}}
// {{{ p.WriteGCSFile

// Returns number of records written (which is zero if the file already exists)
func (p *Publisher) WriteGCSFile(ctx context.Context, filename string, rows []LegForBigQuery) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	obj := p.Storage.Bucket(p.Bucket).Object(p.objectName(filename))
	if _, err := obj.Attrs(ctx); err == nil {
		return 0, nil
	} else if !errors.Is(err, storage.ErrObjectNotExist) {
		return 0, err
	}

	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"

	n, err := EncodeRows(w, rows)
	if err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	p.logf("bqexport: GCS bigquery file '%s' successfully written", filename)
	return n, nil
}

// }}}
// {{{ p.SubmitLoadJob

func Schema() (bigquery.Schema, error) {
	return bigquery.InferSchema(LegForBigQuery{})
}

func (p *Publisher) SubmitLoadJob(ctx context.Context, filename string) error {
	schema, err := Schema()
	if err != nil {
		return err
	}

	gcsSrc := bigquery.NewGCSReference(fmt.Sprintf("gs://%s/%s", p.Bucket, p.objectName(filename)))
	gcsSrc.SourceFormat = bigquery.JSON
	gcsSrc.Schema = schema

	loader := p.BigQuery.Dataset(p.Dataset).Table(p.Table).LoaderFrom(gcsSrc)
	loader.WriteDisposition = bigquery.WriteAppend
	loader.CreateDisposition = bigquery.CreateIfNeeded

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("Submission of load job: %v", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("Failure determining status: %v", err)
	} else if err := status.Err(); err != nil {
		detailedErrStr := ""
		for i, innerErr := range status.Errors {
			detailedErrStr += fmt.Sprintf(" [%2d] %v\n", i, innerErr)
		}
		return fmt.Errorf("Job error: %v\n--\n%s", err, detailedErrStr)
	}

	p.logf("bqexport: BigQuery LoadJob status: done=%v, state=%v", status.Done(), status.State)
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
