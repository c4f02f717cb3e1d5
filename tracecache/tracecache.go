// Package tracecache keeps fetched traces, so that re-running a report doesn't go back to
// the network. Only complete UTC days are kept; a trace for today can still grow.
package tracecache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/skypies/util/date"
	"github.com/vmihailenco/msgpack/v5"

	pj "github.com/simonsan-contrib/private-jets"
)

var ErrMiss = errors.New("not in cache")

// Fetcher is anything that can produce the raw trace file for an aircraft's day.
type Fetcher interface {
	FetchRaw(ctx context.Context, icao string, date time.Time) ([]byte, error)
}

// An Entry is what we store. NotFound records that the aircraft had no trace that day.
type Entry struct {
	Icao     string
	Date     string // "2006-01-02"
	Fetched  time.Time
	NotFound bool
	Body     []byte
}

type Store interface {
	Get(ctx context.Context, key string) (*Entry, error) // ErrMiss if absent
	Put(ctx context.Context, key string, e *Entry) error
	String() string
}

// Key is the name of the entry for the aircraft's UTC day; it doubles as the relative
// path for the disk and GCS stores.
func Key(icao string, t time.Time) string {
	return fmt.Sprintf("globe_history/%s/trace_full_%s.msgpack.zst", t.UTC().Format("2006-01-02"),
		strings.ToLower(strings.TrimSpace(icao)))
}

// Cacheable is true if the UTC day containing t had ended by now.
func Cacheable(t, now time.Time) bool {
	return date.TruncateToUTCDay(t).Before(date.TruncateToUTCDay(now))
}

// {{{ encodeEntry, decodeEntry

func encodeEntry(w io.Writer, e *Entry) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(e); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func decodeEntry(r io.Reader) (*Entry, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	e := Entry{}
	if err := msgpack.NewDecoder(zr).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// }}}
// {{{ CachingFetcher

// CachingFetcher wraps a Fetcher with a list of stores, fastest first. A hit in a slower
// store is copied into the faster ones.
type CachingFetcher struct {
	Fetcher
	Stores []Store
	Now    func() time.Time // defaults to time.Now

	Logger func(format string, args ...interface{})
}

func New(f Fetcher, stores ...Store) *CachingFetcher {
	return &CachingFetcher{Fetcher: f, Stores: stores}
}

func (cf *CachingFetcher) logf(format string, args ...interface{}) {
	if cf.Logger != nil {
		cf.Logger(format, args...)
	}
}

func (cf *CachingFetcher) now() time.Time {
	if cf.Now == nil {
		return time.Now()
	}
	return cf.Now()
}

func entryResult(e *Entry) ([]byte, error) {
	if e.NotFound {
		return nil, fmt.Errorf("%s on %s (cached): %w", e.Icao, e.Date, pj.ErrNoTraceData)
	}
	return e.Body, nil
}

func (cf *CachingFetcher) FetchRaw(ctx context.Context, icao string, t time.Time) ([]byte, error) {
	if !Cacheable(t, cf.now()) {
		cf.logf("tracecache: %s on %s is not a complete day, not caching",
			icao, t.UTC().Format("2006-01-02"))
		return cf.Fetcher.FetchRaw(ctx, icao, t)
	}

	key := Key(icao, t)
	for i, s := range cf.Stores {
		e, err := s.Get(ctx, key)
		if errors.Is(err, ErrMiss) {
			continue
		} else if err != nil {
			cf.logf("tracecache: %s: get %s: %v", s, key, err)
			continue
		}

		cf.logf("tracecache: %s: hit %s", s, key)
		for _, faster := range cf.Stores[:i] {
			if err := faster.Put(ctx, key, e); err != nil {
				cf.logf("tracecache: %s: put %s: %v", faster, key, err)
			}
		}
		return entryResult(e)
	}

	body, err := cf.Fetcher.FetchRaw(ctx, icao, t)
	e := &Entry{
		Icao:    strings.ToLower(strings.TrimSpace(icao)),
		Date:    t.UTC().Format("2006-01-02"),
		Fetched: cf.now().UTC(),
		Body:    body,
	}
	if errors.Is(err, pj.ErrNoTraceData) {
		e.NotFound = true
	} else if err != nil {
		return nil, err
	}

	for _, s := range cf.Stores {
		if err := s.Put(ctx, key, e); err != nil {
			cf.logf("tracecache: %s: put %s: %v", s, key, err)
		}
	}
	return body, err
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
