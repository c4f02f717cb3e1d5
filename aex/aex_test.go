package aex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pj "github.com/simonsan-contrib/private-jets"
)

// 2024-01-20T00:00:00Z
var traceFull = []byte(`{"icao":"45d2ed","r":"OY-GFS","t":"C25B","desc":"CESSNA 525B CITATIONJET CJ3",
"ownOp":"Example Aviation ApS","year":"2007","timestamp":1705708800.000,
"trace":[
 [0.0,55.0,12.0,"ground",0.0,null,0,null,null],
 [600.0,55.0,12.0,"ground",12.5,270.0,0,null,null],
 [660.0,55.05,11.9,3000,210.0,300.1,2,1800,null,"adsb_icao",3100],
 [1500.0,55.5,11.0,null,400.0,300.0,0,0],
 [2400.0,55.7,10.6,3000,400.0,300.0,0,0],
 [3300.0,55.9,10.2,3000,380.0,300.0,0,-500],
 [4200.0,56.0,10.0,1500,160.0,300.0,0,-800],
 [4260.0,56.0,10.0,"ground",30.0,300.0,0,null],
 [4300.0,null,10.0,"ground"]
]}`)

func TestParseTrace(t *testing.T) {
	tf, err := ParseTrace(traceFull)
	if err != nil {
		t.Fatalf("ParseTrace: %v", err)
	}
	if tf.Registration != "OY-GFS" || tf.Airframe().Owner != "Example Aviation ApS" {
		t.Errorf("bad header: %s", tf)
	}

	tr, skipped := tf.ToTrack()
	if len(tr) != 8 || skipped != 1 {
		t.Fatalf("expected 8 points (1 skipped), got %d (%d skipped)", len(tr), skipped)
	}

	if !tr[0].OnGround || tr[0].AltitudeValid {
		t.Errorf("point 0 should be on the ground: %s", tr[0])
	}
	if tr[3].AltitudeValid || tr[3].OnGround {
		t.Errorf("point 3 has no altitude: %s", tr[3])
	}
	if !tr[2].AltitudeValid || tr[2].Altitude != 3000 || tr[2].VerticalRate != 1800 {
		t.Errorf("point 2 decoded wrong: %+v", tr[2])
	}
	if !tr[6].TimestampUTC.Equal(time.Date(2024, 1, 20, 1, 10, 0, 0, time.UTC)) {
		t.Errorf("point 6 at wrong time: %s", tr[6].TimestampUTC)
	}
	if tf.Trace[2].Flags()&FlagNewLeg == 0 {
		t.Errorf("new leg flag not seen")
	}
}

func TestParseTraceSegments(t *testing.T) {
	tf, _ := ParseTrace(traceFull)
	tr, _ := tf.ToTrack()

	legs, err := pj.NewSegmenter(pj.DefaultSegmenterConfig()).Segment(tr)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(legs) != 1 || legs[0].Duration != time.Hour {
		t.Errorf("expected one leg of an hour, got %v", legs)
	}
}

func TestTraceURL(t *testing.T) {
	aex := New(nil, "")
	date := time.Date(2024, 1, 20, 13, 0, 0, 0, time.UTC)
	expected := "https://globe.adsbexchange.com/globe_history/2024/01/20/traces/ed/trace_full_45d2ed.json"
	if actual := aex.TraceURL("45D2ED ", date); actual != expected {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}

func TestFetch(t *testing.T) {
	var gotCookie, gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/globe_history/2024/01/20/traces/ed/trace_full_45d2ed.json":
			gotCookie, gotReferer = r.Header.Get("Cookie"), r.Header.Get("Referer")
			w.Header().Set("Content-Type", "application/json")
			w.Write(traceFull)
		case "/globe_history/2024/01/20/traces/01/trace_full_abcd01.json":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	aex := AdsbExchange{Client: srv.Client(), Cookie: "adsbx_sid=123", Host: srv.URL}
	date := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	tf, err := aex.Fetch(ctx, "45d2ed", date)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(tf.Trace) != 9 {
		t.Errorf("expected 9 entries, got %d", len(tf.Trace))
	}
	if gotCookie != "adsbx_sid=123" {
		t.Errorf("cookie not sent, got %q", gotCookie)
	}
	if gotReferer != srv.URL+"/?icao=45d2ed&showTrace=2024-01-20" {
		t.Errorf("bad referer %q", gotReferer)
	}

	if _, err := aex.FetchRaw(ctx, "3c4b26", date); !errors.Is(err, pj.ErrNoTraceData) {
		t.Errorf("404: expected ErrNoTraceData, got %v", err)
	}
	if _, err := aex.FetchRaw(ctx, "abcd01", date); err == nil || errors.Is(err, pj.ErrNoTraceData) {
		t.Errorf("403: expected a session error, got %v", err)
	}
}
