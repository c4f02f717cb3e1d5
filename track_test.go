package privatejets

// go test -v github.com/simonsan-contrib/private-jets

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/skypies/geo"
)

var (
	// t1: a contiguous climb out of EKRK, broken in half into t1a and t1b.
	t1a = []byte(`[
{"TimestampUTC":"2024-01-20T23:58:08Z","Lat":55.58562,"Long":12.13108,"OnGround":true},
{"TimestampUTC":"2024-01-20T23:59:40Z","Lat":55.58610,"Long":12.13250,"Altitude":1225,"AltitudeValid":true,"GroundSpeed":141},
{"TimestampUTC":"2024-01-21T00:00:11Z","Lat":55.59215,"Long":12.14073,"Altitude":2125,"AltitudeValid":true,"GroundSpeed":171}]`)
	t1b = []byte(`[
{"TimestampUTC":"2024-01-21T00:00:41Z","Lat":55.60562,"Long":12.15752,"Altitude":3200,"AltitudeValid":true,"GroundSpeed":214},
{"TimestampUTC":"2024-01-21T00:01:14Z","Lat":55.62363,"Long":12.18500,"Altitude":4250,"AltitudeValid":true,"GroundSpeed":244},
{"TimestampUTC":"2024-01-21T00:01:44Z","Lat":55.64250,"Long":12.21355,"Altitude":5275,"AltitudeValid":true,"GroundSpeed":262}]`)

	// t6: t6b's first point belongs in the middle of t6a
	t6a = []byte(`[
{"TimestampUTC":"2024-01-21T10:36:08Z","Lat":55.23262,"Long":12.06646,"Altitude":19025,"AltitudeValid":true},
{"TimestampUTC":"2024-01-21T10:36:38Z","Lat":55.23178,"Long":12.06539,"Altitude":19050,"AltitudeValid":true},
{"TimestampUTC":"2024-01-21T10:37:38Z","Lat":55.22815,"Long":12.06073,"Altitude":19125,"AltitudeValid":true}]`)
	t6b = []byte(`[
{"TimestampUTC":"2024-01-21T10:37:08Z","Lat":55.22617,"Long":12.05822,"Altitude":19175,"AltitudeValid":true},
{"TimestampUTC":"2024-01-21T10:38:08Z","Lat":55.22250,"Long":12.05355,"Altitude":19275,"AltitudeValid":true}]`)
)

func loadTrack(b []byte) Track {
	t := Track{}
	if err := json.Unmarshal(b, &t); err != nil {
		fmt.Printf("BAD TRACK: %v\n", err)
	}
	return t
}

func TestMerge(t *testing.T) {
	tA, tB := loadTrack(t6a), loadTrack(t6b)
	tA.Merge(&tB)

	if len(tA) != 5 {
		t.Fatalf("expected 5 points, got %d", len(tA))
	}
	if err := tA.CheckOrdering(); err != nil {
		t.Errorf("merged track out of order: %v", err)
	}
	if tA[2].Lat != 55.22617 {
		t.Errorf("merged point landed in the wrong place: %s", tA[2])
	}
}

func TestCheckOrdering(t *testing.T) {
	tA, tB := loadTrack(t6a), loadTrack(t6b)
	tr := append(tA, tB...)

	err := tr.CheckOrdering()
	ooe, ok := err.(*OutOfOrderError)
	if !ok {
		t.Fatalf("expected *OutOfOrderError, got %v", err)
	}
	if ooe.Index != 3 {
		t.Errorf("expected violation at 3, got %d", ooe.Index)
	}

	if prefix, _ := tr.ReliablePrefix(); len(prefix) != 3 {
		t.Errorf("expected 3 point prefix, got %d", len(prefix))
	}
	if good := loadTrack(t1a); good.CheckOrdering() != nil {
		t.Errorf("ordered track flagged as out of order")
	}
}

func TestTrimToUTCDay(t *testing.T) {
	tA, tB := loadTrack(t1a), loadTrack(t1b)
	tA.Merge(&tB)

	day := time.Date(2024, 1, 21, 15, 0, 0, 0, time.UTC)
	trimmed := tA.TrimToUTCDay(day)
	if len(*trimmed) != 4 {
		t.Errorf("expected 4 points on the 21st, got %d: %s", len(*trimmed), *trimmed)
	}

	prev := tA.TrimToUTCDay(day.AddDate(0, 0, -1))
	if len(*prev) != 2 || !(*prev)[0].OnGround {
		t.Errorf("expected 2 points on the 20th, got %d", len(*prev))
	}
}

func TestPaddedTrimToTimes(t *testing.T) {
	tA, tB := loadTrack(t1a), loadTrack(t1b)
	tA.Merge(&tB)

	s, e := tA[2].TimestampUTC, tA[3].TimestampUTC
	if n := len(*tA.PaddedTrimToTimes(s, e, 1)); n != 4 {
		t.Errorf("expected 4 points with padding, got %d", n)
	}
	if n := len(*tA.TrimToTimes(s, e)); n != 2 {
		t.Errorf("expected 2 points without padding, got %d", n)
	}
}

func TestPathKM(t *testing.T) {
	tr := loadTrack(t1b)
	straight := GreatCircleKM(tr[0].Latlong, tr[len(tr)-1].Latlong)
	if path := tr.PathKM(); path < straight-0.001 || math.Abs(path-straight) > 0.1 {
		t.Errorf("path %.3fKM vs straight line %.3fKM", path, straight)
	}
	if (Track{}).PathKM() != 0.0 {
		t.Errorf("empty track has a path length")
	}
}

func TestPassesThrough(t *testing.T) {
	tr := loadTrack(t1a)
	box := geo.Latlong{Lat: 55.585, Long: 12.130}.BoxTo(geo.Latlong{Lat: 55.587, Long: 12.133})
	if !tr.PassesThrough(box) {
		t.Errorf("track should pass through %v", box)
	}
	far := geo.Latlong{Lat: 47.482, Long: 9.538}.BoxTo(geo.Latlong{Lat: 47.490, Long: 9.568})
	if tr.PassesThrough(far) {
		t.Errorf("track should not pass through %v", far)
	}
}

func TestIntersectWith(t *testing.T) {
	tr := loadTrack(t1a)
	box := geo.Latlong{Lat: 55.585, Long: 12.130}.BoxTo(geo.Latlong{Lat: 55.587, Long: 12.133})

	ti, ok := tr.IntersectWith(box)
	if !ok {
		t.Fatalf("no intersection with %v", box)
	}
	if ti.I != 0 || ti.J != 1 {
		t.Errorf("expected [0,1], got %s", ti)
	}
	if ti.Duration() != 92*time.Second {
		t.Errorf("expected 92s inside, got %s", ti.Duration())
	}

	// A track that ends inside the box runs to its last point
	ti, ok = tr[:2].IntersectWith(box)
	if !ok || ti.J != 1 {
		t.Errorf("expected the intersection to end on the final point, got %v", ti)
	}

	if _, ok := tr[2:].IntersectWith(box); ok {
		t.Errorf("final point alone should not intersect")
	}
}
