package privatejets

import (
	"math"
	"testing"

	"github.com/skypies/geo"
)

func TestGreatCircleKM(t *testing.T) {
	tests := []struct {
		From, To geo.Latlong
		KM       float64
	}{
		{geo.Latlong{Lat: 55, Long: 12}, geo.Latlong{Lat: 56, Long: 10}, 168.0087},
		{geo.Latlong{Lat: 0, Long: 0}, geo.Latlong{Lat: 0, Long: 1}, 111.1949},
		{geo.Latlong{Lat: 55.6180, Long: 12.6508}, geo.Latlong{Lat: 40.4722, Long: -3.5608}, 2059.9370}, // CPH-MAD
		{geo.Latlong{Lat: 47.486, Long: 9.553}, geo.Latlong{Lat: 47.486, Long: 9.553}, 0.0},
	}

	for i, test := range tests {
		if actual := GreatCircleKM(test.From, test.To); math.Abs(actual-test.KM) > 0.001 {
			t.Errorf("[%d] %s->%s: expected %.4f, got %.4f", i, test.From, test.To, test.KM, actual)
		}
		if fwd, back := GreatCircleKM(test.From, test.To), GreatCircleKM(test.To, test.From); fwd != back {
			t.Errorf("[%d] not symmetric: %f vs %f", i, fwd, back)
		}
	}
}

func TestGreatCircleKMSamePoint(t *testing.T) {
	for _, pos := range []geo.Latlong{{Lat: 0, Long: 0}, {Lat: 90, Long: 0}, {Lat: -33.9, Long: 151.2}, {Lat: 55, Long: 180}} {
		if d := GreatCircleKM(pos, pos); d != 0.0 {
			t.Errorf("%s: distance to self was %f", pos, d)
		}
	}
}
