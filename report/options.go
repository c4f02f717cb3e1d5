package report

// All reports share this same options struct. A report covers one UTC day, for either a
// single aircraft or every private jet in a country's register; optionally, only legs that
// touch a location are kept.

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/skypies/geo"

	pj "github.com/simonsan-contrib/private-jets"
	"github.com/simonsan-contrib/private-jets/emissions"
)

type Options struct {
	Date     time.Time          // the UTC day being reported
	Country  *emissions.Country // nil for a single aircraft
	Location *Location          // nil for anywhere

	ReportLogLevel
}

type Location struct {
	Name string
	Box  geo.LatlongBox
}

func (l Location) String() string { return fmt.Sprintf("%s %s", l.Name, l.Box) }

var Locations = map[string]Location{
	"davos": {
		Name: "Davos airport (LSZR)",
		Box:  geo.Latlong{Lat: 47.482, Long: 9.538}.BoxTo(geo.Latlong{Lat: 47.490, Long: 9.568}),
	},
}

func LocationByName(name string) (*Location, error) {
	if l, exists := Locations[strings.ToLower(strings.TrimSpace(name))]; exists {
		return &l, nil
	}
	names := []string{}
	for k := range Locations {
		names = append(names, k)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("location %q not known (have: %s)", name, strings.Join(names, ", "))
}

// FilterLegs drops legs that never pass through the location, if there is one.
func (o Options) FilterLegs(legs []pj.Leg) []pj.Leg {
	if o.Location == nil {
		return legs
	}
	ret := []pj.Leg{}
	for _, l := range legs {
		if l.PassesThrough(o.Location.Box) {
			ret = append(ret, l)
		}
	}
	return ret
}

func (o Options) DateString() string { return o.Date.UTC().Format("2006-01-02") }
