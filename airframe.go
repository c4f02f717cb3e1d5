package privatejets

import "fmt"

// An Airframe is a thing that flies. We use Icao24 (ADS-B Mode-S) identifiers to identify
// them; the registration, model and owner should be constant over many days. Owner is
// whoever the curated tables say it is, which may be a leasing company.
type Airframe struct {
	Icao24       string
	Registration string
	Model        string // e.g. "Cessna 525B CitationJet CJ3"
	Owner        string
}

func (af Airframe) String() string {
	return fmt.Sprintf("[%s] %-8.8s %s (%s)", af.Icao24, af.Registration, af.Model, af.Owner)
}

// ParsedRegistration parses the Registration field.
func (af Airframe) ParsedRegistration() Registration { return NewRegistration(af.Registration) }

// Overlay fills in any blank fields from af2.
func (af *Airframe) Overlay(af2 Airframe) {
	if af.Icao24 == ""       { af.Icao24 = af2.Icao24 }
	if af.Registration == "" { af.Registration = af2.Registration }
	if af.Model == ""        { af.Model = af2.Model }
	if af.Owner == ""        { af.Owner = af2.Owner }
}
