package privatejets

import (
	"fmt"
	"regexp"
	"strings"
)

/* Registrations (tail numbers), as painted on the aircraft

1. Most countries use a nationality prefix, a dash, then a mark: OY-GFS, D-IEFB, CS-DLA
2. The US omits the dash: N761QA
3. ADS-B callsigns from private aircraft are usually the registration with the dash
   stripped, e.g. OYGFS. Airline callsigns (SAS1234) are not registrations.

*/

// Country prefixes for the registers we report on, plus a few where European private jets
// are commonly parked.
var registerPrefixes = map[string]string{
	"OY": "Denmark",
	"CS": "Portugal",
	"EC": "Spain",
	"D":  "Germany",
	"N":  "United States",
	"G":  "United Kingdom",
	"F":  "France",
	"HB": "Switzerland",
	"OE": "Austria",
	"LX": "Luxembourg",
	"SE": "Sweden",
	"LN": "Norway",
	"OH": "Finland",
	"PH": "Netherlands",
	"EI": "Ireland",
	"I":  "Italy",
	"9H": "Malta",
	"M":  "Isle of Man",
}

type Registration struct {
	Raw     string
	Prefix  string // nationality prefix, e.g. "OY"
	Mark    string // everything after the prefix, e.g. "GFS"
	Country string // empty if we don't know the prefix
}

func (r Registration) IsValid() bool { return r.Mark != "" }

// String returns the canonical, dashed form (or the N-number as-is).
func (r Registration) String() string {
	if !r.IsValid() {
		return r.Raw
	} else if r.Prefix == "N" {
		return r.Prefix + r.Mark
	}
	return r.Prefix + "-" + r.Mark
}

// Callsign is the form most private aircraft broadcast over ADS-B.
func (r Registration) Callsign() string { return strings.Replace(r.String(), "-", "", 1) }

// InRegister is true if the registration carries the given prefix; "OY-" and "OY" both work.
func (r Registration) InRegister(prefix string) bool {
	return r.IsValid() && r.Prefix == strings.TrimSuffix(strings.ToUpper(prefix), "-")
}

var (
	// An N-number may only consist of one to five characters, must start with a digit
	// other than zero, and may not contain the letters I or O
	nNumberRegexp = regexp.MustCompile("^N([1-9][0-9A-HJ-NP-Z]{0,4})$")
	dashedRegexp  = regexp.MustCompile("^([A-Z0-9]{1,2})-([A-Z0-9]{1,5})$")
)

// NewRegistration parses a dashed registration, or a US N-number.
func NewRegistration(s string) (ret Registration) {
	ret.Raw = s
	s = strings.ToUpper(strings.TrimSpace(s))

	if m := nNumberRegexp.FindStringSubmatch(s); m != nil {
		ret.Prefix, ret.Mark, ret.Country = "N", m[1], registerPrefixes["N"]
		return
	}

	if m := dashedRegexp.FindStringSubmatch(s); m != nil {
		ret.Prefix, ret.Mark, ret.Country = m[1], m[2], registerPrefixes[m[1]]
	}
	return
}

// RegistrationFromCallsign recovers a registration from a dashless ADS-B callsign, for
// prefixes we know about. Two-letter prefixes are tried before one-letter ones, so that
// "OYGFS" isn't read as a register starting with "O".
func RegistrationFromCallsign(callsign string) (Registration, error) {
	cs := strings.ToUpper(strings.TrimSpace(callsign))

	if r := NewRegistration(cs); r.IsValid() && r.Prefix == "N" {
		return r, nil
	}
	for _, n := range []int{2, 1} {
		if len(cs) <= n {
			continue
		}
		if _, exists := registerPrefixes[cs[:n]]; exists {
			if r := NewRegistration(cs[:n] + "-" + cs[n:]); r.IsValid() {
				r.Raw = callsign
				return r, nil
			}
		}
	}
	return Registration{Raw: callsign}, fmt.Errorf("callsign %q is not a known registration", callsign)
}

// RegisterCountry returns the country whose register uses the prefix.
func RegisterCountry(prefix string) (string, bool) {
	c, exists := registerPrefixes[strings.TrimSuffix(strings.ToUpper(prefix), "-")]
	return c, exists
}
