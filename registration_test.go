package privatejets

// go test -v github.com/simonsan-contrib/private-jets

import "testing"

type RegistrationTest struct {
	Raw        string
	Normalized string
	Country    string
}

var tests = []RegistrationTest{
	{"", "", ""},
	{"-.-.-.-.", "-.-.-.-.", ""},
	{"OY-GFS", "OY-GFS", "Denmark"},
	{"oy-cke", "OY-CKE", "Denmark"},
	{"D-IEFB", "D-IEFB", "Germany"},
	{"CS-DLA", "CS-DLA", "Portugal"},
	{"N761QA", "N761QA", "United States"},
	{"N0123", "N0123", ""}, // N-numbers can't start with zero
	{"ZS-ABC", "ZS-ABC", ""},
}

func TestNewRegistration(t *testing.T) {
	for _, test := range tests {
		r := NewRegistration(test.Raw)
		if r.String() != test.Normalized {
			t.Errorf("'%s' - expected string %q, got %q", test.Raw, test.Normalized, r.String())
		}
		if r.Country != test.Country {
			t.Errorf("'%s' - expected country %q, got %q", test.Raw, test.Country, r.Country)
		}
	}
}

func TestRegistrationFromCallsign(t *testing.T) {
	tests := []struct {
		Callsign string
		Expected string
		OK       bool
	}{
		{"OYGFS", "OY-GFS", true},
		{"DIEFB", "D-IEFB", true},
		{"N761QA", "N761QA", true},
		{"HBJFN ", "HB-JFN", true},
		{"SAS1234", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		r, err := RegistrationFromCallsign(test.Callsign)
		if (err == nil) != test.OK {
			t.Errorf("'%s' - expected ok=%v, got err=%v", test.Callsign, test.OK, err)
			continue
		}
		if test.OK && r.String() != test.Expected {
			t.Errorf("'%s' - expected %q, got %q", test.Callsign, test.Expected, r.String())
		}
	}
}

func TestInRegister(t *testing.T) {
	r := NewRegistration("OY-GFS")
	if !r.InRegister("OY-") || !r.InRegister("oy") {
		t.Errorf("%s should be in the OY register", r)
	}
	if r.InRegister("D-") {
		t.Errorf("%s should not be in the D register", r)
	}
	if r.Callsign() != "OYGFS" {
		t.Errorf("expected callsign OYGFS, got %s", r.Callsign())
	}
}
