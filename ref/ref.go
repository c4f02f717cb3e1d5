// Package ref contains the curated reference tables: which airframe is which, which
// models count as private jets, and who owns them.
package ref

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pj "github.com/simonsan-contrib/private-jets"
)

const (
	AirframesFilename = "aircraft.csv"
	ModelsFilename    = "private_jets.csv"
	OwnersFilename    = "owners.csv"
)

// Tables bundles everything the report needs to know about an aircraft that isn't in its
// position trace.
type Tables struct {
	Airframes *AirframeCache
	Models    ModelTable
	Owners    OwnerTable
}

// LoadTables reads the three CSV files from dir. The owners file is optional.
func LoadTables(dir string) (*Tables, error) {
	t := Tables{}
	var err error

	if t.Airframes, err = loadFile(filepath.Join(dir, AirframesFilename), LoadAirframesCSV); err != nil {
		return nil, err
	}
	if t.Models, err = loadFile(filepath.Join(dir, ModelsFilename), LoadModelsCSV); err != nil {
		return nil, err
	}
	t.Owners, err = loadFile(filepath.Join(dir, OwnersFilename), LoadOwnersCSV)
	if os.IsNotExist(err) {
		t.Owners = OwnerTable{}
	} else if err != nil {
		return nil, err
	}

	return &t, nil
}

func loadFile[T any](filename string, load func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(filename)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()

	t, err := load(f)
	if err != nil {
		return t, fmt.Errorf("%s: %v", filename, err)
	}
	return t, nil
}

// Resolve takes either an icao24 id ("45d2ed") or a registration ("OY-GFS"), and returns
// everything we know about the airframe.
func (t *Tables) Resolve(idOrTail string) (pj.Airframe, error) {
	af := t.Airframes.Get(idOrTail)
	if af == nil {
		icao, err := t.Airframes.LookupRegistration(idOrTail)
		if err != nil {
			return pj.Airframe{}, err
		}
		af = t.Airframes.Get(icao)
	}

	ret := *af
	if o, exists := t.Owners.Lookup(ret.Registration); exists {
		ret.Owner = o.Name
	}
	if m, exists := t.Models.Lookup(ret.Model); exists && m.Name != "" {
		ret.Model = m.Name
	}
	return ret, nil
}

// PrivateJetsInRegister returns every private jet whose registration carries the prefix
// (e.g. "OY-"), sorted by registration.
func (t *Tables) PrivateJetsInRegister(prefix string) []pj.Airframe {
	ret := []pj.Airframe{}
	for _, af := range t.Airframes.InRegister(prefix) {
		if t.Models.IsPrivateJet(af.Model) {
			ret = append(ret, *af)
		}
	}
	return ret
}

// {{{ readCSV

// readCSV returns one map per row, keyed by the (lowercased) header names. Every column
// in required must be present in the header.
func readCSV(r io.Reader, required ...string) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header row")
	} else if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	for _, col := range required {
		found := false
		for _, h := range header {
			found = found || (h == col)
		}
		if !found {
			return nil, fmt.Errorf("missing column %q (have %v)", col, header)
		}
	}

	rows := []map[string]string{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		row := map[string]string{}
		for i, v := range rec {
			if i < len(header) {
				row[header[i]] = strings.TrimSpace(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// }}}
