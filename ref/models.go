package ref

import (
	"io"
	"strings"
)

// A Model is an aircraft model we consider a private jet.
type Model struct {
	Model string // as it appears in the aircraft table, e.g. "C25B"
	Name  string // e.g. "Cessna Citation CJ3"
}

// ModelTable is keyed by the uppercased model string.
type ModelTable map[string]Model

func (mt ModelTable) Lookup(model string) (Model, bool) {
	m, exists := mt[strings.ToUpper(strings.TrimSpace(model))]
	return m, exists
}

func (mt ModelTable) IsPrivateJet(model string) bool {
	_, exists := mt.Lookup(model)
	return exists
}

func LoadModelsCSV(r io.Reader) (ModelTable, error) {
	rows, err := readCSV(r, "model")
	if err != nil {
		return nil, err
	}
	mt := ModelTable{}
	for _, row := range rows {
		if row["model"] == "" {
			continue
		}
		mt[strings.ToUpper(row["model"])] = Model{Model: row["model"], Name: row["name"]}
	}
	return mt, nil
}
