package ref

import (
	"io"

	pj "github.com/simonsan-contrib/private-jets"
)

type Owner struct {
	Registration string
	Name         string
	Statement    string // what the owner has said about the aircraft's use, if anything
	Source       string // how we know, typically a link
}

// OwnerTable is keyed by canonical registration.
type OwnerTable map[string]Owner

func (ot OwnerTable) Lookup(reg string) (Owner, bool) {
	o, exists := ot[pj.NewRegistration(reg).String()]
	return o, exists
}

func LoadOwnersCSV(r io.Reader) (OwnerTable, error) {
	rows, err := readCSV(r, "registration", "owner")
	if err != nil {
		return nil, err
	}
	ot := OwnerTable{}
	for _, row := range rows {
		reg := pj.NewRegistration(row["registration"]).String()
		ot[reg] = Owner{
			Registration: reg,
			Name:         row["owner"],
			Statement:    row["statement"],
			Source:       row["source"],
		}
	}
	return ot, nil
}
