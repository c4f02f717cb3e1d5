package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVFilename is where the leg table goes, by default.
func (r *Report) CSVFilename() string {
	return fmt.Sprintf("report-%s-%s.csv", r.Name, r.Date.Format("20060102"))
}

func (r *Report) OutputAsCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Write(r.HeadersText)
	for _, row := range r.RowsText {
		csvWriter.Write(row)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
