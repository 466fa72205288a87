// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package export

import (
	"encoding/csv"
	"io"

	"github.com/siemens/maildig/types"
)

// Separator separates the fields of the CSV report.
const Separator = ';'

// CSVHeader lists the column titles of the CSV report.
var CSVHeader = []string{
	"artifact email",
	"Alphanumeric check",
	"TLD",
	"TLD check",
	"domain",
	"domain checked?",
	"domain check",
	"internet archive check",
}

// WriteCSV writes the specified detail rows as a semicolon-separated report,
// preceded by a header line. Fields containing the separator, such as
// snapshot archive notes, get quoted.
func WriteCSV(w io.Writer, rows []types.Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
