// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"io"

	"github.com/siemens/maildig/types"
	"github.com/xuri/excelize/v2"
)

// Names of the workbook sheets.
const (
	DomainsSheet     = "Interesting domains"
	DetailSheet      = "Detail"
	ValidEmailsSheet = "Valid Emails"
)

// Column titles of the workbook sheets.
var (
	DomainsHeader     = []string{"Domain name", "Hits"}
	DetailHeader      = []string{"Email", "Alphanumeric check", "TLD", "TLD check", "Domain", "Domain Checked?", "Domain check", "Internet archive check"}
	ValidEmailsHeader = []string{"Email", "Source"}
)

// Workbook contents; nil projections result in sheets with only their header
// row.
type Workbook struct {
	Domains     []types.DomainHits
	Detail      []types.Row
	ValidEmails []types.EmailSource
}

// Write writes the workbook in XLSX format to the specified writer.
func (wb Workbook) Write(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Family: "Arial", Color: "0000FF"},
	})
	if err != nil {
		return fmt.Errorf("cannot create header style: %w", err)
	}

	// A new file always starts with a single default sheet, which we simply
	// rename into our first sheet.
	if err := f.SetSheetName(f.GetSheetName(0), DomainsSheet); err != nil {
		return err
	}
	domains := make([][]any, 0, len(wb.Domains))
	for _, hits := range wb.Domains {
		domains = append(domains, []any{hits.Domain, hits.Hits})
	}
	if err := writeSheet(f, DomainsSheet, DomainsHeader, headerStyle, domains); err != nil {
		return err
	}

	detail := make([][]any, 0, len(wb.Detail))
	for _, row := range wb.Detail {
		fields := row.Fields()
		cells := make([]any, len(fields))
		for idx, field := range fields {
			cells[idx] = field
		}
		detail = append(detail, cells)
	}
	if _, err := f.NewSheet(DetailSheet); err != nil {
		return err
	}
	if err := writeSheet(f, DetailSheet, DetailHeader, headerStyle, detail); err != nil {
		return err
	}

	emails := make([][]any, 0, len(wb.ValidEmails))
	for _, es := range wb.ValidEmails {
		emails = append(emails, []any{es.Email, es.SourceFile})
	}
	if _, err := f.NewSheet(ValidEmailsSheet); err != nil {
		return err
	}
	if err := writeSheet(f, ValidEmailsSheet, ValidEmailsHeader, headerStyle, emails); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

// writeSheet writes a styled header row followed by the data rows.
func writeSheet(f *excelize.File, sheet string, header []string, style int, rows [][]any) error {
	titles := make([]any, len(header))
	for idx, title := range header {
		titles[idx] = title
	}
	if err := f.SetSheetRow(sheet, "A1", &titles); err != nil {
		return fmt.Errorf("cannot write header of sheet %q: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write row %d of sheet %q: %w", idx+2, sheet, err)
		}
	}
	return nil
}
