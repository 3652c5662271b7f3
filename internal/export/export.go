// Package export serializes the loaded transaction collection into
// spreadsheet formats offered for download. No filtering happens here beyond
// what the caller already loaded.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"financas/internal/core"
)

// header is the column order of both formats, matching the keys of the JSON
// file format.
var header = []string{"kind", "amount", "description", "category", "card", "entry_date"}

func row(t core.Transaction) []string {
	return []string{
		string(t.Kind),
		core.FormatAmount(t.Amount),
		t.Description,
		t.Category,
		t.Card,
		t.Date.String(),
	}
}

// WriteCSV writes the transactions as CSV with a header row.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range txs {
		if err := cw.Write(row(t)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteXLSX writes the transactions as a single-sheet XLSX workbook.
func WriteXLSX(w io.Writer, txs []core.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, t := range txs {
		r := row(t)
		cells := make([]any, len(r))
		for j, v := range r {
			cells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
