package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	// SheetName is the single worksheet the export artifact carries.
	SheetName = "Responses"
	// FileName is the fixed download name for the export artifact.
	FileName = "form_responses.xlsx"
)

// WriteWorkbook serializes the table as a binary spreadsheet with one
// sheet named "Responses": first row the header, then one row per
// response.
func WriteWorkbook(w io.Writer, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	rows := make([][]string, 0, len(table.Rows)+1)
	rows = append(rows, table.Header)
	rows = append(rows, table.Rows...)

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("export: cell name: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("export: set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

// Responses builds the table for the form and responses and writes the
// spreadsheet artifact in one call.
func Responses(w io.Writer, form model.Form, responses []model.Response) error {
	return WriteWorkbook(w, BuildTable(form, responses))
}
