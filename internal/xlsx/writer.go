// Package xlsx renders a pivoted inventory table as an Excel workbook.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/skuflow/skuflow/internal/pivot"
)

// SheetName is the name of the single worksheet in the output workbook.
const SheetName = "Inventory"

// Write renders the table into an xlsx workbook and writes it to w.
//
// Layout: header row "SKU", one column per size ascending, "Total"; one row
// per base key in table order. Sparse cells are left genuinely empty so a
// missing variant is distinguishable from an explicit zero quantity.
func Write(t *pivot.Table, w io.Writer) error {
	f, err := build(t)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile renders the table and saves it to path.
func WriteFile(t *pivot.Table, path string) error {
	f, err := build(t)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func build(t *pivot.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, len(t.Columns)+2)
	header = append(header, "SKU")
	for _, c := range t.Columns {
		header = append(header, c)
	}
	header = append(header, "Total")
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, 0, len(t.Columns)+2)
		cells = append(cells, row.BaseKey)
		for _, c := range t.Columns {
			if qty, ok := row.Cells[c]; ok {
				cells = append(cells, qty)
			} else {
				cells = append(cells, nil) // leave the cell empty
			}
		}
		cells = append(cells, row.Total)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	// Base keys are long; give the first column room.
	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	return f, nil
}
