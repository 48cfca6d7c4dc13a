package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"openstruct/internal/calc/springs"
)

const SpringsSheet = "Springs"

var springsHeader = []interface{}{"Support", "Depth (m)", "Area (m²)", "Soil", "SPT", "m (tf/m4)", "kmola (tf/m)"}

// SpringsXLSX writes the spring table as a single-sheet workbook.
func SpringsXLSX(w io.Writer, rows []springs.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SpringsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(SpringsSheet, "A1", &springsHeader); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Support, r.Depth, r.Area, string(r.Soil), r.SPT, r.M, r.KSpring}
		if err := f.SetSheetRow(SpringsSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}
