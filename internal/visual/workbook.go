package visual

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/stemsi/jinro-backend/internal/dataset"
)

// WriteWorkbook writes the university, major and admission records as one
// XLSX workbook with a sheet per record set.
func WriteWorkbook(w io.Writer, store *dataset.Store) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []sheet{universitySheet(store), majorSheet(store), admissionSheet(store)}
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sh sheet) error {
	header := make([]any, len(sh.columns))
	for i, c := range sh.columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sh.name, err)
	}
	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sh.name, i+1, err)
		}
	}
	return f.SetPanes(sh.name, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})
}
