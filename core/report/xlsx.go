package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the media type of the workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// rowsPerSheet is the number of data rows per sheet. Excel caps a sheet at
// excelize.TotalRows rows, one of which is the header.
var rowsPerSheet = excelize.TotalRows - 1

// writeWorkbook saves header and rows to path, continuing on "<title> 2",
// "<title> 3", ... when a sheet is full.
func writeWorkbook(path, title string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := (len(rows) + rowsPerSheet - 1) / rowsPerSheet
	if sheets == 0 {
		sheets = 1
	}

	for n := 0; n < sheets; n++ {
		name := title
		if n > 0 {
			name = fmt.Sprintf("%s %d", title, n+1)
		}

		if n == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		start := n * rowsPerSheet
		end := min(start+rowsPerSheet, len(rows))
		if err := writeSheet(f, name, headerStyle, header, rows[start:end]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, header []string, rows [][]string) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", cells); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet %s: %w", sheet, err)
	}
	return nil
}
