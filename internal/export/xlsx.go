package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gfmartins/trcheck/constants"
	"github.com/gfmartins/trcheck/internal/entity"
)

// WriteXLSX returns an XLSX workbook (as bytes) with one row per validated
// item and a summary block below the table.
func WriteXLSX(items []entity.ValidatedItem, summary entity.Summary, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Items"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// the default sheet is not the one we write
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 2
	for _, it := range items {
		write(1, row, it.Group)
		write(2, row, it.ItemNumber)
		write(3, row, it.ProductCode)
		write(4, row, it.Description)
		write(5, row, it.Unit)
		write(6, row, fmtDecimalPtr(it.Quantity, opts))
		write(7, row, fmtDecimalPtr(it.UnitPrice, opts))
		write(8, row, fmtDecimalPtr(it.TotalPrice, opts))
		write(9, row, string(it.CatalogStatus))
		write(10, row, string(it.EntryStatus))
		write(11, row, it.CatalogDesc)
		write(12, row, string(it.UnitStatus))
		write(13, row, it.ExpectedUnit)
		write(14, row, string(it.Arithmetic))
		write(15, row, fmtDecimalPtr(it.Difference, opts))
		row++
	}

	row++
	write(1, row, "items")
	write(2, row, summary.Items)
	row++
	write(1, row, "total")
	write(2, row, fmtDecimal(summary.Total, opts))
	for _, status := range []constants.CatalogMatch{
		constants.CatalogFoundActive, constants.CatalogFoundInactive, constants.CatalogNotFound,
	} {
		row++
		write(1, row, string(status))
		write(2, row, summary.ByCatalog[status])
	}
	for group, total := range summary.TotalsByGroup {
		row++
		write(1, row, fmt.Sprintf("total %s", group))
		write(2, row, fmtDecimal(total, opts))
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "C", "C", 14)
	_ = f.SetColWidth(sheet, "D", "D", 42)
	_ = f.SetColWidth(sheet, "F", "H", 14)
	_ = f.SetColWidth(sheet, "I", "O", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
