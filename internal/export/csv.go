// Package export renders validated items as tabular artifacts. Formatting
// (delimiter, decimal convention) follows the audience's spreadsheet
// locale, which is not the canonical internal representation.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gfmartins/trcheck/constants"
	"github.com/gfmartins/trcheck/internal/entity"
)

// Options controls the output locale.
type Options struct {
	Delimiter    rune // default ';'
	DecimalComma bool // true: "1434,89" (spreadsheet locale of the source documents)
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ';'
	}
	return o.Delimiter
}

var header = []string{
	"group", "item_number", "product_code", "description", "unit",
	"quantity", "unit_price", "total_price",
	"catalog_status", "entry_status", "catalog_description",
	"unit_status", "expected_unit",
	"arithmetic_status", "difference",
}

// WriteCSV writes all validated items with their annotation columns,
// followed by a summary block.
func WriteCSV(w io.Writer, items []entity.ValidatedItem, summary entity.Summary, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.delimiter()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, it := range items {
		rec := []string{
			it.Group,
			it.ItemNumber,
			it.ProductCode,
			it.Description,
			it.Unit,
			fmtDecimalPtr(it.Quantity, opts),
			fmtDecimalPtr(it.UnitPrice, opts),
			fmtDecimalPtr(it.TotalPrice, opts),
			string(it.CatalogStatus),
			string(it.EntryStatus),
			it.CatalogDesc,
			string(it.UnitStatus),
			it.ExpectedUnit,
			string(it.Arithmetic),
			fmtDecimalPtr(it.Difference, opts),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	// summary block: blank line, then label/value pairs
	if err := cw.Write([]string{}); err == nil {
		_ = cw.Write([]string{"items", fmt.Sprintf("%d", summary.Items)})
		_ = cw.Write([]string{"total", fmtDecimal(summary.Total, opts)})
		for _, status := range []constants.CatalogMatch{
			constants.CatalogFoundActive, constants.CatalogFoundInactive, constants.CatalogNotFound,
		} {
			_ = cw.Write([]string{string(status), fmt.Sprintf("%d", summary.ByCatalog[status])})
		}
		for group, total := range summary.TotalsByGroup {
			_ = cw.Write([]string{"total " + group, fmtDecimal(total, opts)})
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtDecimalPtr(d *decimal.Decimal, opts Options) string {
	if d == nil {
		return ""
	}
	return fmtDecimal(*d, opts)
}

func fmtDecimal(d decimal.Decimal, opts Options) string {
	// whole values print bare ("7"), fractional ones with two places
	s := d.String()
	if !d.Equal(d.Truncate(0)) {
		s = d.StringFixed(2)
	}
	if opts.DecimalComma {
		s = strings.ReplaceAll(s, ".", ",")
	}
	return s
}
