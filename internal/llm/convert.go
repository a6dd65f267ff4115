package llm

import (
	"strconv"

	"github.com/gfmartins/trcheck/internal/entity"
	"github.com/gfmartins/trcheck/internal/numparse"
)

// ToLineItems converts validated model rows into line items, pushing every
// numeric string through the shared normalization so this path produces
// values identical to the pattern extractor's.
func ToLineItems(table RawTable) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(table.Items))
	for i, r := range table.Items {
		it := entity.LineItem{
			Group:       r.Group,
			ItemNumber:  r.ItemNumber,
			ProductCode: r.ProductCode,
			Description: r.Description,
			Unit:        r.Unit,
		}
		if it.ItemNumber == "" {
			it.ItemNumber = strconv.Itoa(i + 1)
		}
		if d, ok := numparse.Normalize(r.Quantity); ok {
			it.Quantity = &d
		}
		if d, ok := numparse.Normalize(r.UnitPrice); ok {
			it.UnitPrice = &d
		}
		if d, ok := numparse.Normalize(r.TotalPrice); ok {
			it.TotalPrice = &d
		}
		if it.Quantity == nil && it.UnitPrice != nil && it.TotalPrice != nil && !it.UnitPrice.IsZero() {
			q := it.TotalPrice.Div(*it.UnitPrice).Round(4)
			it.Quantity = &q
			it.QuantityDerived = true
		}
		out = append(out, it)
	}
	return out
}
