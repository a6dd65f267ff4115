package entity

import (
	"github.com/shopspring/decimal"

	"github.com/gfmartins/trcheck/constants"
)

// LineItem is one row of a procurement document's item table, as extracted
// from the source text. Money fields are already normalized to canonical
// decimals; nil means the column was not printed (or did not parse).
type LineItem struct {
	Group           string           `json:"group,omitempty"`
	ItemNumber      string           `json:"item_number"`
	ProductCode     string           `json:"product_code"`
	Description     string           `json:"description,omitempty"`
	Unit            string           `json:"unit"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	QuantityDerived bool             `json:"quantity_derived,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice      *decimal.Decimal `json:"total_price,omitempty"`
}

// ValidatedItem is a LineItem annotated with the three validation outcomes.
type ValidatedItem struct {
	LineItem

	CatalogStatus constants.CatalogMatch    `json:"catalog_status"`
	EntryStatus   constants.EntryStatus     `json:"entry_status,omitempty"`
	UnitStatus    constants.UnitMatch       `json:"unit_status"`
	ExpectedUnit  string                    `json:"expected_unit,omitempty"`
	Arithmetic    constants.ArithmeticCheck `json:"arithmetic_status"`
	Difference    *decimal.Decimal          `json:"difference,omitempty"`
	CatalogDesc   string                    `json:"catalog_description,omitempty"`
}

// Summary aggregates validation outcomes over one document run.
type Summary struct {
	Items         int                               `json:"items"`
	ByCatalog     map[constants.CatalogMatch]int    `json:"by_catalog"`
	ByUnit        map[constants.UnitMatch]int       `json:"by_unit"`
	ByArithmetic  map[constants.ArithmeticCheck]int `json:"by_arithmetic"`
	Total         decimal.Decimal                   `json:"total"`
	TotalsByGroup map[string]decimal.Decimal        `json:"totals_by_group,omitempty"`
}
