// Package validate annotates extracted line items against the reference
// catalog and checks their arithmetic. All checks are pure functions of the
// item and the catalog snapshot: validating one item never affects another,
// and re-running over the same snapshot is idempotent.
package validate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gfmartins/trcheck/constants"
	"github.com/gfmartins/trcheck/internal/common"
	"github.com/gfmartins/trcheck/internal/entity"
)

// Config holds validation thresholds.
type Config struct {
	// Tolerance is the relative bound on |total - qty*unit|, as a ratio of
	// the total. Printed documents round, so exact equality is too strict.
	Tolerance decimal.Decimal
	// AbsoluteFloor absorbs sub-cent rounding on small totals.
	AbsoluteFloor decimal.Decimal
}

// DefaultConfig is 2% relative with a one-cent floor. Callers that want the
// defaults start from here; a zero Config means strict equality, not "unset".
func DefaultConfig() Config {
	return Config{
		Tolerance:     decimal.NewFromFloat(0.02),
		AbsoluteFloor: decimal.NewFromFloat(0.01),
	}
}

// Run annotates every item with the three independent checks and builds the
// aggregate summary. A nil or empty catalog is reported as
// ErrCatalogUnavailable so "catalog was never loaded" cannot be mistaken
// for "every code is absent from the catalog".
func Run(items []entity.LineItem, cat *entity.Catalog, cfg Config) ([]entity.ValidatedItem, entity.Summary, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, entity.Summary{}, common.NewAppError("VALIDATION", "no catalog snapshot", common.ErrCatalogUnavailable)
	}
	out := make([]entity.ValidatedItem, 0, len(items))
	summary := entity.Summary{
		Items:        len(items),
		ByCatalog:    map[constants.CatalogMatch]int{},
		ByUnit:       map[constants.UnitMatch]int{},
		ByArithmetic: map[constants.ArithmeticCheck]int{},
	}

	for _, item := range items {
		v := Item(item, cat, cfg)
		out = append(out, v)

		summary.ByCatalog[v.CatalogStatus]++
		summary.ByUnit[v.UnitStatus]++
		summary.ByArithmetic[v.Arithmetic]++
		if item.TotalPrice != nil {
			summary.Total = summary.Total.Add(*item.TotalPrice)
			if item.Group != "" {
				if summary.TotalsByGroup == nil {
					summary.TotalsByGroup = map[string]decimal.Decimal{}
				}
				summary.TotalsByGroup[item.Group] = summary.TotalsByGroup[item.Group].Add(*item.TotalPrice)
			}
		}
	}
	return out, summary, nil
}

// Item runs the three checks on one line item. Pure and order-independent.
func Item(item entity.LineItem, cat *entity.Catalog, cfg Config) entity.ValidatedItem {
	v := entity.ValidatedItem{LineItem: item}

	entry, found := cat.Lookup(item.ProductCode)
	switch {
	case !found:
		v.CatalogStatus = constants.CatalogNotFound
	case entry.Status == constants.EntryStatusInactive:
		v.CatalogStatus = constants.CatalogFoundInactive
	default:
		// ACTIVE, and UNKNOWN gets the benefit of the doubt; the entry
		// status stays on the annotation either way
		v.CatalogStatus = constants.CatalogFoundActive
	}
	if found {
		v.EntryStatus = entry.Status
		v.CatalogDesc = entry.Description
	}

	v.UnitStatus, v.ExpectedUnit = unitCheck(item, entry, found)
	v.Arithmetic, v.Difference = arithmeticCheck(item, cfg)
	return v
}

func unitCheck(item entity.LineItem, entry entity.CatalogEntry, found bool) (constants.UnitMatch, string) {
	if !found {
		return constants.UnitNotApplicable, ""
	}
	if strings.EqualFold(item.Unit, entry.OfficialUnit) {
		return constants.UnitMatchOK, ""
	}
	return constants.UnitMismatch, entry.OfficialUnit
}

func arithmeticCheck(item entity.LineItem, cfg Config) (constants.ArithmeticCheck, *decimal.Decimal) {
	if item.Quantity == nil || item.UnitPrice == nil || item.TotalPrice == nil {
		return constants.ArithmeticNotApplicable, nil
	}
	expected := item.Quantity.Mul(*item.UnitPrice)
	diff := item.TotalPrice.Sub(expected).Abs()

	bound := cfg.Tolerance.Mul(item.TotalPrice.Abs())
	if bound.LessThan(cfg.AbsoluteFloor) {
		bound = cfg.AbsoluteFloor
	}
	if diff.LessThanOrEqual(bound) {
		return constants.ArithmeticConsistent, &diff
	}
	return constants.ArithmeticInconsistent, &diff
}
