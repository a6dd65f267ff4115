// Package extract turns document text into candidate line items. It is a
// pure pass over the input: no I/O, no state between calls, and malformed
// lines are skipped rather than reported as errors — zero items is a valid
// result meaning "nothing recognized".
package extract

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gfmartins/trcheck/internal/entity"
	"github.com/gfmartins/trcheck/internal/numparse"
)

// Config holds extraction parameters.
type Config struct {
	CodeLength int // product code digit count; default 6
}

type Extractor struct {
	cfg      Config
	patterns []Pattern
}

func New(cfg Config) *Extractor {
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 6
	}
	return &Extractor{
		cfg:      cfg,
		patterns: defaultPatterns(cfg.CodeLength),
	}
}

// Extract scans the text line by line, trying each pattern in table order;
// the first pattern that matches a line consumes it. Items come back in
// first-occurrence order, with group labels inherited from the most recent
// group header.
func (e *Extractor) Extract(text string) []entity.LineItem {
	var items []entity.LineItem
	group := ""
	seq := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(line, " \f")
		if line == "" {
			continue
		}
		if m := reGroupHeader.FindStringSubmatch(line); m != nil {
			group = strings.ToUpper(m[1]) + " " + m[2]
			seq = 0
			continue
		}
		for _, p := range e.patterns {
			sub := p.re.FindStringSubmatch(line)
			if sub == nil {
				continue
			}
			seq++
			items = append(items, buildItem(p, sub, group, seq))
			break
		}
	}
	return items
}

func buildItem(p Pattern, sub []string, group string, seq int) entity.LineItem {
	it := entity.LineItem{Group: group}
	var moneys []decimal.Decimal

	for idx, kind := range p.groups {
		if idx >= len(sub) || sub[idx] == "" {
			continue
		}
		v := sub[idx]
		switch kind {
		case fieldItem:
			it.ItemNumber = v
		case fieldUnit:
			// some documents print unit codes in lowercase
			it.Unit = strings.ToUpper(v)
		case fieldCode:
			it.ProductCode = v
		case fieldDescription:
			it.Description = strings.TrimSpace(v)
		case fieldQuantityRun:
			if q, ok := parseQuantityRun(v); ok {
				it.Quantity = &q
			}
		}
	}
	// money fields in capture order: unit price first, then total
	for idx := 1; idx < len(sub); idx++ {
		if p.groups[idx] != fieldMoney || sub[idx] == "" {
			continue
		}
		if d, ok := numparse.Normalize(sub[idx]); ok {
			moneys = append(moneys, d)
		}
	}
	if len(moneys) > 0 {
		it.UnitPrice = &moneys[0]
	}
	if len(moneys) > 1 {
		it.TotalPrice = &moneys[1]
	}

	if it.ItemNumber == "" {
		it.ItemNumber = strconv.Itoa(seq)
	}
	deriveQuantity(&it)
	return it
}

// parseQuantityRun resolves a run of integer quantity columns. Documents
// that split a quantity across delivery sites print the total first and the
// per-site figures after it; when the tail sums to the head the head is the
// quantity, otherwise the whole run is summed.
func parseQuantityRun(run string) (decimal.Decimal, bool) {
	parts := strings.Fields(run)
	if len(parts) == 0 {
		return decimal.Zero, false
	}
	vals := make([]decimal.Decimal, 0, len(parts))
	for _, p := range parts {
		d, ok := numparse.Normalize(p)
		if !ok {
			return decimal.Zero, false
		}
		vals = append(vals, d)
	}
	if len(vals) == 1 {
		return vals[0], true
	}
	tail := decimal.Zero
	for _, v := range vals[1:] {
		tail = tail.Add(v)
	}
	if tail.Equal(vals[0]) {
		return vals[0], true
	}
	sum := vals[0].Add(tail)
	return sum, true
}

// deriveQuantity fills a missing quantity from total ÷ unit price when both
// prices are present and the division is meaningful.
func deriveQuantity(it *entity.LineItem) {
	if it.Quantity != nil || it.UnitPrice == nil || it.TotalPrice == nil {
		return
	}
	if it.UnitPrice.IsZero() {
		return
	}
	q := it.TotalPrice.Div(*it.UnitPrice).Round(4)
	it.Quantity = &q
	it.QuantityDerived = true
}
