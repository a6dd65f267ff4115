package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SanitizeItems normalizes a model response so the overall document can
// still validate:
//   - unwraps a bare top-level array into {"items": [...]}
//   - coerces numeric quantity/price values to strings
//   - drops null/empty optionals and unknown keys
//   - drops rows without a product code
//
// Only lenient, recoverable fixes; anything else still fails schema
// validation afterwards.
func SanitizeItems(raw []byte) ([]byte, []string, error) {
	var dropped []string

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		trimmed = `{"items":` + trimmed + `}`
		dropped = append(dropped, "(wrapped bare array)")
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	rows, _ := doc["items"].([]any)
	out := make([]any, 0, len(rows))
	allowed := map[string]struct{}{
		"group": {}, "item_number": {}, "product_code": {}, "description": {},
		"unit": {}, "quantity": {}, "unit_price": {}, "total_price": {},
	}
	numeric := []string{"quantity", "unit_price", "total_price"}

	for i, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("items[%d](not object)", i))
			continue
		}
		for k := range row {
			if _, ok := allowed[k]; !ok {
				delete(row, k)
				dropped = append(dropped, fmt.Sprintf("items[%d].%s(unknown)", i, k))
			}
		}
		for _, k := range numeric {
			switch t := row[k].(type) {
			case float64:
				row[k] = trimFloat(t)
			case string:
				if strings.TrimSpace(t) == "" {
					delete(row, k)
					dropped = append(dropped, fmt.Sprintf("items[%d].%s(empty)", i, k))
				}
			case nil:
				if _, present := row[k]; present {
					delete(row, k)
					dropped = append(dropped, fmt.Sprintf("items[%d].%s(null)", i, k))
				}
			}
		}
		for _, k := range []string{"group", "item_number", "product_code", "description", "unit"} {
			if v, ok := row[k].(string); ok {
				s := strings.TrimSpace(v)
				if s == "" {
					delete(row, k)
					dropped = append(dropped, fmt.Sprintf("items[%d].%s(empty)", i, k))
				} else {
					row[k] = s
				}
			}
		}
		if _, ok := row["product_code"].(string); !ok {
			dropped = append(dropped, fmt.Sprintf("items[%d](no product_code)", i))
			continue
		}
		out = append(out, row)
	}

	b, err := json.Marshal(map[string]any{"items": out})
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	return b, dropped, nil
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.4f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
