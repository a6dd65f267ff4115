package llm

import "fmt"

// BuildItemsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the model as a structured output constraint
// and also use it locally to validate the response.
func BuildItemsJSONSchema(codeLength int) map[string]any {
	if codeLength <= 0 {
		codeLength = 6
	}
	itemProps := map[string]any{
		"group":        map[string]any{"type": "string"},
		"item_number":  map[string]any{"type": "string"},
		"product_code": map[string]any{"type": "string", "pattern": fmt.Sprintf(`^\d{%d}$`, codeLength)},
		"description":  map[string]any{"type": "string"},
		"unit":         map[string]any{"type": "string", "minLength": 1, "maxLength": 6},
		"quantity":     numericProp(),
		"unit_price":   numericProp(),
		"total_price":  numericProp(),
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           itemProps,
					"required":             []string{"product_code", "unit"},
				},
			},
		},
		"required": []string{"items"},
	}
}

func numericProp() map[string]any {
	// document-locale or canonical; normalization happens on our side
	return map[string]any{
		"type":    "string",
		"pattern": `^[0-9][0-9.,]*$`,
	}
}
