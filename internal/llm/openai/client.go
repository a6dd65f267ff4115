package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gfmartins/trcheck/internal/entity"
	"github.com/gfmartins/trcheck/internal/llm"
)

// ExtractItems implements llm.ItemExtractor via text-only chat/completions:
// the document text goes in, the item table comes back as strict JSON and
// is schema-validated (with one lenient sanitize pass) before conversion.
func (c *Client) ExtractItems(ctx context.Context, req llm.ExtractRequest) ([]entity.LineItem, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.items.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(req.DocumentText),
		"code_length", req.CodeLength,
		"prep_confidence", req.PrepConfidence,
	)

	schema := llm.BuildItemsJSONSchema(req.CodeLength)
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": buildSystemPrompt(req)},
			{"role": "user", "content": buildUserPrompt(req) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.items.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.items.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return nil, raw, fmt.Errorf("decode chat response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.items.no_choices", "req_id", rid)
		return nil, raw, fmt.Errorf("no choices in chat response")
	}
	content := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		if !c.cfg.Lenient {
			c.log.Error("llm.items.schema_validation_failed", "req_id", rid, "error", err)
			return nil, content, fmt.Errorf("schema validation failed: %w", err)
		}
		cleaned, dropped, sErr := llm.SanitizeItems(content)
		if sErr != nil {
			c.log.Error("llm.items.sanitize_failed", "req_id", rid, "error", sErr)
			return nil, content, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := llm.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			c.log.Error("llm.items.schema_validation_failed", "req_id", rid, "error", vErr)
			return nil, content, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.log.Warn("llm.items.lenient_sanitize_applied", "req_id", rid, "dropped", dropped)
		content = cleaned
	}

	var table llm.RawTable
	if err := json.Unmarshal(content, &table); err != nil {
		c.log.Error("llm.items.unmarshal_failed", "req_id", rid, "error", err)
		return nil, content, fmt.Errorf("unmarshal items: %w", err)
	}
	items := llm.ToLineItems(table)

	c.log.Info("llm.items.ok",
		"req_id", rid,
		"items", len(items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return items, content, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Warn("chat response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chat status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
