package llm

import (
	"context"

	"github.com/gfmartins/trcheck/internal/entity"
)

// RawItem is the shape we want from the model for one table row. Numeric
// fields come back as strings in whatever locale the document printed and
// are pushed through the shared normalization before use.
type RawItem struct {
	Group       string `json:"group,omitempty"`
	ItemNumber  string `json:"item_number,omitempty"`
	ProductCode string `json:"product_code"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit"`
	Quantity    string `json:"quantity,omitempty"`
	UnitPrice   string `json:"unit_price,omitempty"`
	TotalPrice  string `json:"total_price,omitempty"`
}

// RawTable is the full model response.
type RawTable struct {
	Items []RawItem `json:"items"`
}

type ExtractRequest struct {
	DocumentText string
	FilenameHint string
	CodeLength   int
	KnownUnits   []string // unit vocabulary hint, optional

	PrepConfidence float32 // confidence of the text layer, 0..1
}

// ItemExtractor is the interface the pipeline depends on when a document's
// text layer is too poor for pattern matching.
type ItemExtractor interface {
	ExtractItems(ctx context.Context, req ExtractRequest) ([]entity.LineItem, []byte /*rawJSON*/, error)
}
