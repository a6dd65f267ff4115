// Package pipeline coordinates one document run: text acquisition, item
// extraction, catalog validation and export. One document per invocation,
// fully synchronous.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gfmartins/trcheck/internal/catalog"
	"github.com/gfmartins/trcheck/internal/entity"
	"github.com/gfmartins/trcheck/internal/export"
	"github.com/gfmartins/trcheck/internal/extract"
	"github.com/gfmartins/trcheck/internal/llm"
	"github.com/gfmartins/trcheck/internal/pdftext"
	"github.com/gfmartins/trcheck/internal/validate"
)

// Format selects the export artifact.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Result is what one run produces.
type Result struct {
	Items    []entity.ValidatedItem
	Summary  entity.Summary
	Pages    int
	RunID    string
	Artifact []byte // xlsx only; csv is streamed to the writer
}

// Processor wires the stages. LLM is optional; when set and UseLLM is true
// it replaces the pattern extractor for the run.
type Processor struct {
	Logger    *slog.Logger
	Extractor *extract.Extractor
	Catalog   *catalog.Loader
	Validate  validate.Config
	Export    export.Options
	LLM       llm.ItemExtractor
	MaxPages  int
}

func NewProcessor(logger *slog.Logger, ex *extract.Extractor, cat *catalog.Loader) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if ex == nil {
		ex = extract.New(extract.Config{})
	}
	return &Processor{
		Logger:    logger,
		Extractor: ex,
		Catalog:   cat,
		Validate:  validate.DefaultConfig(),
	}
}

// ProcessFile runs the full pipeline for a PDF on disk, writing the export
// artifact to w (csv) or returning it in the result (xlsx).
func (p *Processor) ProcessFile(ctx context.Context, path string, format Format, useLLM bool, w io.Writer) (*Result, error) {
	text, pages, err := pdftext.FromFile(path, p.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	res, err := p.ProcessText(ctx, text, filepath.Base(path), format, useLLM, w)
	if err != nil {
		return nil, err
	}
	res.Pages = pages
	return res, nil
}

// ProcessText runs extraction onward for already-acquired document text.
func (p *Processor) ProcessText(ctx context.Context, text, nameHint string, format Format, useLLM bool, w io.Writer) (*Result, error) {
	rid := uuid.New().String()
	start := time.Now()
	p.Logger.Info("pipeline.start", "run_id", rid, "doc", nameHint, "text_len", len(text), "use_llm", useLLM)

	var items []entity.LineItem
	if useLLM && p.LLM != nil {
		var err error
		items, _, err = p.LLM.ExtractItems(ctx, llm.ExtractRequest{
			DocumentText: text,
			FilenameHint: nameHint,
		})
		if err != nil {
			return nil, fmt.Errorf("llm extract: %w", err)
		}
	} else {
		items = p.Extractor.Extract(text)
	}
	if len(items) == 0 {
		// a valid outcome, reported so the caller can fall back to manual
		// inspection of the raw text
		p.Logger.Warn("pipeline.extract.empty", "run_id", rid, "doc", nameHint)
	} else {
		p.Logger.Info("pipeline.extract.ok", "run_id", rid, "items", len(items))
	}

	cat, err := p.Catalog.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	validated, summary, err := validate.Run(items, cat, p.Validate)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("pipeline.validate.ok",
		"run_id", rid,
		"items", summary.Items,
		"not_found", summary.ByCatalog["NOT_FOUND"],
		"inconsistent", summary.ByArithmetic["INCONSISTENT"],
	)

	res := &Result{Items: validated, Summary: summary, RunID: rid}
	switch format {
	case FormatXLSX:
		b, err := export.WriteXLSX(validated, summary, p.Export)
		if err != nil {
			return nil, err
		}
		res.Artifact = b
		if w != nil {
			if _, err := w.Write(b); err != nil {
				return nil, err
			}
		}
	case FormatCSV, Format(""):
		if w != nil {
			if err := export.WriteCSV(w, validated, summary, p.Export); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("unknown export format %q", strings.ToLower(string(format)))
	}

	p.Logger.Info("pipeline.ok", "run_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}
