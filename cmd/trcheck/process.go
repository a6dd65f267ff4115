package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gfmartins/trcheck/internal/catalog"
	"github.com/gfmartins/trcheck/internal/common"
	"github.com/gfmartins/trcheck/internal/export"
	"github.com/gfmartins/trcheck/internal/extract"
	"github.com/gfmartins/trcheck/internal/llm/openai"
	"github.com/gfmartins/trcheck/internal/pipeline"
	"github.com/gfmartins/trcheck/internal/validate"
)

var (
	outPath      string
	outFormat    string
	catalogPath  string
	tolerance    float64
	useLLM       bool
	decimalComma bool
)

var processCmd = &cobra.Command{
	Use:   "process <document.pdf>",
	Short: "Extract, validate and export one document's item table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()
		cfg := common.LoadConfig()
		if catalogPath != "" {
			cfg.Catalog.FilePath = catalogPath
		}
		if cmd.Flags().Changed("tolerance") {
			cfg.Validator.Tolerance = tolerance
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		loader, store, err := buildLoader(cmd, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		p := pipeline.NewProcessor(logger, extract.New(extract.Config{CodeLength: cfg.Extractor.CodeLength}), loader)
		p.MaxPages = cfg.Extractor.MaxPages
		p.Validate = validate.Config{
			Tolerance:     decimal.NewFromFloat(cfg.Validator.Tolerance),
			AbsoluteFloor: decimal.NewFromFloat(cfg.Validator.AbsoluteFloor),
		}
		p.Export = export.Options{DecimalComma: decimalComma}
		if useLLM {
			if cfg.LLM.APIKey == "" {
				return common.NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required with --use-llm", common.ErrInvalidInput)
			}
			p.LLM = openai.NewClient(openai.Config{
				APIKey:      cfg.LLM.APIKey,
				Model:       cfg.LLM.Model,
				Temperature: cfg.LLM.Temperature,
				Timeout:     cfg.LLM.Timeout,
				Lenient:     true,
			}, logger)
		}

		out := os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		}

		res, err := p.ProcessFile(cmd.Context(), args[0], pipeline.Format(outFormat), useLLM, out)
		if err != nil {
			return err
		}
		if res.Summary.Items == 0 {
			fmt.Fprintln(os.Stderr, "no items recognized; inspect the raw text manually")
		}
		return nil
	},
}

func buildLoader(cmd *cobra.Command, cfg *common.Config, logger *slog.Logger) (*catalog.Loader, *catalog.Store, error) {
	var source catalog.Source
	if cfg.Catalog.FilePath != "" {
		source = catalog.FileSource{Path: cfg.Catalog.FilePath}
	} else {
		source = catalog.HTTPSource{URL: cfg.Catalog.URL, Timeout: cfg.Catalog.Timeout}
	}
	store, err := catalog.OpenStore(cmd.Context(), cfg.Catalog.CacheDB, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog cache: %w", err)
	}
	delim := ';'
	if cfg.Catalog.Delimiter != "" {
		delim = rune(cfg.Catalog.Delimiter[0])
	}
	loader := catalog.NewLoader(catalog.Config{
		TTL:       cfg.Catalog.CacheTTL,
		Delimiter: delim,
	}, source, store, logger)
	return loader, store, nil
}

func init() {
	processCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default stdout)")
	processCmd.Flags().StringVarP(&outFormat, "format", "f", "csv", "export format: csv or xlsx")
	processCmd.Flags().StringVar(&catalogPath, "catalog", "", "local catalog file (overrides CATALOG_URL)")
	processCmd.Flags().Float64Var(&tolerance, "tolerance", 0.02, "relative arithmetic tolerance")
	processCmd.Flags().BoolVar(&useLLM, "use-llm", false, "extract the table with the LLM instead of pattern matching")
	processCmd.Flags().BoolVar(&decimalComma, "decimal-comma", true, "export decimals with comma separator")
}
