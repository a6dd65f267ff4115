package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gfmartins/trcheck/constants"
	"github.com/gfmartins/trcheck/internal/common"
	"github.com/gfmartins/trcheck/internal/entity"
)

// column header synonyms accepted from the catalog source (the official
// download uses Portuguese headers; test fixtures use English ones).
var headerAliases = map[string]string{
	"code":        "code",
	"codigo":      "code",
	"unit":        "unit",
	"unidade":     "unit",
	"status":      "status",
	"situacao":    "status",
	"description": "description",
	"descricao":   "description",
}

// ParseTable reads a delimited catalog file into entries, source order
// preserved. The code and unit columns are required; a file without them is
// "catalog unavailable", never a silent empty catalog.
func ParseTable(r io.Reader, delimiter rune) ([]entity.CatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, common.NewAppError("CATALOG_PARSE", "reading header row", common.ErrCatalogUnavailable)
	}
	cols := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(stripAccents(h)))
		if canon, ok := headerAliases[key]; ok {
			if _, dup := cols[canon]; !dup {
				cols[canon] = i
			}
		}
	}
	for _, required := range []string{"code", "unit"} {
		if _, ok := cols[required]; !ok {
			return nil, common.NewAppError("CATALOG_PARSE",
				fmt.Sprintf("missing required column %q", required), common.ErrCatalogUnavailable)
		}
	}

	var entries []entity.CatalogEntry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a single malformed row is skipped, not fatal; any other
			// read error is persistent and means the source is gone
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, common.NewAppError("CATALOG_PARSE", "reading catalog rows", common.ErrCatalogUnavailable)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		code := get("code")
		if code == "" {
			continue
		}
		entries = append(entries, entity.CatalogEntry{
			Code:         code,
			OfficialUnit: strings.ToUpper(get("unit")),
			Status:       parseStatus(get("status")),
			Description:  get("description"),
		})
	}
	return entries, nil
}

func parseStatus(s string) constants.EntryStatus {
	switch strings.ToUpper(strings.TrimSpace(stripAccents(s))) {
	case "ACTIVE", "ATIVO", "ATIVA", "A":
		return constants.EntryStatusActive
	case "INACTIVE", "INATIVO", "INATIVA", "SUSPENSO", "I":
		return constants.EntryStatusInactive
	default:
		return constants.EntryStatusUnknown
	}
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e", "í", "i",
	"ó", "o", "õ", "o", "ô", "o",
	"ú", "u", "ç", "c",
	"Á", "A", "À", "A", "Ã", "A", "Â", "A",
	"É", "E", "Ê", "E", "Í", "I",
	"Ó", "O", "Õ", "O", "Ô", "O",
	"Ú", "U", "Ç", "C",
)

func stripAccents(s string) string {
	return accentReplacer.Replace(s)
}
