package openai

import (
	"fmt"
	"strings"

	"github.com/gfmartins/trcheck/internal/llm"
)

func buildSystemPrompt(req llm.ExtractRequest) string {
	codeLen := req.CodeLength
	if codeLen <= 0 {
		codeLen = 6
	}
	var b strings.Builder
	b.WriteString("You read public procurement documents and reconstruct their item table. ")
	b.WriteString(fmt.Sprintf("Each row has a %d-digit product code and a short unit-of-supply code. ", codeLen))
	b.WriteString("Prices use comma as the decimal separator and period for thousands; copy them verbatim, do not convert. ")
	b.WriteString("Rows under a group header (GRUPO/LOTE) carry that header in the group field. ")
	if len(req.KnownUnits) > 0 {
		b.WriteString("Units you may see: " + strings.Join(req.KnownUnits, ", ") + ". ")
	}
	b.WriteString("Omit fields the document does not print. Never invent rows.")
	return b.String()
}

func buildUserPrompt(req llm.ExtractRequest) string {
	var b strings.Builder
	if req.FilenameHint != "" {
		b.WriteString("Document: " + req.FilenameHint + "\n\n")
	}
	b.WriteString("Extract every item-table row from the following text:\n\n")
	b.WriteString(req.DocumentText)
	return b.String()
}
