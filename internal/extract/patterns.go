package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// fieldKind enumerates the typed columns a document line can carry. A
// Pattern is a sequence of these, compiled once into a single regexp; the
// rules stay data instead of scattered regex branches.
type fieldKind int

const (
	fieldItem        fieldKind = iota // item number, 1-4 digits
	fieldUnit                         // unit-of-supply code, short alphabetic
	fieldCode                         // product code, fixed length digits
	fieldDescription                  // free text, non-greedy
	fieldQuantityRun                  // one or more integer quantity columns
	fieldMoney                        // decimal amount in document locale
)

type field struct {
	kind     fieldKind
	optional bool
}

// Pattern is one candidate line layout, tried in table order.
type Pattern struct {
	Name   string
	fields []field
	re     *regexp.Regexp
	groups map[int]fieldKind // submatch index -> field kind
}

// atoms per field kind; %d is the configured code length.
const (
	atomItem  = `\d{1,4}`
	atomUnit  = `[A-Za-zÇç]{1,4}`
	atomDesc  = `[^\d\s].*?`
	atomQty   = `\d+(?: \d+)*`
	atomMoney = `\d{1,3}(?:\.\d{3})*,\d{2}|\d+,\d{2}|\d+\.\d{2}`
)

func atom(k fieldKind, codeLen int) string {
	switch k {
	case fieldItem:
		return atomItem
	case fieldUnit:
		return atomUnit
	case fieldCode:
		return fmt.Sprintf(`\d{%d}`, codeLen)
	case fieldDescription:
		return atomDesc
	case fieldQuantityRun:
		return atomQty
	case fieldMoney:
		return atomMoney
	}
	return ``
}

// compile turns a field sequence into one anchored regexp. Every field gets
// its own capturing group so the extractor can map submatches back to kinds.
func compile(name string, fields []field, codeLen int) Pattern {
	var b strings.Builder
	b.WriteString(`^`)
	groups := make(map[int]fieldKind, len(fields))
	idx := 0
	for i, f := range fields {
		idx++
		groups[idx] = f.kind
		part := fmt.Sprintf(`(%s)`, atom(f.kind, codeLen))
		if i > 0 {
			part = `[ \t.;:|-]*? ` + part
		}
		if f.optional {
			part = fmt.Sprintf(`(?:%s)?`, part)
		}
		b.WriteString(part)
	}
	b.WriteString(`\s*$`)
	return Pattern{
		Name:   name,
		fields: fields,
		re:     regexp.MustCompile(b.String()),
		groups: groups,
	}
}

// defaultPatterns is the ordered candidate list. First match per line wins;
// later patterns never see a consumed line.
func defaultPatterns(codeLen int) []Pattern {
	return []Pattern{
		// "1 FR 379429 <desc> 7 4 2 0 1 1.434,89 10.044,23"
		compile("item-unit-code", []field{
			{kind: fieldItem},
			{kind: fieldUnit},
			{kind: fieldCode},
			{kind: fieldDescription, optional: true},
			{kind: fieldQuantityRun},
			{kind: fieldMoney},
			{kind: fieldMoney, optional: true},
		}, codeLen),
		// "FR 379429 7 4 2 0 1 1.434,89 10.044,23"
		compile("unit-code", []field{
			{kind: fieldUnit},
			{kind: fieldCode},
			{kind: fieldQuantityRun},
			{kind: fieldMoney},
			{kind: fieldMoney, optional: true},
		}, codeLen),
		// "1 379429 FR 7 1.434,89 10.044,23": code before unit
		compile("item-code-unit", []field{
			{kind: fieldItem},
			{kind: fieldCode},
			{kind: fieldUnit},
			{kind: fieldQuantityRun},
			{kind: fieldMoney},
			{kind: fieldMoney, optional: true},
		}, codeLen),
		compile("code-unit", []field{
			{kind: fieldCode},
			{kind: fieldUnit},
			{kind: fieldQuantityRun},
			{kind: fieldMoney},
			{kind: fieldMoney, optional: true},
		}, codeLen),
		// "FR 379429 1.434,89": price list row, no quantity printed
		compile("unit-code-price", []field{
			{kind: fieldUnit},
			{kind: fieldCode},
			{kind: fieldMoney},
			{kind: fieldMoney, optional: true},
		}, codeLen),
	}
}

// reGroupHeader opens a new group context ("GRUPO 2", "LOTE 03", "LOTE IV").
var reGroupHeader = regexp.MustCompile(`(?i)^\s*(GRUPO|LOTE)\s+(\d+|[IVXLC]+)\b`)
