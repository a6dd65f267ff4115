// Package pdftext turns a PDF document into the plain text the extractor
// consumes: pages in order, joined with form-feeds, lightly normalized.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FromFile extracts the text layer of a PDF on disk.
// Returns the normalized text and the page count.
func FromFile(path string, maxPages int) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return FromReader(f, maxPages)
}

// FromReader extracts the text layer of a PDF from a stream. The reader is
// buffered in full first because the pdf library needs random access and the
// total size.
func FromReader(r io.Reader, maxPages int) (string, int, error) {
	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(r)
	if err != nil {
		return "", 0, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), size)
	if err != nil {
		return "", 0, fmt.Errorf("parse pdf: %w", err)
	}

	total := reader.NumPage()
	pages := total
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}

	var b strings.Builder
	for n := 1; n <= pages; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// a single unreadable page is not fatal; the rest may match
			continue
		}
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(word.S)
			}
			b.WriteByte('\n')
		}
		if n < pages {
			b.WriteByte('\f')
		}
	}

	return Normalize(b.String()), pages, nil
}
