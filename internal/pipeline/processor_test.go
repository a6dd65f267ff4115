package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gfmartins/trcheck/constants"
	"github.com/gfmartins/trcheck/internal/catalog"
	"github.com/gfmartins/trcheck/internal/extract"
)

type memSource struct{ payload string }

func (s memSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.payload)), nil
}

func newProcessor(t *testing.T, catalogCSV string) *Processor {
	t.Helper()
	loader := catalog.NewLoader(catalog.Config{TTL: time.Hour}, memSource{payload: catalogCSV}, nil, nil)
	return NewProcessor(nil, extract.New(extract.Config{}), loader)
}

const catalogCSV = "code;unit;status;description\n" +
	"379429;FR;ACTIVE;Frasco de reagente\n" +
	"123456;CX;INACTIVE;Caixa\n"

func TestProcessTextEndToEnd(t *testing.T) {
	p := newProcessor(t, catalogCSV)
	text := "TERMO DE REFERENCIA\n" +
		"GRUPO 1\n" +
		"FR 379429 7 4 2 0 1 1.434,89 10.044,23\n" +
		"SC 123456 2 5,00 10,00\n" +
		"UN 999999 1 2,00 2,00\n"

	var buf bytes.Buffer
	res, err := p.ProcessText(context.Background(), text, "tr.pdf", FormatCSV, false, &buf)
	if err != nil {
		t.Fatalf("ProcessText: %v", err)
	}
	if res.Summary.Items != 3 {
		t.Fatalf("items = %d, want 3", res.Summary.Items)
	}

	byCode := map[string]int{}
	for i, it := range res.Items {
		byCode[it.ProductCode] = i
	}

	first := res.Items[byCode["379429"]]
	if first.CatalogStatus != constants.CatalogFoundActive ||
		first.UnitStatus != constants.UnitMatchOK ||
		first.Arithmetic != constants.ArithmeticConsistent {
		t.Fatalf("item 379429 = %+v", first)
	}
	if first.Group != "GRUPO 1" {
		t.Fatalf("group = %q", first.Group)
	}

	second := res.Items[byCode["123456"]]
	if second.CatalogStatus != constants.CatalogFoundInactive {
		t.Fatalf("inactive code status = %s", second.CatalogStatus)
	}
	if second.UnitStatus != constants.UnitMismatch || second.ExpectedUnit != "CX" {
		t.Fatalf("unit check = %s expected %q", second.UnitStatus, second.ExpectedUnit)
	}

	third := res.Items[byCode["999999"]]
	if third.CatalogStatus != constants.CatalogNotFound || third.UnitStatus != constants.UnitNotApplicable {
		t.Fatalf("missing code = %+v", third)
	}

	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read exported csv: %v", err)
	}
	if len(recs) < 4 {
		t.Fatalf("exported records = %d", len(recs))
	}
}

func TestProcessTextZeroItems(t *testing.T) {
	p := newProcessor(t, catalogCSV)
	res, err := p.ProcessText(context.Background(), "nothing tabular here", "x.pdf", FormatCSV, false, nil)
	if err != nil {
		t.Fatalf("zero items must not be an error: %v", err)
	}
	if len(res.Items) != 0 || res.Summary.Items != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestProcessTextCatalogUnavailable(t *testing.T) {
	p := newProcessor(t, "wrong;headers\n1;2\n")
	_, err := p.ProcessText(context.Background(), "FR 379429 7 1,00 7,00", "x.pdf", FormatCSV, false, nil)
	if err == nil {
		t.Fatal("expected catalog unavailable error")
	}
	if !strings.Contains(err.Error(), "catalog") {
		t.Fatalf("error = %v", err)
	}
}

func TestProcessTextXLSXArtifact(t *testing.T) {
	p := newProcessor(t, catalogCSV)
	res, err := p.ProcessText(context.Background(), "FR 379429 7 1.434,89 10.044,23", "tr.pdf", FormatXLSX, false, nil)
	if err != nil {
		t.Fatalf("ProcessText: %v", err)
	}
	if len(res.Artifact) == 0 || !bytes.HasPrefix(res.Artifact, []byte("PK")) {
		t.Fatal("expected xlsx artifact bytes")
	}
}

func TestProcessTextUnknownFormat(t *testing.T) {
	p := newProcessor(t, catalogCSV)
	if _, err := p.ProcessText(context.Background(), "", "x.pdf", Format("pdf"), false, nil); err == nil {
		t.Fatal("expected unknown format error")
	}
}
