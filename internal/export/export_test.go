package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gfmartins/trcheck/constants"
	"github.com/gfmartins/trcheck/internal/entity"
	"github.com/gfmartins/trcheck/internal/validate"
)

func fixture(t *testing.T) ([]entity.ValidatedItem, entity.Summary) {
	t.Helper()
	cat, _ := entity.NewCatalog([]entity.CatalogEntry{
		{Code: "379429", OfficialUnit: "FR", Status: constants.EntryStatusActive, Description: "Frasco"},
	}, time.Now())
	q := decimal.NewFromInt(7)
	up, _ := decimal.NewFromString("1434.89")
	tp, _ := decimal.NewFromString("10044.23")
	items := []entity.LineItem{{
		Group:       "GRUPO 1",
		ItemNumber:  "1",
		ProductCode: "379429",
		Unit:        "FR",
		Quantity:    &q,
		UnitPrice:   &up,
		TotalPrice:  &tp,
	}}
	out, sum, err := validate.Run(items, cat, validate.DefaultConfig())
	if err != nil {
		t.Fatalf("validate.Run: %v", err)
	}
	return out, sum
}

func TestWriteCSV(t *testing.T) {
	items, sum := fixture(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, items, sum, Options{DecimalComma: true}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	r := csv.NewReader(&buf)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) < 2 {
		t.Fatalf("records = %d", len(recs))
	}
	if recs[0][0] != "group" || recs[0][2] != "product_code" {
		t.Fatalf("header = %v", recs[0])
	}
	row := recs[1]
	if row[2] != "379429" || row[6] != "1434,89" || row[7] != "10044,23" {
		t.Fatalf("item row = %v", row)
	}
	if row[8] != "FOUND_ACTIVE" || row[13] != "CONSISTENT" {
		t.Fatalf("annotations = %v", row)
	}
}

func TestWriteCSVCanonicalDecimals(t *testing.T) {
	items, sum := fixture(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, items, sum, Options{Delimiter: ','}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.Contains(buf.String(), "1434.89") {
		t.Fatalf("expected canonical decimals, got:\n%s", buf.String())
	}
}

func TestWriteCSVSummaryBlock(t *testing.T) {
	items, sum := fixture(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, items, sum, Options{}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	s := buf.String()
	for _, want := range []string{"items;1", "total;10044.23", "FOUND_ACTIVE;1", "total GRUPO 1;10044.23"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q in:\n%s", want, s)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	items, sum := fixture(t)
	b, err := WriteXLSX(items, sum, Options{DecimalComma: true})
	if err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty workbook")
	}
	// xlsx is a zip container
	if !bytes.HasPrefix(b, []byte("PK")) {
		t.Fatalf("not a zip container: % x", b[:4])
	}
}
