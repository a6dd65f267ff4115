package extract

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestExtractSplitQuantityRow(t *testing.T) {
	e := New(Config{})
	items := e.Extract("FR 379429 7 4 2 0 1 1.434,89 10.044,23")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.Unit != "FR" || it.ProductCode != "379429" {
		t.Fatalf("wrong unit/code: %q %q", it.Unit, it.ProductCode)
	}
	if it.Quantity == nil || !it.Quantity.Equal(dec("7")) {
		t.Fatalf("quantity = %v, want 7", it.Quantity)
	}
	if it.QuantityDerived {
		t.Fatal("quantity was printed, not derived")
	}
	if !it.UnitPrice.Equal(dec("1434.89")) {
		t.Fatalf("unit price = %s, want 1434.89", it.UnitPrice)
	}
	if !it.TotalPrice.Equal(dec("10044.23")) {
		t.Fatalf("total price = %s, want 10044.23", it.TotalPrice)
	}
}

func TestExtractItemNumberAndDescription(t *testing.T) {
	e := New(Config{})
	items := e.Extract("3 CX 123456 Caneta esferografica azul 10 2,50 25,00")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.ItemNumber != "3" {
		t.Fatalf("item number = %q, want 3", it.ItemNumber)
	}
	if it.Description != "Caneta esferografica azul" {
		t.Fatalf("description = %q", it.Description)
	}
	if it.Quantity == nil || !it.Quantity.Equal(dec("10")) {
		t.Fatalf("quantity = %v, want 10", it.Quantity)
	}
}

func TestExtractGroupHeaders(t *testing.T) {
	e := New(Config{})
	text := "GRUPO 1\n" +
		"UN 111111 5 1,00 5,00\n" +
		"LOTE 2\n" +
		"UN 222222 3 2,00 6,00\n" +
		"UN 333333 1 4,00 4,00\n"
	items := e.Extract(text)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Group != "GRUPO 1" {
		t.Fatalf("group[0] = %q", items[0].Group)
	}
	if items[1].Group != "LOTE 2" || items[2].Group != "LOTE 2" {
		t.Fatalf("group inheritance broken: %q %q", items[1].Group, items[2].Group)
	}
	if items[1].ItemNumber != "1" || items[2].ItemNumber != "2" {
		t.Fatalf("sequence numbers: %q %q", items[1].ItemNumber, items[2].ItemNumber)
	}
}

func TestExtractDerivedQuantity(t *testing.T) {
	e := New(Config{})
	items := e.Extract("SC 654321 12,50 125,00")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.Quantity == nil || !it.Quantity.Equal(dec("10")) {
		t.Fatalf("derived quantity = %v, want 10", it.Quantity)
	}
	if !it.QuantityDerived {
		t.Fatal("expected QuantityDerived")
	}
}

func TestExtractLowercaseUnit(t *testing.T) {
	e := New(Config{})
	items := e.Extract("cx 123456 10 2,50 25,00")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Unit != "CX" {
		t.Fatalf("unit = %q, want CX", items[0].Unit)
	}
	if items[0].ProductCode != "123456" {
		t.Fatalf("product code = %q", items[0].ProductCode)
	}
}

func TestExtractNoMatches(t *testing.T) {
	e := New(Config{})
	for _, text := range []string{
		"",
		"TERMO DE REFERENCIA\nObjeto: aquisicao de materiais\n",
		"garbage \x00 bytes \xff here",
	} {
		if items := e.Extract(text); len(items) != 0 {
			t.Fatalf("Extract(%q) = %d items, want 0", text, len(items))
		}
	}
}

func TestExtractFirstPatternWins(t *testing.T) {
	e := New(Config{})
	// matches both the item-led and the unit-led layouts; item-led is
	// earlier in the table and must win, keeping "2" as the item number.
	items := e.Extract("2 UN 111111 4 3,00 12,00")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ItemNumber != "2" {
		t.Fatalf("item number = %q, want 2", items[0].ItemNumber)
	}
}

func TestExtractConfigurableCodeLength(t *testing.T) {
	e := New(Config{CodeLength: 8})
	items := e.Extract("UN 12345678 2 1,00 2,00")
	if len(items) != 1 || items[0].ProductCode != "12345678" {
		t.Fatalf("8-digit code not extracted: %+v", items)
	}
	if got := e.Extract("UN 123456 2 1,00 2,00"); len(got) != 0 {
		t.Fatalf("6-digit code matched with 8-digit config: %+v", got)
	}
}

func TestExtractStateless(t *testing.T) {
	e := New(Config{})
	text := "GRUPO 1\nUN 111111 5 1,00 5,00"
	a := e.Extract(text)
	b := e.Extract(text)
	if len(a) != 1 || len(b) != 1 || a[0].Group != b[0].Group || a[0].ItemNumber != b[0].ItemNumber {
		t.Fatalf("extractor carried state between calls: %+v vs %+v", a, b)
	}
}
