package catalog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExport_Empty(t *testing.T) {
	_, err := Export(nil)
	if !errors.Is(err, ErrNothingToExport) {
		t.Errorf("Export(nil) error = %v, want ErrNothingToExport", err)
	}
}

func TestExport_BOMAndHeader(t *testing.T) {
	data, err := Export([]Product{prod(1, "Phone", "99.99")})
	if err != nil {
		t.Fatalf("Export error = %v", err)
	}

	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("export should start with a UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimRight(string(data[3:]), "\n"), "\n")
	if lines[0] != "ID,Title,Price,Category,Description,Images" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want header + 1 record", len(lines))
	}
}

func TestExport_Record(t *testing.T) {
	p := Product{
		ID:          7,
		Title:       "Espresso Machine",
		Price:       decimal.RequireFromString("249.5"),
		Description: "Compact",
		Category:    &Category{ID: 3, Name: "Kitchen"},
		Images: []string{
			"https://img.example/a.jpg",
			"https://img.example/b.jpg",
		},
	}

	data, err := Export([]Product{p})
	if err != nil {
		t.Fatalf("Export error = %v", err)
	}

	want := "7,Espresso Machine,249.5,Kitchen,Compact,https://img.example/a.jpg|https://img.example/b.jpg"
	if !strings.Contains(string(data), want) {
		t.Errorf("export missing record %q in:\n%s", want, data)
	}
}

func TestExport_MissingCategoryAndDescription(t *testing.T) {
	data, err := Export([]Product{prod(1, "Mystery Box", "10")})
	if err != nil {
		t.Fatalf("Export error = %v", err)
	}

	if !strings.Contains(string(data), "1,Mystery Box,10,Other,,") {
		t.Errorf("uncategorized product should export as Other with empty description:\n%s", data)
	}
}

func TestExport_QuotesAndCommas(t *testing.T) {
	p := prod(1, `The "Best" Gadget, Ever`, "5")

	data, err := Export([]Product{p})
	if err != nil {
		t.Fatalf("Export error = %v", err)
	}

	// Comma forces quote wrapping, embedded quotes double.
	want := `"The ""Best"" Gadget, Ever"`
	if !strings.Contains(string(data), want) {
		t.Errorf("export missing quoted field %q in:\n%s", want, data)
	}
}

func TestExport_CollapsesNewlines(t *testing.T) {
	p := prod(1, "Widget", "5")
	p.Description = "line one\r\nline two\nline three"

	data, err := Export([]Product{p})
	if err != nil {
		t.Fatalf("Export error = %v", err)
	}

	if !strings.Contains(string(data), "line one line two line three") {
		t.Errorf("embedded newlines should collapse to spaces:\n%s", data)
	}
	if strings.Count(strings.TrimRight(string(data), "\n"), "\n") != 1 {
		t.Error("record should stay on a single line")
	}
}
