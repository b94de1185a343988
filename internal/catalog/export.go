package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// exportHeader is the fixed CSV header row.
var exportHeader = []string{"ID", "Title", "Price", "Category", "Description", "Images"}

// imageDelimiter joins a product's image URLs into one cell.
const imageDelimiter = "|"

// utf8BOM is prefixed to exports so spreadsheet tools preserve
// non-ASCII text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newlineCollapser replaces embedded line breaks in free-text fields
// with single spaces so every record stays on one line.
var newlineCollapser = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Export serializes the given page items as a CSV document: a UTF-8
// BOM, the fixed header row, then one row per item. A product without
// a category exports as "Other"; a missing description as empty.
// Fields containing the delimiter or quotes are quote-wrapped with
// internal quotes doubled (RFC 4180, via encoding/csv).
//
// An empty input returns ErrNothingToExport rather than a header-only
// document; callers must check before writing a file.
func Export(items []Product) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, p := range items {
		record := []string{
			strconv.Itoa(p.ID),
			newlineCollapser.Replace(p.Title),
			p.Price.String(),
			p.CategoryName(),
			newlineCollapser.Replace(p.Description),
			strings.Join(p.Images, imageDelimiter),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}
	return buf.Bytes(), nil
}
