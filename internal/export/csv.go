// Package export serializes scraped records for delivery.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"reviewscraper/internal/domain"
)

// utf8BOM is prepended so spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Header is the fixed CSV column order.
var Header = []string{"Author", "Score", "Date", "Text"}

// WriteCSV writes reviews as UTF-8-with-BOM CSV: header row first, one row
// per record, no index column.
func WriteCSV(w io.Writer, reviews []domain.Review) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range reviews {
		if err := cw.Write([]string{r.Author, r.Score, r.Date, r.Text}); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the CSV to path, creating parent directories as needed.
func WriteCSVFile(path string, reviews []domain.Review) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	if err := WriteCSV(f, reviews); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
