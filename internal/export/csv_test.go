package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"reviewscraper/internal/domain"
)

var sampleReviews = []domain.Review{
	{Author: "Ana", Score: "8,0", Date: "marzo de 2024", Text: "Gran hotel, repetiría."},
	{Author: "Luis", Score: "6,0", Date: "abril de 2024", Text: "Ruido por la noche.\nPersonal amable."},
}

func TestWriteCSVStartsWithBOM(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReviews); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out := buf.Bytes()
	if len(out) < 3 || out[0] != 0xEF || out[1] != 0xBB || out[2] != 0xBF {
		t.Fatalf("output does not start with UTF-8 BOM: % x", out[:3])
	}
}

func TestWriteCSVHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReviews); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])) // skip BOM
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3 (header + 2 rows)", len(records))
	}
	if records[0][0] != "Author" || records[0][1] != "Score" || records[0][2] != "Date" || records[0][3] != "Text" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	// Embedded newline survives quoting.
	if records[2][3] != sampleReviews[1].Text {
		t.Fatalf("text round-trip failed: %q", records[2][3])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()[3:]))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want header only", len(records))
	}
}

func TestWriteCSVFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "reviews.csv")
	if err := WriteCSVFile(path, sampleReviews); err != nil {
		t.Fatalf("write csv file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("file does not start with BOM")
	}
}
