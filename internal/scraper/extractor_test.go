package scraper

import (
	"fmt"
	"strings"
	"testing"
)

// reviewHTML renders a single review node in the target page's markup.
func reviewHTML(author, score, date, text string) string {
	return fmt.Sprintf(`<div data-testid="review">
		<span data-testid="review-author">%s</span>
		<div data-testid="review-score">%s</div>
		<div data-testid="review-text">%s</div>
		<time>%s</time>
	</div>`, author, score, text, date)
}

func pageHTML(reviews ...string) string {
	return `<html><body><h2 class="Vdvb-title">Opiniones</h2>` +
		strings.Join(reviews, "\n") + `</body></html>`
}

func TestExtractReviewsDedupByText(t *testing.T) {
	html := pageHTML(
		reviewHTML("Ana", "8,0", "marzo de 2024", "Gran hotel, repetiría."),
		reviewHTML("Luis", "9,0", "abril de 2024", "Gran hotel, repetiría."),
		reviewHTML("Marta", "7,0", "mayo de 2024", "Habitación ruidosa."),
	)

	st := newSessionState()
	added, _, err := extractReviews(html, st)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if added != 2 {
		t.Fatalf("added = %d, want 2", added)
	}
	if len(st.records) != 2 {
		t.Fatalf("records = %d, want 2", len(st.records))
	}
	// Identical texts collapse to the first author seen.
	if st.records[0].Author != "Ana" {
		t.Fatalf("first record author = %q, want Ana", st.records[0].Author)
	}
}

func TestExtractReviewsNoDuplicateTexts(t *testing.T) {
	html := pageHTML(
		reviewHTML("A", "8", "enero", "uno"),
		reviewHTML("B", "8", "enero", "dos"),
		reviewHTML("C", "8", "enero", "uno"),
		reviewHTML("D", "8", "enero", "tres"),
	)

	st := newSessionState()
	if _, _, err := extractReviews(html, st); err != nil {
		t.Fatalf("extract: %v", err)
	}

	seen := make(map[string]bool)
	for _, rec := range st.records {
		if seen[rec.Text] {
			t.Fatalf("duplicate text in output: %q", rec.Text)
		}
		seen[rec.Text] = true
	}
}

func TestExtractReviewsDedupIsCaseSensitive(t *testing.T) {
	html := pageHTML(
		reviewHTML("A", "8", "enero", "Buen sitio"),
		reviewHTML("B", "8", "enero", "buen sitio"),
	)

	st := newSessionState()
	added, _, err := extractReviews(html, st)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if added != 2 {
		t.Fatalf("added = %d, want 2 (match is case-sensitive)", added)
	}
}

func TestExtractReviewsSkipsEmptyText(t *testing.T) {
	html := pageHTML(
		reviewHTML("A", "8", "enero", ""),
		reviewHTML("B", "9", "enero", "Correcto."),
	)

	st := newSessionState()
	added, _, err := extractReviews(html, st)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}
	if st.records[0].Author != "B" {
		t.Fatalf("kept record author = %q, want B", st.records[0].Author)
	}
}

func TestExtractReviewsMissingFieldsYieldEmptyStrings(t *testing.T) {
	// Node with no author span and no score div.
	html := pageHTML(`<div data-testid="review">
		<div data-testid="review-text">Sin firmar</div>
		<time>junio de 2024</time>
	</div>`)

	st := newSessionState()
	added, misses, err := extractReviews(html, st)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1 (missing fields never drop the node)", added)
	}

	rec := st.records[0]
	if rec.Author != "" || rec.Score != "" {
		t.Fatalf("missing fields should be empty, got author=%q score=%q", rec.Author, rec.Score)
	}
	if rec.Text != "Sin firmar" || rec.Date != "junio de 2024" {
		t.Fatalf("present fields mangled: %+v", rec)
	}

	missed := make(map[string]bool)
	for _, m := range misses {
		missed[m.field] = true
	}
	if !missed["author"] || !missed["score"] {
		t.Fatalf("misses = %v, want author and score reported", misses)
	}
}

func TestExtractReviewsSecondPassAddsNothing(t *testing.T) {
	html := pageHTML(
		reviewHTML("A", "8", "enero", "uno"),
		reviewHTML("B", "9", "enero", "dos"),
	)

	st := newSessionState()
	if added, _, _ := extractReviews(html, st); added != 2 {
		t.Fatalf("first pass added %d, want 2", added)
	}
	added, _, err := extractReviews(html, st)
	if err != nil {
		t.Fatalf("second extract: %v", err)
	}
	if added != 0 {
		t.Fatalf("second pass added %d, want 0", added)
	}
	if len(st.records) != 2 {
		t.Fatalf("records = %d, want 2", len(st.records))
	}
}

func TestExtractReviewsEmptyPage(t *testing.T) {
	st := newSessionState()
	added, misses, err := extractReviews(pageHTML(), st)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if added != 0 || len(misses) != 0 || len(st.records) != 0 {
		t.Fatalf("empty page: added=%d misses=%d records=%d", added, len(misses), len(st.records))
	}
}
