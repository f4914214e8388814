package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"reviewscraper/internal/domain"
)

// sessionState accumulates records for a single scrape call. It is created
// fresh per invocation and never shared across requests.
type sessionState struct {
	records []domain.Review
	seen    map[string]struct{}
}

func newSessionState() *sessionState {
	return &sessionState{seen: make(map[string]struct{})}
}

// fieldMiss records a field that could not be extracted from a review node.
type fieldMiss struct {
	node  int
	field string
}

// extractReviews parses rendered HTML and appends any review not yet seen
// to the session state. Uniqueness is keyed on the raw text field alone, so
// identical texts from different authors collapse to one record. Returns
// the number of records added and the fields that came up empty.
func extractReviews(html string, st *sessionState) (int, []fieldMiss, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, nil, err
	}

	added := 0
	var misses []fieldMiss
	doc.Find(ReviewNode).Each(func(i int, node *goquery.Selection) {
		rec, nodeMisses := extractNode(node)
		for _, field := range nodeMisses {
			misses = append(misses, fieldMiss{node: i, field: field})
		}

		if rec.Text == "" {
			return
		}
		if _, ok := st.seen[rec.Text]; ok {
			return
		}
		st.seen[rec.Text] = struct{}{}
		st.records = append(st.records, rec)
		added++
	})

	return added, misses, nil
}

// extractNode pulls the four fields from one review node. A field whose
// selector matches nothing yields an empty string rather than aborting
// the node; the miss is reported so the caller can log and count it.
func extractNode(node *goquery.Selection) (domain.Review, []string) {
	var misses []string
	field := func(name, selector string) string {
		sel := node.Find(selector).First()
		if sel.Length() == 0 {
			misses = append(misses, name)
			return ""
		}
		return strings.TrimSpace(sel.Text())
	}

	rec := domain.Review{
		Author: field("author", ReviewAuthor),
		Score:  field("score", ReviewScore),
		Text:   field("text", ReviewText),
		Date:   field("date", ReviewDate),
	}
	return rec, misses
}
