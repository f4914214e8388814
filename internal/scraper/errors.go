package scraper

import "errors"

// ErrPanelNotFound indicates the reviews panel never rendered on the
// target page. Surfaced to the caller as a bad-input condition.
var ErrPanelNotFound = errors.New("reviews panel not found")

// ErrNoReviews indicates the panel rendered but zero records were
// extracted after full pagination.
var ErrNoReviews = errors.New("no reviews found")

// outcomeLabel maps a scrape error to its metrics label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrPanelNotFound):
		return "panel_not_found"
	case errors.Is(err, ErrNoReviews):
		return "no_reviews"
	default:
		return "failed"
	}
}
