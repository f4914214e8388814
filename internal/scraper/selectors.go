package scraper

// Kayak review panel DOM selectors.
// These are isolated here because the target markup changes frequently;
// update these when scraping breaks.
const (
	// Panel readiness: heading carrying this class whose text contains
	// PanelHeadingText marks the reviews panel as rendered.
	PanelHeading     = `h2.Vdvb-title`
	PanelHeadingText = "Opiniones"

	// Overall score shown above the listing, read best effort.
	OverallScore = `div.hrp2-score`

	// Review node and its fields.
	ReviewNode   = `div[data-testid="review"]`
	ReviewAuthor = `span[data-testid="review-author"]`
	ReviewScore  = `div[data-testid="review-score"]`
	ReviewText   = `div[data-testid="review-text"]`
	ReviewDate   = `time`

	// Sort filter radio for a given option value; %s is the option name.
	FilterRadioFmt = `div[role="radio"]:has(input[value="%s"])`

	// Pagination control inside the reviews panel.
	NextPageButton = `[aria-label="Opiniones"] button[aria-label="Página siguiente"]`
)
