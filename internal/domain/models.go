package domain

// Review holds the four text fields pulled from a single review node.
// Fields are kept as raw extracted text: no numeric or date parsing.
type Review struct {
	Author string `json:"author"`
	Score  string `json:"score"`
	Date   string `json:"date"`
	Text   string `json:"text"`
}

// ScrapeRequest is the validated input for one scrape session.
type ScrapeRequest struct {
	URL          string
	FilterOption string
	MaxPages     int
}

// InfoResponse is the payload served on the root endpoint.
type InfoResponse struct {
	Service string `json:"service"`
	Usage   string `json:"usage"`
}
