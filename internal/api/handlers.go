package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"reviewscraper/internal/domain"
	"reviewscraper/internal/export"
	"reviewscraper/internal/scraper"
)

const (
	defaultFilterOption = "recent"
	minPages            = 1
	maxPages            = 10
)

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	req, err := parseScrapeRequest(r)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	reviews, err := s.scraper.Scrape(r.Context(), req)
	switch {
	case errors.Is(err, scraper.ErrPanelNotFound):
		s.respondWithError(w, http.StatusBadRequest, "Reviews panel not found. Check the URL.")
		return
	case errors.Is(err, scraper.ErrNoReviews):
		s.respondWithError(w, http.StatusNotFound, "No reviews found.")
		return
	case err != nil:
		s.logger.Error("scrape failed", zap.String("url", req.URL), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Error during scraping: "+err.Error())
		return
	}

	outputPath := filepath.Join(s.config.OutputDir, s.config.OutputFile)
	if err := export.WriteCSVFile(outputPath, reviews); err != nil {
		s.logger.Error("could not write csv file", zap.String("path", outputPath), zap.Error(err))
		s.respondWithError(w, http.StatusInternalServerError, "Could not write CSV output")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+s.config.OutputFile)
	if err := export.WriteCSV(w, reviews); err != nil {
		// Headers are gone at this point; log only.
		s.logger.Error("could not stream csv response", zap.Error(err))
	}
}

// parseScrapeRequest validates query parameters. Validation failures happen
// before any navigation.
func parseScrapeRequest(r *http.Request) (domain.ScrapeRequest, error) {
	q := r.URL.Query()

	url := q.Get("url")
	if url == "" {
		return domain.ScrapeRequest{}, errors.New("url parameter is required")
	}
	if !strings.HasPrefix(url, "http") {
		return domain.ScrapeRequest{}, errors.New("url must start with http or https")
	}

	filterOption := q.Get("filter_option")
	if filterOption == "" {
		filterOption = defaultFilterOption
	}

	pages := minPages
	if raw := q.Get("max_pages"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.ScrapeRequest{}, errors.New("max_pages must be an integer")
		}
		pages = n
	}
	if pages < minPages || pages > maxPages {
		return domain.ScrapeRequest{}, errors.New("max_pages must be between 1 and 10")
	}

	return domain.ScrapeRequest{
		URL:          url,
		FilterOption: filterOption,
		MaxPages:     pages,
	}, nil
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, domain.InfoResponse{
		Service: "reviews-scraper",
		Usage:   "POST /scrape?url=<listing URL>&filter_option=recent&max_pages=1 returns the reviews as a CSV attachment",
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Helper Functions ---

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
