package scraper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"reviewscraper/internal/config"
	"reviewscraper/internal/domain"
	"reviewscraper/internal/monitoring"
)

// page is the surface the scrape loop needs from a rendered browser tab.
// The chromedp implementation lives in browser.go.
type page interface {
	navigate(ctx context.Context, url string) error
	waitPanel(ctx context.Context) error
	overallScore(ctx context.Context) (string, error)
	applyFilter(ctx context.Context, option string) error
	html(ctx context.Context) (string, error)
	// nextPage probes the next-page control, clicks it if usable and waits
	// for the panel content to change. Returns false when there is no
	// further page to advance to.
	nextPage(ctx context.Context) (bool, error)
}

// Scraper runs one sequential browser session per Scrape call.
type Scraper struct {
	cfg     *config.Config
	metrics *monitoring.Metrics
	logger  *zap.Logger
	newPage func(ctx context.Context) (page, context.CancelFunc, error)
}

func New(cfg *config.Config, m *monitoring.Metrics, l *zap.Logger) *Scraper {
	s := &Scraper{
		cfg:     cfg,
		metrics: m,
		logger:  l,
	}
	s.newPage = s.newBrowserPage
	return s
}

// Scrape walks the review listing at req.URL, extracting up to req.MaxPages
// pages of records. Records are returned in page order, deduplicated on
// their raw text field.
func (s *Scraper) Scrape(ctx context.Context, req domain.ScrapeRequest) ([]domain.Review, error) {
	start := time.Now()
	records, err := s.scrape(ctx, req)
	s.metrics.IncScrape(outcomeLabel(err))
	s.metrics.ObserveScrapeDuration(time.Since(start))
	return records, err
}

func (s *Scraper) scrape(ctx context.Context, req domain.ScrapeRequest) ([]domain.Review, error) {
	pg, cancel, err := s.newPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	// The browser is released on every exit path below.
	defer cancel()

	if err := pg.navigate(ctx, req.URL); err != nil {
		return nil, fmt.Errorf("navigate to %s: %w", req.URL, err)
	}

	if err := pg.waitPanel(ctx); err != nil {
		s.logger.Warn("reviews panel never rendered",
			zap.String("url", req.URL), zap.Error(err))
		return nil, fmt.Errorf("%w: check the URL", ErrPanelNotFound)
	}

	// Overall listing score is informational only.
	if score, err := pg.overallScore(ctx); err == nil && score != "" {
		s.logger.Info("overall score", zap.String("score", score))
	}

	if req.FilterOption != "" && req.FilterOption != "recent" {
		if err := pg.applyFilter(ctx, req.FilterOption); err != nil {
			// Best effort: scrape proceeds with whatever ordering is active.
			s.logger.Warn("could not apply sort filter, continuing with default order",
				zap.String("filter", req.FilterOption), zap.Error(err))
		}
	}

	st := newSessionState()
	for pageNum := 1; pageNum <= req.MaxPages; pageNum++ {
		html, err := pg.html(ctx)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", pageNum, err)
		}
		added, misses, err := extractReviews(html, st)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", pageNum, err)
		}
		for _, miss := range misses {
			s.logger.Debug("review field missing",
				zap.Int("node", miss.node), zap.String("field", miss.field))
			s.metrics.IncMissingField(miss.field)
		}
		s.metrics.AddPage(added)
		s.logger.Info("page extracted",
			zap.Int("page", pageNum),
			zap.Int("added", added),
			zap.Int("total", len(st.records)))

		if pageNum == req.MaxPages {
			break
		}
		advanced, err := pg.nextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("advance to page %d: %w", pageNum+1, err)
		}
		if !advanced {
			// Fewer pages than requested is not an error.
			s.logger.Info("no further pages", zap.Int("last_page", pageNum))
			break
		}
	}

	if len(st.records) == 0 {
		return nil, ErrNoReviews
	}
	return st.records, nil
}
