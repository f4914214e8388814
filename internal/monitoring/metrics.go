package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application, registered on
// a dedicated registry.
type Metrics struct {
	Registry         *prometheus.Registry
	ScrapesTotal     *prometheus.CounterVec
	PagesScraped     prometheus.Counter
	ReviewsExtracted prometheus.Counter
	MissingFields    *prometheus.CounterVec
	ScrapeDuration   prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		ScrapesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_scrapes_total",
			Help: "The total number of scrape requests by outcome",
		}, []string{"outcome"}), // 'ok', 'panel_not_found', 'no_reviews', 'failed'
		PagesScraped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scraper_pages_scraped_total",
			Help: "The total number of review pages extracted",
		}),
		ReviewsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scraper_reviews_extracted_total",
			Help: "The total number of unique reviews extracted",
		}),
		MissingFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_missing_fields_total",
			Help: "The total number of review fields that could not be extracted",
		}, []string{"field"}),
		ScrapeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scraper_scrape_duration_seconds",
			Help:    "Duration of complete scrape sessions",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	registry.MustRegister(m.ScrapesTotal, m.PagesScraped, m.ReviewsExtracted, m.MissingFields, m.ScrapeDuration)
	return m
}

func (m *Metrics) IncScrape(outcome string) {
	m.ScrapesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddPage(reviews int) {
	m.PagesScraped.Inc()
	m.ReviewsExtracted.Add(float64(reviews))
}

func (m *Metrics) IncMissingField(field string) {
	m.MissingFields.WithLabelValues(field).Inc()
}

func (m *Metrics) ObserveScrapeDuration(d time.Duration) {
	m.ScrapeDuration.Observe(d.Seconds())
}
