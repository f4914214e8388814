package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"reviewscraper/internal/config"
)

// browserPage drives a single chromedp tab. One browser is launched and
// torn down per scrape, no pooling.
type browserPage struct {
	ctx    context.Context
	cfg    *config.Config
	logger *zap.Logger
}

func (s *Scraper) newBrowserPage(ctx context.Context) (page, context.CancelFunc, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", s.cfg.Locale),
		chromedp.UserAgent(s.cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	// Deriving from the request context means a disconnected client
	// tears the whole session down.
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelTab()
		cancelAlloc()
	}
	return &browserPage{ctx: tabCtx, cfg: s.cfg, logger: s.logger}, cancel, nil
}

func (b *browserPage) navigate(_ context.Context, url string) error {
	tctx, cancel := context.WithTimeout(b.ctx, time.Duration(b.cfg.PageLoadTimeout)*time.Second)
	defer cancel()
	return chromedp.Run(tctx, chromedp.Navigate(url))
}

// waitPanel polls until a panel heading containing the expected text is in
// the DOM, bounded by the panel timeout.
func (b *browserPage) waitPanel(_ context.Context) error {
	tctx, cancel := context.WithTimeout(b.ctx, time.Duration(b.cfg.PanelTimeout)*time.Second)
	defer cancel()

	js := fmt.Sprintf(`(() => {
		const heads = document.querySelectorAll(%q);
		for (const h of heads) {
			if (h.textContent.includes(%q)) return true;
		}
		return false;
	})()`, PanelHeading, PanelHeadingText)

	var ok bool
	return chromedp.Run(tctx, chromedp.Poll(js, &ok,
		chromedp.WithPollingInterval(500*time.Millisecond)))
}

func (b *browserPage) overallScore(_ context.Context) (string, error) {
	tctx, cancel := b.stepCtx()
	defer cancel()

	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		return el ? el.textContent.trim() : "";
	})()`, OverallScore)

	var score string
	err := chromedp.Run(tctx, chromedp.Evaluate(js, &score))
	return score, err
}

func (b *browserPage) applyFilter(_ context.Context, option string) error {
	tctx, cancel := b.stepCtx()
	defer cancel()

	prev, err := b.signature(tctx)
	if err != nil {
		return err
	}
	sel := fmt.Sprintf(FilterRadioFmt, option)
	if err := chromedp.Run(tctx, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return err
	}
	b.waitContentChange(prev)
	return nil
}

func (b *browserPage) html(_ context.Context) (string, error) {
	tctx, cancel := b.stepCtx()
	defer cancel()

	var html string
	err := chromedp.Run(tctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (b *browserPage) nextPage(_ context.Context) (bool, error) {
	tctx, cancel := b.stepCtx()
	defer cancel()

	js := fmt.Sprintf(`(() => {
		const btn = document.querySelector(%q);
		return { exists: !!btn, enabled: !!btn && !btn.disabled };
	})()`, NextPageButton)

	var btn struct {
		Exists  bool `json:"exists"`
		Enabled bool `json:"enabled"`
	}
	if err := chromedp.Run(tctx, chromedp.Evaluate(js, &btn)); err != nil {
		return false, err
	}
	if !btn.Exists || !btn.Enabled {
		return false, nil
	}

	prev, err := b.signature(tctx)
	if err != nil {
		return false, err
	}
	if err := chromedp.Run(tctx, chromedp.Click(NextPageButton, chromedp.ByQuery)); err != nil {
		return false, err
	}
	b.waitContentChange(prev)
	return true, nil
}

func (b *browserPage) stepCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(b.ctx, time.Duration(b.cfg.StepTimeout)*time.Second)
}

// signatureJS returns an expression summarizing the visible review content:
// node count plus a prefix of the first review's text.
func signatureJS() string {
	return fmt.Sprintf(`(() => {
		const nodes = document.querySelectorAll(%q);
		const first = nodes.length ? nodes[0].textContent : "";
		return nodes.length + ":" + first.slice(0, 80);
	})()`, ReviewNode)
}

func (b *browserPage) signature(ctx context.Context) (string, error) {
	var sig string
	err := chromedp.Run(ctx, chromedp.Evaluate(signatureJS(), &sig))
	return sig, err
}

// waitContentChange polls until the review content signature differs from
// prev, bounded by the step timeout. Timing out is tolerated: the page may
// legitimately render the same content, so the caller proceeds either way.
func (b *browserPage) waitContentChange(prev string) {
	tctx, cancel := b.stepCtx()
	defer cancel()

	js := fmt.Sprintf(`(%s) !== %q`, signatureJS(), prev)
	var changed bool
	err := chromedp.Run(tctx, chromedp.Poll(js, &changed,
		chromedp.WithPollingInterval(250*time.Millisecond)))
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, chromedp.ErrPollingTimeout) {
		b.logger.Debug("content change wait failed", zap.Error(err))
	}
}
