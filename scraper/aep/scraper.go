package aep

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"aep-scraper/config"
	"aep-scraper/models"
	"aep-scraper/utils"

	"github.com/chromedp/chromedp"
)

// Failure modes surfaced per (country, indicator) item
var (
	ErrPageNotFound   = errors.New("country page not found")
	ErrNoTables       = errors.New("no data tables rendered")
	ErrMetricNotFound = errors.New("indicator row not found in rendered tables")
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// harvestJS collects the outerHTML of every table on the rendered page
const harvestJS = `Array.prototype.map.call(document.querySelectorAll('table'), function(t) { return t.outerHTML; })`

// notFoundJS matches the portal's themed 404 body
const notFoundJS = `document.body ? document.body.innerText.indexOf('Page not found') !== -1 : false`

// tabClickJS activates the named data tab; only tab-shaped elements are
// considered, never plain navigation links
const tabClickJS = `(function() {
	var want = %q;
	var nodes = document.querySelectorAll('[role="tab"], a[data-toggle="tab"], .nav-tabs a, .nav-tabs button, ul.nav li a, .tabs a');
	for (var i = 0; i < nodes.length; i++) {
		var label = (nodes[i].innerText || '').trim().toLowerCase();
		if (!label) continue;
		if (label === want || label.indexOf(want) === 0) {
			nodes[i].click();
			return true;
		}
	}
	return false;
})()`

// Scraper drives portal extraction across all countries
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	limiter *utils.RateLimiter
}

// Result carries everything a full extraction pass produced
type Result struct {
	Series   []models.RawSeries
	Items    []models.ItemResult
	Outcomes []models.CountryOutcome
}

type countryResult struct {
	country models.Country
	series  []models.RawSeries
	items   []models.ItemResult
}

// NewScraper creates a new portal scraper
func NewScraper(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		limiter: utils.NewRateLimiter(cfg.RateLimitDelay),
	}
}

// CheckBrowser launches a throwaway browser to confirm Chrome is actually
// present before the batch starts
func (s *Scraper) CheckBrowser(ctx context.Context) error {
	browserCtx, cancel := s.newBrowserContext(ctx)
	defer cancel()

	checkCtx, cancelCheck := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancelCheck()

	if err := chromedp.Run(checkCtx, chromedp.Navigate("about:blank")); err != nil {
		return fmt.Errorf("failed to launch Chrome: %w", err)
	}
	return nil
}

// Run is the main entry point: countries fan out over MaxConcurrency
// workers, each with its own browser, paced by the shared rate limiter
func (s *Scraper) Run(ctx context.Context) *Result {
	countries := models.Countries()
	jobs := make(chan models.Country)
	out := make(chan countryResult)

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.MaxConcurrency; i++ {
		wg.Add(1)
		go s.worker(ctx, i+1, jobs, out, &wg)
	}

	go func() {
		defer close(jobs)
		for _, c := range countries {
			select {
			case jobs <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(out)
	}()

	result := &Result{}
	for res := range out {
		outcome := models.CountryOutcome{Country: res.country.Name, Serial: res.country.Serial}
		for _, item := range res.items {
			if item.Failed() {
				outcome.Failed++
			} else {
				outcome.Extracted++
			}
		}
		result.Series = append(result.Series, res.series...)
		result.Items = append(result.Items, res.items...)
		result.Outcomes = append(result.Outcomes, outcome)
	}

	sort.Slice(result.Outcomes, func(i, j int) bool {
		return result.Outcomes[i].Serial < result.Outcomes[j].Serial
	})
	return result
}

// worker owns one browser and drains the jobs channel until it closes
func (s *Scraper) worker(ctx context.Context, id int, jobs <-chan models.Country, out chan<- countryResult, wg *sync.WaitGroup) {
	defer wg.Done()

	browserCtx, cancel := s.newBrowserContext(ctx)
	defer cancel()

	for country := range jobs {
		out <- s.scrapeCountry(browserCtx, id, country)
	}
}

// scrapeCountry renders one country page and extracts every catalog
// indicator from it; a page-level failure marks all of them failed
func (s *Scraper) scrapeCountry(browserCtx context.Context, workerID int, country models.Country) countryResult {
	res := countryResult{country: country}
	pageURL := s.cfg.BaseURL + country.Slug
	catalog := models.Catalog()

	s.logger.Info("[w%d] Scraping %s: %s", workerID, country.Name, pageURL)

	tables, err := s.renderCountry(browserCtx, pageURL)
	if err == nil && len(tables) == 0 {
		err = ErrNoTables
	}
	if err != nil {
		s.logger.Error("[w%d] %s: %v", workerID, country.Name, err)
		for _, sel := range catalog {
			res.items = append(res.items, models.ItemResult{
				Country: country.Name,
				Metric:  sel.ItemName(),
				Err:     err,
			})
		}
		return res
	}

	scrapedAt := time.Now()
	for _, sel := range catalog {
		values, unit, err := FindSeries(tables, sel)
		if err != nil {
			s.logger.Warn("[w%d] %s / %s: %v", workerID, country.Name, sel.ItemName(), err)
			res.items = append(res.items, models.ItemResult{
				Country: country.Name,
				Metric:  sel.ItemName(),
				Err:     err,
			})
			continue
		}
		res.series = append(res.series, models.RawSeries{
			Country:   country,
			Selection: sel,
			Unit:      unit,
			Values:    values,
			PageURL:   pageURL,
			ScrapedAt: scrapedAt,
		})
		res.items = append(res.items, models.ItemResult{
			Country: country.Name,
			Metric:  sel.ItemName(),
		})
	}

	s.logger.Info("[w%d] %s: %d/%d indicators extracted",
		workerID, country.Name, len(res.series), len(catalog))
	return res
}

// renderCountry navigates to the page, waits out the client-side render,
// then walks the data tabs and harvests every table in each
func (s *Scraper) renderCountry(browserCtx context.Context, pageURL string) ([]models.RawTable, error) {
	ctx, cancel := context.WithTimeout(browserCtx, time.Duration(s.cfg.PageTimeout)*time.Second)
	defer cancel()

	renderWait := time.Duration(s.cfg.RenderWait) * time.Second
	err := utils.RetryWithBackoff(s.cfg.MaxRetries, func() error {
		s.limiter.Wait()
		return chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(renderWait),
		)
	}, s.logger)
	if err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	var (
		title    string
		notFound bool
	)
	err = chromedp.Run(ctx,
		chromedp.Title(&title),
		chromedp.Evaluate(notFoundJS, &notFound),
	)
	if err != nil {
		return nil, fmt.Errorf("page inspection failed: %w", err)
	}
	if notFound || strings.Contains(title, "404") {
		return nil, ErrPageNotFound
	}

	var tables []models.RawTable
	for _, tab := range models.PortalTabs() {
		clicked, err := s.activateTab(ctx, tab)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, fmt.Errorf("tab %q: %w", tab, err)
			}
			s.logger.Debug("Tab %q activation failed: %v", tab, err)
		} else if !clicked {
			s.logger.Debug("Tab %q not found on page, harvesting as-is", tab)
		}

		fragments, err := s.harvestTables(ctx)
		if err != nil {
			return nil, fmt.Errorf("table harvest failed: %w", err)
		}
		tables = append(tables, ParseTables(tab, fragments)...)
	}
	return tables, nil
}

// activateTab clicks the named tab if the page has one and gives the
// panel a moment to render; pages without that tab are left as-is
func (s *Scraper) activateTab(ctx context.Context, tab string) (bool, error) {
	var clicked bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(fmt.Sprintf(tabClickJS, tab), &clicked)); err != nil {
		return false, err
	}
	if clicked {
		if err := chromedp.Run(ctx, chromedp.Sleep(1500*time.Millisecond)); err != nil {
			return true, err
		}
	}
	return clicked, nil
}

func (s *Scraper) harvestTables(ctx context.Context) ([]string, error) {
	var fragments []string
	if err := chromedp.Run(ctx, chromedp.Evaluate(harvestJS, &fragments)); err != nil {
		return nil, err
	}
	return fragments, nil
}

// newBrowserContext creates a fresh chromedp context (one browser per worker)
func (s *Scraper) newBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1366, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}),
	)
	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}
	return browserCtx, cancel
}
