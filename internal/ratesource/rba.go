package ratesource

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/antchfx/htmlquery"
	"github.com/homewise/affordability/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// RBASourceName tags quotes scraped from the RBA cash rate page.
const RBASourceName = "rba"

var _ Resolver = &RBAResolver{}

var whitespace = regexp.MustCompile(`\s+`)

// RBAResolver scrapes the latest cash rate target from the Reserve Bank's
// published decision table.
type RBAResolver struct {
	url    string
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewRBAResolver creates a scraper for the given page. A nil client uses
// one with a 10 second timeout.
func NewRBAResolver(url string, client *http.Client, logger *zap.Logger) *RBAResolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RBAResolver{url: url, client: client, logger: logger, now: time.Now}
}

func (r *RBAResolver) CurrentCashRate(ctx context.Context) (domain.RateQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "homewise-affordability/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("failed reading RBA website", zap.String("url", r.url), zap.Error(err))
		return domain.RateQuote{}, fmt.Errorf("%w: %w", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("unexpected RBA response", zap.Int("status", resp.StatusCode))
		return domain.RateQuote{}, fmt.Errorf("%w: RBA returned status %d", ErrRateUnavailable, resp.StatusCode)
	}

	doc, err := htmlquery.Parse(resp.Body)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("%w: failed to parse page: %w", ErrRateUnavailable, err)
	}

	quote, err := parseCashRateTable(doc)
	if err != nil {
		r.logger.Error("failed to parse cash rate table", zap.Error(err))
		return domain.RateQuote{}, fmt.Errorf("%w: %w", ErrRateUnavailable, err)
	}
	quote.RetrievedAt = r.now()
	r.logger.Debug("parsed cash rate",
		zap.String("rate", quote.CashRatePercent.String()),
		zap.String("effective", quote.EffectiveDate.String()))
	return quote, nil
}

// parseCashRateTable reads the newest row of the decision table:
// effective date, change in percentage points, cash rate target.
func parseCashRateTable(doc *html.Node) (domain.RateQuote, error) {
	// if the RBA restructures the page this is where it breaks
	row, err := htmlquery.Query(doc, "//table[@id='datatable']/tbody/tr[1]")
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("failed to xpath cash rate table: %w", err)
	}
	if row == nil {
		return domain.RateQuote{}, fmt.Errorf("cash rate table not found")
	}

	cells, err := htmlquery.QueryAll(row, "./th|./td")
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("failed to xpath cells: %w", err)
	}
	if len(cells) < 3 {
		return domain.RateQuote{}, fmt.Errorf("expected at least 3 cells in cash rate row, got %d", len(cells))
	}

	dateText := cellText(cells[0])
	effective, err := time.Parse("2 Jan 2006", dateText)
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("failed to parse effective date '%s': %w", dateText, err)
	}

	rateText := strings.TrimSuffix(cellText(cells[2]), "%")
	rate, err := decimal.NewFromString(strings.TrimSpace(rateText))
	if err != nil {
		return domain.RateQuote{}, fmt.Errorf("failed to parse cash rate '%s': %w", rateText, err)
	}
	if rate.IsNegative() {
		return domain.RateQuote{}, fmt.Errorf("negative cash rate %s", rate)
	}

	return domain.RateQuote{
		CashRatePercent: rate,
		EffectiveDate:   civil.DateOf(effective),
		Source:          RBASourceName,
	}, nil
}

func cellText(n *html.Node) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(htmlquery.InnerText(n), " "))
}
