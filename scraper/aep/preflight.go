package aep

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"aep-scraper/utils"

	"github.com/go-resty/resty/v2"
)

// Preflight probes the portal host over plain HTTP before any browser is
// launched; the result is advisory and callers only log a failure
func Preflight(ctx context.Context, baseURL string, logger *utils.Logger) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid portal base URL %q: %w", baseURL, err)
	}
	root := u.Scheme + "://" + u.Host

	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(1).
		SetHeader("User-Agent", userAgent)

	res, err := client.R().SetContext(ctx).Get(root)
	if err != nil {
		return fmt.Errorf("portal unreachable: %w", err)
	}
	if res.StatusCode() >= 500 {
		return fmt.Errorf("portal returned HTTP %d", res.StatusCode())
	}

	logger.Info("Portal reachable: %s (HTTP %d)", root, res.StatusCode())
	return nil
}
