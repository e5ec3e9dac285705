package fetchers

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"github.com/Deekshith1804/gnss2/internal/logger"
	"github.com/Deekshith1804/gnss2/internal/metrics"
	"github.com/Deekshith1804/gnss2/internal/models"
)

// advisoryWindow limits the panel to recent items.
const advisoryWindow = 72 * time.Hour

// AdvisoryFetcher pulls the SIDC space-weather advisory RSS feed for the
// dashboard side panel. The panel is decorative context for the outage
// heuristics, so any failure yields an empty list rather than an error.
type AdvisoryFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
	log    *logger.Logger
	url    string
}

// NewAdvisoryFetcher creates an advisory fetcher.
func NewAdvisoryFetcher(url string, timeout time.Duration) *AdvisoryFetcher {
	return &AdvisoryFetcher{
		client: newClient(timeout),
		parser: gofeed.NewParser(),
		log:    logger.WithComponent("advisories"),
		url:    url,
	}
}

// Fetch returns recent advisories, newest first. Never returns an error.
func (f *AdvisoryFetcher) Fetch(ctx context.Context) []models.Advisory {
	resp, err := f.client.R().SetContext(ctx).Get(f.url)
	if err != nil || resp.StatusCode() != 200 {
		metrics.ExternalCallsTotal.WithLabelValues("advisories", "error").Inc()
		f.log.Warn("advisory feed unavailable")
		return nil
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("advisories", "error").Inc()
		f.log.Warn("advisory feed unparseable")
		return nil
	}
	metrics.ExternalCallsTotal.WithLabelValues("advisories", "success").Inc()

	cutoff := time.Now().Add(-advisoryWindow)
	var advisories []models.Advisory
	for _, item := range feed.Items {
		if item.PublishedParsed == nil || item.PublishedParsed.Before(cutoff) {
			continue
		}
		advisories = append(advisories, models.Advisory{
			Title:     item.Title,
			Severity:  classifySeverity(item.Title),
			Published: *item.PublishedParsed,
		})
	}
	return advisories
}

// classifySeverity buckets an advisory by flare-class keywords in its title.
func classifySeverity(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "x-class") || strings.Contains(t, "extreme"):
		return "Extreme"
	case strings.Contains(t, "m-class") || strings.Contains(t, "major"):
		return "High"
	case strings.Contains(t, "c-class") || strings.Contains(t, "moderate"):
		return "Moderate"
	default:
		return "Low"
	}
}
