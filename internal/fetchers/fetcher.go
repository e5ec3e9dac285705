// Package fetchers wraps the external data sources: the OpenWeather 3-hour
// forecast, the NOAA planetary Kp index, and the SIDC advisory feed. Each
// fetcher makes a single attempt per call with a short fixed timeout and
// caches successful results for its documented freshness window.
package fetchers

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// newClient builds the resty client shared by a fetcher. No retries: every
// call is a single attempt that returns, times out, or fails.
func newClient(timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	return client
}
