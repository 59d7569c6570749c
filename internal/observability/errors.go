package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/powderline/hakuba-dashboard/internal/httpx"
	"github.com/powderline/hakuba-dashboard/internal/scraper"
)

const (
	ErrorNetwork   = "network"
	ErrorRateLimit = "rate_limit"
	ErrorParsing   = "parsing"
	ErrorUnknown   = "unknown"
)

// ClassifyPipelineError maps a fetch-and-parse failure to a metric label.
func ClassifyPipelineError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	var malformed *scraper.MalformedRecordError
	if errors.As(err, &malformed) {
		return ErrorParsing
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		if fe.Status == http.StatusTooManyRequests {
			return ErrorRateLimit
		}
		return ErrorNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorNetwork
	}
	return ErrorUnknown
}
