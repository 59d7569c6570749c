package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/powderline/hakuba-dashboard/internal/httpx"
	"github.com/powderline/hakuba-dashboard/internal/scraper"
)

func TestClassifyPipelineError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ErrorUnknown},
		{"rate limited", &httpx.FetchError{Status: http.StatusTooManyRequests}, ErrorRateLimit},
		{"server error", &httpx.FetchError{Status: http.StatusBadGateway}, ErrorNetwork},
		{"transport failure", &httpx.FetchError{Err: errors.New("dial tcp: refused")}, ErrorNetwork},
		{"wrapped fetch error", fmt.Errorf("scrape: %w", &httpx.FetchError{Status: 503}), ErrorNetwork},
		{"malformed record", &scraper.MalformedRecordError{Block: 2, Reason: "short"}, ErrorParsing},
		{"deadline", context.DeadlineExceeded, ErrorNetwork},
		{"other", errors.New("boom"), ErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPipelineError(tt.err))
		})
	}
}
