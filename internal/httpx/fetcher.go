package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

// Fetcher wraps Colly for polite HTML fetching of the resort info page.
type Fetcher struct {
	userAgent string
	timeout   time.Duration
	robots    *robotsGate

	mu          sync.Mutex
	limiter     *rate.Limiter
	nextAllowed time.Time
}

// FetchError reports a transport failure or non-success response.
type FetchError struct {
	Status int
	URL    string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s (status %d): %v", e.URL, e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func NewFetcher(userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = "hakuba-dashboard/1.0"
	}
	return &Fetcher{
		userAgent: userAgent,
		timeout:   15 * time.Second,
		robots:    newRobotsGate(userAgent),
		limiter:   rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// FetchHTML retrieves the raw markup at rawURL. It retries with backoff on
// 429 and 5xx responses; any other failure is returned immediately as a
// *FetchError.
func (f *Fetcher) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return "", &FetchError{URL: rawURL, Err: err}
	}

	if allowed, err := f.robots.Allowed(ctx, target); err == nil && !allowed {
		return "", &FetchError{Status: http.StatusForbidden, URL: target, Err: errors.New("blocked by robots.txt")}
	}

	var body string
	var status int
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := f.wait(ctx); err != nil {
			return "", err
		}
		body, status, lastErr = f.fetchOnce(ctx, target)
		if lastErr == nil {
			return body, nil
		}
		if !shouldBackoff(status) {
			break
		}
		f.applyBackoff(attempt)
	}

	return "", &FetchError{Status: status, URL: target, Err: lastErr}
}

func (f *Fetcher) fetchOnce(ctx context.Context, target string) (string, int, error) {
	c := colly.NewCollector(colly.UserAgent(f.userAgent))
	// The robots gate has already vetted the URL; letting Colly re-check
	// would swallow the disallow into an untyped error.
	c.IgnoreRobotsTxt = true
	c.SetRequestTimeout(f.timeout)

	var body string
	status := 0
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	if err := c.Visit(target); err != nil {
		return "", status, err
	}
	if reqErr != nil {
		return "", status, reqErr
	}
	if status >= 400 {
		return "", status, fmt.Errorf("status %d", status)
	}
	return body, status, nil
}

func (f *Fetcher) wait(ctx context.Context) error {
	for {
		f.mu.Lock()
		next := f.nextAllowed
		f.mu.Unlock()
		now := time.Now()
		if !now.Before(next) {
			break
		}
		if err := sleepWithContext(ctx, next.Sub(now)); err != nil {
			return err
		}
	}
	return f.limiter.Wait(ctx)
}

func (f *Fetcher) applyBackoff(attempt int) {
	if attempt < 0 {
		attempt = 0
	}
	delay := time.Duration(500*(1<<attempt)) * time.Millisecond
	f.mu.Lock()
	next := time.Now().Add(delay)
	if next.After(f.nextAllowed) {
		f.nextAllowed = next
	}
	f.mu.Unlock()
}

func normalizeURL(rawURL string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", errors.New("empty url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	return u.String(), nil
}

func shouldBackoff(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500 && status <= 599
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
