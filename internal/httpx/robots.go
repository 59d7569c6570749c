package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsGate checks robots.txt before the fetcher touches a host. Results
// are cached per host for the lifetime of the process.
type robotsGate struct {
	client *http.Client
	ua     string

	mu    sync.Mutex
	cache map[string]*robotstxt.RobotsData
}

func newRobotsGate(userAgent string) *robotsGate {
	return &robotsGate{
		client: &http.Client{Timeout: 10 * time.Second},
		ua:     userAgent,
		cache:  map[string]*robotstxt.RobotsData{},
	}
}

// Allowed reports whether robots.txt permits fetching rawURL. It fails open:
// if robots.txt cannot be retrieved or parsed, fetching proceeds.
func (g *robotsGate) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true, err
	}

	data, err := g.robotsFor(ctx, u)
	if err != nil {
		return true, err
	}

	group := data.FindGroup(g.ua)
	if group == nil {
		group = data.FindGroup("*")
	}
	if group == nil {
		return true, nil
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	return group.Test(path), nil
}

func (g *robotsGate) robotsFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	host := u.Hostname()
	g.mu.Lock()
	if data, ok := g.cache[host]; ok {
		g.mu.Unlock()
		return data, nil
	}
	g.mu.Unlock()

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.ua)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.cache[host] = data
	g.mu.Unlock()
	return data, nil
}
