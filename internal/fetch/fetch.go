package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
)

const DefaultTimeout = 30 * time.Second

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// StatusError is returned when a server answers with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Code)
}

type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Cookie     string
	CookieFile string

	// CloudflareBypass wraps the transport with browser-like headers for
	// sites sitting behind Cloudflare.
	CloudflareBypass bool

	Transport http.RoundTripper
	Logger    interface{ Debugf(string, ...any) }
}

// Fetcher performs single HTTP GETs. It never retries.
type Fetcher struct {
	client *http.Client
}

func New(opts Options) *Fetcher {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	base := opts.Transport
	if base == nil {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxConnsPerHost:     100,
			MaxIdleConnsPerHost: 100,
			ForceAttemptHTTP2:   true,
		}
	}

	if opts.CloudflareBypass {
		base = cloudflarebp.AddCloudFlareByPass(base)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	jar, _ := cookiejar.New(nil)

	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Jar:     jar,
			Transport: headerTransport{
				base:         base,
				ua:           ua,
				cookieHeader: joinCookies(opts.Cookie, opts.CookieFile),
				log:          opts.Logger,
			},
		},
	}
}

// Get fetches url and returns the raw response body.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

type headerTransport struct {
	base         http.RoundTripper
	ua           string
	cookieHeader string
	log          interface{ Debugf(string, ...any) }
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.ua != "" {
		req.Header.Set("User-Agent", t.ua)
	}

	if t.cookieHeader != "" && req.Header.Get("Cookie") == "" {
		req.Header.Set("Cookie", t.cookieHeader)
	}

	if t.log != nil {
		t.log.Debugf("HTTP %s %s\n", req.Method, req.URL.String())
	}

	return t.base.RoundTrip(req)
}

func joinCookies(inline, file string) string {
	s := strings.TrimSpace(inline)
	if file == "" {
		return s
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return s
	}

	// first non-empty line
	sc := bufio.NewScanner(strings.NewReader(string(b)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if s == "" {
			return line
		}
		return s + "; " + line
	}

	return s
}
