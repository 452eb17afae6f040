package psx

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/phuslu/log"
)

// FetchErrorKind categorizes a failed page fetch.
type FetchErrorKind int

const (
	// FetchNotFound means the portal returned 404 for the symbol.
	FetchNotFound FetchErrorKind = iota
	// FetchUnreachable means the portal could not be reached or returned an
	// unexpected status.
	FetchUnreachable
	// FetchTimeout means the portal did not respond in time.
	FetchTimeout
)

// FetchError is a categorized transport failure. Its message is surfaced
// verbatim to API callers.
type FetchError struct {
	Kind   FetchErrorKind
	Symbol string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchNotFound:
		return fmt.Sprintf("Company '%s' not found on PSX.", e.Symbol)
	case FetchTimeout:
		return "PSX website is not responding. Please try again later."
	default:
		if e.Status != 0 {
			return fmt.Sprintf("PSX returned HTTP %d. Please try again later.", e.Status)
		}
		return "Failed to connect to PSX. Please try again later."
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher fetches the raw HTML body of a portal page.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Client fetches PSX pages over plain HTTP with browser-like headers.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a page fetcher with the given timeout and user agent.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: userAgent,
	}
}

// FetchPage performs a single GET and returns the decoded body. Failures
// come back as *FetchError with the symbol derived from the URL.
func (c *Client) FetchPage(ctx context.Context, url string) (string, error) {
	symbol := SymbolFromURL(url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Kind: FetchUnreachable, Symbol: symbol, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	req.Header.Set("Connection", "keep-alive")

	log.Debug().Str("symbol", symbol).Str("url", url).Msg("fetching PSX page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &FetchError{Kind: FetchTimeout, Symbol: symbol, Err: err}
		}
		return "", &FetchError{Kind: FetchUnreachable, Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", &FetchError{Kind: FetchNotFound, Symbol: symbol, Status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Kind: FetchUnreachable, Symbol: symbol, Status: resp.StatusCode}
	}

	var reader io.Reader
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", &FetchError{Kind: FetchUnreachable, Symbol: symbol, Err: err}
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "deflate":
		flateReader := flate.NewReader(resp.Body)
		defer flateReader.Close()
		reader = flateReader
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "zstd":
		zstdReader, err := zstd.NewReader(resp.Body)
		if err != nil {
			return "", &FetchError{Kind: FetchUnreachable, Symbol: symbol, Err: err}
		}
		defer zstdReader.Close()
		reader = zstdReader
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", &FetchError{Kind: FetchUnreachable, Symbol: symbol, Err: err}
	}

	return string(body), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
