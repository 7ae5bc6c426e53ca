package itunes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/handiism/itunes-search/internal/config"
	apihttp "github.com/handiism/itunes-search/internal/http"
	"github.com/handiism/itunes-search/internal/logging"
	"github.com/handiism/itunes-search/internal/model"
)

var (
	// ErrSearchFailed wraps every failure to obtain results from the API:
	// unreachable host, non-200 status, undecodable body, timeout.
	ErrSearchFailed = errors.New("search failed")

	// ErrTimeout marks a search that failed because the request deadline
	// expired. Errors carrying it also match ErrSearchFailed.
	ErrTimeout = errors.New("request timed out")

	// ErrEmptyTerm is returned for a blank search term.
	ErrEmptyTerm = errors.New("search term is empty")
)

// Options controls the query parameters and retry behavior of a Client.
type Options struct {
	BaseURL string
	Country string
	Media   string
	Entity  string
	Limit   int

	// MaxRetries is the total number of attempts; values below 1 mean one.
	MaxRetries int

	// Wait before attempt n+1 is RetryCooldown * RetryExponent^n seconds.
	RetryCooldown float64
	RetryExponent float64
}

// OptionsFromSettings extracts the search options from settings.
func OptionsFromSettings(s *config.Settings) Options {
	return Options{
		BaseURL:       s.SearchURL,
		Country:       s.Country,
		Media:         s.Media,
		Entity:        s.Entity,
		Limit:         s.Limit,
		MaxRetries:    s.MaxRetries,
		RetryCooldown: s.RetryCooldown,
		RetryExponent: s.RetryExponent,
	}
}

// Client queries the catalog search API.
//
// Example usage:
//
//	client := itunes.NewClient(http.NewClient("itunes-search", 30*time.Second), opts, logger)
//
//	results, err := client.Search(ctx, "daft punk")
//	switch {
//	case errors.Is(err, itunes.ErrTimeout):
//	    fmt.Println("The search took too long")
//	case err != nil:
//	    fmt.Println(err)
//	default:
//	    fmt.Printf("%d results\n", results.Len())
//	}
type Client struct {
	httpClient *apihttp.Client
	opts       Options
	logger     *slog.Logger
}

// NewClient creates a search client. A nil logger uses slog.Default().
func NewClient(httpClient *apihttp.Client, opts Options, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		opts:       opts,
		logger:     logging.OrDefault(logger).With("component", "itunes"),
	}
}

// SearchURL builds the request URL for a free-text term.
func (c *Client) SearchURL(term string) (string, error) {
	u, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid search URL %q: %w", c.opts.BaseURL, err)
	}

	params := u.Query()
	params.Set("term", term)
	if c.opts.Country != "" {
		params.Set("country", c.opts.Country)
	}
	if c.opts.Media != "" {
		params.Set("media", c.opts.Media)
	}
	if c.opts.Entity != "" {
		params.Set("entity", c.opts.Entity)
	}
	if c.opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(c.opts.Limit))
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// Search runs one query and returns the records in API relevance order.
//
// Transient failures (network errors, timeouts, 429 and 5xx responses) are
// retried with exponential cooldown. All failures wrap ErrSearchFailed; a
// timeout additionally wraps ErrTimeout.
func (c *Client) Search(ctx context.Context, term string) (*model.ResultSet, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	searchURL, err := c.SearchURL(term)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	attempts := max(c.opts.MaxRetries, 1)

	var body []byte
	for tries := 0; tries < attempts; tries++ {
		c.logger.Debug("search request", "url", searchURL, "attempt", tries+1)

		body, err = c.httpClient.Get(ctx, searchURL)
		if err == nil || !retryable(ctx, err) || tries == attempts-1 {
			break
		}

		c.logger.Warn("search attempt failed, retrying", "attempt", tries+1, "of", attempts, "error", err)
		if werr := c.waitForRetry(ctx, tries); werr != nil {
			err = werr
			break
		}
	}
	if err != nil {
		c.logger.Error("search failed", "term", term, "error", err)
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %w: %w", ErrSearchFailed, ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	results, err := Decode(body)
	if err != nil {
		c.logger.Error("undecodable search response", "term", term, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	c.logger.Info("search finished", "term", term, "results", results.Len())
	return results, nil
}

// Decode parses a search API response envelope.
func Decode(body []byte) (*model.ResultSet, error) {
	var rs model.ResultSet
	if err := json.Unmarshal(body, &rs); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if rs.Results == nil {
		rs.Results = []model.Record{}
	}
	return &rs, nil
}

func (c *Client) waitForRetry(ctx context.Context, tries int) error {
	cooldown := c.opts.RetryCooldown * math.Pow(c.opts.RetryExponent, float64(tries))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
		return nil
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var status *apihttp.StatusError
	if errors.As(err, &status) {
		return status.Temporary()
	}
	return true
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
