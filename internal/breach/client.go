package breach

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/khanhnv2901/pwcheck/internal/digest"
	consts "github.com/khanhnv2901/pwcheck/internal/shared/constants"
	apperrors "github.com/khanhnv2901/pwcheck/internal/shared/errors"
)

// Result is the outcome of one range lookup.
type Result struct {
	Found bool
	Count int
	// Err is set when the lookup could not be completed. Found is always
	// false in that case.
	Err error
}

// Verified reports whether the lookup actually reached a verdict.
func (r Result) Verified() bool {
	return r.Err == nil
}

// StatusError reports a non-200 answer from the range endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("range endpoint returned HTTP %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return apperrors.ErrUnexpectedStatus
}

// Client queries a Pwned Passwords compatible range endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	padding    bool
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another range endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit caps outbound lookups. rps <= 0 disables limiting.
func WithRateLimit(rps, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = rps
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header sent with each lookup.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithPadding asks the endpoint to pad responses with zero-count entries so
// the response size does not reveal the prefix.
func WithPadding(enabled bool) Option {
	return func(c *Client) {
		c.padding = enabled
	}
}

// WithLogger attaches a logger. Only prefixes and counts are ever logged.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Client with the public endpoint and default limits.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    consts.DefaultRangeBaseURL,
		httpClient: &http.Client{Timeout: consts.DefaultLookupTimeout},
		limiter:    rate.NewLimiter(rate.Limit(consts.DefaultLookupRate), consts.DefaultLookupRate),
		userAgent:  "pwcheck",
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check hashes password locally and looks up its digest.
func (c *Client) Check(ctx context.Context, password string) Result {
	return c.Lookup(ctx, digest.Compute(password))
}

// Lookup sends the prefix of d to the range endpoint and matches the suffix
// locally.
func (c *Client) Lookup(ctx context.Context, d digest.Digest) Result {
	prefix, suffix := digest.Split(d)
	log := c.logger.With(zap.String("prefix", prefix))

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Result{Err: fmt.Errorf("wait for lookup budget: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/range/"+prefix, nil)
	if err != nil {
		return Result{Err: fmt.Errorf("create range request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.padding {
		req.Header.Set("Add-Padding", "true")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("range request failed", zap.Error(err))
		return Result{Err: fmt.Errorf("range request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, consts.RangeBodyLimitBytes))
		log.Debug("range request rejected", zap.Int("status", resp.StatusCode))
		return Result{Err: &StatusError{Code: resp.StatusCode}}
	}

	candidates, skipped, err := ParseRange(io.LimitReader(resp.Body, consts.RangeBodyLimitBytes))
	if err != nil {
		return Result{Err: fmt.Errorf("read range response: %w", err)}
	}
	log.Debug("range response",
		zap.Int("candidates", len(candidates)),
		zap.Int("skipped_lines", skipped),
		zap.Duration("duration", time.Since(start)),
	)

	if hit, ok := match(candidates, suffix); ok {
		return Result{Found: true, Count: hit.Count}
	}
	return Result{}
}
