package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single embedding or generation call.
const DefaultTimeout = 60 * time.Second

// ErrTimeout is returned when an upstream call exceeds its deadline.
// Callers should treat it as a retryable external failure.
var ErrTimeout = errors.New("llm request timed out")

// Option configures the HTTP behaviour shared by Client and EmbeddingsClient.
type Option func(*transport)

// WithTimeout sets the per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(t *transport) {
		if d > 0 {
			t.httpClient.Timeout = d
		}
	}
}

// NewLimiter returns a limiter allowing rps requests per second with the given
// burst, or nil when rps is non-positive.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// WithLimiter makes the client wait on l before every request. Clients given
// the same limiter share one request budget. A nil limiter disables limiting.
func WithLimiter(l *rate.Limiter) Option {
	return func(t *transport) {
		t.limiter = l
	}
}

// WithRateLimit gives the client its own limiter; see NewLimiter.
func WithRateLimit(rps float64, burst int) Option {
	return WithLimiter(NewLimiter(rps, burst))
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(t *transport) {
		if hc != nil {
			t.httpClient = hc
		}
	}
}

type transport struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newTransport(opts []Option) *transport {
	t := &transport{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// postJSON sends payload as JSON to url and decodes a 200 response into out.
func (t *transport) postJSON(ctx context.Context, url, apiKey string, payload, out any) error {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return classify(fmt.Errorf("rate limiter: %w", err))
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return classify(fmt.Errorf("failed to send request: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return classify(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// classify tags deadline failures with ErrTimeout.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
