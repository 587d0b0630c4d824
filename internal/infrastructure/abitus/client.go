// Package abitus is the HTTP client for the public ABITUS registry API.
package abitus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/internal/infrastructure/metrics"
	"desaparecidos/pkg/logger"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://abitus-api.geia.vip/v1"

// maxBodyBytes caps decoded responses.
const maxBodyBytes = 8 << 20

var tracer = otel.Tracer("desaparecidos/abitus")

// Config configures the client.
type Config struct {
	// BaseURL is the API root including the version segment
	BaseURL string

	// Timeout bounds a single attempt
	Timeout time.Duration

	// RateInterval is the minimum spacing between calls (0 disables limiting)
	RateInterval time.Duration

	// RateBurst is how many calls may be made back to back
	RateBurst int

	// MaxRetries is the number of retries after the first attempt
	MaxRetries uint

	// MaxElapsed bounds the total time spent retrying
	MaxElapsed time.Duration

	// InitialBackoff is the first retry delay
	InitialBackoff time.Duration

	// HTTPClient overrides the transport (tests)
	HTTPClient *http.Client
}

// DefaultConfig returns production-safe defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        10 * time.Second,
		RateInterval:   50 * time.Millisecond,
		RateBurst:      10,
		MaxRetries:     2,
		MaxElapsed:     20 * time.Second,
		InitialBackoff: 200 * time.Millisecond,
	}
}

// Client calls the registry API.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	cfg     Config
	log     *logger.Logger
}

// New creates a client. It fails only on a malformed base URL.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse abitus base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("abitus base url %q must be absolute", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = DefaultConfig().InitialBackoff
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = DefaultConfig().MaxElapsed
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RateInterval), max(1, cfg.RateBurst))
	}

	if log == nil {
		log = logger.Default()
	}

	return &Client{
		base:    base,
		http:    httpClient,
		limiter: limiter,
		cfg:     cfg,
		log:     log.WithComponent("abitus"),
	}, nil
}

// statusError is a non-2xx answer.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("abitus: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("abitus: unexpected status %d: %s", e.Code, e.Body)
}

// retryable reports whether another attempt could succeed.
func (e *statusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// getJSON performs a GET with rate limiting and retries and decodes the
// body into out. op names the call in spans, logs and metrics.
func (c *Client) getJSON(ctx context.Context, op string, path []string, query url.Values, out any) (err error) {
	endpoint := c.base.JoinPath(path...)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	ctx, span := tracer.Start(ctx, "abitus."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodGet),
			attribute.String("url.full", endpoint.String()),
		),
	)
	start := time.Now()
	defer func() {
		metrics.RecordUpstream(op, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.InitialBackoff
	exp.MaxInterval = c.cfg.MaxElapsed / 4
	exp.Reset()

	attempt := 0
	operation := func() (struct{}, error) {
		attempt++
		return struct{}{}, c.attempt(ctx, endpoint.String(), out)
	}

	_, err = backoff.Retry(ctx, operation,
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(c.cfg.MaxRetries+1),
		backoff.WithMaxElapsedTime(c.cfg.MaxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			metrics.RecordUpstreamRetry(op)
			c.log.WithContext(ctx).Warnw("registry call failed, retrying",
				"operation", op,
				"attempt", attempt,
				"retry_in", next,
				"error", err,
			)
		}),
	)
	span.SetAttributes(attribute.Int("abitus.attempts", attempt))
	if err != nil {
		c.log.WithContext(ctx).Errorw("registry call failed",
			"operation", op,
			"url", endpoint.String(),
			"attempts", attempt,
			"error", err,
		)
		return err
	}
	return nil
}

// attempt performs one request. Errors that retrying cannot fix are marked
// permanent.
func (c *Client) attempt(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return backoff.Permanent(fmt.Errorf("rate limit wait: %w", err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()
	}()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		serr := &statusError{Code: resp.StatusCode, Body: string(body)}
		if serr.retryable() {
			if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && secs > 0 {
				return backoff.RetryAfter(secs)
			}
			return serr
		}
		return backoff.Permanent(serr)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// translate maps transport errors to AppErrors. notFound builds the error
// returned for a 404, or nil when a 404 is just another failure.
func translate(op string, err error, notFound func() *apperror.AppError) error {
	if err == nil {
		return nil
	}
	var serr *statusError
	if errors.As(err, &serr) && serr.Code == http.StatusNotFound && notFound != nil {
		return notFound().WithCause(err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperror.NewTimeout(op, err)
	}
	return apperror.NewUpstream(op, err)
}
