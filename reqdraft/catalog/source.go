package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/procurahq/lib-reqdraft/reqdraft/backoff"
	"github.com/procurahq/lib-reqdraft/reqdraft/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Source is the narrow transport contract the engine consumes catalogs (and
// the requisition collection) through. Implementations own authentication,
// timeouts, and base URLs; the engine treats any returned error, transport
// timeouts included, as just another failed candidate.
type Source interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body []byte) ([]byte, error)
}

// maxSourceResponseBytes caps how much of a response body is read. Catalog
// collections are small; anything larger is a misbehaving endpoint.
const maxSourceResponseBytes = 8 << 20

// defaultRetryBase is the backoff base between transport retries.
const defaultRetryBase = 150 * time.Millisecond

// HTTPSource implements Source over net/http with bounded retries on
// transport failure. Non-2xx statuses are errors; retrying on them is left to
// the caller's candidate list, which is the engine's actual fallback
// mechanism.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	retries int
	logger  log.Logger
	tracer  trace.Tracer
	headers map[string]string
}

// SourceOption configures an HTTPSource.
type SourceOption func(*HTTPSource)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(s *HTTPSource) { s.client = client }
}

// WithRetries sets how many times a request is retried after a transport
// error. Zero disables retries.
func WithRetries(retries int) SourceOption {
	return func(s *HTTPSource) { s.retries = retries }
}

// WithSourceLogger attaches a structured logger.
func WithSourceLogger(logger log.Logger) SourceOption {
	return func(s *HTTPSource) { s.logger = logger }
}

// WithHeader adds a static header (e.g. Authorization) to every request.
func WithHeader(key, value string) SourceOption {
	return func(s *HTTPSource) { s.headers[key] = value }
}

// NewHTTPSource creates an HTTP transport rooted at baseURL.
func NewHTTPSource(baseURL string, opts ...SourceOption) *HTTPSource {
	source := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		retries: 1,
		headers: map[string]string{},
		tracer:  otel.Tracer("reqdraft.catalog.source"),
	}

	for _, opt := range opts {
		opt(source)
	}

	source.logger = log.Or(source.logger)

	return source
}

// Get issues a GET against path and returns the raw body.
func (s *HTTPSource) Get(ctx context.Context, path string) ([]byte, error) {
	return s.do(ctx, http.MethodGet, path, nil)
}

// Post issues a JSON POST against path and returns the raw body.
func (s *HTTPSource) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	return s.do(ctx, http.MethodPost, path, body)
}

func (s *HTTPSource) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	target, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "catalog.source."+strings.ToLower(method),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	var lastErr error

	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			if err := backoff.SleepWithContext(ctx, backoff.ExponentialWithJitter(defaultRetryBase, attempt-1)); err != nil {
				span.SetStatus(codes.Error, err.Error())

				return nil, err
			}
		}

		payload, err := s.once(ctx, method, target, body)
		if err == nil {
			return payload, nil
		}

		lastErr = err

		var status *statusError
		if errors.As(err, &status) || ctx.Err() != nil {
			// A served status is the endpoint's answer; only transport
			// failures are worth retrying.
			break
		}

		s.logger.Log(ctx, log.LevelDebug, "catalog source request failed",
			log.String("method", method),
			log.String("path", path),
			log.Int("attempt", attempt),
			log.Err(err),
		)
	}

	span.RecordError(lastErr)
	span.SetStatus(codes.Error, "request exhausted retries")

	return nil, lastErr
}

func (s *HTTPSource) once(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, maxSourceResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &statusError{code: res.StatusCode, path: req.URL.Path}
	}

	return payload, nil
}

// statusError marks a response that was served but not successful. It is not
// retried: the endpoint answered, and answering again will not change its mind.
type statusError struct {
	code int
	path string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.code, e.path)
}

func (s *HTTPSource) resolve(path string) (string, error) {
	joined := s.baseURL + "/" + strings.TrimLeft(path, "/")

	parsed, err := url.Parse(joined)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", path, err)
	}

	return parsed.String(), nil
}
