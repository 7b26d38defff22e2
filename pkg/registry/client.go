package registry

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markgate/markgate/internal/domain/document"
	"github.com/markgate/markgate/internal/domain/ratelimit"
)

// Client submits introduce-goods documents to the registry. One instance is
// safe for concurrent use; all callers share its rate limiter, so at most
// Config.MaxRequestsPerWindow submissions leave per window.
type Client struct {
	baseURL    string
	timeout    time.Duration
	limiter    *ratelimit.Limiter
	httpClient *http.Client
	encoder    Encoder
	logger     *slog.Logger
	metrics    *metrics
}

// New creates a registry client and starts its rate limiter.
// Callers must Close the client to release the limiter's background timer.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: base URL is blank", ErrInvalidArgument)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidArgument, cfg.Timeout)
	}

	limiter, err := ratelimit.New(cfg.MaxRequestsPerWindow, cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		limiter: limiter,
		encoder: jsonEncoder{},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c, nil
}

// Submit creates an introduce-goods document in the registry.
//
// The call blocks on the rate limiter first (up to one full window when the
// quota is exhausted), then encodes the document, wraps it in the envelope
// together with the caller-computed detached signature, and POSTs it with
// the product group as the pg query parameter. A 2xx response yields a
// Result carrying the raw body; any other status yields a *RemoteError.
// No retries are performed; a timed-out request still consumed its permit.
func (c *Client) Submit(ctx context.Context, token, productGroup string, doc *document.IntroduceGoods, signatureBase64 string) (*Result, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: bearer token is blank", ErrInvalidArgument)
	}
	if strings.TrimSpace(productGroup) == "" {
		return nil, fmt.Errorf("%w: product group is blank", ErrInvalidArgument)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrInvalidArgument)
	}

	submissionID := uuid.NewString()
	start := time.Now()

	waitStart := time.Now()
	if err := c.limiter.Acquire(ctx); err != nil {
		c.observe("cancelled", start)
		c.logger.Warn("submission admission aborted",
			"submission_id", submissionID,
			"error", err,
		)
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.rateLimitWait.Observe(time.Since(waitStart).Seconds())
		c.metrics.permitsAvailable.Set(float64(c.limiter.Available()))
	}

	// Encode before anything else touches the document so the Base64 text
	// the caller signed and the text transmitted are bit-identical.
	productDocument, err := c.EncodedDocument(doc)
	if err != nil {
		c.observe("encoding_error", start)
		return nil, err
	}

	env, err := newEnvelope(documentFormatManual, documentTypeIntroduceGoods, productDocument, signatureBase64)
	if err != nil {
		c.observe("invalid_argument", start)
		return nil, err
	}

	body, err := json.Marshal(env)
	if err != nil {
		c.observe("encoding_error", start)
		return nil, fmt.Errorf("%w: marshal envelope: %v", ErrEncoding, err)
	}

	requestURL := c.baseURL + createDocumentPath + "?" + url.Values{
		productGroupParam: []string{productGroup},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		c.observe("invalid_argument", start)
		return nil, fmt.Errorf("%w: build request: %v", ErrInvalidArgument, err)
	}
	req.Header.Set("Authorization", bearerPrefix+token)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", acceptAll)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe("transport_error", start)
		c.logger.Warn("submission transport failed",
			"submission_id", submissionID,
			"error", err,
		)
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe("transport_error", start)
		return nil, &TransportError{Cause: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe("rejected", start)
		c.logger.Warn("submission rejected",
			"submission_id", submissionID,
			"status", resp.StatusCode,
		)
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	c.observe("ok", start)
	c.logger.Info("submission accepted",
		"submission_id", submissionID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return &Result{
		SubmissionID: submissionID,
		StatusCode:   resp.StatusCode,
		Body:         string(respBody),
	}, nil
}

// EncodedDocument returns the Base64 text of the JSON-encoded document — the
// exact value placed in the envelope's product_document field. Callers
// compute the detached signature over this text before calling Submit.
func (c *Client) EncodedDocument(doc *document.IntroduceGoods) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: document is nil", ErrInvalidArgument)
	}
	raw, err := c.encoder.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Available reports the unconsumed permits in the current rate limit window.
func (c *Client) Available() int {
	return c.limiter.Available()
}

// Close stops the rate limiter's background timer and releases idle
// connections. It is idempotent and does not wait for in-flight Submit
// calls; goroutines blocked on admission drain the remaining permits or
// fail with ratelimit.ErrStopped.
func (c *Client) Close() {
	c.limiter.Stop()
	c.httpClient.CloseIdleConnections()
}

// observe records the submission outcome when metrics are enabled.
func (c *Client) observe(outcome string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.submissionsTotal.WithLabelValues(outcome).Inc()
	c.metrics.submissionDuration.Observe(time.Since(start).Seconds())
}
