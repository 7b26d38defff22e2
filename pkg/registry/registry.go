// Package registry provides a rate-limited client for the marked-goods
// registry's create-document endpoint.
//
// The client submits exactly one kind of operation: introducing goods into
// circulation. The document is JSON-encoded, Base64-wrapped into the fixed
// four-field envelope and POSTed to /lk/documents/create with the product
// group as a query parameter. A fixed-window rate limiter shared by all
// callers of one client instance throttles outbound calls; the limiter is
// the only suspension point before the HTTP send.
//
// Quick start:
//
//	client, err := registry.New(registry.Config{
//	    BaseURL:              registry.DemoBaseURL,
//	    MaxRequestsPerWindow: 10,
//	    Window:               time.Second,
//	    Timeout:              30 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	encoded, err := client.EncodedDocument(doc)
//	// ... compute the detached signature over encoded externally ...
//	result, err := client.Submit(ctx, token, "milk", doc, signatureBase64)
//
// The detached signature is computed by the caller over the exact Base64
// text returned by EncodedDocument; the client only transports it.
package registry

import "time"

// Documented registry endpoints.
const (
	// ProductionBaseURL is the production registry API base.
	ProductionBaseURL = "https://ismp.crpt.ru/api/v3"

	// DemoBaseURL is the sandbox registry API base.
	DemoBaseURL = "https://markirovka.demo.crpt.tech/api/v3"
)

// Wire constants of the create-document operation.
const (
	createDocumentPath = "/lk/documents/create"
	productGroupParam  = "pg"

	documentFormatManual       = "MANUAL"
	documentTypeIntroduceGoods = "LP_INTRODUCE_GOODS"

	contentTypeJSON = "application/json"
	acceptAll       = "*/*"
	bearerPrefix    = "Bearer "
)

// Config carries the construction-time settings of a Client.
type Config struct {
	// BaseURL is the registry API base (e.g. ProductionBaseURL). Required;
	// a trailing slash is stripped.
	BaseURL string

	// MaxRequestsPerWindow is the call quota per rate limit window. Must be
	// positive.
	MaxRequestsPerWindow int

	// Window is the fixed rate limit window length. Must be positive.
	Window time.Duration

	// Timeout bounds each HTTP request. Must be positive.
	Timeout time.Duration
}

// Result is the outcome of a successful submission.
type Result struct {
	// SubmissionID is a client-generated correlation id for this call. It is
	// not transmitted to the registry.
	SubmissionID string

	// StatusCode is the HTTP status returned by the registry (2xx).
	StatusCode int

	// Body is the raw response body, unchanged.
	Body string
}
