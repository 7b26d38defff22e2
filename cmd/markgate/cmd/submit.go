package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/markgate/markgate/internal/config"
	"github.com/markgate/markgate/internal/domain/document"
	"github.com/markgate/markgate/pkg/registry"
)

var submitCmd = &cobra.Command{
	Use:   "submit DOCUMENT.json [DOCUMENT.json...]",
	Short: "Submit one or more signed documents to the registry",
	Long: `Submit sends introduce-goods documents to the registry's create-document
endpoint. Each document is JSON-encoded, Base64-wrapped and sent together
with its detached signature; the product group travels as the pg query
parameter.

The signature must be computed externally over the exact Base64 text printed
by "markgate encode". For a single document the signature file can be given
with --signature-file; in batch mode each DOCUMENT.json is paired with a
sibling DOCUMENT.sig file.

All submissions of one run share a single client and therefore a single
rate limit window; batch submissions are sent concurrently and throttled to
rate_limit.max_requests per rate_limit.window.

Examples:
  # Single document
  markgate submit doc.json --signature-file doc.sig

  # Batch, with per-document .sig files and a metrics endpoint
  markgate submit docs/*.json --metrics-addr 127.0.0.1:9101`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

var (
	submitSignatureFile string
	submitToken         string
	submitProductGroup  string
	submitMetricsAddr   string
)

func init() {
	submitCmd.Flags().StringVar(&submitSignatureFile, "signature-file", "", "detached signature file (Base64); single document only")
	submitCmd.Flags().StringVar(&submitToken, "token", "", "bearer token (overrides MARKGATE_REGISTRY_TOKEN and registry.token)")
	submitCmd.Flags().StringVar(&submitProductGroup, "product-group", "", "product group for the pg query parameter (overrides registry.product_group)")
	submitCmd.Flags().StringVar(&submitMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while submitting (overrides metrics_addr)")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if submitSignatureFile != "" && len(args) > 1 {
		return fmt.Errorf("--signature-file applies to a single document; batch submissions use sibling <doc>.sig files")
	}

	token := submitToken
	if token == "" {
		token = cfg.Registry.Token
	}
	if token == "" {
		return fmt.Errorf("no bearer token: set --token, MARKGATE_REGISTRY_TOKEN or registry.token")
	}

	productGroup := submitProductGroup
	if productGroup == "" {
		productGroup = cfg.Registry.ProductGroup
	}
	if productGroup == "" {
		return fmt.Errorf("no product group: set --product-group or registry.product_group")
	}

	logger := newLogger(cfg.LogLevel)

	promRegistry := prometheus.NewRegistry()
	client, err := registry.New(registry.Config{
		BaseURL:              cfg.Registry.BaseURL,
		MaxRequestsPerWindow: cfg.RateLimit.MaxRequests,
		Window:               cfg.RateLimit.ParsedWindow(),
		Timeout:              cfg.Registry.ParsedTimeout(),
	},
		registry.WithLogger(logger),
		registry.WithMetricsRegistry(promRegistry),
	)
	if err != nil {
		return err
	}
	defer client.Close()

	metricsAddr := submitMetricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.MetricsAddr
	}
	if metricsAddr != "" {
		srv := &http.Server{
			Addr:    metricsAddr,
			Handler: promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics listener failed", "addr", metricsAddr, "error", err)
			}
		}()
		defer srv.Close()
	}

	// Interrupt aborts submissions still waiting on admission.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		mu     sync.Mutex
		failed int
	)
	var wg sync.WaitGroup
	for _, file := range args {
		wg.Add(1)
		go func(file string) {
			defer wg.Done()
			if err := submitOne(ctx, client, logger, token, productGroup, file); err != nil {
				logger.Error("submission failed", "file", file, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(file)
	}
	wg.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(args))
	}
	return nil
}

// submitOne loads one document and its signature and submits them.
func submitOne(ctx context.Context, client *registry.Client, logger *slog.Logger, token, productGroup, file string) error {
	doc, err := loadDocument(file)
	if err != nil {
		return err
	}

	sigPath := submitSignatureFile
	if sigPath == "" {
		sigPath = strings.TrimSuffix(file, filepath.Ext(file)) + ".sig"
	}
	sigRaw, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("read signature: %w", err)
	}
	signature := strings.TrimSpace(string(sigRaw))

	result, err := client.Submit(ctx, token, productGroup, doc, signature)
	if err != nil {
		return err
	}

	logger.Info("document submitted",
		"file", file,
		"submission_id", result.SubmissionID,
		"status", result.StatusCode,
	)
	fmt.Println(result.Body)
	return nil
}

// loadDocument reads and parses an introduce-goods document from a JSON file.
func loadDocument(path string) (*document.IntroduceGoods, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc document.IntroduceGoods
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	return &doc, nil
}

// newLogger builds the CLI's structured logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
}
