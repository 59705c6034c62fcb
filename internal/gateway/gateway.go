// Package gateway wires the triage pipeline behind an HTTP server.
//
// DESIGN: One Gateway owns every long-lived resource: the orchestrator,
// the collaborator clients, the telemetry recorder and its sinks, and
// the retrieval cache. Requests are handled worker-per-request by
// net/http; the pipeline itself holds no cross-request mutable state.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/caremesh/triage-gateway/external"
	"github.com/caremesh/triage-gateway/internal/config"
	"github.com/caremesh/triage-gateway/internal/intent"
	"github.com/caremesh/triage-gateway/internal/monitoring"
	"github.com/caremesh/triage-gateway/internal/rag"
	"github.com/caremesh/triage-gateway/internal/redact"
	"github.com/caremesh/triage-gateway/internal/safety"
	"github.com/caremesh/triage-gateway/internal/store"
	"github.com/caremesh/triage-gateway/internal/triage"
)

const (
	// ServiceName identifies this service in the health response.
	ServiceName = "care-triage-gateway"

	// HeaderRequestID carries the request ID to and from clients.
	HeaderRequestID = "X-Request-ID"

	// DefaultRateLimit is the per-IP requests/second limit.
	DefaultRateLimit = 20

	// MaxRateLimitBuckets caps rate limiter memory.
	MaxRateLimitBuckets = 10000

	// maxBodySize bounds the inbound /chat body (base64 images included).
	maxBodySize = 12 * 1024 * 1024
)

// Version is set at build time by the main package.
var Version = "dev"

// Gateway is the HTTP front end of the triage pipeline.
type Gateway struct {
	config        *config.Config
	server        *http.Server
	orchestrator  *triage.Orchestrator
	recorder      *monitoring.Recorder
	broadcaster   *monitoring.Broadcaster
	metrics       *monitoring.MetricsCollector
	alerts        *monitoring.AlertManager
	requestLogger *monitoring.RequestLogger
	rateLimiter   *rateLimiter
	cache         store.Store
}

// New assembles a Gateway from configuration.
func New(cfg *config.Config) (*Gateway, error) {
	logger := monitoring.New(monitoring.LoggerConfig{
		Level:  cfg.Monitoring.LogLevel,
		Format: cfg.Monitoring.LogFormat,
		Output: cfg.Monitoring.LogOutput,
	})
	requestLogger := monitoring.NewRequestLogger(logger)
	alerts := monitoring.NewAlertManager(logger, monitoring.AlertConfig{
		HighLatencyThreshold: cfg.Monitoring.HighLatencyThreshold,
	})
	metrics := monitoring.NewMetricsCollector()

	router, err := buildRouterClient(cfg.Router)
	if err != nil {
		return nil, fmt.Errorf("failed to build router client: %w", err)
	}

	var search rag.SearchService
	var cache store.Store
	if cfg.Search.Enabled {
		sc, err := external.NewSearchClient(external.SearchClientConfig{
			Endpoint:   cfg.Search.Endpoint,
			APIKey:     cfg.Search.APIKey,
			Index:      cfg.Search.Index,
			APIVersion: cfg.Search.APIVersion,
			Timeout:    cfg.Search.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build search client: %w", err)
		}
		search = sc
		cache = store.NewMemoryStore(cfg.Search.CacheTTL)
	}

	prompts, err := rag.NewPromptBuilder(cfg.Pipeline.DocTokenBudget)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt builder: %w", err)
	}

	broadcaster := monitoring.NewBroadcaster()
	recorder, err := buildRecorder(cfg.Monitoring, broadcaster)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry recorder: %w", err)
	}

	retriever := rag.NewRetriever(search, cache, cfg.Search.TopK)
	retriever.SetMetrics(metrics)

	orchestrator := triage.NewOrchestrator(triage.Deps{
		Redactor:   redact.New(),
		Screener:   safety.NewScreener(),
		Classifier: intent.New(),
		Retriever:  retriever,
		Prompts:    prompts,
		Router:     router,
		Recorder:   recorder,
		Metrics:    metrics,
		Alerts:     alerts,
		RequestLog: requestLogger,
	})

	rateLimit := cfg.Server.RateLimit
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}

	g := &Gateway{
		config:        cfg,
		orchestrator:  orchestrator,
		recorder:      recorder,
		broadcaster:   broadcaster,
		metrics:       metrics,
		alerts:        alerts,
		requestLogger: requestLogger,
		rateLimiter:   newRateLimiter(rateLimit),
		cache:         cache,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", g.handleHealth)
	mux.HandleFunc("/chat", g.handleChat)
	mux.HandleFunc("/metrics", g.handleMetrics)
	mux.HandleFunc("/telemetry/stream", g.handleTelemetryStream)

	// Rate limiting sits inside the request logger so throttled
	// requests still carry a request ID and hit the request log.
	g.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      g.panicRecovery(g.loggingMiddleware(g.rateLimit(g.security(mux)))),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return g, nil
}

// buildRouterClient creates the model router client, wiring a SigV4
// signing transport when configured.
func buildRouterClient(cfg config.RouterConfig) (*external.RouterClient, error) {
	var httpClient *http.Client
	if cfg.Auth.Type == "sigv4" {
		transport, err := external.NewSigningTransport(cfg.Auth.Service, cfg.Auth.Region, nil)
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{Transport: transport}
	}
	return external.NewRouterClient(external.RouterClientConfig{
		Endpoint:   cfg.Endpoint,
		APIKey:     cfg.APIKey,
		Deployment: cfg.Deployment,
		APIVersion: cfg.APIVersion,
		MaxTokens:  cfg.MaxTokens,
		Timeout:    cfg.Timeout,
		HTTPClient: httpClient,
	})
}

// buildRecorder assembles the telemetry recorder: JSONL and/or SQLite
// primary sinks plus the live broadcaster, with an in-memory fallback so
// a sink failure never loses the record silently.
func buildRecorder(cfg config.MonitoringConfig, broadcaster *monitoring.Broadcaster) (*monitoring.Recorder, error) {
	var sinks []monitoring.Sink
	if cfg.TelemetryPath != "" {
		fs, err := monitoring.NewFileSink(cfg.TelemetryPath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
	}
	if cfg.TelemetrySQLitePath != "" {
		ss, err := monitoring.NewSQLiteSink(cfg.TelemetrySQLitePath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, ss)
	}
	sinks = append(sinks, broadcaster)

	return monitoring.NewRecorder(monitoring.TelemetryConfig{
		Enabled:     cfg.TelemetryEnabled,
		LogPath:     cfg.TelemetryPath,
		SQLitePath:  cfg.TelemetrySQLitePath,
		LogToStdout: cfg.LogToStdout,
	}, monitoring.NewTeeSink(sinks...), monitoring.NewMemorySink()), nil
}

// Handler returns the fully composed HTTP handler, middleware included.
func (g *Gateway) Handler() http.Handler { return g.server.Handler }

// Start begins serving. Blocks until the server stops.
func (g *Gateway) Start() error {
	log.Info().Int("port", g.config.Server.Port).Msg("triage gateway listening")
	return g.server.ListenAndServe()
}

// Shutdown gracefully stops the server and closes owned resources.
func (g *Gateway) Shutdown(ctx context.Context) error {
	err := g.server.Shutdown(ctx)

	if closeErr := g.recorder.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("telemetry recorder close failed")
	}
	if g.cache != nil {
		if closeErr := g.cache.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("retrieval cache close failed")
		}
	}
	g.metrics.Stop()
	return err
}
