// Package main is the entry point for the care triage gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/caremesh/triage-gateway/external"
	"github.com/caremesh/triage-gateway/internal/config"
	"github.com/caremesh/triage-gateway/internal/gateway"
	"github.com/caremesh/triage-gateway/internal/monitoring"
)

// Version is stamped by the release build via -ldflags.
var Version = "dev"

// loadEnvFiles loads .env from standard locations
func loadEnvFiles() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	// Try ~/.config/triage-gateway/.env first
	configEnv := filepath.Join(homeDir, ".config", "triage-gateway", ".env")
	if _, err := os.Stat(configEnv); err == nil {
		_ = godotenv.Load(configEnv)
	}

	// Local .env can override
	_ = godotenv.Load()
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve", "start":
			runServer(os.Args[2:])
			return
		case "seed-index":
			runSeedIndex(os.Args[2:])
			return
		case "version", "-v", "--version":
			fmt.Printf("triage-gateway %s\n", Version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Default: serve
	runServer(os.Args[1:])
}

// resolveConfig resolves the config bytes for the serve and seed-index
// commands. Checks the user flag first, then filesystem locations.
func resolveConfig(userConfig string) ([]byte, string, error) {
	if userConfig != "" {
		data, err := os.ReadFile(userConfig)
		if err != nil {
			return nil, "", fmt.Errorf("config file not found: %s", userConfig)
		}
		return data, userConfig, nil
	}

	homeDir, _ := os.UserHomeDir()

	searchPaths := []string{}
	if homeDir != "" {
		searchPaths = append(searchPaths,
			filepath.Join(homeDir, ".config", "triage-gateway", "config.yaml"),
		)
	}
	searchPaths = append(searchPaths, "configs/config.yaml", "config.yaml")

	for _, path := range searchPaths {
		if data, err := os.ReadFile(path); err == nil {
			return data, path, nil
		}
	}

	return nil, "", fmt.Errorf("no config file found. Specify --config path")
}

// runServer starts the triage gateway server
func runServer(args []string) {
	loadEnvFiles()

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args) // ExitOnError handles errors

	setupLogging(*debug)

	configData, configSource, err := resolveConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("No config file found. Specify --config path")
	}

	log.Info().
		Str("version", Version).
		Str("config", configSource).
		Msg("care triage gateway starting")

	cfg, err := config.LoadFromBytes(configData)
	if err != nil {
		log.Fatal().Err(err).Str("config", configSource).Msg("failed to load configuration")
	}
	applyLogConfig(cfg, *debug)

	log.Info().
		Int("port", cfg.Server.Port).
		Bool("retrieval", cfg.Search.Enabled).
		Bool("telemetry", cfg.Monitoring.TelemetryEnabled).
		Msg("configuration loaded")

	gateway.Version = Version
	gw, err := gateway.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gateway")
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := gw.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("gateway shutdown error")
		}
	}()

	if err := gw.Start(); err != nil {
		if err.Error() != "http: Server closed" {
			log.Fatal().Err(err).Msg("gateway error")
		}
	}

	log.Info().Msg("care triage gateway stopped")
}

// runSeedIndex creates the knowledge base index and uploads the bundled
// medical document corpus.
func runSeedIndex(args []string) {
	loadEnvFiles()

	fs := flag.NewFlagSet("seed-index", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	setupLogging(*debug)

	configData, configSource, err := resolveConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("No config file found. Specify --config path")
	}
	cfg, err := config.LoadFromBytes(configData)
	if err != nil {
		log.Fatal().Err(err).Str("config", configSource).Msg("failed to load configuration")
	}
	applyLogConfig(cfg, *debug)
	if !cfg.Search.Enabled {
		log.Fatal().Msg("search is disabled in the configuration; nothing to seed")
	}

	client, err := external.NewSearchClient(external.SearchClientConfig{
		Endpoint:   cfg.Search.Endpoint,
		APIKey:     cfg.Search.APIKey,
		Index:      cfg.Search.Index,
		APIVersion: cfg.Search.APIVersion,
		Timeout:    cfg.Search.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build search client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := client.EnsureIndex(ctx); err != nil {
		log.Fatal().Err(err).Str("index", client.Index()).Msg("failed to create index")
	}

	docs := external.SeedDocuments()
	if err := client.UploadDocuments(ctx, docs); err != nil {
		log.Fatal().Err(err).Str("index", client.Index()).Msg("failed to upload documents")
	}

	log.Info().
		Str("index", client.Index()).
		Int("documents", len(docs)).
		Msg("knowledge base seeded")
}

// setupLogging installs the pre-config process logger: console on a
// terminal, JSON lines when piped. Used until the config file is read.
func setupLogging(debug bool) {
	level := "info"
	if debug {
		level = "debug"
	}
	monitoring.Global(monitoring.LoggerConfig{Level: level, Format: "auto"})
}

// applyLogConfig re-installs the process logger from the loaded
// configuration. The --debug flag wins over the configured level.
func applyLogConfig(cfg *config.Config, debug bool) {
	level := cfg.Monitoring.LogLevel
	if debug {
		level = "debug"
	}
	monitoring.Global(monitoring.LoggerConfig{
		Level:  level,
		Format: cfg.Monitoring.LogFormat,
		Output: cfg.Monitoring.LogOutput,
	})
}

// printHelp prints usage information
func printHelp() {
	fmt.Println("Care Triage Gateway - healthcare chat triage service")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  triage-gateway [command] [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve        Start the gateway server (default)")
	fmt.Println("  seed-index   Create the knowledge base index and upload documents")
	fmt.Println("  version      Print version information")
	fmt.Println("  help         Show this help message")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config FILE    Path to YAML config (default: configs/config.yaml)")
	fmt.Println("  --debug          Enable debug logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  triage-gateway serve --config configs/config.yaml")
	fmt.Println("  triage-gateway seed-index")
}
