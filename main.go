package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelbroker/mcp-broker/broker"
	"github.com/modelbroker/mcp-broker/broker/tools"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := broker.LoadConfig(".env")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := broker.NewStdLogger(cfg.LogLevel)
	for _, w := range cfg.Warnings {
		logger.Warn(ctx, w)
	}

	catalog, catalogWarnings, err := broker.NewCatalog(cfg.ModelCatalogFile)
	if err != nil {
		log.Fatalf("loading model catalog: %v", err)
	}
	for _, w := range catalogWarnings {
		logger.Warn(ctx, w)
	}

	restrictions := broker.NewRestrictionService(catalog, map[broker.ProviderType]string{
		broker.ProviderGoogle:     cfg.GoogleAllowedModels,
		broker.ProviderOpenAI:     cfg.OpenAIAllowedModels,
		broker.ProviderOpenRouter: cfg.OpenRouterAllowedModels,
	})
	for _, w := range restrictions.Warnings() {
		logger.Warn(ctx, w)
	}

	registry, err := broker.NewRegistry(ctx, cfg, catalog, restrictions)
	if err != nil {
		log.Fatalf("initializing providers: %v", err)
	}

	kv, err := openKV(ctx, cfg)
	if err != nil {
		log.Fatalf("initializing conversation store: %v", err)
	}
	defer kv.Close()

	convo := broker.NewConversationStore(kv, cfg.ConversationTTL)

	kernel := broker.NewKernel(registry, convo, cfg, restrictions, logger)
	tools.RegisterAll(kernel)

	server := broker.NewServer(kernel, logger, os.Stdin, os.Stdout)
	logger.Info(ctx, "mcp-broker ready", broker.F("tools", len(kernel.ListTools())), broker.F("providers", len(registry.Providers())))

	// Serve blocks reading stdin, so it runs in its own goroutine and a
	// signal ends main (running the deferred cleanup) without waiting for
	// another input line.
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(ctx) }()
	select {
	case err := <-serveErr:
		if err != nil && ctx.Err() == nil {
			log.Fatalf("server stopped: %v", err)
		}
	case <-ctx.Done():
	}
}

// openKV picks the KV backend: Redis when REDIS_URL is set, otherwise an
// in-process map (§4.7 — acceptable for a single local MCP client, not
// for multi-process deployments).
func openKV(ctx context.Context, cfg *broker.Config) (broker.KV, error) {
	if cfg.RedisURL != "" {
		return broker.NewRedisKV(ctx, cfg.RedisURL, "mcpbroker:")
	}
	return broker.NewMemoryKV(), nil
}
