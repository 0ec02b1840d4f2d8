package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/RichardoC/chatbot-core/internal/api"
	"github.com/RichardoC/chatbot-core/internal/chat"
	"github.com/RichardoC/chatbot-core/internal/config"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.String("config", os.Getenv("CHATBOT_CONFIG"), "path to the YAML config file")
	addr := pflag.String("addr", "", "listen address (overrides server.addr)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatbot-server: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "chatbot-server: invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatbot-server: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !cfg.Model.Known() {
		logger.Warn("model is not in the catalog, sending it as is", zap.String("model", cfg.Model.String()))
	}

	registry := chat.NewRegistry(cfg.APIKey,
		chat.WithDefaultModel(cfg.Model),
		chat.WithDefaultStartMessage(cfg.StartMessage),
		chat.WithDefaultHistory(cfg.HistoryEnabled),
		chat.WithRegistryCompleter(cfg.Completer()),
		chat.WithRegistryLogger(logger),
	)

	// Set up routes
	mux := http.NewServeMux()
	api.NewHandler(registry, logger).Routes(mux)

	logger.Info("Starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("backend", string(cfg.Backend)),
		zap.String("model", cfg.Model.String()))
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
