package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/RichardoC/chatbot-core/internal/chat"
	"github.com/RichardoC/chatbot-core/internal/config"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("CHATBOT_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatbot-core: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "chatbot-core: invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize zap logger
	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatbot-core: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	prompt := strings.Join(os.Args[1:], " ")
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "usage: chatbot-core <prompt>")
		os.Exit(2)
	}

	registry := newRegistry(cfg, logger)
	fmt.Println(registry.Connect("cli").RequestTurn(context.Background(), prompt))
}

func newRegistry(cfg config.Config, logger *zap.Logger) *chat.Registry {
	return chat.NewRegistry(cfg.APIKey,
		chat.WithDefaultModel(cfg.Model),
		chat.WithDefaultStartMessage(cfg.StartMessage),
		chat.WithDefaultHistory(cfg.HistoryEnabled),
		chat.WithRegistryCompleter(cfg.Completer()),
		chat.WithRegistryLogger(logger),
	)
}
