// Command dict-server serves the dictionary over HTTP until interrupted.
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) and the
// environment.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/ruendict/internal/app"
	"github.com/heartmarshall/ruendict/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunServer(ctx, cfg); err != nil {
		log.Printf("dict-server: %v", err)
		os.Exit(1)
	}
}
