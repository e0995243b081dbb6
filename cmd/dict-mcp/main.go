// Command dict-mcp exposes dictionary search and articles as Model Context
// Protocol tools over stdio.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"os"

	"github.com/heartmarshall/ruendict/internal/app"
	"github.com/heartmarshall/ruendict/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := app.RunMCP(context.Background(), cfg); err != nil {
		log.Printf("dict-mcp: %v", err)
		os.Exit(1)
	}
}
