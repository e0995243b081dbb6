// Command dict looks words up in the English-Russian dictionary.
//
// Run without a subcommand it opens the interactive browser; see
// `dict --help` for the scripting subcommands.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newDictApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "dict: %v\n", err)
		os.Exit(1)
	}
}
