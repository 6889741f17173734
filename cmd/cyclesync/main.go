// Command cyclesync is the CycleSync Pro terminal client.
//
// Configuration comes from a YAML file (CONFIG_PATH, fallback ./config.yaml),
// environment variables, and an optional .env file. Run with help inside the
// client for the command list.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cyclesync/cyclesync-client/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("cyclesync: %v", err)
	}
}
