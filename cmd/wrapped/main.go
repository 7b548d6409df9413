// Package main provides the wrapped command, which prints one yearly recap.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/listenupapp/shelfwrapped/cmd/wrapped/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.ExecuteContext(ctx)
}
