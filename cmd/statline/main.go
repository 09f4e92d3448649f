package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/statline/statline/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	os.Exit(cli.Execute(ctx))
}
