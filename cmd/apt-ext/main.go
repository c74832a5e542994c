package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/blackwell-systems/aptext/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Execute(ctx)
	code := app.ExitCode(ctx, err, os.Stderr)
	stop()
	os.Exit(code)
}
