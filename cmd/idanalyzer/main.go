// Command idanalyzer is the command-line client for the ID Analyzer API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsingmao/idanalyzer/cmd/idanalyzer/app"
	"github.com/tsingmao/idanalyzer/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := app.NewIDAnalyzerCommand().ExecuteContext(ctx)
	stop()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
