// Command panelctl opera el panel de EFFITECH desde la terminal contra una API en ejecución.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/effitech/solar-api/pkg/logger"
)

const defaultAPIURL = "http://localhost:8000"

func main() {
	// .env es opcional; las variables del entorno tienen prioridad.
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Env:    "development",
		Level:  envOr("PANELCTL_LOG_LEVEL", "warn"),
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, options{
		apiURL:    envOr("EFFITECH_API_URL", defaultAPIURL),
		tokenFile: envOr("EFFITECH_TOKEN_FILE", defaultTokenFile()),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		log:       log,
	}, os.Args[1:])
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".effitech-token"
	}
	return filepath.Join(home, ".config", "effitech", "token")
}
