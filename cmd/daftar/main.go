// Command daftar inspects and exchanges a ledger kept in a JSON state file.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/xraph/daftar/internal/config"
	"github.com/xraph/daftar/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appConfig = cfg

	os.Exit(Execute())
}
