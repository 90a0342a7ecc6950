package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/anderson155081/Taiwan-ETF-Tracker/cmd/tracker/cmd"
)

func main() {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
