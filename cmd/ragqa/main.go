// Command ragqa answers questions about an uploaded text document.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/ragqa/internal/adapters/driving/cli"
)

func main() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
