package main

import (
	"github.com/joho/godotenv"
	"vecserve/internal/cli"
)

func main() {
	// Load .env if present (API keys for embedding providers).
	_ = godotenv.Load()

	cli.Execute()
}
