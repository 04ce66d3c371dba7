package main

import (
	"github.com/joho/godotenv"

	"faqrag/internal/cli"
)

func main() {
	// Best effort: API keys may come from a .env file.
	_ = godotenv.Load()

	cli.Execute()
}
