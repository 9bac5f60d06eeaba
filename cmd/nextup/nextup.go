package main

import (
	"log"

	"github.com/joho/godotenv"

	"tableflip.dev/nextup/pkg/commands"
)

func main() {
	// Optional .env for GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET.
	_ = godotenv.Load()

	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
