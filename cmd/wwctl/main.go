package main

import (
	"log"
	"os"

	"wireworld/cmd/wwctl/commands"

	"github.com/joho/godotenv"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env if present; WIREWORLD_CONFIG may be set there
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	commands.SetVersionInfo(version, commit, date)

	if err := commands.Execute(); err != nil {
		commands.Report(os.Stderr, err)
		os.Exit(1)
	}
}
