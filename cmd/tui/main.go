package main

import (
	"io"
	"log"
	"os"

	"base64-converter/internal/config"
	"base64-converter/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	if path := os.Getenv("BASE64_TUI_LOG"); path != "" {
		f, err := tea.LogToFile(path, "base64-tui")
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	if err := tui.Run(cfg.SessionOptions()); err != nil {
		log.Fatalf("tui failed: %v", err)
	}
}
