package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/realmforge/realmforge/pkg/session"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    90 * time.Second,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	var save *session.Save
	var err error

	if resumeID := os.Getenv("ADVENTURE_ID"); resumeID != "" {
		id, parseErr := uuid.Parse(resumeID)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Invalid ADVENTURE_ID: %v\n", parseErr)
			os.Exit(1)
		}
		save, err = getAdventure(client, cfg.APIBaseURL, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resume adventure: %v\n", err)
			os.Exit(1)
		}
	} else {
		save, err = startNewAdventure(client, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(NewConsoleUI(cfg, client, save),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// startNewAdventure lists vault characters, prompts for one and creates a
// fresh adventure save for it.
func startNewAdventure(client *http.Client, cfg *ConsoleConfig) (*session.Save, error) {
	chars, err := listCharacters(client, cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	if len(chars) == 0 {
		return nil, fmt.Errorf("no characters in the vault; create one through the API first")
	}

	fmt.Println("Available Characters:")
	for i, c := range chars {
		level := c.Level
		if level < 1 {
			level = 1
		}
		fmt.Printf("  %d - %s (Level %d %s %s)\n", i+1, c.Name, level, c.RaceName(), c.ClassName())
	}
	fmt.Print("\nSelect a character by number: ")

	var choice int
	if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(chars) {
		return nil, fmt.Errorf("invalid selection")
	}

	save, err := createAdventure(client, cfg.APIBaseURL, chars[choice-1].ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create adventure: %w", err)
	}
	return save, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
