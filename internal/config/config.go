package config

import (
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"

	"drawdash/internal"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port        string
	MaxPlayers  int
	Rounds      int
	TurnSeconds int
	WordChoices int

	// Optional vocabulary sources; the builtin word list is used when
	// neither is set.
	WordsCSV    string
	DatabaseURL string
}

func Default() Config {
	return Config{
		Port:        "8080",
		MaxPlayers:  8,
		Rounds:      3,
		TurnSeconds: 80,
		WordChoices: 3,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("MAX_PLAYERS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 1 {
			cfg.MaxPlayers = value
		}
	}
	if raw := os.Getenv("ROUNDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Rounds = value
		}
	}
	if raw := os.Getenv("TURN_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.TurnSeconds = value
		}
	}
	if raw := os.Getenv("WORD_CHOICES"); raw != "" {
		// Same allowed set a host may pick in the lobby.
		if value, err := strconv.Atoi(raw); err == nil &&
			slices.Contains(internal.AllowedWordChoiceCounts, value) {
			cfg.WordChoices = value
		}
	}
	if raw := os.Getenv("WORDS_CSV"); raw != "" {
		cfg.WordsCSV = raw
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	return cfg
}
