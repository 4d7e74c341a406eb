package main

import (
	"context"
	"log"
	"net/http"

	"drawdash/internal"
	"drawdash/internal/config"
	"drawdash/internal/game"
	"drawdash/internal/server"
	"drawdash/internal/words"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	bank, err := loadWordBank(cfg)
	if err != nil {
		log.Fatalf("failed to load word bank: %v", err)
	}
	log.Printf("word bank loaded with %d words", bank.Len())

	registry := game.NewRegistry(internal.RoomSettings{
		MaxPlayers:  cfg.MaxPlayers,
		Rounds:      cfg.Rounds,
		TurnSeconds: cfg.TurnSeconds,
		WordChoices: cfg.WordChoices,
	})
	engine := game.NewEngine(registry, bank)
	ws := game.NewHandler(registry, engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go game.NewTickDriver(registry, engine).Run(ctx)

	srv := server.New(registry, ws)
	addr := ":" + cfg.Port
	log.Printf("drawdash server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.RegisterRoutes()); err != nil {
		log.Fatal(err)
	}
}

func loadWordBank(cfg config.Config) (*words.Bank, error) {
	switch {
	case cfg.DatabaseURL != "":
		return words.FromPostgres(context.Background(), cfg.DatabaseURL)
	case cfg.WordsCSV != "":
		return words.FromCSV(cfg.WordsCSV)
	default:
		return words.Builtin(), nil
	}
}
