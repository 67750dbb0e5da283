package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/swiss-forum/internal/database"
	"github.com/mauv0809/swiss-forum/internal/forum"
	"github.com/mauv0809/swiss-forum/internal/tournament"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "swiss-forum.db",
		"DATABASE_URL":      "",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
		"SEED_PLAYERS":      "9",
		"SEED_ROUNDS":       "4",
		"SEED_TAG":          "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func atoi(cfg map[string]string, key string) int {
	n, err := strconv.Atoi(cfg[key])
	if err != nil || n < 0 {
		log.Fatalf("Error: %s must be a non-negative integer, got %q", key, cfg[key])
	}
	return n
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	remote := cfg["DATABASE_URL"]
	if remote == "" {
		remote = cfg["TURSO_PRIMARY_URL"]
	}
	db, teardown, err := database.InitDB(cfg["DB_NAME"], remote, cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	log.Info("Successfully connected to the database.", "dialect", db.Dialect)

	store := tournament.New(db)
	posts := forum.NewStore(db)
	numPlayers := atoi(cfg, "SEED_PLAYERS")
	numRounds := atoi(cfg, "SEED_ROUNDS")

	startTime := time.Now()
	for i := 0; i < numPlayers; i++ {
		name := fmt.Sprintf("Seeder Player %c", 'A'+rune(i%26))
		if _, err := store.RegisterPlayer(ctx, name); err != nil {
			log.Fatalf("Failed to register %s: %s", name, err)
		}
	}
	log.Info("Registered players", "count", numPlayers)

	for round := 1; round <= numRounds; round++ {
		pairings, err := store.SwissPairings(ctx, "")
		if err != nil {
			log.Warn("Stopping early, no pairings possible", "round", round, "error", err)
			break
		}
		for _, p := range pairings {
			report := tournament.MatchReport{WinnerID: p.ID1, LoserID: p.ID2}
			switch {
			case p.IsBye():
				report.Bye = true
			case rand.Intn(5) == 0:
				report.Draw = true
			case rand.Intn(2) == 0:
				report.WinnerID, report.LoserID = p.ID2, p.ID1
			}
			if _, err := store.ReportMatch(ctx, report); err != nil {
				log.Fatalf("Failed to report match in round %d: %s", round, err)
			}
		}
		if _, err := posts.AddPost(ctx, fmt.Sprintf("Round %d is done, %d matches played.", round, len(pairings))); err != nil {
			log.Fatalf("Failed to add post: %s", err)
		}
		log.Info("Seeded round", "round", round, "matches", len(pairings))
	}

	if tag := cfg["SEED_TAG"]; tag != "" {
		if tag == "random" {
			tag = "seed-" + uuid.NewString()[:8]
		}
		archive, err := store.CompleteTournament(ctx, tag)
		if err != nil {
			log.Fatalf("Failed to complete tournament: %s", err)
		}
		log.Info("Archived seeded tournament", "tag", archive.Tag, "players", archive.PlayerCount, "matches", archive.MatchCount)
	}

	duration := time.Since(startTime)
	log.Info("Successfully seeded the database.", "duration", duration)
}
