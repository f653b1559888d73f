// Command import-deck stores a JSON word list as a new deck owned by a user.
//
// Usage:
//
//	import-deck -user <uuid> [-name "Quranic Arabic"] [-source Arabic] [-target English] deck.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/config"
	"github.com/phrazzld/vocab-drill/internal/deckimport"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"github.com/phrazzld/vocab-drill/internal/platform/postgres"
)

func main() {
	userFlag := flag.String("user", "", "owner of the new deck (UUID)")
	name := flag.String("name", "", "deck name (default: derived from the file)")
	source := flag.String("source", "Arabic", "source language of the words")
	target := flag.String("target", "English", "target language of the words")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: import-deck -user <uuid> [flags] <deck.json>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	userID, err := uuid.Parse(*userFlag)
	if err != nil || userID == uuid.Nil {
		log.Fatalf("invalid -user %q: a non-nil UUID is required", *userFlag)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.Database.URL, l)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	importer := deckimport.NewImporter(db, postgres.NewPostgresDeckStore(db, l), l)
	deck, err := importer.Import(ctx, data, path, deckimport.Options{
		UserID:         userID,
		Name:           *name,
		SourceLanguage: *source,
		TargetLanguage: *target,
	})
	if err != nil {
		l.Error("deck import failed", slog.String("file", path), slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("imported deck %q (%s)\n", deck.Name, deck.ID)
}
