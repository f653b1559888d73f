// Command devtoken mints an access token for local development.
//
// It reads the signing secret from the same configuration as the server, so
// the token is accepted by a server started with that configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/config"
	"github.com/phrazzld/vocab-drill/internal/service/auth"
)

func main() {
	userFlag := flag.String("user", "", "user ID to embed (default: a fresh UUID)")
	flag.Parse()

	userID := uuid.New()
	if *userFlag != "" {
		var err error
		if userID, err = uuid.Parse(*userFlag); err != nil {
			log.Fatalf("invalid -user %q: %v", *userFlag, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	svc, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to create token service: %v", err)
	}
	token, err := svc.GenerateToken(context.Background(), userID)
	if err != nil {
		log.Fatalf("failed to mint token: %v", err)
	}

	fmt.Printf("user:  %s\ntoken: %s\n", userID, token)
}
