package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"Murmur/internal/api/middleware"
	"Murmur/internal/db/memory"
)

const tokenTTL = 24 * time.Hour

// gentoken mints development bearer tokens for the demo accounts seeded by STORAGE=memory.
//
// Usage:
//
//	go run ./cmd/gentoken [alice|bob|carol]
//
// JWT_SIGNING_KEY, JWT_ISSUER and JWT_AUDIENCE are read from the environment or .env.
// When no signing key is set a fresh one is generated and printed first.
func main() {
	_ = godotenv.Load(".env")

	key := os.Getenv("JWT_SIGNING_KEY")
	if key == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			log.Fatalf("Failed to generate signing key: %v", err)
		}
		key = hex.EncodeToString(raw)
		fmt.Println("No JWT_SIGNING_KEY set. Add this to your .env file:")
		fmt.Printf("\nJWT_SIGNING_KEY=%s\n\n", key)
	}

	issuer := envOr("JWT_ISSUER", "murmur-dev")
	audience := envOr("JWT_AUDIENCE", "murmur-api")

	demo := []middleware.Identity{
		{UserID: memory.DemoAliceID, UserName: "alice"},
		{UserID: memory.DemoBobID, UserName: "bob"},
		{UserID: memory.DemoCarolID, UserName: "carol"},
	}
	if len(os.Args) > 1 {
		demo = filterByName(demo, os.Args[1])
		if len(demo) == 0 {
			log.Fatalf("Unknown demo user %q (expected alice, bob or carol)", os.Args[1])
		}
	}

	for _, id := range demo {
		token, err := middleware.SignToken([]byte(key), issuer, audience, id, tokenTTL)
		if err != nil {
			log.Fatalf("Failed to sign token for %s: %v", id.UserName, err)
		}
		fmt.Printf("%s (%s)\n  Authorization: Bearer %s\n\n", id.UserName, id.UserID, token)
	}
}

func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func filterByName(ids []middleware.Identity, name string) []middleware.Identity {
	for _, id := range ids {
		if id.UserName == name {
			return []middleware.Identity{id}
		}
	}
	return nil
}
