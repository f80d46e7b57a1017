// seed inserts a demo user and a handful of todos into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/todo-api/internal/auth"
	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/infrastructure/postgres"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "password123"
)

var todos = []struct {
	text      string
	completed bool
}{
	{"Buy groceries", false},
	{"Walk the dog", true},
	{"Write status report", false},
	{"Book dentist appointment", false},
	{"Renew car insurance", true},
	{"Clean the garage", false},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert the demo user (idempotent re-runs)
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id`,
		seedEmail, hash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Pre-issue an auth token so curl works without a login round trip
	token, err := auth.NewTokenService([]byte(jwtSecret)).Issue(userID, domain.TokenPurposeAuth)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO user_tokens (user_id, purpose, token)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, token) DO NOTHING`,
		userID, domain.TokenPurposeAuth, token,
	)
	if err != nil {
		log.Fatalf("store token: %v", err)
	}

	var inserted int
	for _, todo := range todos {
		_, err := pool.Exec(ctx, `
			INSERT INTO todos (user_id, text, completed, completed_at)
			VALUES ($1, $2, $3, CASE WHEN $3 THEN NOW() ELSE NULL END)`,
			userID, todo.text, todo.completed,
		)
		if err != nil {
			log.Fatalf("insert todo %q: %v", todo.text, err)
		}
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:       %s\n", userID)
	fmt.Printf("  Todos created: %d\n", inserted)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Printf("    export TOKEN=%s\n", token)
	fmt.Println("    curl -s http://localhost:8080/todos -H \"x-auth: $TOKEN\"")
	fmt.Println()
	fmt.Println("  Or log in for a fresh token (check the x-auth response header):")
	fmt.Println()
	fmt.Printf("    curl -si -X POST http://localhost:8080/users/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
}
