// seed inserts a demo user and a handful of applications into the local
// dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/erzhanov/jobtrack/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "demo@jobtrack.local"
	seedPassword = "demo-password"
	seedName     = "Demo user"
)

type appSpec struct {
	company  string
	position string
	status   string
	jobType  string
	location string
	daysAgo  int
}

var apps = []appSpec{
	{"Acme Corp", "Backend Engineer", "pending", "full-time", "Berlin", 2},
	{"Globex", "Platform Engineer", "interview", "full-time", "Remote", 9},
	{"Initech", "Site Reliability Engineer", "pending", "full-time", "Amsterdam", 5},
	{"Umbrella Labs", "Go Developer", "declined", "contract", "London", 30},
	{"Hooli", "Infrastructure Engineer", "interview", "full-time", "Remote", 14},
	{"Stark Industries", "Software Engineer", "offered", "full-time", "New York", 45},
	{"Wayne Enterprises", "DevOps Engineer", "pending", "part-time", "Gotham", 1},
	{"Cyberdyne", "Systems Engineer", "declined", "full-time", "San Francisco", 60},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedName, seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Insert applications, skip duplicates (idempotent re-runs)
	var inserted, skipped int
	for _, a := range apps {
		dateApplied := time.Now().AddDate(0, 0, -a.daysAgo)
		tag, err := pool.Exec(ctx, `
			INSERT INTO jobs (company, position, status, job_type, job_location, date_applied, created_by)
			SELECT $1, $2, $3, $4, $5, $6, $7
			WHERE NOT EXISTS (
				SELECT 1 FROM jobs WHERE company = $1 AND position = $2 AND created_by = $7
			)`,
			a.company, a.position, a.status, a.jobType, a.location, dateApplied, userID)
		if err != nil {
			log.Fatalf("insert job %s/%s: %v", a.company, a.position, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:             %s\n", seedEmail)
	fmt.Printf("  Password:         %s\n", seedPassword)
	fmt.Printf("  User ID:          %s\n", userID)
	fmt.Printf("  Applications:     %d inserted  (%d already existed)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list applications (token travels in its own header):")
	fmt.Println()
	fmt.Println("    export TOKEN=eyJ...")
	fmt.Println("    curl -s 'http://localhost:8080/jobs?sort=latest' -H \"token: $TOKEN\"")
	fmt.Println()
	fmt.Println("  Step 3 — try the filters:")
	fmt.Println()
	fmt.Println("    curl -s 'http://localhost:8080/jobs?status=interview' -H \"token: $TOKEN\"")
	fmt.Println("    curl -s 'http://localhost:8080/jobs?search=engineer&sort=a-z' -H \"token: $TOKEN\"")
}
