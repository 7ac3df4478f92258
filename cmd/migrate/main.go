package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/migrate [drop|up|seed <user.json>]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("All tables created successfully")

	case "seed":
		if len(os.Args) < 3 {
			log.Fatal("seed requires the path to a user.json file")
		}
		if err := seedData(ctx, conn, os.Args[2]); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	_, err := conn.Exec(ctx, `
		DROP TABLE IF EXISTS friend_scans;
		DROP TABLE IF EXISTS scans;
		DROP TABLE IF EXISTS activities;
		DROP TABLE IF EXISTS users;
	`)
	return err
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			phone      TEXT NOT NULL DEFAULT '',
			badge_code TEXT UNIQUE,
			checked_in BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS activities (
			id            BIGSERIAL PRIMARY KEY,
			name          TEXT NOT NULL UNIQUE,
			category      TEXT NOT NULL DEFAULT '',
			one_scan_only BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE TABLE IF NOT EXISTS scans (
			id          BIGSERIAL PRIMARY KEY,
			user_id     BIGINT NOT NULL REFERENCES users(id),
			activity_id BIGINT NOT NULL REFERENCES activities(id),
			scanned_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS friend_scans (
			id         BIGSERIAL PRIMARY KEY,
			scanner_id BIGINT NOT NULL REFERENCES users(id),
			scanned_id BIGINT NOT NULL REFERENCES users(id),
			scanned_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_scans_user_activity_time
			ON scans (user_id, activity_id, scanned_at DESC);
		CREATE INDEX IF NOT EXISTS idx_scans_activity_time
			ON scans (activity_id, scanned_at);
		CREATE INDEX IF NOT EXISTS idx_friend_scans_scanner
			ON friend_scans (scanner_id);
		CREATE INDEX IF NOT EXISTS idx_friend_scans_scanned
			ON friend_scans (scanned_id);
		CREATE INDEX IF NOT EXISTS idx_activities_lower_name
			ON activities (LOWER(name));
	`)
	return err
}

type seedScan struct {
	ActivityName     string `json:"activity_name"`
	ActivityCategory string `json:"activity_category"`
	ScannedAt        string `json:"scanned_at"`
}

type seedUser struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	BadgeCode string     `json:"badge_code"`
	Scans     []seedScan `json:"scans"`
}

// seedData imports attendees and their scan history from a JSON export.
// Activities are upserted first so scans can reference them; duplicate
// badge codes are skipped; every imported user starts checked out.
func seedData(ctx context.Context, conn *pgx.Conn, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var users []seedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	// Collect unique activities across all users' scans
	type activityKey struct{ name, category string }
	seen := map[activityKey]bool{}
	for _, user := range users {
		for _, scan := range user.Scans {
			key := activityKey{scan.ActivityName, scan.ActivityCategory}
			if !seen[key] {
				seen[key] = true
				_, err := conn.Exec(ctx, `
					INSERT INTO activities (name, category)
					VALUES ($1, $2)
					ON CONFLICT (name) DO NOTHING
				`, scan.ActivityName, scan.ActivityCategory)
				if err != nil {
					return fmt.Errorf("failed to upsert activity %q: %w", scan.ActivityName, err)
				}
			}
		}
	}

	insertedBadges := map[string]bool{}
	for _, user := range users {
		badge := user.BadgeCode
		if badge != "" && insertedBadges[badge] {
			log.Printf("Skipping duplicate badge_code %q for %s", badge, user.Email)
			continue
		}

		var badgeValue *string
		if badge != "" {
			badgeValue = &badge
		}

		var userID int64
		err := conn.QueryRow(ctx, `
			INSERT INTO users (name, email, phone, badge_code, checked_in, updated_at)
			VALUES ($1, $2, $3, $4, FALSE, NOW())
			ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
			RETURNING id
		`, user.Name, user.Email, user.Phone, badgeValue).Scan(&userID)
		if err != nil {
			log.Printf("Error seeding user %s: %v", user.Email, err)
			continue
		}

		for _, scan := range user.Scans {
			scannedAt, err := time.Parse(time.RFC3339, scan.ScannedAt)
			if err != nil {
				if scannedAt, err = time.Parse("2006-01-02T15:04:05.000", scan.ScannedAt); err != nil {
					log.Printf("Skipping scan with bad timestamp %q for %s", scan.ScannedAt, user.Email)
					continue
				}
			}
			_, err = conn.Exec(ctx, `
				INSERT INTO scans (user_id, activity_id, scanned_at)
				SELECT $1, id, $2 FROM activities WHERE name = $3
			`, userID, scannedAt, scan.ActivityName)
			if err != nil {
				log.Printf("Error seeding scan for %s: %v", user.Email, err)
			}
		}

		if badge != "" {
			insertedBadges[badge] = true
		}
	}

	return nil
}
