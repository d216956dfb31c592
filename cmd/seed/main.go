package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/drewhq/drew/config"
	"github.com/drewhq/drew/pkg/helpers"
)

// Seeds a demo user plus a small catalog so discovery and the agent have
// something to work with on a fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@drew.events"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, first_name, last_name, role, has_completed_onboarding)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, "demo", email, hash, "Demo", "User", "Event planner").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	occasions := []struct{ name, desc string }{
		{"Team building", "Strengthen how the team works together"},
		{"Birthday", "Celebrate someone's big day"},
		{"Offsite", "Get the whole company out of the office"},
		{"Client event", "Host customers and partners"},
	}
	for _, o := range occasions {
		if _, err := db.Exec(`
			INSERT INTO occasions (name, description) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, o.name, o.desc); err != nil {
			log.Fatalf("failed to seed occasion %q: %v", o.name, err)
		}
	}
	fmt.Printf("seeded %d occasions\n", len(occasions))

	offerings := []struct{ short, long string }{
		{"Catering", "Food and drinks for the whole group"},
		{"Equipment", "All gear needed for the activity"},
		{"Photography", "A photographer captures the event"},
		{"Transport", "Round-trip transport from a central meeting point"},
	}
	for _, o := range offerings {
		if _, err := db.Exec(`
			INSERT INTO offerings (short_description, long_description) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, o.short, o.long); err != nil {
			log.Fatalf("failed to seed offering %q: %v", o.short, err)
		}
	}
	fmt.Printf("seeded %d offerings\n", len(offerings))

	activities := []struct {
		title, short, long, category, city, state string
		price                                     float64
		minP, maxP                                int
	}{
		{"Escape Room Challenge", "Solve puzzles against the clock",
			"Teams of up to six race to escape themed rooms. Great for problem solving under pressure.",
			"Indoor", "Austin", "TX", 35, 4, 24},
		{"Guided Kayak Tour", "Paddle the river at sunset",
			"A two-hour guided kayak tour with all equipment included. No experience needed.",
			"Outdoor", "Austin", "TX", 55, 2, 16},
		{"Cooking Class: Tacos", "Cook and eat together",
			"A hands-on taco workshop led by a local chef, finished with a shared dinner.",
			"Food & Drink", "San Antonio", "TX", 65, 6, 20},
		{"Improv Workshop", "Laugh and loosen up",
			"A ninety-minute improv session focused on collaboration and quick thinking.",
			"Indoor", "Dallas", "TX", 40, 8, 30},
	}
	for _, a := range activities {
		if _, err := db.Exec(`
			INSERT INTO activities (title, short_description, long_description, category, city, state, price, min_participants, max_participants)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT DO NOTHING
		`, a.title, a.short, a.long, a.category, a.city, a.state, a.price, a.minP, a.maxP); err != nil {
			log.Fatalf("failed to seed activity %q: %v", a.title, err)
		}
	}
	fmt.Printf("seeded %d activities\n", len(activities))
}
