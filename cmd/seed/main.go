package main

import (
	"log"
	"os"

	"github.com/acadverify/student-auth-service/internal/config"
	"github.com/acadverify/student-auth-service/internal/database"
)

// Seeds a demo student account for local development. Controlled by
// SEED_STUDENT_EMAIL and SEED_STUDENT_PASSWORD; no-op when unset.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	email := os.Getenv("SEED_STUDENT_EMAIL")
	password := os.Getenv("SEED_STUDENT_PASSWORD")
	if email == "" {
		log.Println("SEED_STUDENT_EMAIL not set, nothing to do")
		return
	}
	if len(password) < 8 {
		log.Fatal("SEED_STUDENT_PASSWORD must be at least 8 characters")
	}
	if err := database.SeedDemoStudent(db, email, password); err != nil {
		log.Fatal(err)
	}
	log.Printf("seeded demo student %s", email)
}
