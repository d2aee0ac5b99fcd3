package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user and a tiny sample hierarchy so the board is not empty on
// first start. It is a no-op when users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	adminID := uuid.New()
	_, err = db.Exec(`
		INSERT INTO users (id, name, email, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`, adminID, "Admin", "admin@luma.local", "admin", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// One subject → training → module → topic chain so the tree view has
	// something to show.
	subjectID := uuid.New()
	if _, err := db.Exec(`
		INSERT INTO subjects (id, title, description)
		VALUES ($1, $2, $3)
	`, subjectID, "Getting Started", "Sample subject created by the seeder"); err != nil {
		return fmt.Errorf("seed insert subject: %w", err)
	}

	trainingID := uuid.New()
	if _, err := db.Exec(`
		INSERT INTO trainings (id, title, description, subject_id)
		VALUES ($1, $2, $3, $4)
	`, trainingID, "First Training", "Walks through the authoring flow", subjectID); err != nil {
		return fmt.Errorf("seed insert training: %w", err)
	}

	moduleID := uuid.New()
	if _, err := db.Exec(`
		INSERT INTO training_modules (id, title, description, training_id)
		VALUES ($1, $2, $3, $4)
	`, moduleID, "Module One", "", trainingID); err != nil {
		return fmt.Errorf("seed insert module: %w", err)
	}

	topicID := uuid.New()
	if _, err := db.Exec(`
		INSERT INTO topics (id, title, description, training_module_id, owner_id)
		VALUES ($1, $2, $3, $4, $5)
	`, topicID, "Welcome Topic", "", moduleID, adminID); err != nil {
		return fmt.Errorf("seed insert topic: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO units (id, title, description, topic_id, editorial_state, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), "Welcome Unit", "Edit me to explore the unit detail page",
		topicID, "planning", "Seeded for development."); err != nil {
		return fmt.Errorf("seed insert unit: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@luma.local",
		"password", "admin",
	)
	return nil
}
