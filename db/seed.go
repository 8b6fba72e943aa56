package db

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the initial admin account when no admin exists yet.
// Skipped when password is empty.
func SeedAdmin(database *sql.DB, email, password string) error {
	if password == "" {
		return nil
	}

	var exists bool
	err := database.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE role = 'admin')`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking for admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	_, err = database.Exec(
		`INSERT INTO users (name, email, password_hash, role) VALUES ('Administrator', $1, $2, 'admin')`,
		email, string(hash),
	)
	if err != nil {
		return fmt.Errorf("error seeding admin account: %w", err)
	}

	return nil
}
