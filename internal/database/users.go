package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hundreddays-io/hundreddays/internal/models"
)

// CreateUser inserts a new user record. Users carry no credential beyond
// their email identity.
func CreateUser(email, name, picture string) (*models.User, error) {
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Picture:   picture,
		CreatedAt: time.Now().UTC(),
	}

	_, err := dbConn.Exec(
		q("INSERT INTO users (id, email, name, picture, created_at) VALUES (?, ?, ?, ?, ?)"),
		user.ID, user.Email, user.Name, user.Picture, user.CreatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert user")
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func GetUserByEmail(email string) (*models.User, error) {
	return scanUser(dbConn.QueryRow(
		q("SELECT id, email, name, picture, created_at FROM users WHERE email = ?"),
		email,
	))
}

// GetUserByID retrieves a user by id.
func GetUserByID(id string) (*models.User, error) {
	return scanUser(dbConn.QueryRow(
		q("SELECT id, email, name, picture, created_at FROM users WHERE id = ?"),
		id,
	))
}

// CountUsers returns the total number of users.
func CountUsers() (int, error) {
	var n int
	if err := dbConn.QueryRow("SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return n, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Picture, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "scan user")
	}
	return &user, nil
}
