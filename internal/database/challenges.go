package database

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hundreddays-io/hundreddays/internal/models"
)

const challengeColumns = "id, user_id, title, description, goals, rules, duration_days, start_date, end_date, created_at, updated_at"

// CreateChallenge inserts a fully-populated challenge record.
func CreateChallenge(c *models.Challenge) error {
	goals, err := encodeStrings(c.Goals)
	if err != nil {
		return err
	}
	rules, err := encodeStrings(c.Rules)
	if err != nil {
		return err
	}

	_, err = dbConn.Exec(
		q("INSERT INTO challenges ("+challengeColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		c.ID, c.UserID, c.Title, c.Description, goals, rules,
		c.DurationDays, c.StartDate, c.EndDate, c.CreatedAt, c.UpdatedAt,
	)
	return errors.Wrap(err, "insert challenge")
}

// GetChallengesByUser returns all of a user's challenges, newest first.
func GetChallengesByUser(userID string) ([]*models.Challenge, error) {
	rows, err := dbConn.Query(
		q("SELECT "+challengeColumns+" FROM challenges WHERE user_id = ? ORDER BY created_at DESC"),
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query challenges")
	}
	defer rows.Close()

	challenges := []*models.Challenge{}
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

// GetChallenge retrieves a challenge scoped by owner. A challenge owned by
// another user is reported as not found.
func GetChallenge(id, userID string) (*models.Challenge, error) {
	row := dbConn.QueryRow(
		q("SELECT "+challengeColumns+" FROM challenges WHERE id = ? AND user_id = ?"),
		id, userID,
	)
	c, err := scanChallenge(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

// UpdateChallenge writes back every mutable field of a challenge.
func UpdateChallenge(c *models.Challenge) error {
	goals, err := encodeStrings(c.Goals)
	if err != nil {
		return err
	}
	rules, err := encodeStrings(c.Rules)
	if err != nil {
		return err
	}

	_, err = dbConn.Exec(
		q(`UPDATE challenges SET title = ?, description = ?, goals = ?, rules = ?,
			duration_days = ?, end_date = ?, updated_at = ? WHERE id = ? AND user_id = ?`),
		c.Title, c.Description, goals, rules, c.DurationDays, c.EndDate, c.UpdatedAt,
		c.ID, c.UserID,
	)
	return errors.Wrap(err, "update challenge")
}

// DeleteChallenge removes a challenge and cascades to its projects, so no
// orphaned project rows survive.
func DeleteChallenge(id, userID string) error {
	if _, err := dbConn.Exec(q("DELETE FROM projects WHERE challenge_id = ?"), id); err != nil {
		return errors.Wrap(err, "delete challenge projects")
	}
	_, err := dbConn.Exec(q("DELETE FROM challenges WHERE id = ? AND user_id = ?"), id, userID)
	return errors.Wrap(err, "delete challenge")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChallenge(row rowScanner) (*models.Challenge, error) {
	var c models.Challenge
	var goals, rules string
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &goals, &rules,
		&c.DurationDays, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, errors.Wrap(err, "scan challenge")
	}
	if c.Goals, err = decodeStrings(goals); err != nil {
		return nil, err
	}
	if c.Rules, err = decodeStrings(rules); err != nil {
		return nil, err
	}
	return &c, nil
}
