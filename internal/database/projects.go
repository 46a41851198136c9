package database

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/hundreddays-io/hundreddays/internal/models"
)

const projectColumns = `id, challenge_id, user_id, title, description, repository_url, demo_url,
	tech_stack, status, progress_percentage, url_status, last_url_check, completed_at, created_at, updated_at`

// CreateProject inserts a fully-populated project record.
func CreateProject(p *models.Project) error {
	techStack, err := encodeStrings(p.TechStack)
	if err != nil {
		return err
	}
	urlStatus, err := encodeURLStatus(p.URLStatus)
	if err != nil {
		return err
	}

	_, err = dbConn.Exec(
		q("INSERT INTO projects ("+projectColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		p.ID, p.ChallengeID, p.UserID, p.Title, p.Description, p.RepositoryURL, p.DemoURL,
		techStack, p.Status, p.ProgressPercentage, urlStatus, p.LastURLCheck, p.CompletedAt,
		p.CreatedAt, p.UpdatedAt,
	)
	return errors.Wrap(err, "insert project")
}

// GetProjectsByChallenge returns all projects under a challenge, newest
// first. Ownership of the challenge is checked by callers.
func GetProjectsByChallenge(challengeID string) ([]*models.Project, error) {
	return queryProjects(
		q("SELECT "+projectColumns+" FROM projects WHERE challenge_id = ? ORDER BY created_at DESC"),
		challengeID,
	)
}

// GetProjectsByUser returns all of a user's projects, newest first.
func GetProjectsByUser(userID string) ([]*models.Project, error) {
	return queryProjects(
		q("SELECT "+projectColumns+" FROM projects WHERE user_id = ? ORDER BY created_at DESC"),
		userID,
	)
}

// GetProject retrieves a project scoped by owner.
func GetProject(id, userID string) (*models.Project, error) {
	row := dbConn.QueryRow(
		q("SELECT "+projectColumns+" FROM projects WHERE id = ? AND user_id = ?"),
		id, userID,
	)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

// UpdateProject writes back every mutable field of a project.
func UpdateProject(p *models.Project) error {
	techStack, err := encodeStrings(p.TechStack)
	if err != nil {
		return err
	}
	urlStatus, err := encodeURLStatus(p.URLStatus)
	if err != nil {
		return err
	}

	_, err = dbConn.Exec(
		q(`UPDATE projects SET title = ?, description = ?, repository_url = ?, demo_url = ?,
			tech_stack = ?, status = ?, progress_percentage = ?, url_status = ?, last_url_check = ?,
			completed_at = ?, updated_at = ? WHERE id = ? AND user_id = ?`),
		p.Title, p.Description, p.RepositoryURL, p.DemoURL, techStack, p.Status,
		p.ProgressPercentage, urlStatus, p.LastURLCheck, p.CompletedAt, p.UpdatedAt,
		p.ID, p.UserID,
	)
	return errors.Wrap(err, "update project")
}

// DeleteProject removes a project scoped by owner.
func DeleteProject(id, userID string) error {
	_, err := dbConn.Exec(q("DELETE FROM projects WHERE id = ? AND user_id = ?"), id, userID)
	return errors.Wrap(err, "delete project")
}

// CountProjectsByChallenge returns how many projects reference a challenge.
func CountProjectsByChallenge(challengeID string) (int, error) {
	var n int
	err := dbConn.QueryRow(
		q("SELECT COUNT(*) FROM projects WHERE challenge_id = ?"),
		challengeID,
	).Scan(&n)
	if err != nil {
		return 0, errors.Wrap(err, "count projects")
	}
	return n, nil
}

func queryProjects(query string, arg string) ([]*models.Project, error) {
	rows, err := dbConn.Query(query, arg)
	if err != nil {
		return nil, errors.Wrap(err, "query projects")
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var techStack string
	var urlStatus sql.NullString
	var lastCheck, completedAt sql.NullTime
	err := row.Scan(&p.ID, &p.ChallengeID, &p.UserID, &p.Title, &p.Description,
		&p.RepositoryURL, &p.DemoURL, &techStack, &p.Status, &p.ProgressPercentage,
		&urlStatus, &lastCheck, &completedAt, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, errors.Wrap(err, "scan project")
	}
	if p.TechStack, err = decodeStrings(techStack); err != nil {
		return nil, err
	}
	if p.URLStatus, err = decodeURLStatus(urlStatus); err != nil {
		return nil, err
	}
	if lastCheck.Valid {
		t := lastCheck.Time
		p.LastURLCheck = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	return &p, nil
}
