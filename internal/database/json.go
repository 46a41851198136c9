package database

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/hundreddays-io/hundreddays/internal/models"
)

// List-valued fields are stored JSON-encoded in TEXT columns so the same
// schema works on SQLite and PostgreSQL.

func encodeStrings(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", errors.Wrap(err, "encode string list")
	}
	return string(b), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, errors.Wrap(err, "decode string list")
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func encodeURLStatus(s *models.URLStatus) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, errors.Wrap(err, "encode url status")
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeURLStatus(raw sql.NullString) (*models.URLStatus, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var s models.URLStatus
	if err := json.Unmarshal([]byte(raw.String), &s); err != nil {
		return nil, errors.Wrap(err, "decode url status")
	}
	return &s, nil
}
