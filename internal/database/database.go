package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hundreddays-io/hundreddays/internal/config"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var (
	dbConn *sql.DB
	dbType string
)

// ErrNotFound is returned by lookups when no row matches. Ownership-scoped
// lookups return it both for absent rows and rows owned by another user.
var ErrNotFound = errors.New("record not found")

// Init establishes the process-wide database connection and runs
// migrations. It is safe to call more than once; after the first successful
// call it is a no-op. There is no teardown: the connection lives for the
// process lifetime and is reused across requests.
func Init(cfg *config.Config) error {
	if dbConn != nil {
		return nil
	}

	var db *sql.DB
	var err error

	if cfg.DatabaseURL != "" {
		dbType = "postgres"
		db, err = initPostgreSQL(cfg)
	} else {
		dbType = "sqlite"
		db, err = initSQLite(cfg)
	}
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %v", err)
	}

	if err := RunMigrations(db, dbType); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	dbConn = db
	log.Printf("Database initialized (%s)", dbType)
	return nil
}

func initPostgreSQL(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresDSN(cfg.DatabaseURL, cfg.DatabaseName))
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// postgresDSN fills in the configured database name when the connection URL
// carries none. A name already present in the URL wins, and keyword-form
// DSNs pass through untouched.
func postgresDSN(raw, name string) string {
	if name == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return raw
	}
	if strings.Trim(u.Path, "/") == "" {
		u.Path = "/" + name
	}
	return u.String()
}

func initSQLite(cfg *config.Config) (*sql.DB, error) {
	dataDir := filepath.Dir(cfg.DatabasePath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	db, err := sql.Open("sqlite3", cfg.DatabasePath+"?_journal=WAL&_fk=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %v", err)
	}
	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	return db, nil
}

// GetConnection returns the cached database handle. Init must have been
// called first.
func GetConnection() *sql.DB {
	return dbConn
}

// Ping reports whether the database is reachable.
func Ping() error {
	if dbConn == nil {
		return errors.New("database not initialized")
	}
	return dbConn.Ping()
}

// q rewrites ? placeholders into $n form when running against PostgreSQL.
// Store queries are written once with ? and rebound here.
func q(query string) string {
	if dbType != "postgres" {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}
