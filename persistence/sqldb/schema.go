package sqldb

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const DRIVER_SQLITE string = "sqlite"
const DRIVER_POSTGRES string = "postgres"

// Open connects to the submission database and creates the schema.
func Open(driver string, dsn string) (*sql.DB, error) {
	switch driver {
	case DRIVER_SQLITE, DRIVER_POSTGRES:
	default:
		return nil, fmt.Errorf("unsupported submission database %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DRIVER_SQLITE {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CreateSchema creates the submission table. Safe to call multiple times.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS submission (
    flow_id TEXT PRIMARY KEY,
    question_set TEXT NOT NULL,
    answers TEXT NOT NULL,
    completed_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_question_set ON submission(question_set);
`

// rebind turns ? placeholders into $n for postgres.
func rebind(driver string, query string) string {
	if driver != DRIVER_POSTGRES {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
