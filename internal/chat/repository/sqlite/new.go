package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"groq-chatbot/internal/chat/repository"
	"groq-chatbot/pkg/log"
)

const schema = `CREATE TABLE IF NOT EXISTS transcripts(
	id TEXT PRIMARY KEY,
	ts REAL NOT NULL,
	session_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	status TEXT NOT NULL,
	question TEXT,
	document_name TEXT,
	temperature REAL,
	model_1 TEXT,
	response_1 TEXT,
	error_1 TEXT,
	model_2 TEXT,
	response_2 TEXT,
	error_2 TEXT
);
CREATE INDEX IF NOT EXISTS idx_transcripts_session ON transcripts(session_id, id);`

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New opens (creating if needed) the transcript archive at path.
// ":memory:" gives a throwaway archive.
func New(path string, l log.Logger) (repository.TranscriptRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer; also keeps ":memory:" on a single database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcripts schema: %w", err)
	}

	return &implRepository{db: db, l: l}, nil
}

func (r *implRepository) Close() error {
	return r.db.Close()
}
