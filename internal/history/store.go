package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Record is the summary row of one recorded analysis.
type Record struct {
	ID           string          `json:"id"`
	Subject      string          `json:"subject"`
	Kind         string          `json:"kind"`
	Overall      *int            `json:"overall,omitempty"` // nil for reports without a single score
	Rating       string          `json:"rating,omitempty"`
	RulesVersion int64           `json:"rules_version"`
	ArchiveRef   string          `json:"archive_ref"`
	Request      json.RawMessage `json:"request"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ErrNotFound reports a history ID that is neither indexed nor archived.
var ErrNotFound = errors.New("not found")

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Store persists history rows in Postgres.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store on an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Insert writes r and fills in its creation time.
func (s *Store) Insert(ctx context.Context, r *Record) error {
	request := r.Request
	if len(request) == 0 {
		request = json.RawMessage("{}")
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO analysis_results (id, subject, kind, overall, rating, rules_version, archive_ref, request)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		r.ID, r.Subject, r.Kind, r.Overall, r.Rating, r.RulesVersion, r.ArchiveRef, string(request),
	).Scan(&r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis result %s: %w", r.ID, err)
	}
	return nil
}

// Get retrieves a row by ID.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	r := &Record{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, subject, kind, overall, rating, rules_version, archive_ref, request, created_at
		 FROM analysis_results WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Subject, &r.Kind, &r.Overall, &r.Rating, &r.RulesVersion, &r.ArchiveRef, &r.Request, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis result %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis result %s: %w", id, err)
	}
	return r, nil
}

// List returns the newest rows of a subject, at most limit. A non-empty
// kind keeps only rows of that kind.
func (s *Store) List(ctx context.Context, subject, kind string, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject, kind, overall, rating, rules_version, archive_ref, request, created_at
		 FROM analysis_results WHERE subject = $1 AND ($2 = '' OR kind = $2)
		 ORDER BY created_at DESC LIMIT $3`,
		subject, kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list analysis results: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Subject, &r.Kind, &r.Overall, &r.Rating, &r.RulesVersion, &r.ArchiveRef, &r.Request, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis result: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
