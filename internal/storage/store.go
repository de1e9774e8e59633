package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/horizonfin/horizon/internal/domain"
	"github.com/horizonfin/horizon/internal/transform"
)

var (
	// ErrNotFound is returned when no profile matches the lookup.
	ErrNotFound = errors.New("profile not found")

	// ErrEmailExists is returned when creating a profile with an email that
	// is already registered.
	ErrEmailExists = errors.New("profile with this email already exists")
)

// Store persists profiles in SQLite. Each profile is kept as a JSON document
// with camelCase keys, the convention of the databases this service fronts;
// conversion to the API's snake_case happens at the store boundary.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	email      TEXT NOT NULL UNIQUE,
	document   TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Open opens (creating if necessary) the profile database at dbPath.
func Open(dbPath string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("profile store opened")
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListProfiles returns every stored profile ordered by id.
func (s *Store) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, document FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var id int64
		var doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		p, err := decodeProfile(id, doc)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetProfile returns the profile with the given id.
func (s *Store) GetProfile(ctx context.Context, id int64) (domain.Profile, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM profiles WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to get profile %d: %w", id, err)
	}
	return decodeProfile(id, doc)
}

// GetProfileByEmail returns the profile registered under email.
func (s *Store) GetProfileByEmail(ctx context.Context, email string) (domain.Profile, error) {
	var id int64
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT id, document FROM profiles WHERE email = ?`, email).Scan(&id, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return decodeProfile(id, doc)
}

// CreateProfile stores a new profile and returns it with its assigned id and
// server-side timestamps.
func (s *Store) CreateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	if _, err := s.GetProfileByEmail(ctx, p.Email); err == nil {
		return domain.Profile{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return domain.Profile{}, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	p.CreatedAt = now
	p.UpdatedAt = now
	p.LastCalculation = nil

	doc, err := encodeProfile(p)
	if err != nil {
		return domain.Profile{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (email, document, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		p.Email, doc, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to read new profile id: %w", err)
	}
	p.ID = id

	// Re-encode so the stored document carries its own id.
	if err := s.writeDocument(ctx, id, p); err != nil {
		return domain.Profile{}, err
	}

	s.log.Info().Int64("profile_id", id).Str("email", p.Email).Msg("profile created")
	return p, nil
}

// UpdateProfile applies a partial update. Fields holds snake_case keys as
// received from the API; keys absent from it keep their stored values.
func (s *Store) UpdateProfile(ctx context.Context, id int64, fields map[string]any) (domain.Profile, error) {
	existing, err := s.GetProfile(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}

	merged, err := MergeProfile(existing, fields)
	if err != nil {
		return domain.Profile{}, err
	}
	if merged.Email != existing.Email {
		if _, err := s.GetProfileByEmail(ctx, merged.Email); err == nil {
			return domain.Profile{}, ErrEmailExists
		} else if !errors.Is(err, ErrNotFound) {
			return domain.Profile{}, err
		}
	}
	merged.ID = id
	merged.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if err := s.writeDocument(ctx, id, merged); err != nil {
		return domain.Profile{}, err
	}
	s.log.Info().Int64("profile_id", id).Msg("profile updated")
	return merged, nil
}

// DeleteProfile removes the profile with the given id.
func (s *Store) DeleteProfile(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm profile delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Info().Int64("profile_id", id).Msg("profile deleted")
	return nil
}

// CloneProfile returns a copy of the profile with identity fields cleared.
// The clone is not persisted; the caller creates it once an email is chosen.
func (s *Store) CloneProfile(ctx context.Context, id int64) (domain.Profile, error) {
	p, err := s.GetProfile(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}
	p.ID = 0
	p.Email = ""
	p.LastCalculation = nil
	p.CreatedAt = time.Time{}
	p.UpdatedAt = time.Time{}
	return p, nil
}

// TouchCalculation records when the profile's projection was last run.
func (s *Store) TouchCalculation(ctx context.Context, id int64, at time.Time) error {
	p, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	at = at.UTC().Truncate(time.Second)
	p.LastCalculation = &at
	p.UpdatedAt = at
	return s.writeDocument(ctx, id, p)
}

func (s *Store) writeDocument(ctx context.Context, id int64, p domain.Profile) error {
	doc, err := encodeProfile(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE profiles SET email = ?, document = ?, updated_at = ? WHERE id = ?`,
		p.Email, doc, p.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to write profile %d: %w", id, err)
	}
	return nil
}

// encodeProfile serializes a profile into a camelCase JSON document.
func encodeProfile(p domain.Profile) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("failed to decode profile document: %w", err)
	}
	out, err := json.Marshal(transform.CamelKeys(generic))
	if err != nil {
		return "", fmt.Errorf("failed to encode profile document: %w", err)
	}
	return string(out), nil
}

// decodeProfile parses a camelCase JSON document back into a profile.
func decodeProfile(id int64, doc string) (domain.Profile, error) {
	var generic any
	if err := json.Unmarshal([]byte(doc), &generic); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to parse profile %d document: %w", id, err)
	}
	raw, err := json.Marshal(transform.SnakeKeys(generic))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to re-encode profile %d document: %w", id, err)
	}
	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to decode profile %d: %w", id, err)
	}
	p.ID = id
	return p, nil
}

// MergeProfile overlays snake_case field updates onto an existing profile by
// merging at the document level, so absent keys keep their stored values.
func MergeProfile(existing domain.Profile, fields map[string]any) (domain.Profile, error) {
	raw, err := json.Marshal(existing)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to encode profile for merge: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to decode profile for merge: %w", err)
	}
	for k, v := range fields {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to encode merged profile: %w", err)
	}
	var p domain.Profile
	if err := json.Unmarshal(merged, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to decode merged profile: %w", err)
	}
	return p, nil
}
