package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/lepinkainen/gameshelf/internal/platform"
)

const gamesSchema = `CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	platform TEXT NOT NULL,
	year INTEGER NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	cover_url TEXT NOT NULL DEFAULT '',
	rating INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

const gameColumns = "id, title, platform, year, completed, cover_url, rating, created_at, updated_at"

// SQLiteStore is the local collection database. It also implements Store so
// the collection can be published into another SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	clock  clockwork.Clock
}

// NewSQLiteStore creates a new SQLiteStore instance
func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
		clock:  clockwork.NewRealClock(),
	}
}

// WithClock sets the clock used for created/updated timestamps.
func (s *SQLiteStore) WithClock(clock clockwork.Clock) *SQLiteStore {
	s.clock = clock
	return s
}

// Connect opens a connection to the SQLite database
func (s *SQLiteStore) Connect() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

// Open connects and makes sure the games table exists.
func (s *SQLiteStore) Open() error {
	if err := s.Connect(); err != nil {
		return err
	}
	if err := s.CreateTable(gamesSchema); err != nil {
		_ = s.Close()
		return err
	}
	return nil
}

// CreateTable creates a new table with the given schema if it doesn't exist
func (s *SQLiteStore) CreateTable(schema string) error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// BatchInsert inserts or replaces multiple records in the specified table.
// The database argument is ignored; the file is the database.
func (s *SQLiteStore) BatchInsert(_ string, table string, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after Commit is a no-op error
		_ = tx.Rollback()
	}()

	columns := make([]string, 0, len(records[0]))
	for col := range records[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, record := range records {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = record[col]
		}

		if _, err := stmt.Exec(values...); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AddGame validates and inserts g, returning it with ID and timestamps set.
func (s *SQLiteStore) AddGame(ctx context.Context, g GameRecord) (GameRecord, error) {
	if err := g.Validate(); err != nil {
		return GameRecord{}, err
	}

	now := s.clock.Now().UTC().Truncate(time.Second)
	g.CreatedAt = now
	g.UpdatedAt = now

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO games (title, platform, year, completed, cover_url, rating, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Title, string(g.Platform), g.Year, g.Completed, g.CoverURL, g.Rating,
		formatTime(g.CreatedAt), formatTime(g.UpdatedAt),
	)
	if err != nil {
		return GameRecord{}, fmt.Errorf("failed to insert game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return GameRecord{}, fmt.Errorf("failed to read inserted id: %w", err)
	}
	g.ID = id
	return g, nil
}

// GetGame returns the game with the given id or ErrNotFound.
func (s *SQLiteStore) GetGame(ctx context.Context, id int64) (GameRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+gameColumns+" FROM games WHERE id = ?", id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GameRecord{}, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return GameRecord{}, fmt.Errorf("failed to load game %d: %w", id, err)
	}
	return g, nil
}

// UpdateGame validates g and overwrites the stored row with the same ID.
func (s *SQLiteStore) UpdateGame(ctx context.Context, g GameRecord) (GameRecord, error) {
	if err := g.Validate(); err != nil {
		return GameRecord{}, err
	}

	existing, err := s.GetGame(ctx, g.ID)
	if err != nil {
		return GameRecord{}, err
	}
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = s.clock.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx,
		`UPDATE games SET title = ?, platform = ?, year = ?, completed = ?, cover_url = ?, rating = ?, updated_at = ?
		 WHERE id = ?`,
		g.Title, string(g.Platform), g.Year, g.Completed, g.CoverURL, g.Rating, formatTime(g.UpdatedAt), g.ID,
	)
	if err != nil {
		return GameRecord{}, fmt.Errorf("failed to update game %d: %w", g.ID, err)
	}
	return g, nil
}

// DeleteGame removes the game with the given id.
func (s *SQLiteStore) DeleteGame(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete game %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete game %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListFilter narrows ListGames. Zero values match everything.
type ListFilter struct {
	Platform  platform.Platform
	Completed *bool
}

// ListGames returns the games matching filter ordered by title, then id.
func (s *SQLiteStore) ListGames(ctx context.Context, filter ListFilter) ([]GameRecord, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Platform != "" {
		clauses = append(clauses, "platform = ?")
		args = append(args, string(filter.Platform))
	}
	if filter.Completed != nil {
		clauses = append(clauses, "completed = ?")
		args = append(args, *filter.Completed)
	}

	query := "SELECT " + gameColumns + " FROM games"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY title COLLATE NOCASE, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	games := []GameRecord{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameRecord, error) {
	var (
		g                    GameRecord
		p                    string
		createdAt, updatedAt string
	)
	if err := row.Scan(&g.ID, &g.Title, &p, &g.Year, &g.Completed, &g.CoverURL, &g.Rating, &createdAt, &updatedAt); err != nil {
		return GameRecord{}, err
	}
	g.Platform = platform.Platform(p)
	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	g.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return g, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
