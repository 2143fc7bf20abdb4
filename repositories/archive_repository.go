package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blogem/reqsink/database"
	"github.com/blogem/reqsink/models"
)

// ArchiveRepository interface defines archived request database operations
type ArchiveRepository interface {
	EnsureSchema(ctx context.Context) error
	InsertBatch(ctx context.Context, blobs [][]byte) error
	List(ctx context.Context, limit, offset int) ([]models.ArchivedRequest, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// sqliteArchiveRepository implements ArchiveRepository interface
type sqliteArchiveRepository struct {
	db *sql.DB
}

// NewArchiveRepository creates a new archive repository
func NewArchiveRepository(db *sql.DB) ArchiveRepository {
	return &sqliteArchiveRepository{db: db}
}

// OpenArchiveRepository opens the SQLite file at path. The schema is not
// touched until EnsureSchema is called.
func OpenArchiveRepository(ctx context.Context, path string) (ArchiveRepository, error) {
	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewArchiveRepository(db), nil
}

// EnsureSchema creates the archive table if it does not exist
func (r *sqliteArchiveRepository) EnsureSchema(ctx context.Context) error {
	return database.RunMigrations(ctx, r.db)
}

// InsertBatch stores one row per blob in a single transaction
func (r *sqliteArchiveRepository) InsertBatch(ctx context.Context, blobs [][]byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO archived_requests (data) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, blob := range blobs {
		if _, err := stmt.ExecContext(ctx, blob); err != nil {
			return fmt.Errorf("failed to insert archived request %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit archived requests: %w", err)
	}

	return nil
}

// List retrieves archived rows in insertion order
func (r *sqliteArchiveRepository) List(ctx context.Context, limit, offset int) ([]models.ArchivedRequest, error) {
	query := `
		SELECT id, data, archived_at
		FROM archived_requests
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived requests: %w", err)
	}
	defer rows.Close()

	var archived []models.ArchivedRequest
	for rows.Next() {
		var row models.ArchivedRequest
		if err := rows.Scan(&row.ID, &row.Data, &row.ArchivedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archived request: %w", err)
		}
		archived = append(archived, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating archived requests: %w", err)
	}

	return archived, nil
}

// Count returns the number of archived rows
func (r *sqliteArchiveRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM archived_requests").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count archived requests: %w", err)
	}
	return count, nil
}

// Close closes the underlying database
func (r *sqliteArchiveRepository) Close() error {
	return r.db.Close()
}
