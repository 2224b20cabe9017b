package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
	"github.com/nroehner/libSBOL/internal/log"
)

const documentColumns = `id, name, source_format, created_at, updated_at`

var now = time.Now

// TripleRepository stores named documents as ordered triples.
type TripleRepository struct {
	db *sql.DB
}

func newTripleRepository(db *sql.DB) *TripleRepository {
	return &TripleRepository{db: db}
}

func scanDocument(scanner interface{ Scan(...any) error }) (*DocumentModel, error) {
	var model DocumentModel
	err := scanner.Scan(&model.ID, &model.Name, &model.SourceFormat, &model.CreatedAt, &model.UpdatedAt)
	return &model, err
}

// Save replaces the triples stored under name, creating the document row on first save.
// sourceFormat records the format the triples were read from, if any.
func (r *TripleRepository) Save(ctx context.Context, name, sourceFormat string, triples []sbol.Triple) error {
	if name == "" {
		return fmt.Errorf("%w: document name is required", sbolerr.ErrInvalidArgument)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ts := now().Unix()
	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO documents (name, source_format, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET source_format = excluded.source_format, updated_at = excluded.updated_at
		RETURNING id`,
		name, sourceFormat, ts, ts,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM triples WHERE document_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear triples: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO triples (document_id, position, subject, predicate, object) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range triples {
		m := toTripleModel(id, i, t)
		if _, err := stmt.ExecContext(ctx, m.DocumentID, m.Position, m.Subject, m.Predicate, m.Object); err != nil {
			return fmt.Errorf("failed to insert triple %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	log.Debug(log.CatStore, "document saved", "name", name, "triples", len(triples))
	return nil
}

// Load returns the triples stored under name in their saved order.
func (r *TripleRepository) Load(ctx context.Context, name string) ([]sbol.Triple, error) {
	model, err := r.find(ctx, name)
	if err != nil {
		return nil, err
	}
	return r.query(ctx,
		`SELECT position, subject, predicate, object FROM triples WHERE document_id = ? ORDER BY position`,
		model.ID)
}

// Describe returns the triples whose subject is uri.
func (r *TripleRepository) Describe(ctx context.Context, name, uri string) ([]sbol.Triple, error) {
	model, err := r.find(ctx, name)
	if err != nil {
		return nil, err
	}
	return r.query(ctx,
		`SELECT position, subject, predicate, object FROM triples WHERE document_id = ? AND subject = ? ORDER BY position`,
		model.ID, uri)
}

// Info returns metadata for the document stored under name.
func (r *TripleRepository) Info(ctx context.Context, name string) (DocumentInfo, error) {
	model, err := r.find(ctx, name)
	if err != nil {
		return DocumentInfo{}, err
	}
	count, err := r.count(ctx, model.ID)
	if err != nil {
		return DocumentInfo{}, err
	}
	return model.toInfo(count), nil
}

// List returns every stored document ordered by name.
func (r *TripleRepository) List(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	var models []*DocumentModel
	for rows.Next() {
		model, err := scanDocument(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		models = append(models, model)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	infos := make([]DocumentInfo, 0, len(models))
	for _, model := range models {
		count, err := r.count(ctx, model.ID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, model.toInfo(count))
	}
	return infos, nil
}

// Delete removes the document stored under name and its triples.
func (r *TripleRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: stored document %q", sbolerr.ErrNotFound, name)
	}
	log.Debug(log.CatStore, "document deleted", "name", name)
	return nil
}

func (r *TripleRepository) find(ctx context.Context, name string) (*DocumentModel, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE name = ?`, name)
	model, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: stored document %q", sbolerr.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return model, nil
}

func (r *TripleRepository) count(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM triples WHERE document_id = ?`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count triples: %w", err)
	}
	return n, nil
}

func (r *TripleRepository) query(ctx context.Context, q string, args ...any) ([]sbol.Triple, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query triples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []sbol.Triple
	for rows.Next() {
		var m TripleModel
		if err := rows.Scan(&m.Position, &m.Subject, &m.Predicate, &m.Object); err != nil {
			return nil, fmt.Errorf("failed to scan triple: %w", err)
		}
		out = append(out, m.toDomain())
	}
	return out, rows.Err()
}
