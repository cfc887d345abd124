package repository

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// MovieRepo handles the movies table.
type MovieRepo struct {
	db DBTX
}

func NewMovieRepo(db DBTX) *MovieRepo { return &MovieRepo{db: db} }

// Insert fails on an existing id.
func (r *MovieRepo) Insert(ctx context.Context, m Movie) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO movies(id, title, category, likes, dislikes, image, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`, m.ID, m.Title, m.Category, m.Likes, m.Dislikes, m.Image, m.SortOrder)
	return err
}

func (r *MovieRepo) Upsert(ctx context.Context, m Movie) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO movies(id, title, category, likes, dislikes, image, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 category=excluded.category,
	 likes=excluded.likes,
	 dislikes=excluded.dislikes,
	 image=excluded.image,
	 sort_order=excluded.sort_order;
	`, m.ID, m.Title, m.Category, m.Likes, m.Dislikes, m.Image, m.SortOrder)
	return err
}

// List returns every movie in display order.
func (r *MovieRepo) List(ctx context.Context) ([]Movie, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, title, category, likes, dislikes, image, sort_order, created_at
	FROM movies ORDER BY sort_order, id;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Category, &m.Likes, &m.Dislikes, &m.Image, &m.SortOrder, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MovieRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n)
	return n, err
}

// NextSortOrder returns the position after the last stored movie.
func (r *MovieRepo) NextSortOrder(ctx context.Context) (int, error) {
	var n sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(sort_order) FROM movies`).Scan(&n); err != nil {
		return 0, err
	}
	if !n.Valid {
		return 0, nil
	}
	return int(n.Int64) + 1, nil
}

// ImportRepo records catalog import runs.
type ImportRepo struct {
	db DBTX
}

func NewImportRepo(db DBTX) *ImportRepo { return &ImportRepo{db: db} }

func (r *ImportRepo) Insert(ctx context.Context, run ImportRun) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO catalog_imports(id, source, imported, skipped, errors)
	VALUES (?, ?, ?, ?, ?);
	`, run.ID, run.Source, run.Imported, run.Skipped, run.Errors)
	return err
}

func (r *ImportRepo) List(ctx context.Context) ([]ImportRun, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, source, imported, skipped, errors, created_at FROM catalog_imports ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ImportRun
	for rows.Next() {
		var run ImportRun
		if err := rows.Scan(&run.ID, &run.Source, &run.Imported, &run.Skipped, &run.Errors, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
