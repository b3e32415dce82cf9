package imports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Record(ctx context.Context, fileName string, count int) (*Batch, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO import_batches (file_name, record_count)
		VALUES ($1,$2)
		RETURNING id, file_name, record_count, imported_at
	`, fileName, count)
	var b Batch
	if err := row.Scan(&b.ID, &b.FileName, &b.RecordCount, &b.ImportedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns every recorded batch, newest first.
func (r *Repo) List(ctx context.Context) ([]Batch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, file_name, record_count, imported_at
		FROM import_batches
		ORDER BY imported_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.FileName, &b.RecordCount, &b.ImportedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
