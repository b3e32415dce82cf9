package items

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const itemCols = `id, model, brand, type, color, supplier, notes, unit_price, quantity, entry_date, created_at`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	if err := row.Scan(
		&it.ID,
		&it.Model,
		&it.Brand,
		&it.Type,
		&it.Color,
		&it.Supplier,
		&it.Notes,
		&it.UnitPrice,
		&it.Quantity,
		&it.EntryDate,
		&it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) Create(ctx context.Context, it Item) (*Item, error) {
	if strings.TrimSpace(it.Model) == "" {
		return nil, ErrModelRequired
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO items (model, brand, type, color, supplier, notes, unit_price, quantity, entry_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+itemCols+`
	`, it.Model, it.Brand, it.Type, it.Color, it.Supplier, it.Notes, it.UnitPrice, it.Quantity, it.EntryDate)
	return scanItem(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemCols+` FROM items WHERE id = $1`, id)
	it, err := scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *Repo) Update(ctx context.Context, id int64, it Item) (*Item, error) {
	if strings.TrimSpace(it.Model) == "" {
		return nil, ErrModelRequired
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE items
		SET model=$2, brand=$3, type=$4, color=$5, supplier=$6, notes=$7, unit_price=$8, quantity=$9, entry_date=$10
		WHERE id=$1
		RETURNING `+itemCols+`
	`, id, it.Model, it.Brand, it.Type, it.Color, it.Supplier, it.Notes, it.UnitPrice, it.Quantity, it.EntryDate)
	out, err := scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	return err
}

func (r *Repo) ListAll(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemCols+` FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

// InsertMany bulk-inserts a batch of items in a single transaction and
// returns the assigned ids in input order.
func (r *Repo) InsertMany(ctx context.Context, batch []Item) ([]int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]int64, 0, len(batch))
	for _, it := range batch {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO items (model, brand, type, color, supplier, notes, unit_price, quantity, entry_date)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id
		`, it.Model, it.Brand, it.Type, it.Color, it.Supplier, it.Notes, it.UnitPrice, it.Quantity, it.EntryDate).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

// Search matches a substring of model/brand/type/color/supplier, case-insensitive.
func (r *Repo) Search(ctx context.Context, q string) ([]Item, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return r.ListAll(ctx)
	}
	like := "%" + strings.ToLower(q) + "%"

	rows, err := r.pool.Query(ctx, `
		SELECT `+itemCols+`
		FROM items
		WHERE LOWER(model) LIKE $1
		   OR LOWER(brand) LIKE $1
		   OR LOWER(type) LIKE $1
		   OR LOWER(color) LIKE $1
		   OR LOWER(supplier) LIKE $1
		ORDER BY id
	`, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}
