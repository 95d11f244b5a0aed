package wardroberepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/fitgpt/internal/domain/wardrobe"
)

const schema = `
CREATE TABLE IF NOT EXISTS wardrobe_items (
	id            BIGSERIAL PRIMARY KEY,
	category      TEXT        NOT NULL,
	color         TEXT        NOT NULL,
	season        TEXT        NOT NULL,
	comfort_level INT         NOT NULL,
	brand         TEXT        NOT NULL DEFAULT '',
	image_url     TEXT        NOT NULL DEFAULT '',
	available     BOOLEAN     NOT NULL DEFAULT TRUE,
	archived      BOOLEAN     NOT NULL DEFAULT FALSE,
	last_worn_at  TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS saved_outfits (
	id         BIGSERIAL PRIMARY KEY,
	item_ids   BIGINT[]    NOT NULL,
	note       TEXT        NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const itemColumns = `id, category, color, season, comfort_level, brand, image_url, available, archived, last_worn_at, created_at`

// PostgresRepository persists the inventory and saved outfits in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the tables when they are missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schema)
	return err
}

// ListActive returns non-archived items ordered by id.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM wardrobe_items
		WHERE NOT archived
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []wardrobe.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Get fetches by primary key.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (wardrobe.Item, bool, error) {
	item, err := scanItem(r.pool.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM wardrobe_items
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return wardrobe.Item{}, false, nil
	}
	if err != nil {
		return wardrobe.Item{}, false, err
	}
	return item, true, nil
}

// Add inserts a new item row.
func (r *PostgresRepository) Add(ctx context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	return scanItem(r.pool.QueryRow(ctx, `
		INSERT INTO wardrobe_items (category, color, season, comfort_level, brand, image_url, available, last_worn_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+itemColumns,
		item.Category, item.Color, item.Season, item.ComfortLevel, item.Brand, item.ImageURL, item.Available, item.LastWornAt, item.CreatedAt))
}

// Update overwrites the mutable columns of an item.
func (r *PostgresRepository) Update(ctx context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	updated, err := scanItem(r.pool.QueryRow(ctx, `
		UPDATE wardrobe_items
		SET category = $2, color = $3, season = $4, comfort_level = $5, brand = $6,
		    image_url = $7, available = $8, last_worn_at = $9
		WHERE id = $1
		RETURNING `+itemColumns,
		item.ID, item.Category, item.Color, item.Season, item.ComfortLevel, item.Brand, item.ImageURL, item.Available, item.LastWornAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return wardrobe.Item{}, wardrobe.ErrItemNotFound
	}
	return updated, err
}

// Archive soft deletes an item.
func (r *PostgresRepository) Archive(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE wardrobe_items SET archived = TRUE WHERE id = $1 AND NOT archived`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return wardrobe.ErrItemNotFound
	}
	return nil
}

// SaveOutfit inserts a saved outfit.
func (r *PostgresRepository) SaveOutfit(ctx context.Context, outfit wardrobe.SavedOutfit) (wardrobe.SavedOutfit, error) {
	return scanOutfit(r.pool.QueryRow(ctx, `
		INSERT INTO saved_outfits (item_ids, note, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, item_ids, note, created_at
	`, outfit.ItemIDs, outfit.Note, outfit.CreatedAt))
}

// ListOutfits returns saved outfits, newest first.
func (r *PostgresRepository) ListOutfits(ctx context.Context) ([]wardrobe.SavedOutfit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_ids, note, created_at
		FROM saved_outfits
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []wardrobe.SavedOutfit
	for rows.Next() {
		outfit, err := scanOutfit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, outfit)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (wardrobe.Item, error) {
	var (
		item     wardrobe.Item
		lastWorn *time.Time
		created  time.Time
	)
	if err := row.Scan(&item.ID, &item.Category, &item.Color, &item.Season, &item.ComfortLevel,
		&item.Brand, &item.ImageURL, &item.Available, &item.Archived, &lastWorn, &created); err != nil {
		return wardrobe.Item{}, err
	}
	if lastWorn != nil {
		utc := lastWorn.UTC()
		item.LastWornAt = &utc
	}
	item.CreatedAt = created.UTC()
	return item, nil
}

func scanOutfit(row rowScanner) (wardrobe.SavedOutfit, error) {
	var (
		outfit  wardrobe.SavedOutfit
		created time.Time
	)
	if err := row.Scan(&outfit.ID, &outfit.ItemIDs, &outfit.Note, &created); err != nil {
		return wardrobe.SavedOutfit{}, err
	}
	outfit.CreatedAt = created.UTC()
	return outfit, nil
}

var (
	_ wardrobe.Repository       = (*PostgresRepository)(nil)
	_ wardrobe.OutfitRepository = (*PostgresRepository)(nil)
)
