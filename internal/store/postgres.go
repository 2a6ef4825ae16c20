package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/db"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migrations for db.Migrate.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	selectOverrides = `SELECT namespace, document FROM translation_overrides WHERE locale = $1`
	upsertOverride  = `INSERT INTO translation_overrides (locale, namespace, document)
VALUES ($1, $2, $3)
ON CONFLICT (locale, namespace) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`
	deleteOverride = `DELETE FROM translation_overrides WHERE locale = $1 AND namespace = $2`
)

// Postgres stores each override as one jsonb row keyed by locale and
// namespace.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Overrides(ctx context.Context, locale string) (i18n.Dictionary, error) {
	rows, err := p.pool.Query(ctx, selectOverrides, locale)
	if err != nil {
		return nil, fmt.Errorf("store: query overrides: %w", err)
	}
	defer rows.Close()

	d := i18n.Dictionary{}
	for rows.Next() {
		var (
			ns  string
			doc []byte
		)
		if err := rows.Scan(&ns, &doc); err != nil {
			return nil, fmt.Errorf("store: scan override: %w", err)
		}
		v, err := decodeValue(doc)
		if err != nil {
			return nil, fmt.Errorf("store: %s/%s: %w", locale, ns, err)
		}
		d[ns] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: read overrides: %w", err)
	}
	return d, nil
}

func (p *Postgres) PutOverride(ctx context.Context, locale, namespace string, v i18n.Value) error {
	if err := validate(locale, namespace, v); err != nil {
		return err
	}
	doc, err := json.Marshal(v.Interface())
	if err != nil {
		return fmt.Errorf("store: encode override: %w", err)
	}
	if _, err := p.pool.Exec(ctx, upsertOverride, locale, namespace, doc); err != nil {
		return fmt.Errorf("store: put override: %w", err)
	}
	return nil
}

func (p *Postgres) PutOverrides(ctx context.Context, locale string, d i18n.Dictionary) error {
	if err := validateAll(locale, d); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, ns := range d.Namespaces() {
		doc, err := json.Marshal(d[ns].Interface())
		if err != nil {
			return fmt.Errorf("store: encode override %s: %w", ns, err)
		}
		batch.Queue(upsertOverride, locale, ns, doc)
	}

	err := db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("store: put overrides: %w", err)
	}
	return nil
}

func (p *Postgres) DeleteOverride(ctx context.Context, locale, namespace string) error {
	tag, err := p.pool.Exec(ctx, deleteOverride, locale, namespace)
	if err != nil {
		return fmt.Errorf("store: delete override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeValue(doc []byte) (i18n.Value, error) {
	var raw any
	if err := json.Unmarshal(doc, &raw); err != nil {
		return i18n.Value{}, err
	}
	return i18n.ValueOf(raw)
}

var _ Store = (*Postgres)(nil)
