package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

// SQLite implements Repository over a single key-value table. One
// process is the only writer, so no locking beyond SQLite's own.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates the store at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create store directory", goerr.V("path", dbPath))
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open store", goerr.V("path", dbPath))
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to migrate store")
	}

	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle
func (r *SQLite) Close() error {
	return r.db.Close()
}

func (r *SQLite) put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value))
	if err != nil {
		return goerr.Wrap(err, "failed to write store entry", goerr.V("key", key))
	}
	return nil
}

func (r *SQLite) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to read store entry", goerr.V("key", key))
	}
	return []byte(value), true, nil
}

func (r *SQLite) delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return goerr.Wrap(err, "failed to delete store entry", goerr.V("key", key))
	}
	return nil
}

func (r *SQLite) PutPage(ctx context.Context, page *model.Page) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return goerr.Wrap(err, "failed to encode page")
	}
	return r.put(ctx, pagePrefix+string(page.ID), raw)
}

func (r *SQLite) GetPage(ctx context.Context, id model.PageID) (*model.Page, error) {
	raw, ok, err := r.get(ctx, pagePrefix+string(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, goerr.Wrap(model.ErrPageNotFound, "no such page", goerr.V("page_id", id))
	}
	return model.DecodeTolerant(raw)
}

func (r *SQLite) ListPages(ctx context.Context) ([]*model.Page, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE key LIKE ?`, pagePrefix+"%")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list pages")
	}
	defer rows.Close()

	var pages []*model.Page
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, goerr.Wrap(err, "failed to scan store row")
		}

		page, err := model.DecodeTolerant([]byte(value))
		if err != nil {
			logging.From(ctx).Warn("skipping undecodable page", "key", key, "error", err)
			continue
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate store rows")
	}

	sortPagesByCreatedAt(pages)
	return pages, nil
}

func (r *SQLite) DeletePage(ctx context.Context, id model.PageID) error {
	return r.delete(ctx, pagePrefix+string(id))
}

func (r *SQLite) PutDraft(ctx context.Context, page *model.Page) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return goerr.Wrap(err, "failed to encode draft")
	}
	return r.put(ctx, draftKey, raw)
}

func (r *SQLite) GetDraft(ctx context.Context) (*model.Page, error) {
	raw, ok, err := r.get(ctx, draftKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return model.DecodeTolerant(raw)
}

func (r *SQLite) DeleteDraft(ctx context.Context) error {
	return r.delete(ctx, draftKey)
}

func sortPagesByCreatedAt(pages []*model.Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].CreatedAt.After(pages[j].CreatedAt)
	})
}
