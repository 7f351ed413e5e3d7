package surface

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"cost-planner/internal/location"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// MemoryCachePath opens a cache that lives only as long as the process
const MemoryCachePath = ":memory:"

const (
	kindObstruction = "obstruction"
	kindBend        = "bend"
)

const cacheSchema = `CREATE TABLE IF NOT EXISTS cost_cache (
	kind   TEXT NOT NULL,
	from_x REAL NOT NULL,
	from_y REAL NOT NULL,
	to_x   REAL NOT NULL,
	to_y   REAL NOT NULL,
	value  REAL NOT NULL,
	PRIMARY KEY (kind, from_x, from_y, to_x, to_y)
)`

// Cache memoizes the answers of a slower CostSurface in SQLite. Unavailable
// answers are never stored. Storage failures fall back to the wrapped surface.
type Cache struct {
	surface CostSurface
	db      *sql.DB
	logger  *slog.Logger
	mu      sync.RWMutex
}

// OpenCache opens (or creates) the cache database at path in front of s
func OpenCache(path string, s CostSurface, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if path != MemoryCachePath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, errors.Wrap(err, "create cache directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open cost cache")
	}
	// Every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "set pragma %s", pragma)
		}
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create cost cache schema")
	}

	logger.Info("Cost cache opened", slog.String("path", path))

	return &Cache{surface: s, db: db, logger: logger}, nil
}

// ObstructionWeight implements CostSurface
func (c *Cache) ObstructionWeight(ctx context.Context, from, to location.Location) (float64, error) {
	return c.cached(ctx, kindObstruction, from, to, c.surface.ObstructionWeight)
}

// BendCost implements CostSurface
func (c *Cache) BendCost(ctx context.Context, through, toward location.Location) (float64, error) {
	return c.cached(ctx, kindBend, through, toward, c.surface.BendCost)
}

type costQuery func(ctx context.Context, a, b location.Location) (float64, error)

func (c *Cache) cached(ctx context.Context, kind string, a, b location.Location, query costQuery) (float64, error) {
	if value, ok := c.get(ctx, kind, a, b); ok {
		return value, nil
	}

	value, err := query(ctx, a, b)
	if err != nil {
		return value, err
	}

	if err := c.set(ctx, kind, a, b, value); err != nil {
		c.logger.Warn("Failed to store cost", slog.String("kind", kind), slog.String("error", err.Error()))
	}

	return value, nil
}

func (c *Cache) get(ctx context.Context, kind string, a, b location.Location) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query := `SELECT value FROM cost_cache
	          WHERE kind = ? AND from_x = ? AND from_y = ? AND to_x = ? AND to_y = ?`

	var value float64
	err := c.db.QueryRowContext(ctx, query, kind, a.X, a.Y, b.X, b.Y).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false
	}
	if err != nil {
		c.logger.Warn("Failed to read cost cache", slog.String("kind", kind), slog.String("error", err.Error()))
		return 0, false
	}

	return value, true
}

func (c *Cache) set(ctx context.Context, kind string, a, b location.Location, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	query := `INSERT OR REPLACE INTO cost_cache (kind, from_x, from_y, to_x, to_y, value)
	          VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := c.db.ExecContext(ctx, query, kind, a.X, a.Y, b.X, b.Y, value); err != nil {
		return errors.Wrap(err, "insert cost cache entry")
	}
	return nil
}

// Len returns the number of cached answers
func (c *Cache) Len(ctx context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var count int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cost_cache").Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count cost cache entries")
	}
	return count, nil
}

// Clear removes every cached answer
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.ExecContext(ctx, "DELETE FROM cost_cache"); err != nil {
		return errors.Wrap(err, "clear cost cache")
	}
	return nil
}

// Close releases the database
func (c *Cache) Close() error {
	return errors.WithStack(c.db.Close())
}
