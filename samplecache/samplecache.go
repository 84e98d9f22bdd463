// Package samplecache persists decoded point clouds in a local sqlite
// database so repeated epochs over the same split skip file decoding.
// Entries are keyed by lidar path; the cache is strictly best-effort and
// callers fall back to decoding on any miss.
package samplecache

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DBFileName is the sqlite file created inside the cache directory.
const DBFileName = "samples.db"

// Cache is a sqlite-backed store of decoded point clouds.
type Cache struct {
	db        *sql.DB
	sessionID string
}

// Open creates or opens a cache database under dir, creating the directory
// and applying any pending schema migrations.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	c := &Cache{db: db, sessionID: uuid.New().String()}
	log.Printf("opened sample cache in %s (session %s)", dir, c.sessionID)
	return c, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("cache migration failed: %w", err)
	}
	return nil
}

// SessionID returns the id stamped on rows written by this cache instance.
func (c *Cache) SessionID() string { return c.sessionID }

// Put stores or replaces the decoded points for a lidar path.
func (c *Cache) Put(path string, points [][3]float32) error {
	blob := EncodePointBlob(points)
	_, err := c.db.Exec(`
		INSERT INTO cached_samples (lidar_path, session_id, num_points, point_blob, cached_unix_nanos)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(lidar_path) DO UPDATE SET
			session_id = excluded.session_id,
			num_points = excluded.num_points,
			point_blob = excluded.point_blob,
			cached_unix_nanos = excluded.cached_unix_nanos`,
		path, c.sessionID, len(points), blob, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("cache put %s: %w", path, err)
	}
	return nil
}

// Get returns the cached points for a lidar path. The second return value is
// false on a miss.
func (c *Cache) Get(path string) ([][3]float32, bool, error) {
	var blob []byte
	err := c.db.QueryRow(
		`SELECT point_blob FROM cached_samples WHERE lidar_path = ?`, path,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", path, err)
	}
	points := DecodePointBlob(blob)
	if points == nil {
		return nil, false, fmt.Errorf("cache get %s: corrupt point blob (%d bytes)", path, len(blob))
	}
	return points, true, nil
}

// Count returns the number of cached samples.
func (c *Cache) Count() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM cached_samples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
