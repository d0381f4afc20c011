// Package postgrestest opens the database described by the DB_* environment for repository tests
// and seeds the rows they depend on.
package postgrestest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"BlogPublisher/database/postgres"
	"BlogPublisher/pkg/utils"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var ids = utils.New()

// Open skips the test when DB_HOST is unset, otherwise connects and applies database/migrations.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set")
	}

	db, err := postgres.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.ApplyMigrations(db, migrationsDir()))
	return db
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

func NewID(t *testing.T) string {
	t.Helper()
	id, err := ids.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	return id
}

// SeedUser inserts a user and removes it, with every blog it authored, when the test ends.
func SeedUser(t *testing.T, db *sqlx.DB, name string) string {
	t.Helper()
	id := NewID(t)

	db.MustExec(`INSERT INTO users (id, email, name, password, role) VALUES ($1, $2, $3, 'x', 'user')`,
		id, id+"@example.com", name)
	t.Cleanup(func() {
		db.MustExec(`DELETE FROM blog_likes WHERE user_id = $1`, id)
		db.MustExec(`DELETE FROM blog_comments WHERE user_id = $1`, id)
		db.MustExec(`DELETE FROM blogs WHERE author_id = $1`, id)
		db.MustExec(`DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

func SeedCategory(t *testing.T, db *sqlx.DB, name string) string {
	t.Helper()
	id := NewID(t)

	db.MustExec(`INSERT INTO categories (id, name) VALUES ($1, $2)`, id, name+"-"+id)
	t.Cleanup(func() {
		db.MustExec(`DELETE FROM categories WHERE id = $1`, id)
	})
	return id
}

// SeedBlog inserts a blog row directly, bypassing any repository.
func SeedBlog(t *testing.T, db *sqlx.DB, authorID string, published bool, createdAt time.Time) string {
	t.Helper()
	id := NewID(t)

	db.MustExec(`INSERT INTO blogs (id, title, content, author_id, is_published, created_at, slug)
		VALUES ($1, $2, 'content', $3, $4, $5, $6)`,
		id, "Blog "+id, authorID, published, createdAt, "blog-"+id)
	return id
}

func SeedComment(t *testing.T, db *sqlx.DB, blogID, userID string, deleted bool) {
	t.Helper()
	db.MustExec(`INSERT INTO blog_comments (id, blog_id, user_id, content, is_deleted) VALUES ($1, $2, $3, 'nice', $4)`,
		NewID(t), blogID, userID, deleted)
}
