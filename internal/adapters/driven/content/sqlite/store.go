package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driven/content/sqlite/migrations"
	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driven"
)

// Ensure Store implements the content search interface.
var _ driven.ContentSearcher = (*Store)(nil)

// BlogPost is a locally mirrored blog post. Content is stored for
// matching but never returned in search results.
type BlogPost struct {
	ID        string
	Title     string
	Excerpt   string
	Content   string
	CreatedAt time.Time
}

// Store is a SQLite-backed mirror of the site's blog posts, used for
// offline search and as the target of the seed command.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (and migrates) the content mirror at the specified
// data directory. If dataDir is empty, defaults to ~/.cherche/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".cherche", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "content.db")

	// WAL mode for concurrent readers during a seed run.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if err := s.backfillSearchText(); err != nil {
		db.Close()
		return nil, fmt.Errorf("backfilling search text: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Search returns posts whose title, excerpt or content contains the
// term, case-insensitively, newest first. Matching runs over a folded
// shadow column because SQLite LIKE only folds case for ASCII, which
// would miss uppercase accented French ("Épuisement" vs "épuisement").
func (s *Store) Search(ctx context.Context, term string) ([]domain.RemoteDocument, error) {
	pattern := "%" + escapeLike(fold(term)) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, excerpt, created_at
		FROM blog_posts
		WHERE search_text LIKE ? ESCAPE '\'
		ORDER BY created_at DESC
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("querying blog posts: %w", err)
	}
	defer rows.Close()

	var docs []domain.RemoteDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.RemoteDocument
		var createdAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Excerpt, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning blog post: %w", err)
		}
		if createdAt.Valid {
			doc.CreatedAt = createdAt.Time
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blog posts: %w", err)
	}

	return docs, nil
}

// SavePost stores or updates a mirrored post.
func (s *Store) SavePost(ctx context.Context, post BlogPost) error {
	if post.ID == "" || post.Title == "" {
		return domain.ErrInvalidInput
	}

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blog_posts (id, title, excerpt, content, created_at, search_text)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			excerpt = excluded.excerpt,
			content = excluded.content,
			created_at = excluded.created_at,
			search_text = excluded.search_text
	`, post.ID, post.Title, post.Excerpt, post.Content, post.CreatedAt,
		fold(post.Title+"\n"+post.Excerpt+"\n"+post.Content))

	if err != nil {
		return fmt.Errorf("saving blog post: %w", err)
	}
	return nil
}

// CountPosts returns the number of mirrored posts.
func (s *Store) CountPosts(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blog_posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting blog posts: %w", err)
	}
	return count, nil
}

// DeletePost removes a mirrored post.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting blog post: %w", err)
	}
	return nil
}

// backfillSearchText folds rows written before the search_text column
// existed. SavePost always fills the column, so an empty value marks an
// unfolded row (title is never empty).
func (s *Store) backfillSearchText() error {
	rows, err := s.db.Query(`
		SELECT id, title, excerpt, content
		FROM blog_posts
		WHERE search_text = ''
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	type pending struct {
		id, text string
	}
	var updates []pending
	for rows.Next() {
		var id, title, excerpt, content string
		if err := rows.Scan(&id, &title, &excerpt, &content); err != nil {
			return err
		}
		updates = append(updates, pending{id, fold(title + "\n" + excerpt + "\n" + content)})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, u := range updates {
		if _, err := s.db.Exec(
			"UPDATE blog_posts SET search_text = ? WHERE id = ?", u.text, u.id); err != nil {
			return err
		}
	}
	return nil
}

// escapeLike escapes LIKE wildcards in a user-supplied term.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// fold lowercases and strips diacritics so matching is case- and
// accent-insensitive beyond ASCII. Punctuation is kept; substring
// semantics stay exact.
func fold(s string) string {
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(strip, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
