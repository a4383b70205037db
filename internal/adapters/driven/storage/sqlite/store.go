package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/horizon/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// library store interface through a wrapper type.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.horizon/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".horizon", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// WAL for concurrent readers; foreign keys must be set per connection.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
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

// LibraryStore returns a LibraryStore interface backed by this store.
func (s *Store) LibraryStore() driven.LibraryStore {
	return &libraryStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
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
		// Extract version number (e.g., "001_library.up.sql" -> 1)
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
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Library Store ====================

// libraryStore implements driven.LibraryStore.
//
// Entity kinds and facets are stored in canonical form; records naming an
// unknown kind or facet are not stored. Insertion order is kept in a
// position column and restored on load.
type libraryStore struct {
	store *Store
}

var _ driven.LibraryStore = (*libraryStore)(nil)

// LoadSnapshot reads every stored record.
func (s *libraryStore) LoadSnapshot(ctx context.Context) (*domain.RawSnapshot, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	snap := &domain.RawSnapshot{}
	if snap.Terms, err = loadTerms(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Documents, err = loadDocuments(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Derived, err = loadDerived(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Taggings, err = loadTaggings(ctx, tx); err != nil {
		return nil, err
	}
	return snap, nil
}

// ReplaceSnapshot atomically replaces every stored record.
func (s *libraryStore) ReplaceSnapshot(ctx context.Context, snapshot *domain.RawSnapshot) error {
	if snapshot == nil {
		return domain.ErrInvalidSnapshot
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"entity_tags", "derived_entities", "document_shares", "documents", "terms"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertTerms(ctx, tx, snapshot.Terms); err != nil {
		return err
	}
	if err := insertDocuments(ctx, tx, snapshot.Documents); err != nil {
		return err
	}
	if err := insertDerived(ctx, tx, snapshot.Derived); err != nil {
		return err
	}
	if err := insertTaggings(ctx, tx, snapshot.Taggings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// DeleteDocument removes a document. Shares, tags and derived entities are
// removed by cascade.
func (s *libraryStore) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Inserts ====================

func insertTerms(ctx context.Context, tx *sql.Tx, terms []domain.RawTerm) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO terms (facet, id, display_name, position) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing term insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range terms {
		facet, ok := domain.ParseFacetKind(t.Facet)
		if !ok || strings.TrimSpace(t.ID) == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, string(facet), strings.TrimSpace(t.ID), t.DisplayName, i); err != nil {
			return fmt.Errorf("inserting term %s/%s: %w", facet, t.ID, err)
		}
	}
	return nil
}

func insertDocuments(ctx context.Context, tx *sql.Tx, docs []domain.RawDocument) error {
	docStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO documents
			(id, title, summary, owner_id, visibility, created_at, updated_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer docStmt.Close()

	shareStmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO document_shares (document_id, user_id, position) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing share insert: %w", err)
	}
	defer shareStmt.Close()

	for i, d := range docs {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			continue
		}
		result, err := docStmt.ExecContext(ctx, id, d.Title, d.Summary, d.OwnerID, d.Visibility,
			formatTime(d.CreatedAt), formatTime(d.UpdatedAt), i)
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", id, err)
		}
		// A duplicate id keeps the first document and its shares.
		if n, _ := result.RowsAffected(); n == 0 {
			continue
		}
		for j, user := range d.SharedWith {
			user = strings.TrimSpace(user)
			if user == "" {
				continue
			}
			if _, err := shareStmt.ExecContext(ctx, id, user, j); err != nil {
				return fmt.Errorf("inserting share %s/%s: %w", id, user, err)
			}
		}
	}
	return nil
}

func insertDerived(ctx context.Context, tx *sql.Tx, derived []domain.RawDerived) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO derived_entities
			(kind, id, name, text, derived_from, created_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing derived insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range derived {
		kind, ok := domain.ParseEntityKind(e.Kind)
		if !ok || !kind.IsDerived() || strings.TrimSpace(e.ID) == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, string(kind), strings.TrimSpace(e.ID), e.Name, e.Text,
			strings.TrimSpace(e.DerivedFrom), formatTime(e.CreatedAt), i); err != nil {
			return fmt.Errorf("inserting %s %s: %w", kind, e.ID, err)
		}
	}
	return nil
}

func insertTaggings(ctx context.Context, tx *sql.Tx, taggings []domain.RawTagging) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO entity_tags (entity_kind, entity_id, facet, term_id, position)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing tag insert: %w", err)
	}
	defer stmt.Close()

	for i, tg := range taggings {
		kind, ok := domain.ParseEntityKind(tg.EntityKind)
		if !ok {
			continue
		}
		facet, ok := domain.ParseFacetKind(tg.Facet)
		if !ok || strings.TrimSpace(tg.TermID) == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, string(kind), strings.TrimSpace(tg.EntityID), string(facet),
			strings.TrimSpace(tg.TermID), i); err != nil {
			return fmt.Errorf("inserting tag %s/%s: %w", tg.EntityID, tg.TermID, err)
		}
	}
	return nil
}

// ==================== Loads ====================

func loadTerms(ctx context.Context, tx *sql.Tx) ([]domain.RawTerm, error) {
	rows, err := tx.QueryContext(ctx, "SELECT facet, id, display_name FROM terms ORDER BY position, facet, id")
	if err != nil {
		return nil, fmt.Errorf("querying terms: %w", err)
	}
	defer rows.Close()

	var terms []domain.RawTerm
	for rows.Next() {
		var t domain.RawTerm
		if err := rows.Scan(&t.Facet, &t.ID, &t.DisplayName); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

func loadDocuments(ctx context.Context, tx *sql.Tx) ([]domain.RawDocument, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, title, summary, owner_id, visibility, created_at, updated_at
		FROM documents ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}

	var docs []domain.RawDocument
	index := make(map[string]int)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		index[d.ID] = len(docs)
		docs = append(docs, *d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	shares, err := tx.QueryContext(ctx,
		"SELECT document_id, user_id FROM document_shares ORDER BY document_id, position")
	if err != nil {
		return nil, fmt.Errorf("querying shares: %w", err)
	}
	defer shares.Close()

	for shares.Next() {
		var docID, userID string
		if err := shares.Scan(&docID, &userID); err != nil {
			return nil, fmt.Errorf("scanning share: %w", err)
		}
		if i, ok := index[docID]; ok {
			docs[i].SharedWith = append(docs[i].SharedWith, userID)
		}
	}
	return docs, shares.Err()
}

func loadDerived(ctx context.Context, tx *sql.Tx) ([]domain.RawDerived, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT kind, id, name, text, derived_from, created_at
		FROM derived_entities ORDER BY position, kind, id`)
	if err != nil {
		return nil, fmt.Errorf("querying derived entities: %w", err)
	}
	defer rows.Close()

	var derived []domain.RawDerived
	for rows.Next() {
		var e domain.RawDerived
		var createdAt string
		if err := rows.Scan(&e.Kind, &e.ID, &e.Name, &e.Text, &e.DerivedFrom, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning derived entity: %w", err)
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("derived entity %s: %w", e.ID, err)
		}
		derived = append(derived, e)
	}
	return derived, rows.Err()
}

func loadTaggings(ctx context.Context, tx *sql.Tx) ([]domain.RawTagging, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT entity_kind, entity_id, facet, term_id FROM entity_tags ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var taggings []domain.RawTagging
	for rows.Next() {
		var tg domain.RawTagging
		if err := rows.Scan(&tg.EntityKind, &tg.EntityID, &tg.Facet, &tg.TermID); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		taggings = append(taggings, tg)
	}
	return taggings, rows.Err()
}

// ==================== Helpers ====================

// scanDocument scans a document row without its shares.
func scanDocument(rows *sql.Rows) (*domain.RawDocument, error) {
	var d domain.RawDocument
	var createdAt, updatedAt string

	if err := rows.Scan(&d.ID, &d.Title, &d.Summary, &d.OwnerID, &d.Visibility, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	var err error
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("document %s: %w", d.ID, err)
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("document %s: %w", d.ID, err)
	}
	return &d, nil
}

// formatTime stores the zero time as an empty string.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Join(domain.ErrInvalidInput, err)
	}
	return t, nil
}
