// Package chunk resolves document identifiers to serialized bytes.
//
// A relational reference table maps an identifier to a (chunk, offset,
// length) triple; the store loads and decompresses whole chunk files,
// caches them for the life of the process, and slices out the byte range
// holding one document.
package chunk

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/tursodatabase/go-libsql"
)

// Ref locates one document's serialized form inside a chunk.
type Ref struct {
	ChunkID int64
	Offset  int64
	Length  int64
}

// ErrOpen indicates the reference database could not be opened.
type ErrOpen struct {
	Path  string
	cause error
}

func (e *ErrOpen) Error() string {
	return fmt.Sprintf("chunk: open reference database %s: %v", e.Path, e.cause)
}

func (e *ErrOpen) Unwrap() error { return e.cause }

// ErrPrepare indicates a lookup query could not be prepared.
type ErrPrepare struct {
	cause error
}

func (e *ErrPrepare) Error() string {
	return fmt.Sprintf("chunk: prepare reference query: %v", e.cause)
}

func (e *ErrPrepare) Unwrap() error { return e.cause }

// RefTable is a read-only view over the refs table.
type RefTable struct {
	db  *sql.DB
	get *sql.Stmt
}

// OpenRefTable opens the reference database read-only and prepares the
// point-lookup query. Both failures are fatal for the table as a whole;
// a missing row later is not. The database is never created or written:
// a catalog without one fails here instead of growing an empty file.
func OpenRefTable(path string) (*RefTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ErrOpen{Path: path, cause: err}
	}

	db, err := sql.Open("libsql", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &ErrOpen{Path: path, cause: err}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &ErrOpen{Path: path, cause: err}
	}

	get, err := db.Prepare(`SELECT chunk_id, offset, length FROM refs WHERE identifier = ?`)
	if err != nil {
		db.Close()
		return nil, &ErrPrepare{cause: err}
	}

	return &RefTable{db: db, get: get}, nil
}

// Close releases the prepared statement and the database handle.
func (t *RefTable) Close() error {
	if err := t.get.Close(); err != nil {
		t.db.Close()
		return err
	}
	return t.db.Close()
}

// Get returns the reference for one identifier. A missing row is a normal
// not-found, reported via the second return value.
func (t *RefTable) Get(ctx context.Context, identifier string) (Ref, bool, error) {
	var ref Ref
	err := t.get.QueryRowContext(ctx, identifier).Scan(&ref.ChunkID, &ref.Offset, &ref.Length)
	if errors.Is(err, sql.ErrNoRows) {
		return Ref{}, false, nil
	}
	if err != nil {
		return Ref{}, false, err
	}
	return ref, true, nil
}

// GetMany returns the references for a set of identifiers in one query.
// Identifiers without a row are absent from the result.
func (t *RefTable) GetMany(ctx context.Context, identifiers []string) (map[string]Ref, error) {
	if len(identifiers) == 0 {
		return map[string]Ref{}, nil
	}

	placeholders := strings.Repeat("?,", len(identifiers))
	query := fmt.Sprintf(
		`SELECT identifier, chunk_id, offset, length FROM refs WHERE identifier IN (%s)`,
		placeholders[:len(placeholders)-1],
	)
	args := make([]any, len(identifiers))
	for i, id := range identifiers {
		args[i] = id
	}

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make(map[string]Ref, len(identifiers))
	for rows.Next() {
		var (
			id  string
			ref Ref
		)
		if err := rows.Scan(&id, &ref.ChunkID, &ref.Offset, &ref.Length); err != nil {
			return nil, err
		}
		refs[id] = ref
	}
	return refs, rows.Err()
}

// GetInline returns an inline blob from the optional data table, for
// catalogs that store small payloads next to the reference instead of in
// a chunk file. The table may not exist; that is a normal not-found.
func (t *RefTable) GetInline(ctx context.Context, identifier string) ([]byte, bool, error) {
	var (
		blob       []byte
		compressed int64
	)
	err := t.db.QueryRowContext(ctx,
		`SELECT blob, is_compressed FROM data WHERE identifier = ?`, identifier,
	).Scan(&blob, &compressed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		if isMissingTable(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if compressed != 0 {
		blob, err = decompress(blob)
		if err != nil {
			return nil, false, &ErrDecompress{cause: err}
		}
	}
	return blob, true, nil
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
