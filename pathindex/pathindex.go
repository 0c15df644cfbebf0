// Package pathindex wraps the catalog's embedded ordered key-value store
// and implements keyword search over the stored paths.
//
// The store holds two buckets: "paths" maps a 4-byte big-endian node ID to
// a UTF-8 path string, and "path_hash" maps an FNV-64a hash of the path
// back to the node ID for reverse lookup. The index never writes; a single
// read transaction opened at construction time is reused for every call.
package pathindex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/akkyie/xcdoc/ident"
	"github.com/akkyie/xcdoc/lang"
)

const (
	pathsBucket = "paths"
	hashBucket  = "path_hash"

	// maxPathLen bounds the value size of a sane path record; anything
	// larger is treated as a malformed entry and skipped.
	maxPathLen = 4096

	// overflowFactor caps scan cost: once overflow exceeds limit times
	// this factor the scan stops early and reports truncation.
	overflowFactor = 5000
)

// ErrNoKeywords is returned when a search's keyword list normalizes to
// nothing. It is raised before any store access.
var ErrNoKeywords = errors.New("pathindex: no keywords")

// ErrOpen indicates the store file could not be opened.
type ErrOpen struct {
	Path  string
	cause error
}

func (e *ErrOpen) Error() string {
	return fmt.Sprintf("pathindex: open store %s: %v", e.Path, e.cause)
}

func (e *ErrOpen) Unwrap() error { return e.cause }

// ErrMissingBucket indicates the store does not have the expected layout.
type ErrMissingBucket struct {
	Bucket string
}

func (e *ErrMissingBucket) Error() string {
	return fmt.Sprintf("pathindex: store is missing bucket %q", e.Bucket)
}

// Index is a read-only view over the path store.
type Index struct {
	db     *bolt.DB
	tx     *bolt.Tx
	logger *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(ix *Index) {
		if l != nil {
			ix.logger = l
		}
	}
}

// Open opens the store file read-only and pins one read transaction for
// the lifetime of the Index. Callers must not issue overlapping calls
// against the same Index from multiple goroutines.
func Open(path string, opts ...Option) (*Index, error) {
	db, err := bolt.Open(path, 0o400, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, &ErrOpen{Path: path, cause: err}
	}

	tx, err := db.Begin(false)
	if err != nil {
		db.Close()
		return nil, &ErrOpen{Path: path, cause: err}
	}

	ix := &Index{db: db, tx: tx, logger: slog.Default()}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// Close releases the pinned transaction and the store.
func (ix *Index) Close() error {
	if ix.tx != nil {
		if err := ix.tx.Rollback(); err != nil {
			ix.db.Close()
			return err
		}
		ix.tx = nil
	}
	return ix.db.Close()
}

// PathForID returns the path stored under the given node ID.
func (ix *Index) PathForID(id uint32) (string, bool, error) {
	b := ix.tx.Bucket([]byte(pathsBucket))
	if b == nil {
		return "", false, &ErrMissingBucket{Bucket: pathsBucket}
	}
	var key [4]byte
	binary.BigEndian.PutUint32(key[:], id)
	v := b.Get(key[:])
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

// IDForPath resolves a path back to its node ID via the hash bucket.
func (ix *Index) IDForPath(path string) (uint32, bool, error) {
	hb := ix.tx.Bucket([]byte(hashBucket))
	if hb == nil {
		return 0, false, &ErrMissingBucket{Bucket: hashBucket}
	}
	h := fnv.New64a()
	h.Write([]byte(path))
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], h.Sum64())
	v := hb.Get(key[:])
	if len(v) != 4 {
		return 0, false, nil
	}
	id := binary.BigEndian.Uint32(v)

	// The hash bucket can collide; confirm against the primary bucket.
	stored, ok, err := ix.PathForID(id)
	if err != nil || !ok || stored != path {
		return 0, false, err
	}
	return id, true, nil
}

// HasPath reports whether the exact path exists in the store.
func (ix *Index) HasPath(path string) (bool, error) {
	_, ok, err := ix.IDForPath(path)
	return ok, err
}

// Result is the outcome of one Search call.
type Result struct {
	// Hits holds up to limit hits, best rank first.
	Hits []Hit
	// OverflowCount is the number of matches that were evaluated but not
	// retained. If Truncated is set it saturates at the early-stop point.
	OverflowCount int
	// Truncated reports that the scan stopped before the end of the store.
	Truncated bool
}

// Search scans every path in ascending node-ID order and returns the
// best-ranked hits for the given keywords. All keywords must occur as
// case-folded substrings of a path for it to match. If language is
// non-nil only paths of that language are considered.
//
// The first scan-order occurrence of an identifier wins; later duplicates
// are dropped before ranking. Scan order is the catalog's insertion order,
// so duplicate handling is deliberately order-dependent.
func (ix *Index) Search(keywords []string, language *lang.Language, limit int) (*Result, error) {
	folded, total := foldKeywords(keywords)
	if len(folded) == 0 {
		return nil, ErrNoKeywords
	}
	if limit <= 0 {
		limit = 1
	}

	b := ix.tx.Bucket([]byte(pathsBucket))
	if b == nil {
		return nil, &ErrMissingBucket{Bucket: pathsBucket}
	}
	c := b.Cursor()

	var (
		heap     = newTopK(limit)
		seen     = make(map[string]struct{}, limit*2)
		overflow = 0
		maxOver  = limit * overflowFactor
		result   = &Result{}
	)

	for k, v := c.First(); k != nil; k, v = c.Next() {
		if len(k) != 4 || len(v) == 0 || len(v) > maxPathLen {
			ix.logger.Debug("skipping malformed path record", "key_len", len(k), "value_len", len(v))
			continue
		}

		l, ok := lang.Classify(v)
		if !ok {
			continue
		}
		if language != nil && l != *language {
			continue
		}

		lower := bytes.ToLower(v)
		if !containsAll(lower, folded) {
			continue
		}

		path := string(v)
		hit := Hit{
			Path:       path,
			Language:   l,
			Identifier: ident.Derive(path, l),
			Rank:       rankPath(lower, l, folded, total),
		}
		if _, dup := seen[hit.Identifier]; dup {
			continue
		}
		seen[hit.Identifier] = struct{}{}

		admitted, evicted := heap.offer(hit)
		if !admitted || evicted {
			overflow++
		}
		if overflow > maxOver {
			result.Truncated = true
			break
		}
	}

	result.Hits = heap.sorted()
	result.OverflowCount = overflow
	return result, nil
}

func containsAll(lower []byte, keywords [][]byte) bool {
	for _, kw := range keywords {
		if !bytes.Contains(lower, kw) {
			return false
		}
	}
	return true
}

func foldKeywords(keywords []string) ([][]byte, int) {
	folded := make([][]byte, 0, len(keywords))
	total := 0
	for _, kw := range keywords {
		b := bytes.TrimSpace(bytes.ToLower([]byte(kw)))
		if len(b) == 0 {
			continue
		}
		folded = append(folded, b)
		total += len(b)
	}
	return folded, total
}

// sortHits orders hits best-first using the full rank tuple.
func sortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].betterThan(hits[j])
	})
}
