package xcdoc

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/akkyie/xcdoc/chunk"
	"github.com/akkyie/xcdoc/document"
	"github.com/akkyie/xcdoc/ident"
	"github.com/akkyie/xcdoc/lang"
	"github.com/akkyie/xcdoc/metaindex"
	"github.com/akkyie/xcdoc/pathindex"
)

// Catalog layout, relative to the base directory.
const (
	storeFile = "index/store.db"
	refsFile  = "cache.db"
	chunksDir = "fs"
)

// Catalog is a read-only handle to one documentation catalog.
//
// A Catalog is not safe for concurrent use; its underlying store handles
// expect one call to finish before the next begins. Open one Catalog per
// goroutine if parallel access is needed.
type Catalog struct {
	dir    string
	paths  *pathindex.Index
	refs   *chunk.RefTable
	chunks *chunk.Store
	meta   *metaindex.Index
	logger *Logger
	limit  int
}

// Open opens the catalog rooted at dir. The base directory must already
// be resolved; xcdoc does not probe the host system for catalogs.
func Open(dir string, opts ...Option) (*Catalog, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.WithCatalog(dir)

	paths, err := pathindex.Open(filepath.Join(dir, storeFile), pathindex.WithLogger(logger.Logger))
	if err != nil {
		return nil, err
	}

	refs, err := chunk.OpenRefTable(filepath.Join(dir, refsFile))
	if err != nil {
		paths.Close()
		return nil, err
	}

	return &Catalog{
		dir:   dir,
		paths: paths,
		refs:  refs,
		chunks: chunk.NewStore(filepath.Join(dir, chunksDir),
			chunk.WithCodec(o.codec), chunk.WithLogger(logger.Logger)),
		meta:   metaindex.New(dir, metaindex.WithLogger(logger.Logger)),
		logger: logger,
		limit:  o.searchLimit,
	}, nil
}

// Close releases the catalog's store handles.
func (c *Catalog) Close() error {
	var firstErr error
	if err := c.paths.Close(); err != nil {
		firstErr = err
	}
	if err := c.refs.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Document resolves an identifier or a path to its decoded document.
//
// If the argument parses as an identifier it is used directly. Otherwise
// it is treated as a path: the owning language is classified from the
// path's namespace, or every language is probed in priority order when
// the path carries no namespace prefix.
func (c *Catalog) Document(ctx context.Context, identifierOrPath string) (*document.Document, error) {
	if _, ok := ident.Parse(identifierOrPath); ok {
		return c.documentByIdentifier(ctx, identifierOrPath)
	}

	if l, ok := lang.Classify([]byte(identifierOrPath)); ok {
		return c.documentByIdentifier(ctx, ident.Derive(identifierOrPath, l))
	}

	// No namespace prefix; probe the identifier variants per language.
	for _, l := range lang.All {
		doc, err := c.documentByIdentifier(ctx, ident.Derive(identifierOrPath, l))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return doc, err
	}
	return nil, ErrNotFound
}

func (c *Catalog) documentByIdentifier(ctx context.Context, identifier string) (*document.Document, error) {
	logger := c.logger.WithIdentifier(identifier)

	ref, ok, err := c.refs.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if ok {
		logger.Debug("extracting document from chunk", "chunk_id", ref.ChunkID)
		return c.chunks.ExtractOne(ctx, ref)
	}

	// Small payloads may live inline in the reference database.
	blob, ok, err := c.refs.GetInline(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Debug("no document for identifier")
		return nil, ErrNotFound
	}
	logger.Debug("decoding inline document")
	return c.chunks.DecodeBlob(identifier, blob)
}

// SearchHit is one enriched search result.
type SearchHit struct {
	Path       string
	Language   lang.Language
	Identifier string
	// Title is the hit's display text from the metadata index, falling
	// back to the decoded document title when no metadata record exists.
	Title string
	// PageType classifies the hit's page; zero when unknown.
	PageType metaindex.PageType
}

// SearchResult is the outcome of one Search call.
type SearchResult struct {
	Hits []SearchHit
	// OverflowCount is the number of matches evaluated but not retained.
	OverflowCount int
	// Truncated reports that the scan was cut short by the overflow cap.
	Truncated bool
}

// Search returns the best-ranked documents matching every keyword, up to
// limit hits. A non-positive limit selects the configured default. If
// language is non-nil only that language's documents are considered.
func (c *Catalog) Search(ctx context.Context, keywords []string, language *lang.Language, limit int) (*SearchResult, error) {
	if limit <= 0 {
		limit = c.limit
	}

	found, err := c.paths.Search(keywords, language, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(found.Hits))
	for i, hit := range found.Hits {
		ids[i] = hit.Identifier
	}

	records, err := c.meta.Lookup(ctx, ids, language)
	if err != nil {
		return nil, fmt.Errorf("xcdoc: metadata lookup: %w", err)
	}

	result := &SearchResult{
		Hits:          make([]SearchHit, len(found.Hits)),
		OverflowCount: found.OverflowCount,
		Truncated:     found.Truncated,
	}
	var missing []string
	for i, hit := range found.Hits {
		sh := SearchHit{
			Path:       hit.Path,
			Language:   hit.Language,
			Identifier: hit.Identifier,
		}
		if rec, ok := records[hit.Identifier]; ok {
			sh.Title = rec.Text
			sh.PageType = rec.PageType
		} else {
			missing = append(missing, hit.Identifier)
		}
		result.Hits[i] = sh
	}

	if len(missing) > 0 {
		if err := c.fillTitles(ctx, missing, result.Hits); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// fillTitles decodes the documents for hits that had no metadata record
// and copies their titles in. Identifiers with no chunk reference are
// still probed for an inline payload, the same fallback Document uses.
func (c *Catalog) fillTitles(ctx context.Context, ids []string, hits []SearchHit) error {
	refs, err := c.refs.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	docs, err := c.chunks.ExtractMany(ctx, refs)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := docs[id]; ok {
			continue
		}
		blob, ok, err := c.refs.GetInline(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		doc, err := c.chunks.DecodeBlob(id, blob)
		if err != nil {
			continue
		}
		docs[id] = doc
	}
	for i := range hits {
		if doc, ok := docs[hits[i].Identifier]; ok && hits[i].Title == "" {
			hits[i].Title = doc.Title
		}
	}
	return nil
}

// Metadata returns the metadata records for a batch of identifiers.
// Identifiers absent from every language file are simply missing from
// the result.
func (c *Catalog) Metadata(ctx context.Context, identifiers []string, language *lang.Language) (map[string]metaindex.Record, error) {
	return c.meta.Lookup(ctx, identifiers, language)
}

// PathForID returns the path stored under a node ID in the path index.
func (c *Catalog) PathForID(id uint32) (string, error) {
	path, ok, err := c.paths.PathForID(id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotFound
	}
	return path, nil
}

// HasPath reports whether the exact path exists in the catalog.
func (c *Catalog) HasPath(path string) (bool, error) {
	return c.paths.HasPath(path)
}
