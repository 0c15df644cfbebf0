// Package metaindex reads the catalog's per-language flat metadata files.
//
// Each file holds one record per line, with NUL-separated fields:
// display text, page-type code, identifier. Files are memory-mapped and
// scanned byte-wise; a batch lookup fans out across language files
// concurrently since the scans share no state.
package metaindex

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/akkyie/xcdoc/internal/mmap"
	"github.com/akkyie/xcdoc/lang"
)

// Record is one metadata entry joined to a document identifier.
type Record struct {
	Identifier string
	Text       string
	PageType   PageType
	Language   lang.Language
}

// Index looks up metadata records by identifier.
type Index struct {
	dir    string
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

// New returns an Index over the metadata files in dir.
func New(dir string, opts ...Option) *Index {
	ix := &Index{dir: dir, logger: slog.Default()}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Lookup returns the metadata records for the requested identifiers.
// If language is non-nil only that language's file is scanned. Identifiers
// absent from every file are simply missing from the result; a missing or
// unreadable file contributes nothing rather than failing the batch.
func (ix *Index) Lookup(ctx context.Context, identifiers []string, language *lang.Language) (map[string]Record, error) {
	if len(identifiers) == 0 {
		return map[string]Record{}, nil
	}
	want := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		want[id] = struct{}{}
	}

	languages := lang.All
	if language != nil {
		languages = []lang.Language{*language}
	}

	var (
		mu     sync.Mutex
		merged = make(map[string]Record, len(identifiers))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, l := range languages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records := ix.scanFile(l, want)
			mu.Lock()
			for id, rec := range records {
				merged[id] = rec
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

// scanFile scans one language's file for the wanted identifiers. Malformed
// lines are skipped; a file that cannot be mapped yields no records.
func (ix *Index) scanFile(l lang.Language, want map[string]struct{}) map[string]Record {
	path := filepath.Join(ix.dir, l.MetadataFile())
	m, err := mmap.Open(path)
	if err != nil {
		ix.logger.Debug("metadata file unavailable", "path", path, "error", err)
		return nil
	}
	defer m.Close()

	records := make(map[string]Record)
	data := m.Bytes()
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		id, rec, ok := parseLine(line, l)
		if !ok {
			continue
		}
		if _, wanted := want[id]; !wanted {
			continue
		}
		records[id] = rec
	}
	return records
}

// parseLine splits one NUL-separated line into a record. Lines need at
// least three fields; anything past the third is ignored.
func parseLine(line []byte, l lang.Language) (string, Record, bool) {
	fields := bytes.SplitN(line, []byte{0}, 4)
	if len(fields) < 3 {
		return "", Record{}, false
	}
	code, err := strconv.ParseUint(string(fields[1]), 10, 8)
	if err != nil {
		return "", Record{}, false
	}
	id := string(fields[2])
	return id, Record{
		Identifier: id,
		Text:       string(fields[0]),
		PageType:   PageType(code),
		Language:   l,
	}, true
}
