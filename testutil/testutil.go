// Package testutil builds synthetic catalogs for tests.
//
// This package is intended for use in tests and benchmarks only. It is the
// sole place in the module that writes catalog artifacts; the engine
// itself never does.
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	_ "github.com/tursodatabase/go-libsql"
	bolt "go.etcd.io/bbolt"

	"github.com/akkyie/xcdoc/codec"
	"github.com/akkyie/xcdoc/document"
	"github.com/akkyie/xcdoc/ident"
	"github.com/akkyie/xcdoc/lang"
	"github.com/akkyie/xcdoc/metaindex"
)

// Compression selects the chunk file codec for a synthetic catalog.
type Compression int

const (
	CompressNone Compression = iota
	CompressLZ4
	CompressZstd
)

// Doc describes one document of a synthetic catalog.
type Doc struct {
	Path     string
	Language lang.Language
	// Document is the payload stored in a chunk; a zero value gets a
	// Document whose title is the path's base name.
	Document *document.Document
	// ChunkID groups documents into chunk files; zero means chunk 1.
	ChunkID int64
	// Text is the metadata display text; empty omits the metadata line.
	Text     string
	PageType metaindex.PageType
	// Inline stores the payload in the reference database's data table
	// instead of a chunk file.
	Inline bool
	// PathOnly records the path in the path index without any content.
	PathOnly bool
}

// Catalog describes a synthetic catalog to build.
type Catalog struct {
	Docs        []Doc
	Compression Compression
}

// Build writes a complete catalog under dir. Path-index node IDs are
// assigned in Docs order, so scan order in tests follows slice order.
func Build(tb testing.TB, dir string, cat Catalog) {
	tb.Helper()

	buildPathIndex(tb, dir, cat.Docs)
	buildRefs(tb, dir, cat)
	buildMetadata(tb, dir, cat.Docs)
}

func buildPathIndex(tb testing.TB, dir string, docs []Doc) {
	tb.Helper()

	path := filepath.Join(dir, "index", "store.db")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("create index dir: %v", err)
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		tb.Fatalf("open path store: %v", err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		paths, err := tx.CreateBucketIfNotExists([]byte("paths"))
		if err != nil {
			return err
		}
		hashes, err := tx.CreateBucketIfNotExists([]byte("path_hash"))
		if err != nil {
			return err
		}
		for i, doc := range docs {
			var key [4]byte
			binary.BigEndian.PutUint32(key[:], uint32(i+1))
			if err := paths.Put(key[:], []byte(doc.Path)); err != nil {
				return err
			}
			h := fnv.New64a()
			h.Write([]byte(doc.Path))
			var hkey [8]byte
			binary.BigEndian.PutUint64(hkey[:], h.Sum64())
			if err := hashes.Put(hkey[:], key[:]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		tb.Fatalf("populate path store: %v", err)
	}
}

func buildRefs(tb testing.TB, dir string, cat Catalog) {
	tb.Helper()

	db, err := sql.Open("libsql", "file:"+filepath.Join(dir, "cache.db"))
	if err != nil {
		tb.Fatalf("open reference database: %v", err)
	}
	defer db.Close()

	for _, stmt := range []string{
		`CREATE TABLE refs (identifier TEXT PRIMARY KEY, chunk_id INTEGER, offset INTEGER, length INTEGER)`,
		`CREATE TABLE data (identifier TEXT PRIMARY KEY, blob BLOB, is_compressed INTEGER)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			tb.Fatalf("create table: %v", err)
		}
	}

	chunks := make(map[int64][]byte)
	for _, doc := range cat.Docs {
		if doc.PathOnly {
			continue
		}
		payload := marshalDoc(tb, doc)
		identifier := ident.Derive(doc.Path, doc.Language)

		if doc.Inline {
			if _, err := db.Exec(
				`INSERT INTO data (identifier, blob, is_compressed) VALUES (?, ?, 0)`,
				identifier, payload,
			); err != nil {
				tb.Fatalf("insert inline blob: %v", err)
			}
			continue
		}

		chunkID := doc.ChunkID
		if chunkID == 0 {
			chunkID = 1
		}
		offset := len(chunks[chunkID])
		chunks[chunkID] = append(chunks[chunkID], payload...)
		if _, err := db.Exec(
			`INSERT INTO refs (identifier, chunk_id, offset, length) VALUES (?, ?, ?, ?)`,
			identifier, chunkID, offset, len(payload),
		); err != nil {
			tb.Fatalf("insert reference: %v", err)
		}
	}

	fsDir := filepath.Join(dir, "fs")
	if err := os.MkdirAll(fsDir, 0o755); err != nil {
		tb.Fatalf("create chunk dir: %v", err)
	}
	for chunkID, data := range chunks {
		out := compress(tb, data, cat.Compression)
		path := filepath.Join(fsDir, strconv.FormatInt(chunkID, 10))
		if err := os.WriteFile(path, out, 0o644); err != nil {
			tb.Fatalf("write chunk %d: %v", chunkID, err)
		}
	}
}

func buildMetadata(tb testing.TB, dir string, docs []Doc) {
	tb.Helper()

	files := make(map[lang.Language]*bytes.Buffer)
	for _, doc := range docs {
		if doc.Text == "" {
			continue
		}
		buf, ok := files[doc.Language]
		if !ok {
			buf = &bytes.Buffer{}
			files[doc.Language] = buf
		}
		fmt.Fprintf(buf, "%s\x00%d\x00%s\x00\n",
			doc.Text, doc.PageType, ident.Derive(doc.Path, doc.Language))
	}
	for l, buf := range files {
		path := filepath.Join(dir, l.MetadataFile())
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			tb.Fatalf("write metadata file: %v", err)
		}
	}
}

func marshalDoc(tb testing.TB, doc Doc) []byte {
	tb.Helper()

	d := doc.Document
	if d == nil {
		base := doc.Path
		if i := bytes.LastIndexByte([]byte(base), '/'); i >= 0 {
			base = base[i+1:]
		}
		d = &document.Document{Title: base}
	}
	payload, err := codec.Default.Marshal(d)
	if err != nil {
		tb.Fatalf("marshal document: %v", err)
	}
	return payload
}

func compress(tb testing.TB, data []byte, c Compression) []byte {
	tb.Helper()

	switch c {
	case CompressLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			tb.Fatalf("lz4 compress: %v", err)
		}
		if err := w.Close(); err != nil {
			tb.Fatalf("lz4 close: %v", err)
		}
		return buf.Bytes()
	case CompressZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			tb.Fatalf("zstd writer: %v", err)
		}
		out := enc.EncodeAll(data, nil)
		enc.Close()
		return out
	default:
		return data
	}
}
