package chunk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/akkyie/xcdoc/codec"
	"github.com/akkyie/xcdoc/document"
)

// ErrChunkNotFound indicates a chunk file could not be read.
type ErrChunkNotFound struct {
	ChunkID int64
	cause   error
}

func (e *ErrChunkNotFound) Error() string {
	return fmt.Sprintf("chunk: chunk %d not found: %v", e.ChunkID, e.cause)
}

func (e *ErrChunkNotFound) Unwrap() error { return e.cause }

// ErrDecompress indicates a chunk's compressed frame could not be decoded.
// It is distinct from ErrDecode so a wrong-format catalog can be told
// apart from a corrupt payload.
type ErrDecompress struct {
	ChunkID int64
	cause   error
}

func (e *ErrDecompress) Error() string {
	return fmt.Sprintf("chunk: decompress chunk %d: %v", e.ChunkID, e.cause)
}

func (e *ErrDecompress) Unwrap() error { return e.cause }

// ErrOutOfBounds indicates a reference points past the end of its
// decompressed chunk.
type ErrOutOfBounds struct {
	ChunkID   int64
	Offset    int64
	Length    int64
	ChunkSize int
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("chunk: offset out of bounds: chunk %d has %d bytes, reference wants [%d, %d)",
		e.ChunkID, e.ChunkSize, e.Offset, e.Offset+e.Length)
}

// ErrDecode indicates a sliced payload did not decode as a document.
type ErrDecode struct {
	Identifier string
	ChunkID    int64
	cause      error
}

func (e *ErrDecode) Error() string {
	if e.Identifier != "" {
		return fmt.Sprintf("chunk: decode document %s from chunk %d: %v", e.Identifier, e.ChunkID, e.cause)
	}
	return fmt.Sprintf("chunk: decode document from chunk %d: %v", e.ChunkID, e.cause)
}

func (e *ErrDecode) Unwrap() error { return e.cause }

// Store loads, decompresses and caches chunk files, and decodes document
// payloads out of them.
//
// All calls on one Store are serialized by an internal mutex so the cache
// cannot race; chunk loading is therefore not parallel within one Store.
// Separate Store instances share nothing and may be used concurrently.
// The cache never evicts: a decompressed chunk stays resident until the
// process exits, which suits one-shot command invocations.
type Store struct {
	dir    string
	codec  codec.Codec
	logger *slog.Logger

	mu    sync.Mutex
	cache map[int64][]byte
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCodec sets the payload codec. Nil selects codec.Default.
func WithCodec(c codec.Codec) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns a Store reading chunk files from dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		dir:    dir,
		codec:  codec.Default,
		logger: slog.Default(),
		cache:  make(map[int64][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractOne decodes the document a single reference points at.
func (s *Store) ExtractOne(ctx context.Context, ref Ref) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadChunkLocked(ctx, ref.ChunkID)
	if err != nil {
		return nil, err
	}
	return s.decodeLocked("", ref, data)
}

// ExtractMany decodes the documents for a batch of references. References
// are grouped by chunk first so each distinct chunk is loaded and
// decompressed at most once per call. Per-document decode failures are
// logged and dropped from the result rather than failing the batch.
func (s *Store) ExtractMany(ctx context.Context, refs map[string]Ref) (map[string]*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byChunk := make(map[int64][]string)
	for id, ref := range refs {
		byChunk[ref.ChunkID] = append(byChunk[ref.ChunkID], id)
	}

	docs := make(map[string]*document.Document, len(refs))
	for chunkID, ids := range byChunk {
		data, err := s.loadChunkLocked(ctx, chunkID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			doc, err := s.decodeLocked(id, refs[id], data)
			if err != nil {
				s.logger.Warn("dropping undecodable document", "identifier", id, "error", err)
				continue
			}
			docs[id] = doc
		}
	}
	return docs, nil
}

// loadChunkLocked returns the decompressed bytes for a chunk, reading and
// decompressing it on first use. Callers must hold s.mu.
func (s *Store) loadChunkLocked(ctx context.Context, chunkID int64) ([]byte, error) {
	if data, ok := s.cache[chunkID]; ok {
		return data, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, strconv.FormatInt(chunkID, 10))
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrChunkNotFound{ChunkID: chunkID, cause: err}
	}

	data, err := decompress(raw)
	if err != nil {
		return nil, &ErrDecompress{ChunkID: chunkID, cause: err}
	}

	s.logger.Debug("chunk loaded", "chunk_id", chunkID, "raw_bytes", len(raw), "bytes", len(data))
	s.cache[chunkID] = data
	return data, nil
}

// decodeLocked slices one reference's byte range out of a decompressed
// chunk and decodes it. Callers must hold s.mu.
func (s *Store) decodeLocked(identifier string, ref Ref, data []byte) (*document.Document, error) {
	if ref.Offset < 0 || ref.Length < 0 || ref.Offset+ref.Length > int64(len(data)) {
		return nil, &ErrOutOfBounds{
			ChunkID:   ref.ChunkID,
			Offset:    ref.Offset,
			Length:    ref.Length,
			ChunkSize: len(data),
		}
	}

	var doc document.Document
	if err := s.codec.Unmarshal(data[ref.Offset:ref.Offset+ref.Length], &doc); err != nil {
		return nil, &ErrDecode{Identifier: identifier, ChunkID: ref.ChunkID, cause: err}
	}
	return &doc, nil
}

// DecodeBlob decodes a standalone payload, e.g. an inline blob from the
// reference database.
func (s *Store) DecodeBlob(identifier string, blob []byte) (*document.Document, error) {
	var doc document.Document
	if err := s.codec.Unmarshal(blob, &doc); err != nil {
		return nil, &ErrDecode{Identifier: identifier, cause: err}
	}
	return &doc, nil
}
