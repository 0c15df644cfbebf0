package chunk

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Chunk files are whole-file compressed when the catalog builder's
// compression flag is set, and stored raw otherwise. The codec is detected
// from the frame magic so raw and compressed chunks can coexist.
const (
	lz4FrameMagic  = 0x184D2204
	zstdFrameMagic = 0xFD2FB528
)

var zstdDecoderPool sync.Pool

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// decompress returns the decoded chunk bytes. Data that carries no known
// compression magic is returned as-is.
func decompress(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return data, nil
	}
	switch binary.LittleEndian.Uint32(data[:4]) {
	case lz4FrameMagic:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	case zstdFrameMagic:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		return dec.DecodeAll(data, nil)
	default:
		return data, nil
	}
}
