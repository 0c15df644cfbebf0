// Package codec centralizes document payload decoding.
//
// Chunk payloads are serialized documents; the codec is the boundary that
// turns a sliced byte range into a decoded value. Catalogs produced by
// current tooling serialize JSON, so both built-in codecs speak JSON and
// differ only in the underlying implementation.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
