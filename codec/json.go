package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec. It is the most portable option
// and the reference for what the catalog's payload bytes mean.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured. Decoded output is
// identical across the built-in codecs; only decode speed differs.
var Default Codec = GoJSON{}
