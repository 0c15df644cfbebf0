package document

import "encoding/json"

// InlineKind discriminates the inline node union.
type InlineKind string

const (
	InlineKindUnknown   InlineKind = ""
	InlineKindText      InlineKind = "text"
	InlineKindCodeVoice InlineKind = "codeVoice"
	InlineKindEmphasis  InlineKind = "emphasis"
	InlineKindStrong    InlineKind = "strong"
	InlineKindReference InlineKind = "reference"
	InlineKindImage     InlineKind = "image"
)

// Inline is one inline content node.
type Inline struct {
	Kind InlineKind `json:"type"`

	// Text and codeVoice
	Text string `json:"text,omitempty"`
	Code string `json:"code,omitempty"`

	// Emphasis and strong wrap nested inline content.
	Content []Inline `json:"inlineContent,omitempty"`

	// Reference and image targets
	Identifier string `json:"identifier,omitempty"`
	IsActive   bool   `json:"isActive,omitempty"`
}

var knownInlineKinds = map[InlineKind]struct{}{
	InlineKindText:      {},
	InlineKindCodeVoice: {},
	InlineKindEmphasis:  {},
	InlineKindStrong:    {},
	InlineKindReference: {},
	InlineKindImage:     {},
}

// UnmarshalJSON decodes an inline node, mapping unrecognized kinds to a
// no-op InlineKindUnknown node rather than failing.
func (in *Inline) UnmarshalJSON(data []byte) error {
	type alias Inline
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if _, ok := knownInlineKinds[a.Kind]; !ok {
		*in = Inline{Kind: InlineKindUnknown}
		return nil
	}
	*in = Inline(a)
	return nil
}

// PlainText flattens an inline run to its visible text, dropping nodes
// that carry none.
func PlainText(content []Inline) string {
	var out []byte
	for _, in := range content {
		switch in.Kind {
		case InlineKindText:
			out = append(out, in.Text...)
		case InlineKindCodeVoice:
			out = append(out, in.Code...)
		case InlineKindEmphasis, InlineKindStrong:
			out = append(out, PlainText(in.Content)...)
		}
	}
	return string(out)
}
