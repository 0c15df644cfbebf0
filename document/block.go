package document

import "encoding/json"

// BlockKind discriminates the block node union.
type BlockKind string

const (
	BlockKindUnknown       BlockKind = ""
	BlockKindHeading       BlockKind = "heading"
	BlockKindParagraph     BlockKind = "paragraph"
	BlockKindUnorderedList BlockKind = "unorderedList"
	BlockKindOrderedList   BlockKind = "orderedList"
	BlockKindCodeListing   BlockKind = "codeListing"
	BlockKindAside         BlockKind = "aside"
	BlockKindTable         BlockKind = "table"
	BlockKindTermList      BlockKind = "termList"
	BlockKindRow           BlockKind = "row"
	BlockKindImage         BlockKind = "image"
	BlockKindLink          BlockKind = "link"
)

// Block is one block-level content node. Exactly the fields relevant to
// its Kind are populated; an unknown kind has Kind set to BlockKindUnknown
// and everything else zero.
type Block struct {
	Kind BlockKind `json:"kind"`

	// Heading
	Level int    `json:"level,omitempty"`
	Text  string `json:"text,omitempty"`

	// Paragraph
	Content []Inline `json:"inlineContent,omitempty"`

	// Lists; one entry per list item.
	Items []ListItem `json:"items,omitempty"`

	// Code listing
	Syntax string   `json:"syntax,omitempty"`
	Code   []string `json:"code,omitempty"`

	// Aside
	Style  string  `json:"style,omitempty"`
	Blocks []Block `json:"content,omitempty"`

	// Table
	Header TableRow   `json:"header,omitempty"`
	Rows   []TableRow `json:"rows,omitempty"`

	// Term list
	Terms []Term `json:"terms,omitempty"`

	// Row of grouped columns
	Columns []Column `json:"columns,omitempty"`

	// Image and link targets
	Identifier string `json:"identifier,omitempty"`
}

// ListItem is one item of an ordered or unordered list.
type ListItem struct {
	Blocks []Block `json:"content"`
}

// TableRow is one row of table cells; each cell is block content.
type TableRow []TableCell

// TableCell is one table cell.
type TableCell []Block

// Term is one entry of a term list.
type Term struct {
	Term       []Inline `json:"term"`
	Definition []Block  `json:"definition"`
}

// Column is one column of a row block.
type Column struct {
	Size   int     `json:"size,omitempty"`
	Blocks []Block `json:"content"`
}

var knownBlockKinds = map[BlockKind]struct{}{
	BlockKindHeading:       {},
	BlockKindParagraph:     {},
	BlockKindUnorderedList: {},
	BlockKindOrderedList:   {},
	BlockKindCodeListing:   {},
	BlockKindAside:         {},
	BlockKindTable:         {},
	BlockKindTermList:      {},
	BlockKindRow:           {},
	BlockKindImage:         {},
	BlockKindLink:          {},
}

// UnmarshalJSON decodes a block node, mapping unrecognized kinds to a
// no-op BlockKindUnknown node rather than failing.
func (b *Block) UnmarshalJSON(data []byte) error {
	type alias Block
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if _, ok := knownBlockKinds[a.Kind]; !ok {
		*b = Block{Kind: BlockKindUnknown}
		return nil
	}
	*b = Block(a)
	return nil
}
