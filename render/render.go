// Package render formats decoded documents as plain text.
//
// The walk preserves document order and resolves cross-reference
// identifiers against the document's references map. Unknown nodes
// contribute nothing.
package render

import (
	"fmt"
	"strings"

	"github.com/akkyie/xcdoc/document"
)

// Text renders a document as human-readable plain text.
func Text(doc *document.Document) string {
	r := &renderer{doc: doc}

	r.line(doc.Title)
	if doc.RoleHeading != "" {
		r.line(doc.RoleHeading)
	}
	if len(doc.Platforms) > 0 {
		r.line(platformLine(doc.Platforms))
	}
	if len(doc.Abstract) > 0 {
		r.blank()
		r.line(r.inlines(doc.Abstract))
	}

	for _, sec := range doc.Sections {
		r.blank()
		if sec.Title != "" {
			r.line("## " + sec.Title)
		}
		r.blocks(sec.Blocks, "")
	}

	r.groups("Topics", doc.Topics)
	r.groups("See Also", doc.SeeAlso)
	r.groups("Relationships", doc.Relationships)

	return r.sb.String()
}

type renderer struct {
	doc *document.Document
	sb  strings.Builder
}

func (r *renderer) line(s string) {
	r.sb.WriteString(s)
	r.sb.WriteByte('\n')
}

func (r *renderer) blank() {
	r.sb.WriteByte('\n')
}

func (r *renderer) blocks(blocks []document.Block, indent string) {
	for _, b := range blocks {
		switch b.Kind {
		case document.BlockKindHeading:
			r.line(indent + strings.Repeat("#", max(b.Level, 1)) + " " + b.Text)
		case document.BlockKindParagraph:
			r.line(indent + r.inlines(b.Content))
		case document.BlockKindUnorderedList:
			for _, item := range b.Items {
				r.itemBlocks(item.Blocks, indent+"- ", indent+"  ")
			}
		case document.BlockKindOrderedList:
			for i, item := range b.Items {
				r.itemBlocks(item.Blocks, fmt.Sprintf("%s%d. ", indent, i+1), indent+"   ")
			}
		case document.BlockKindCodeListing:
			r.line(indent + "```" + b.Syntax)
			for _, codeLine := range b.Code {
				r.line(indent + codeLine)
			}
			r.line(indent + "```")
		case document.BlockKindAside:
			if b.Style != "" {
				r.line(indent + strings.ToUpper(b.Style) + ":")
			}
			r.blocks(b.Blocks, indent+"  ")
		case document.BlockKindTable:
			r.table(b, indent)
		case document.BlockKindTermList:
			for _, term := range b.Terms {
				r.line(indent + r.inlines(term.Term))
				r.blocks(term.Definition, indent+"  ")
			}
		case document.BlockKindRow:
			for _, col := range b.Columns {
				r.blocks(col.Blocks, indent)
			}
		case document.BlockKindImage:
			if ref, ok := r.doc.ResolveReference(b.Identifier); ok {
				r.line(indent + "[image: " + ref.Title + "]")
			}
		case document.BlockKindLink:
			r.line(indent + r.refText(b.Identifier))
		}
	}
}

// itemBlocks renders a list item, marking only its first line.
func (r *renderer) itemBlocks(blocks []document.Block, marker, indent string) {
	var inner renderer
	inner.doc = r.doc
	inner.blocks(blocks, "")
	lines := strings.Split(strings.TrimRight(inner.sb.String(), "\n"), "\n")
	for i, l := range lines {
		if i == 0 {
			r.line(marker + l)
		} else {
			r.line(indent + l)
		}
	}
}

func (r *renderer) table(b document.Block, indent string) {
	writeRow := func(row document.TableRow) {
		cells := make([]string, len(row))
		for i, cell := range row {
			var inner renderer
			inner.doc = r.doc
			inner.blocks(cell, "")
			cells[i] = strings.TrimSpace(strings.ReplaceAll(inner.sb.String(), "\n", " "))
		}
		r.line(indent + "| " + strings.Join(cells, " | ") + " |")
	}
	if len(b.Header) > 0 {
		writeRow(b.Header)
	}
	for _, row := range b.Rows {
		writeRow(row)
	}
}

func (r *renderer) groups(heading string, groups []document.TopicGroup) {
	if len(groups) == 0 {
		return
	}
	r.blank()
	r.line("## " + heading)
	for _, g := range groups {
		if g.Title != "" {
			r.line("### " + g.Title)
		}
		for _, id := range g.Identifiers {
			r.line("- " + r.refText(id))
		}
	}
}

func (r *renderer) refText(identifier string) string {
	if ref, ok := r.doc.ResolveReference(identifier); ok {
		return ref.Title
	}
	return identifier
}

func (r *renderer) inlines(content []document.Inline) string {
	var sb strings.Builder
	for _, in := range content {
		switch in.Kind {
		case document.InlineKindText:
			sb.WriteString(in.Text)
		case document.InlineKindCodeVoice:
			sb.WriteString("`" + in.Code + "`")
		case document.InlineKindEmphasis, document.InlineKindStrong:
			sb.WriteString(r.inlines(in.Content))
		case document.InlineKindReference:
			sb.WriteString(r.refText(in.Identifier))
		case document.InlineKindImage:
			if ref, ok := r.doc.ResolveReference(in.Identifier); ok {
				sb.WriteString("[image: " + ref.Title + "]")
			}
		}
	}
	return sb.String()
}

func platformLine(platforms []document.Platform) string {
	parts := make([]string, len(platforms))
	for i, p := range platforms {
		s := p.Name
		if p.IntroducedAt != "" {
			s += " " + p.IntroducedAt + "+"
		}
		if p.Beta {
			s += " (beta)"
		}
		if p.DeprecatedAt != "" {
			s += " (deprecated " + p.DeprecatedAt + ")"
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}
