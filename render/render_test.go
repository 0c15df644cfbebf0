package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akkyie/xcdoc/document"
)

func TestText(t *testing.T) {
	doc := &document.Document{
		Title:       "UIView",
		RoleHeading: "Class",
		Platforms:   []document.Platform{{Name: "iOS", IntroducedAt: "2.0"}},
		Abstract: []document.Inline{
			{Kind: document.InlineKindText, Text: "Manages a rectangular area."},
		},
		Sections: []document.Section{{
			Title: "Overview",
			Blocks: []document.Block{
				{Kind: document.BlockKindParagraph, Content: []document.Inline{
					{Kind: document.InlineKindText, Text: "See "},
					{Kind: document.InlineKindReference, Identifier: "lsAAAAAAAA"},
					{Kind: document.InlineKindText, Text: "."},
				}},
				{Kind: document.BlockKindCodeListing, Syntax: "swift", Code: []string{"let v = UIView()"}},
				{Kind: document.BlockKindUnorderedList, Items: []document.ListItem{
					{Blocks: []document.Block{{Kind: document.BlockKindParagraph, Content: []document.Inline{
						{Kind: document.InlineKindText, Text: "first"},
					}}}},
				}},
			},
		}},
		Topics: []document.TopicGroup{{
			Title:       "Creating views",
			Identifiers: []string{"lsAAAAAAAA", "lsBBBBBBBB"},
		}},
		References: map[string]document.Reference{
			"lsAAAAAAAA": {Title: "init(frame:)"},
		},
	}

	out := Text(doc)

	assert.Contains(t, out, "UIView\nClass\niOS 2.0+\n")
	assert.Contains(t, out, "Manages a rectangular area.")
	assert.Contains(t, out, "## Overview")
	assert.Contains(t, out, "See init(frame:).")
	assert.Contains(t, out, "```swift\nlet v = UIView()\n```")
	assert.Contains(t, out, "- first")
	assert.Contains(t, out, "## Topics")
	assert.Contains(t, out, "- init(frame:)")
	// Unresolvable identifiers fall back to the identifier itself.
	assert.Contains(t, out, "- lsBBBBBBBB")
}

func TestTextSkipsUnknownNodes(t *testing.T) {
	doc := &document.Document{
		Title: "Widget",
		Sections: []document.Section{{
			Blocks: []document.Block{
				{Kind: document.BlockKindUnknown},
				{Kind: document.BlockKindParagraph, Content: []document.Inline{
					{Kind: document.InlineKindText, Text: "visible"},
				}},
			},
		}},
	}

	out := Text(doc)
	assert.Contains(t, out, "visible")
	assert.NotContains(t, out, "unknown")
}
