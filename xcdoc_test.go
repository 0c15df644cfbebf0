package xcdoc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akkyie/xcdoc"
	"github.com/akkyie/xcdoc/document"
	"github.com/akkyie/xcdoc/ident"
	"github.com/akkyie/xcdoc/lang"
	"github.com/akkyie/xcdoc/metaindex"
	"github.com/akkyie/xcdoc/testutil"
)

func openCatalog(t *testing.T, cat testutil.Catalog) *xcdoc.Catalog {
	t.Helper()
	dir := t.TempDir()
	testutil.Build(t, dir, cat)

	c, err := xcdoc.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSearchAndShowEndToEnd(t *testing.T) {
	cat := openCatalog(t, testutil.Catalog{
		Compression: testutil.CompressLZ4,
		Docs: []testutil.Doc{
			{Path: "/documentation/uikit", Language: lang.Swift,
				Document: &document.Document{Title: "UIKit"},
				Text:     "UIKit", PageType: metaindex.PageTypeFramework},
			{Path: "/documentation/uikit/uiview", Language: lang.Swift,
				Document: &document.Document{Title: "UIView"},
				Text:     "UIView", PageType: metaindex.PageTypeClass},
			{Path: "/documentation/uikit/uiviewcontroller", Language: lang.Swift,
				Document: &document.Document{Title: "UIViewController"},
				Text:     "UIViewController", PageType: metaindex.PageTypeClass},
		},
	})

	result, err := cat.Search(context.Background(), []string{"UIView"}, nil, 1)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)

	hit := result.Hits[0]
	assert.Equal(t, "/documentation/uikit/uiview", hit.Path)
	assert.Equal(t, ident.Derive("/documentation/uikit/uiview", lang.Swift), hit.Identifier)
	assert.Equal(t, "UIView", hit.Title)
	assert.Equal(t, metaindex.PageTypeClass, hit.PageType)

	doc, err := cat.Document(context.Background(), hit.Identifier)
	require.NoError(t, err)
	assert.Equal(t, "UIView", doc.Title)
}

func TestDocumentByPath(t *testing.T) {
	cat := openCatalog(t, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift,
			Document: &document.Document{Title: "UIView"}},
	}})

	doc, err := cat.Document(context.Background(), "/documentation/uikit/uiview")
	require.NoError(t, err)
	assert.Equal(t, "UIView", doc.Title)
}

func TestDocumentProbesLanguagesForBarePaths(t *testing.T) {
	cat := openCatalog(t, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/objc/uikit/uiview", Language: lang.ObjectiveC,
			Document: &document.Document{Title: "UIView"}},
	}})

	// "/uikit/uiview" carries no namespace; the catalog only has the
	// Objective-C variant, which the probe must find.
	doc, err := cat.Document(context.Background(), "/uikit/uiview")
	require.NoError(t, err)
	assert.Equal(t, "UIView", doc.Title)
}

func TestDocumentNotFound(t *testing.T) {
	cat := openCatalog(t, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift},
	}})

	_, err := cat.Document(context.Background(), "/documentation/appkit/nsview")
	assert.ErrorIs(t, err, xcdoc.ErrNotFound)
}

func TestDocumentInlineBlob(t *testing.T) {
	cat := openCatalog(t, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift,
			Document: &document.Document{Title: "UIView"}, Inline: true},
	}})

	doc, err := cat.Document(context.Background(), "/documentation/uikit/uiview")
	require.NoError(t, err)
	assert.Equal(t, "UIView", doc.Title)
}

func TestSearchFillsTitlesFromDocuments(t *testing.T) {
	// No metadata text for this document, so the title must come from
	// the decoded document itself.
	cat := openCatalog(t, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift,
			Document: &document.Document{Title: "UIView"}},
	}})

	result, err := cat.Search(context.Background(), []string{"uiview"}, nil, 5)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "UIView", result.Hits[0].Title)
	assert.Equal(t, metaindex.PageTypeUnknown, result.Hits[0].PageType)
}

func TestSearchFillsTitlesFromInlineDocuments(t *testing.T) {
	// The payload lives inline in the reference database rather than in a
	// chunk, and has no metadata text either. Search must fall back to the
	// inline document for the title, the same way Document resolves it.
	cat := openCatalog(t, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift,
			Document: &document.Document{Title: "UIView"}, Inline: true},
	}})

	result, err := cat.Search(context.Background(), []string{"uiview"}, nil, 5)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "UIView", result.Hits[0].Title)
}

func TestSearchNoKeywords(t *testing.T) {
	cat := openCatalog(t, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift},
	}})

	_, err := cat.Search(context.Background(), []string{" "}, nil, 5)
	assert.ErrorIs(t, err, xcdoc.ErrNoKeywords)
}

func TestMetadata(t *testing.T) {
	cat := openCatalog(t, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift,
			Text: "UIView", PageType: metaindex.PageTypeClass},
	}})

	id := ident.Derive("/documentation/uikit/uiview", lang.Swift)
	records, err := cat.Metadata(context.Background(), []string{id}, nil)
	require.NoError(t, err)
	require.Contains(t, records, id)
	assert.Equal(t, "UIView", records[id].Text)
}

func TestPathLookups(t *testing.T) {
	cat := openCatalog(t, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit", Language: lang.Swift, PathOnly: true},
		{Path: "/documentation/uikit/uiview", Language: lang.Swift, PathOnly: true},
	}})

	path, err := cat.PathForID(1)
	require.NoError(t, err)
	assert.Equal(t, "/documentation/uikit", path)

	_, err = cat.PathForID(42)
	assert.ErrorIs(t, err, xcdoc.ErrNotFound)

	ok, err := cat.HasPath("/documentation/uikit/uiview")
	require.NoError(t, err)
	assert.True(t, ok)
}
