package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akkyie/xcdoc/document"
	"github.com/akkyie/xcdoc/lang"
	"github.com/akkyie/xcdoc/testutil"
)

func TestExecuteRequiresCatalog(t *testing.T) {
	t.Setenv("XCDOC_CATALOG", "")
	err := Execute([]string{"show", "/documentation/uikit/uiview"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog directory")
}

func TestExecuteShow(t *testing.T) {
	dir := t.TempDir()
	testutil.Build(t, dir, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift,
			Document: &document.Document{Title: "UIView"}},
	}})
	t.Setenv("XCDOC_CATALOG", dir)

	err := Execute([]string{"show", "/documentation/uikit/uiview"})
	require.NoError(t, err)
}

func TestExecuteShowNotFound(t *testing.T) {
	dir := t.TempDir()
	testutil.Build(t, dir, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift},
	}})
	t.Setenv("XCDOC_CATALOG", dir)

	err := Execute([]string{"show", "/documentation/appkit/nsview"})
	require.Error(t, err)
}

func TestExecuteShowWithCodec(t *testing.T) {
	dir := t.TempDir()
	testutil.Build(t, dir, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift,
			Document: &document.Document{Title: "UIView"}},
	}})
	t.Setenv("XCDOC_CATALOG", dir)

	err := Execute([]string{"show", "/documentation/uikit/uiview", "--codec", "json"})
	require.NoError(t, err)

	err = Execute([]string{"show", "/documentation/uikit/uiview", "--codec", "bson"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown codec")
}

func TestExecuteSearch(t *testing.T) {
	dir := t.TempDir()
	testutil.Build(t, dir, testutil.Catalog{Docs: []testutil.Doc{
		{Path: "/documentation/uikit/uiview", Language: lang.Swift,
			Document: &document.Document{Title: "UIView"}, Text: "UIView"},
	}})
	t.Setenv("XCDOC_CATALOG", dir)

	err := Execute([]string{"search", "uiview", "--limit", "5"})
	require.NoError(t, err)
}
