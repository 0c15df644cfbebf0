// Package xcdoc reads pre-built documentation catalogs.
//
// A catalog is an on-disk bundle: an embedded ordered key-value store
// mapping node IDs to paths, a relational table mapping content
// identifiers to byte ranges, compressed chunk files holding serialized
// documents, and per-language flat metadata files. xcdoc opens the bundle
// strictly read-only and answers two questions: "show me the document for
// this identifier or path" and "which documents match these keywords".
//
// # Quick Start
//
//	cat, err := xcdoc.Open("/path/to/catalog")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cat.Close()
//
//	doc, err := cat.Document(ctx, "/documentation/uikit/uiview")
//
//	result, err := cat.Search(ctx, []string{"uiview"}, nil, 10)
//	for _, hit := range result.Hits {
//	    fmt.Println(hit.Path, hit.Title)
//	}
//
// The engine is built for short-lived command invocations: handles are
// opened once and reused, decompressed chunks are cached without eviction,
// and no call retries internally. A Catalog's methods must not be invoked
// concurrently; open separate Catalogs for parallel work.
package xcdoc
