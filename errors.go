package xcdoc

import (
	"errors"

	"github.com/akkyie/xcdoc/pathindex"
)

var (
	// ErrNotFound is returned when no document exists for an identifier,
	// path, or query. It is a normal outcome, distinct from resource and
	// data-integrity failures.
	ErrNotFound = errors.New("xcdoc: document not found")

	// ErrNoKeywords is returned when a search's keyword list normalizes
	// to nothing. It is raised before any catalog access.
	ErrNoKeywords = pathindex.ErrNoKeywords
)
