package pathindex

import (
	"bytes"

	"github.com/akkyie/xcdoc/lang"
)

// Hit is one search result.
type Hit struct {
	Path       string
	Language   lang.Language
	Identifier string
	Rank       Rank
}

// Rank orders hits. Comparisons fall through the fields in declaration
// order: higher match ratio wins, then more matched ancestor components,
// then shorter path, then more primary language; the path itself is the
// final lexical tie-break.
type Rank struct {
	// MatchRatio relates the keyword characters matching the base name to
	// the longer of the base name and the full keyword set.
	MatchRatio float64
	// AncestorMatches counts path components before the last one that
	// equal a keyword case-insensitively.
	AncestorMatches int
	// PathLen is the path's length in bytes.
	PathLen int
	// Priority is the language's search priority; lower is better.
	Priority int
}

// rankPath computes the rank tuple for a matched path. lower is the
// case-folded path, folded the case-folded keywords, total their summed
// length in bytes.
func rankPath(lower []byte, l lang.Language, folded [][]byte, total int) Rank {
	base := baseName(lower)

	matched := 0
	for _, kw := range folded {
		if bytes.Contains(base, kw) {
			matched += len(kw)
		}
	}
	denom := len(base)
	if total > denom {
		denom = total
	}
	ratio := 0.0
	if denom > 0 {
		ratio = float64(matched) / float64(denom)
	}

	ancestors := 0
	components := bytes.Split(lower, []byte{'/'})
	for _, comp := range components[:len(components)-1] {
		if len(comp) == 0 {
			continue
		}
		for _, kw := range folded {
			if bytes.Equal(comp, kw) {
				ancestors++
				break
			}
		}
	}

	return Rank{
		MatchRatio:      ratio,
		AncestorMatches: ancestors,
		PathLen:         len(lower),
		Priority:        l.Priority(),
	}
}

// baseName returns the final path component with any parenthesized
// parameter list stripped, e.g. "init(frame:)" becomes "init".
func baseName(path []byte) []byte {
	if i := bytes.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	if i := bytes.IndexByte(path, '('); i >= 0 {
		path = path[:i]
	}
	return path
}

// betterThan reports whether h should be ordered before other.
func (h Hit) betterThan(other Hit) bool {
	a, b := h.Rank, other.Rank
	if a.MatchRatio != b.MatchRatio {
		return a.MatchRatio > b.MatchRatio
	}
	if a.AncestorMatches != b.AncestorMatches {
		return a.AncestorMatches > b.AncestorMatches
	}
	if a.PathLen != b.PathLen {
		return a.PathLen < b.PathLen
	}
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return h.Path < other.Path
}
