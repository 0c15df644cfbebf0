package pathindex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akkyie/xcdoc/lang"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/documentation/uikit/uiview", want: "uiview"},
		{path: "/documentation/uikit/uiview/init(frame:)", want: "init"},
		{path: "uiview", want: "uiview"},
		{path: "/documentation/", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(baseName([]byte(tt.path))), tt.path)
	}
}

func TestRankExactBaseNameWins(t *testing.T) {
	folded := [][]byte{[]byte("uiview")}

	exact := rankPath([]byte("/documentation/uikit/uiview"), lang.Swift, folded, 6)
	inside := rankPath([]byte("/documentation/uikit/uiviewcontroller"), lang.Swift, folded, 6)

	assert.Greater(t, exact.MatchRatio, inside.MatchRatio)
	a := Hit{Path: "/documentation/uikit/uiview", Rank: exact}
	b := Hit{Path: "/documentation/uikit/uiviewcontroller", Rank: inside}
	assert.True(t, a.betterThan(b))
	assert.False(t, b.betterThan(a))
}

func TestRankAncestorMatches(t *testing.T) {
	folded := [][]byte{[]byte("uikit")}
	r := rankPath([]byte("/documentation/uikit/uiview"), lang.Swift, folded, 5)
	assert.Equal(t, 1, r.AncestorMatches)

	// The final component never counts as an ancestor.
	r = rankPath([]byte("/documentation/uikit"), lang.Swift, folded, 5)
	assert.Equal(t, 0, r.AncestorMatches)
}

func TestRankParameterListStripped(t *testing.T) {
	folded := [][]byte{[]byte("init")}
	r := rankPath([]byte("/documentation/uikit/uiview/init(frame:)"), lang.Swift, folded, 4)
	// base name "init" matches all 4 keyword characters exactly.
	assert.Equal(t, 1.0, r.MatchRatio)
}

func TestBetterThanTieBreaks(t *testing.T) {
	base := Rank{MatchRatio: 0.5, AncestorMatches: 1, PathLen: 20, Priority: 0}

	shorter := Hit{Path: "/a", Rank: Rank{MatchRatio: 0.5, AncestorMatches: 1, PathLen: 10, Priority: 0}}
	assert.True(t, shorter.betterThan(Hit{Path: "/b", Rank: base}))

	primary := Hit{Path: "/a", Rank: Rank{MatchRatio: 0.5, AncestorMatches: 1, PathLen: 20, Priority: 0}}
	secondary := Hit{Path: "/a", Rank: Rank{MatchRatio: 0.5, AncestorMatches: 1, PathLen: 20, Priority: 1}}
	assert.True(t, primary.betterThan(secondary))

	// Identical ranks fall through to the lexical path order.
	a := Hit{Path: "/a", Rank: base}
	b := Hit{Path: "/b", Rank: base}
	assert.True(t, a.betterThan(b))
	assert.False(t, b.betterThan(a))
}

func TestTopKBound(t *testing.T) {
	tk := newTopK(2)

	best := Hit{Path: "/a", Rank: Rank{MatchRatio: 1.0}}
	mid := Hit{Path: "/b", Rank: Rank{MatchRatio: 0.5}}
	worst := Hit{Path: "/c", Rank: Rank{MatchRatio: 0.1}}

	admitted, evicted := tk.offer(mid)
	assert.True(t, admitted)
	assert.False(t, evicted)

	admitted, evicted = tk.offer(worst)
	assert.True(t, admitted)
	assert.False(t, evicted)

	// Full now; a better hit displaces the worst retained one.
	admitted, evicted = tk.offer(best)
	assert.True(t, admitted)
	assert.True(t, evicted)

	// A hit no better than the current worst is rejected.
	admitted, evicted = tk.offer(worst)
	assert.False(t, admitted)
	assert.False(t, evicted)

	hits := tk.sorted()
	assert.Equal(t, []string{"/a", "/b"}, []string{hits[0].Path, hits[1].Path})
}
