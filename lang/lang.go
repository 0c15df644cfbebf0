// Package lang defines the closed set of interface languages a catalog
// can contain and the per-language constants used across the engine.
package lang

import "bytes"

// Language identifies one of the catalog's interface languages.
type Language uint8

const (
	// Swift is the primary interface language.
	Swift Language = iota
	// ObjectiveC is the secondary interface language.
	ObjectiveC
	// Data covers symbol graphs and other non-source content.
	Data
)

// All lists every known language in priority order.
var All = []Language{Swift, ObjectiveC, Data}

// langInfo holds the per-language constants. Prefixes and namespaces are
// pairwise disjoint and stable for the lifetime of a catalog; changing them
// invalidates every identifier the catalog holds.
type langInfo struct {
	name         string
	idPrefix     string
	namespace    string
	priority     int
	metadataFile string
}

var infos = [...]langInfo{
	Swift:      {name: "swift", idPrefix: "ls", namespace: "/documentation", priority: 0, metadataFile: "0.txt"},
	ObjectiveC: {name: "occ", idPrefix: "lo", namespace: "/objc", priority: 1, metadataFile: "1.txt"},
	Data:       {name: "data", idPrefix: "ld", namespace: "/data", priority: 2, metadataFile: "2.txt"},
}

// String returns the language's stable name.
func (l Language) String() string {
	if int(l) >= len(infos) {
		return "unknown"
	}
	return infos[l].name
}

// IdentifierPrefix returns the prefix identifiers of this language carry.
func (l Language) IdentifierPrefix() string { return infos[l].idPrefix }

// Namespace returns the path namespace prefix owned by this language.
func (l Language) Namespace() string { return infos[l].namespace }

// Priority returns the search tie-break priority; lower is more primary.
func (l Language) Priority() int { return infos[l].priority }

// MetadataFile returns the name of the language's flat metadata file,
// relative to the catalog root.
func (l Language) MetadataFile() string { return infos[l].metadataFile }

// ByName resolves a stable name back to a Language.
func ByName(name string) (Language, bool) {
	for _, l := range All {
		if infos[l].name == name {
			return l, true
		}
	}
	return 0, false
}

// Classify returns the language whose namespace prefix is a byte-prefix of
// the given raw path bytes.
func Classify(path []byte) (Language, bool) {
	for _, l := range All {
		if bytes.HasPrefix(path, []byte(infos[l].namespace)) {
			return l, true
		}
	}
	return 0, false
}
