// Package document defines the decoded shape of a documentation page.
//
// A document is a tree: a title, a role heading, an abstract, ordered
// content sections made of block nodes, and named groups of cross-reference
// identifiers resolved against a references map. Block and inline nodes are
// closed tagged unions; kinds the decoder does not recognize resolve to a
// no-op node instead of a decode failure, so newer catalogs still render
// with their unknown parts silently dropped.
package document

// Document is one decoded documentation page.
type Document struct {
	Title         string               `json:"title"`
	RoleHeading   string               `json:"roleHeading,omitempty"`
	Platforms     []Platform           `json:"platforms,omitempty"`
	Abstract      []Inline             `json:"abstract,omitempty"`
	Sections      []Section            `json:"sections,omitempty"`
	Topics        []TopicGroup         `json:"topics,omitempty"`
	SeeAlso       []TopicGroup         `json:"seeAlso,omitempty"`
	Relationships []TopicGroup         `json:"relationships,omitempty"`
	References    map[string]Reference `json:"references,omitempty"`
}

// Platform records availability on one platform.
type Platform struct {
	Name         string `json:"name"`
	IntroducedAt string `json:"introducedAt,omitempty"`
	DeprecatedAt string `json:"deprecatedAt,omitempty"`
	Beta         bool   `json:"beta,omitempty"`
}

// Section is a titled run of block content.
type Section struct {
	Title  string  `json:"title,omitempty"`
	Blocks []Block `json:"content,omitempty"`
}

// TopicGroup names a group of related document identifiers.
type TopicGroup struct {
	Title       string   `json:"title,omitempty"`
	Identifiers []string `json:"identifiers"`
}

// Reference is the resolvable target of a cross-reference identifier.
type Reference struct {
	Title    string   `json:"title"`
	URL      string   `json:"url,omitempty"`
	Role     string   `json:"role,omitempty"`
	Abstract []Inline `json:"abstract,omitempty"`
}

// ResolveReference looks up a cross-reference identifier in the document's
// references map.
func (d *Document) ResolveReference(identifier string) (Reference, bool) {
	ref, ok := d.References[identifier]
	return ref, ok
}
