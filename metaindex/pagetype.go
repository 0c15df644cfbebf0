package metaindex

// PageType classifies what kind of page an identifier resolves to.
// The numeric codes are fixed by the catalog format; values outside the
// named set are carried through unchanged so new page kinds degrade to
// "unknown" instead of breaking lookups.
type PageType uint8

const (
	PageTypeUnknown    PageType = 0
	PageTypeRoot       PageType = 1
	PageTypeArticle    PageType = 2
	PageTypeTutorial   PageType = 3
	PageTypeSampleCode PageType = 4
	PageTypeFramework  PageType = 5
	PageTypeClass      PageType = 6
	PageTypeStructure  PageType = 7
	PageTypeProtocol   PageType = 8
	PageTypeEnum       PageType = 9
	PageTypeFunction   PageType = 10
	PageTypeMethod     PageType = 11
	PageTypeProperty   PageType = 12
	PageTypeTypeAlias  PageType = 13
	PageTypeMacro      PageType = 14
	PageTypeCollection PageType = 15
)

var pageTypeNames = map[PageType]string{
	PageTypeRoot:       "root",
	PageTypeArticle:    "article",
	PageTypeTutorial:   "tutorial",
	PageTypeSampleCode: "sample-code",
	PageTypeFramework:  "framework",
	PageTypeClass:      "class",
	PageTypeStructure:  "structure",
	PageTypeProtocol:   "protocol",
	PageTypeEnum:       "enumeration",
	PageTypeFunction:   "function",
	PageTypeMethod:     "method",
	PageTypeProperty:   "property",
	PageTypeTypeAlias:  "type-alias",
	PageTypeMacro:      "macro",
	PageTypeCollection: "collection",
}

// String returns the page type's stable name, or "unknown".
func (p PageType) String() string {
	if s, ok := pageTypeNames[p]; ok {
		return s
	}
	return "unknown"
}
