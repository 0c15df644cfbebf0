// Package ident implements the catalog's content identifier scheme.
//
// An identifier is the language's prefix followed by the URL-safe base64
// encoding of the first 6 bytes of the SHA-1 digest of the document's
// canonical path, with padding stripped. The scheme must match the catalog
// builder's bit for bit or nothing resolves.
package ident

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"

	"github.com/akkyie/xcdoc/lang"
)

// digestLen is the number of SHA-1 bytes kept. Truncation makes collisions
// across distinct paths possible; the catalog format accepts that risk.
const digestLen = 6

// MinLen is the minimum length of a well-formed identifier: a 2-byte
// language prefix plus 8 base64 characters for 6 digest bytes.
const MinLen = 10

// Derive computes the identifier for a canonical path in a language.
// The language's namespace prefix is stripped from the path before hashing.
func Derive(path string, l lang.Language) string {
	path = strings.TrimPrefix(path, l.Namespace())
	sum := sha1.Sum([]byte(path))
	return l.IdentifierPrefix() + base64.RawURLEncoding.EncodeToString(sum[:digestLen])
}

// Parse reports whether s is a well-formed identifier and, if so, the
// language it belongs to. Callers use it to tell an identifier argument
// apart from a path argument.
func Parse(s string) (lang.Language, bool) {
	if len(s) < MinLen {
		return 0, false
	}
	for _, l := range lang.All {
		if strings.HasPrefix(s, l.IdentifierPrefix()) {
			return l, true
		}
	}
	return 0, false
}
