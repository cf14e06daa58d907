// Package naming derives GraphQL field names from UML type names.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// Plural returns the English plural of word. It never fails: words the
// inflection rules do not know are returned with an "s" suffix, and
// uncountable words are returned unchanged.
func Plural(word string) string {
	if strings.TrimSpace(word) == "" {
		return word
	}
	return inflect.Pluralize(word)
}

// Singular returns the English singular of word.
func Singular(word string) string {
	if strings.TrimSpace(word) == "" {
		return word
	}
	return inflect.Singularize(word)
}

// LowerFirst lowers the first character of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// FieldName builds a field name from a type name. The name is pluralized
// when many is set and its first character is lowered.
func FieldName(typeName string, many bool) string {
	name := typeName
	if many {
		name = Plural(name)
	}
	return LowerFirst(name)
}
