// Package schema carries the dialect-tagged envelope that crosses the
// engine's external boundary, plus the RFC 6901 pointer helpers shared by
// both validators.
package schema

import (
	"strconv"

	"github.com/kaptinlin/jsonpointer"
)

// EscapeToken escapes a single JSON Pointer reference token per RFC 6901:
// "~" becomes "~0" and "/" becomes "~1", in that order so the inserted
// "~0" is never re-escaped into "~00". Delegates to jsonpointer.Format on a
// single-element token list, matching the teacher's own use of the library
// for pointer rendering (schema.go's RegexPatternError locations).
func EscapeToken(token string) string {
	full := jsonpointer.Format(token)
	if len(full) > 0 && full[0] == '/' {
		return full[1:]
	}
	return full
}

// Push appends an already-unescaped token to a pointer string, escaping it
// first. Push("/a", "b") == "/a/b"; Push("", "b") == "/b".
func Push(pointer, token string) string {
	tokens := jsonpointer.Parse(pointer)
	tokens = append(tokens, token)
	return jsonpointer.Format(tokens...)
}

// PushIndex appends an array index as a pointer token.
func PushIndex(pointer string, index int) string {
	return Push(pointer, strconv.Itoa(index))
}
