package fuzz

import (
	"strings"

	"math/rand"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// GenerateSyntacticInvalid corrupts the serialised bytes of validJSON under
// the named mutation (or a uniformly-sampled one when name is empty), per
// spec §4.4/§6.4. Grounded on original_source/src/fuzzer/mutations.rs's
// generate_syntax_invalid index-0..8 dispatch.
func GenerateSyntacticInvalid(validJSON string, name string, rng *rand.Rand) string {
	name = Normalize(name)
	if name == "" {
		name = SyntaxMutationNames[rng.Intn(len(SyntaxMutationNames))]
	}
	switch name {
	case "missing-closing-brace":
		return missingClosingBrace(validJSON)
	case "missing-opening-brace":
		return missingOpeningBrace(validJSON)
	case "invalid-character":
		return validJSON + "x"
	case "comma-to-semicolon":
		return guardInvalid(strings.ReplaceAll(validJSON, ",", ";"))
	case "remove-quotes":
		return guardInvalid(strings.ReplaceAll(validJSON, `"`, ""))
	case "trailing-comma":
		return trailingComma(validJSON)
	case "colon-to-equals":
		return guardInvalid(strings.ReplaceAll(validJSON, ":", "="))
	case "truncated-json":
		return guardInvalid(truncatedJSON(validJSON))
	case "mixed-indentation":
		// The mutation itself only rearranges whitespace, which the JSON
		// grammar ignores outside strings, so it needs a pretty-printed
		// seed (matching the original's needs_formatted re-serialisation)
		// to have any bytes to mutate at all.
		return mixedIndentation(prettyPrint(validJSON), rng)
	}
	return validJSON
}

// prettyPrint reformats a compact JSON document with two-space indentation.
// Falls back to the input unchanged if it doesn't parse as JSON.
func prettyPrint(validJSON string) string {
	var v any
	if err := json.Unmarshal([]byte(validJSON), &v); err != nil {
		return validJSON
	}
	out, err := json.Marshal(v, jsontext.WithIndent("  "), json.Deterministic(true))
	if err != nil {
		return validJSON
	}
	return string(out)
}

func missingClosingBrace(s string) string {
	if strings.HasSuffix(s, "}") || strings.HasSuffix(s, "]") {
		return s[:len(s)-1]
	}
	return s + "}"
}

func missingOpeningBrace(s string) string {
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return s[1:]
	}
	return "{" + s
}

func trailingComma(s string) string {
	switch {
	case strings.HasSuffix(s, "}"):
		return s[:len(s)-1] + ",}"
	case strings.HasSuffix(s, "]"):
		return s[:len(s)-1] + ",]"
	default:
		return s + ","
	}
}

func truncatedJSON(s string) string {
	if len(s) > 10 {
		return s[:len(s)/2]
	}
	return s
}

// guardInvalid is the backstop for mutations whose primary transform can be
// a no-op on short or shapeless input — comma-to-semicolon, remove-quotes,
// and colon-to-equals on a document with no comma, quote, or colon to
// target, truncated-json on a seed at or under the length floor it declines
// to touch (e.g. the 4-5 byte "true"/"false" a boolean schema generates).
// Property 4 (spec §8) requires every non-exempted syntactic mutation to
// hand back bytes the validator rejects, so if mutated still decodes as
// valid JSON, append a NUL byte: unescaped control characters are never
// legal JSON text outside a string, so the result is unparseable no matter
// what mutated itself looked like.
func guardInvalid(mutated string) string {
	var v any
	if json.Unmarshal([]byte(mutated), &v) != nil {
		return mutated
	}
	return mutated + "\x00"
}

// mixedIndentation walks a pretty-printed JSON string outside quoted
// strings and replaces each line's leading whitespace run with a random
// mix of tabs and spaces of the same length, leaving the document still
// byte-parseable as whitespace but visually inconsistent.
func mixedIndentation(s string, rng *rand.Rand) string {
	var b strings.Builder
	inString := false
	escapeNext := false
	skipIndent := false
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if escapeNext {
			b.WriteRune(ch)
			escapeNext = false
			continue
		}
		switch {
		case ch == '"':
			inString = !inString
			b.WriteRune(ch)
		case ch == '\\' && inString:
			escapeNext = true
			b.WriteRune(ch)
		case ch == '\n' && !inString:
			b.WriteRune(ch)
			skipIndent = true
			count := 0
			for j := i + 1; j < len(runes) && (runes[j] == ' ' || runes[j] == '\t'); j++ {
				count++
			}
			for k := 0; k < count; k++ {
				if rng.Intn(2) == 0 {
					b.WriteRune('\t')
				} else {
					b.WriteRune(' ')
				}
			}
		case (ch == ' ' || ch == '\t') && !inString && skipIndent:
			continue
		default:
			skipIndent = false
			b.WriteRune(ch)
		}
	}
	return b.String()
}
