package fuzz

import (
	"math/rand"
	"strings"

	"github.com/structflow/schemafuzz/js2020"
)

// candidatePool is a small set of representative JSON values spanning
// every JSON kind, used to search for a value that satisfies or violates
// a sub-schema without needing a general-purpose JS2020 value generator
// (spec §4.4 scopes generate_valid to JTD only).
func candidatePool() []any {
	return []any{
		nil, true, false, float64(0), float64(1), float64(-1), "",
		"a", "hello", map[string]any{}, []any{}, []any{float64(1)},
	}
}

func satisfies(s *js2020.Schema, v any) bool {
	return len(js2020.Validate(s, v)) == 0
}

// findSatisfying returns the first pool candidate that validates cleanly
// against every schema in want (and, if avoid is non-nil, fails it).
func findSatisfying(want []*js2020.Schema, avoid *js2020.Schema) (any, bool) {
	for _, c := range candidatePool() {
		ok := true
		for _, w := range want {
			if !satisfies(w, c) {
				ok = false
				break
			}
		}
		if ok && avoid != nil && satisfies(avoid, c) {
			ok = false
		}
		if ok {
			return c, true
		}
	}
	return nil, false
}

// GenerateSemanticInvalidJS2020 produces a well-formed JSON value violating s
// under the named mutation (or a uniformly-sampled applicable one when
// name is empty), per spec §4.4/§6.4. Grounded on
// original_source/src/fuzzer/json_schema_mutations.rs's keyword-presence
// dispatch, reworked around the real Validate function as an oracle
// instead of a second bespoke generator.
func GenerateSemanticInvalidJS2020(s *js2020.Schema, name string, rng *rand.Rand) any {
	name = Normalize(name)
	if s == nil {
		return nilSentinel
	}
	if s.Boolean {
		if s.BoolValue {
			return nilSentinel // accepts everything, so nothing can violate it
		}
		return "invalid" // rejects everything
	}

	if name != "" {
		return js2020MutationByName(s, name, rng)
	}
	var applicable []any
	for _, n := range JS2020SemanticMutationNames {
		if v := js2020MutationByName(s, n, rng); v != nilSentinel {
			applicable = append(applicable, v)
		}
	}
	if len(applicable) == 0 {
		return nilSentinel
	}
	return applicable[rng.Intn(len(applicable))]
}

func js2020MutationByName(s *js2020.Schema, name string, rng *rand.Rand) any {
	switch name {
	case "type-violation":
		return typeViolation(s)
	case "enum-violation":
		if s.Enum == nil {
			return nilSentinel
		}
		return "__not_in_enum__"
	case "const-different":
		if s.Const == nil || !s.Const.IsSet {
			return nilSentinel
		}
		if _, ok := s.Const.Value.(string); ok {
			return "__const_different__"
		}
		return "__const_different__"
	case "missing-required":
		return missingRequired(s)
	case "min-items-violation":
		if s.MinItems == nil || *s.MinItems == 0 {
			return nilSentinel
		}
		return make([]any, *s.MinItems-1)
	case "max-items-violation":
		if s.MaxItems == nil {
			return nilSentinel
		}
		return make([]any, *s.MaxItems+1)
	case "unique-items-violation":
		if s.UniqueItems == nil || !*s.UniqueItems {
			return nilSentinel
		}
		return []any{float64(1), float64(1)}
	case "contains-violation":
		if s.Contains == nil {
			return nilSentinel
		}
		v, ok := findSatisfying(nil, s.Contains)
		if !ok {
			return nilSentinel
		}
		return []any{v}
	case "min-properties-violation":
		if s.MinProperties == nil || *s.MinProperties == 0 {
			return nilSentinel
		}
		return buildObjectOfSize(*s.MinProperties - 1)
	case "max-properties-violation":
		if s.MaxProperties == nil {
			return nilSentinel
		}
		return buildObjectOfSize(*s.MaxProperties + 1)
	case "min-length-violation":
		if s.MinLength == nil || *s.MinLength == 0 {
			return nilSentinel
		}
		return strings.Repeat("x", *s.MinLength-1)
	case "max-length-violation":
		if s.MaxLength == nil {
			return nilSentinel
		}
		return strings.Repeat("x", *s.MaxLength+1)
	case "pattern-violation":
		if s.Pattern == nil {
			return nilSentinel
		}
		return ""
	case "minimum-violation":
		if s.Minimum == nil {
			return nilSentinel
		}
		return *s.Minimum - 1
	case "maximum-violation":
		if s.Maximum == nil {
			return nilSentinel
		}
		return *s.Maximum + 1
	case "exclusive-minimum-violation":
		if s.ExclusiveMinimum == nil {
			return nilSentinel
		}
		return *s.ExclusiveMinimum
	case "exclusive-maximum-violation":
		if s.ExclusiveMaximum == nil {
			return nilSentinel
		}
		return *s.ExclusiveMaximum
	case "multiple-of-violation":
		if s.MultipleOf == nil {
			return nilSentinel
		}
		return *s.MultipleOf*2 + *s.MultipleOf/2
	case "prefix-items-wrong-type":
		return prefixItemsWrongType(s)
	case "prefix-items-extra":
		return prefixItemsExtra(s)
	case "prefix-items-too-few":
		// prefixItems alone only constrains positions present in the
		// instance; a shorter array is legal unless minItems also rules
		// it out. Only fire where that's guaranteed, mirroring how
		// min-items-violation is scoped above.
		if len(s.PrefixItems) == 0 || s.MinItems == nil {
			return nilSentinel
		}
		short := len(s.PrefixItems) - 1
		if short >= *s.MinItems {
			return nilSentinel
		}
		arr := make([]any, short)
		for i := range arr {
			v, _ := findSatisfying([]*js2020.Schema{s.PrefixItems[i]}, nil)
			arr[i] = v
		}
		return arr
	case "all-of-invalid":
		if len(s.AllOf) == 0 {
			return nilSentinel
		}
		return GenerateSemanticInvalidJS2020(s.AllOf[0], "", rng)
	case "any-of-all-invalid":
		if len(s.AnyOf) == 0 {
			return nilSentinel
		}
		if v, ok := findSatisfying(nil, nil); ok {
			allFail := true
			for _, sub := range s.AnyOf {
				if satisfies(sub, v) {
					allFail = false
					break
				}
			}
			if allFail {
				return v
			}
		}
		return GenerateSemanticInvalidJS2020(s.AnyOf[0], "", rng)
	case "one-of-multiple-valid":
		if len(s.OneOf) < 2 {
			return nilSentinel
		}
		if v, ok := findSatisfying(s.OneOf[:2], nil); ok {
			return v
		}
		return nilSentinel
	case "not-satisfied":
		if s.Not == nil {
			return nilSentinel
		}
		if v, ok := findSatisfying([]*js2020.Schema{s.Not}, nil); ok {
			return v
		}
		return nilSentinel
	case "if-then-invalid":
		if s.If == nil || s.Then == nil {
			return nilSentinel
		}
		v := GenerateSemanticInvalidJS2020(s.Then, "", rng)
		if v != nilSentinel && satisfies(s.If, v) {
			return v
		}
		if cand, ok := findSatisfying([]*js2020.Schema{s.If}, s.Then); ok {
			return cand
		}
		return nilSentinel
	case "if-else-invalid":
		if s.If == nil || s.Else == nil {
			return nilSentinel
		}
		for _, c := range candidatePool() {
			if !satisfies(s.If, c) && !satisfies(s.Else, c) {
				return c
			}
		}
		return nilSentinel
	case "additional-properties-violation":
		return additionalPropertiesViolation(s)
	case "pattern-properties-invalid-value":
		return patternPropertiesInvalidValue(s, rng)
	case "ref-invalid":
		if s.Ref == "" {
			return nilSentinel
		}
		target, ok := js2020.ResolveRef(s.Ref, s)
		if !ok {
			return nilSentinel
		}
		return GenerateSemanticInvalidJS2020(target, "", rng)
	}
	return nilSentinel
}

func typeViolation(s *js2020.Schema) any {
	if len(s.Type) == 0 {
		return nilSentinel
	}
	wants := make(map[string]bool, len(s.Type))
	for _, t := range s.Type {
		wants[t] = true
	}
	for _, candidate := range []struct {
		kind string
		v    any
	}{
		{"null", nil}, {"boolean", true}, {"string", "x"},
		{"number", float64(1)}, {"array", []any{}}, {"object", map[string]any{}},
	} {
		if !wants[candidate.kind] {
			return candidate.v
		}
	}
	return nilSentinel
}

func missingRequired(s *js2020.Schema) any {
	if len(s.Required) == 0 {
		return nilSentinel
	}
	obj := make(map[string]any)
	for key, sub := range s.Properties {
		if key == s.Required[0] {
			continue
		}
		v, ok := findSatisfying([]*js2020.Schema{sub}, nil)
		if !ok {
			v = nil
		}
		obj[key] = v
	}
	return obj
}

func buildObjectOfSize(n int) any {
	if n < 0 {
		n = 0
	}
	obj := make(map[string]any, n)
	for i := 0; i < n; i++ {
		obj[strings.Repeat("k", i+1)] = float64(i)
	}
	return obj
}

func prefixItemsWrongType(s *js2020.Schema) any {
	if len(s.PrefixItems) == 0 {
		return nilSentinel
	}
	arr := make([]any, len(s.PrefixItems))
	for i, sub := range s.PrefixItems {
		if i == 0 {
			v, ok := findSatisfying(nil, sub)
			if !ok {
				v = nil
			}
			arr[i] = v
			continue
		}
		v, ok := findSatisfying([]*js2020.Schema{sub}, nil)
		if !ok {
			v = nil
		}
		arr[i] = v
	}
	return arr
}

func prefixItemsExtra(s *js2020.Schema) any {
	if len(s.PrefixItems) == 0 || s.Items == nil || s.Items.Bool == nil || *s.Items.Bool {
		return nilSentinel
	}
	arr := make([]any, 0, len(s.PrefixItems)+1)
	for _, sub := range s.PrefixItems {
		v, ok := findSatisfying([]*js2020.Schema{sub}, nil)
		if !ok {
			v = nil
		}
		arr = append(arr, v)
	}
	return append(arr, "unexpected_extra_item")
}

func additionalPropertiesViolation(s *js2020.Schema) any {
	if s.AdditionalProperties == nil {
		return nilSentinel
	}
	obj := make(map[string]any)
	for key, sub := range s.Properties {
		v, ok := findSatisfying([]*js2020.Schema{sub}, nil)
		if !ok {
			v = nil
		}
		obj[key] = v
	}
	switch {
	case s.AdditionalProperties.Bool != nil && !*s.AdditionalProperties.Bool:
		obj["unexpected_additional_property"] = "invalid"
		return obj
	case s.AdditionalProperties.Schema != nil:
		v, ok := findSatisfying(nil, s.AdditionalProperties.Schema)
		if !ok {
			return nilSentinel
		}
		obj["unexpected_additional_property"] = v
		return obj
	}
	return nilSentinel
}

func patternPropertiesInvalidValue(s *js2020.Schema, rng *rand.Rand) any {
	if len(s.PatternProperties) == 0 {
		return nilSentinel
	}
	for pattern, sub := range s.PatternProperties {
		key := literalFromPattern(pattern)
		v, ok := findSatisfying(nil, sub)
		if !ok {
			continue
		}
		return map[string]any{key: v}
	}
	return nilSentinel
}

// literalFromPattern strips regex metacharacters to approximate a literal
// key that will match a simple pattern; patterns too exotic to approximate
// fall back to a fixed probe key.
func literalFromPattern(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		if strings.ContainsRune(`^$.*+?()[]{}|\`, r) {
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "key"
	}
	return b.String()
}
