package fuzz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structflow/schemafuzz/fuzz"
	"github.com/structflow/schemafuzz/js2020"
)

func mustParseJS2020(t *testing.T, text string) *js2020.Schema {
	t.Helper()
	s, err := js2020.Parse([]byte(text))
	require.NoError(t, err)
	return s
}

// TestGenerateSemanticInvalidJS2020_Soundness covers spec §8 property 3 for
// the JS2020 dialect.
func TestGenerateSemanticInvalidJS2020_Soundness(t *testing.T) {
	schemas := []string{
		`{"type":"string"}`,
		`{"enum":["a","b"]}`,
		`{"const":42}`,
		`{"properties":{"name":{"type":"string"}},"required":["name"]}`,
		`{"minItems":2}`,
		`{"maxItems":2}`,
		`{"uniqueItems":true}`,
		`{"contains":{"const":1}}`,
		`{"minProperties":1}`,
		`{"maxProperties":1}`,
		`{"minLength":3}`,
		`{"maxLength":2}`,
		`{"pattern":"^a+$"}`,
		`{"minimum":0}`,
		`{"maximum":10}`,
		`{"exclusiveMinimum":0}`,
		`{"exclusiveMaximum":10}`,
		`{"multipleOf":2}`,
		`{"prefixItems":[{"type":"string"},{"type":"number"}],"minItems":2}`,
		`{"prefixItems":[{"type":"string"}],"items":false}`,
		`{"allOf":[{"type":"string"},{"minLength":2}]}`,
		`{"anyOf":[{"type":"string"},{"type":"number"}]}`,
		`{"oneOf":[{"type":"string"},{"minLength":1}]}`,
		`{"not":{"type":"string"}}`,
		`{"if":{"type":"string"},"then":{"minLength":3}}`,
		`{"if":{"type":"string"},"else":{"minimum":10}}`,
		`{"additionalProperties":false,"properties":{"a":{"type":"string"}}}`,
		`{"patternProperties":{"^x-":{"type":"number"}}}`,
		`{"$defs":{"Pos":{"minimum":0}},"$ref":"#/$defs/Pos"}`,
	}

	for _, text := range schemas {
		s := mustParseJS2020(t, text)
		for _, name := range fuzz.JS2020SemanticMutationNames {
			for seed := int64(0); seed < 5; seed++ {
				rng := fuzz.New(seed)
				value := fuzz.GenerateSemanticInvalidJS2020(s, name, rng)
				if value == nil {
					continue
				}
				errs := js2020.Validate(s, value)
				assert.NotEmptyf(t, errs, "schema %s mutation %s seed %d produced a value the validator accepted: %#v", text, name, seed, value)
			}
		}
	}
}
