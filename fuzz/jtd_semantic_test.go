package fuzz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/structflow/schemafuzz/fuzz"
	"github.com/structflow/schemafuzz/jtd"
)

// TestGenerateSemanticInvalid_Soundness covers spec §8 property 3: every
// named mutation applicable to a schema either returns the benign
// sentinel or a value the real validator rejects.
func TestGenerateSemanticInvalid_Soundness(t *testing.T) {
	cases := []struct {
		schemaText string
		form       string
	}{
		{`{}`, "empty"},
		{`{"type":"int8"}`, "type"},
		{`{"type":"boolean"}`, "type"},
		{`{"type":"string"}`, "type"},
		{`{"enum":["a","b","c"]}`, "enum"},
		{`{"elements":{"type":"string"}}`, "elements"},
		{`{"values":{"type":"int32"}}`, "values"},
		{`{"properties":{"name":{"type":"string"}},"optionalProperties":{"age":{"type":"uint8"}}}`, "properties"},
		{`{"properties":{"name":{"type":"string"}},"additionalProperties":false}`, "properties"},
		{`{"discriminator":"kind","mapping":{"a":{"properties":{"x":{"type":"int8"}}}}}`, "discriminator"},
		// A nullable nested sub-schema is the case a blind uniform sample
		// over the Type mutation pool can land on "null-for-non-nullable",
		// which is inapplicable precisely because the field IS nullable —
		// composite mutations embedding this field must not let that
		// inapplicable draw turn into an accidentally-valid whole object.
		{`{"properties":{"a":{"type":"int8","nullable":true}},"optionalProperties":{"b":{"type":"int8","nullable":true}}}`, "properties"},
		{`{"elements":{"type":"int8","nullable":true}}`, "elements"},
		{`{"values":{"type":"int8","nullable":true}}`, "values"},
		{`{"discriminator":"kind","mapping":{"a":{"properties":{"x":{"type":"int8","nullable":true}}}}}`, "discriminator"},
	}

	for _, c := range cases {
		s := mustParse(t, c.schemaText)
		names := fuzz.JTDSemanticMutationNames[c.form]
		for _, name := range names {
			for seed := int64(0); seed < 10; seed++ {
				rng := fuzz.New(seed)
				value := fuzz.GenerateSemanticInvalid(s, name, rng)
				if value == nil {
					// Either the benign sentinel or a genuine null violation;
					// both are acceptable per spec §4.4's inapplicable-mutation
					// contract, and since the two cannot be told apart a nil
					// result is not validated here.
					continue
				}
				errs := jtd.Validate(s, value)
				assert.NotEmptyf(t, errs, "schema %s mutation %s seed %d produced a value the validator accepted: %#v", c.schemaText, name, seed, value)
			}
		}
	}
}
