package fuzz_test

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"

	"github.com/structflow/schemafuzz/fuzz"
)

// TestGenerateSyntacticInvalid_Soundness covers spec §8 property 4: every
// named mutation, run against small or degenerate valid JSON (the shapes a
// boolean/enum/short-string JTD schema actually produces), returns bytes
// the JSON decoder rejects. mixed-indentation is exempted: it only
// rearranges whitespace, which the JSON grammar ignores outside strings, so
// by construction it cannot produce invalid bytes.
func TestGenerateSyntacticInvalid_Soundness(t *testing.T) {
	seeds := []string{
		"true",
		"false",
		"0",
		`"a"`,
		"{}",
		"[]",
		`{"a":1}`,
		"[1]",
	}

	for _, name := range fuzz.SyntaxMutationNames {
		if name == "mixed-indentation" {
			continue
		}
		for _, seed := range seeds {
			for n := int64(0); n < 5; n++ {
				rng := fuzz.New(n)
				mutated := fuzz.GenerateSyntacticInvalid(seed, name, rng)
				var v any
				err := json.Unmarshal([]byte(mutated), &v)
				assert.Errorf(t, err, "seed %q mutation %s produced a still-valid document: %q", seed, name, mutated)
			}
		}
	}
}

// TestGenerateSyntacticInvalid_MixedIndentationStaysParseable documents the
// one exception to property 4: mixed-indentation only ever rearranges
// whitespace outside strings, so it must never produce invalid bytes.
func TestGenerateSyntacticInvalid_MixedIndentationStaysParseable(t *testing.T) {
	seeds := []string{"true", "false", "0", `"a"`, "{}", "[]", `{"a":1}`, "[1]", `{"a":{"b":[1,2,3]}}`}
	for _, seed := range seeds {
		for n := int64(0); n < 5; n++ {
			rng := fuzz.New(n)
			mutated := fuzz.GenerateSyntacticInvalid(seed, "mixed-indentation", rng)
			var v any
			assert.NoErrorf(t, json.Unmarshal([]byte(mutated), &v), "seed %q mixed-indentation produced unparseable output: %q", seed, mutated)
		}
	}
}
