// Package conformance holds the fixed end-to-end scenarios and boundary
// cases this repository's behaviour is pinned to, as Go data rather than
// external fixture files, following the teacher's in-package table-driven
// test style. The same table backs both the package tests and the
// schemafuzz run-tests CLI subcommand.
package conformance

import (
	"fmt"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/structflow/schemafuzz/js2020"
	"github.com/structflow/schemafuzz/jtd"
	"github.com/structflow/schemafuzz/schema"
)

// ExpectedError is a dialect-agnostic expected {instance_path, schema_path}
// pair for comparing against either validator's output.
type ExpectedError struct {
	InstancePath string
	SchemaPath   string
}

// Case is one literal end-to-end scenario or boundary case from spec §8.
type Case struct {
	Name           string
	SchemaJSON     string
	InstanceJSON   string
	ExpectedErrors []ExpectedError
	// WantParseError marks boundary cases that must be rejected at
	// parse/static-check time rather than produce validation errors.
	WantParseError bool
}

// Cases reproduces spec §8's six literal end-to-end scenarios and its
// boundary-case list verbatim.
var Cases = []Case{
	{
		Name:         "scenario-1-boolean-wrong-type",
		SchemaJSON:   `{"type":"boolean"}`,
		InstanceJSON: `"true"`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "", SchemaPath: ""},
		},
	},
	{
		Name:         "scenario-2-elements-wrong-element-type",
		SchemaJSON:   `{"elements":{"type":"string"}}`,
		InstanceJSON: `["a",42,"c"]`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "/1", SchemaPath: "/elements"},
		},
	},
	{
		Name:         "scenario-3-properties-missing-required",
		SchemaJSON:   `{"properties":{"name":{"type":"string"},"age":{"type":"uint8"}}}`,
		InstanceJSON: `{"name":"Alice"}`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "", SchemaPath: "/properties/age"},
		},
	},
	{
		Name:         "scenario-4-discriminator-unknown-tag",
		SchemaJSON:   `{"discriminator":"type","mapping":{"user":{"properties":{"name":{"type":"string"}}}}}`,
		InstanceJSON: `{"type":"unknown","name":"Alice"}`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "/type", SchemaPath: "/mapping"},
		},
	},
	{
		Name:         "scenario-5-prefixitems-type-mismatch",
		SchemaJSON:   `{"$schema":"https://json-schema.org/draft/2020-12/schema","prefixItems":[{"type":"string"},{"type":"number"}]}`,
		InstanceJSON: `[42,"hello"]`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "/0", SchemaPath: "/prefixItems/0/type"},
			{InstancePath: "/1", SchemaPath: "/prefixItems/1/type"},
		},
	},
	{
		Name:         "scenario-6-oneof-two-satisfiable-branches",
		SchemaJSON:   `{"$schema":"https://json-schema.org/draft/2020-12/schema","oneOf":[{"type":"string"},{"minLength":1}]}`,
		InstanceJSON: `"hello"`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "", SchemaPath: "/oneOf"},
		},
	},

	// Boundary cases.
	{
		Name:         "boundary-int8-accepts-127",
		SchemaJSON:   `{"type":"int8"}`,
		InstanceJSON: `127`,
	},
	{
		Name:         "boundary-int8-accepts-negative-128",
		SchemaJSON:   `{"type":"int8"}`,
		InstanceJSON: `-128`,
	},
	{
		Name:         "boundary-int8-rejects-128",
		SchemaJSON:   `{"type":"int8"}`,
		InstanceJSON: `128`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "", SchemaPath: ""},
		},
	},
	{
		Name:         "boundary-int8-rejects-negative-129",
		SchemaJSON:   `{"type":"int8"}`,
		InstanceJSON: `-129`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "", SchemaPath: ""},
		},
	},
	{
		Name:         "boundary-uint8-accepts-255",
		SchemaJSON:   `{"type":"uint8"}`,
		InstanceJSON: `255`,
	},
	{
		Name:         "boundary-uint8-rejects-negative-1",
		SchemaJSON:   `{"type":"uint8"}`,
		InstanceJSON: `-1`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "", SchemaPath: ""},
		},
	},
	{
		Name:         "boundary-uint8-rejects-256",
		SchemaJSON:   `{"type":"uint8"}`,
		InstanceJSON: `256`,
		ExpectedErrors: []ExpectedError{
			{InstancePath: "", SchemaPath: ""},
		},
	},
	{
		Name:           "boundary-empty-enum-rejected-at-parse",
		SchemaJSON:     `{"enum":[]}`,
		WantParseError: true,
	},
	{
		Name:           "boundary-duplicate-enum-rejected-at-parse",
		SchemaJSON:     `{"enum":["a","a"]}`,
		WantParseError: true,
	},
	{
		Name:           "boundary-non-root-definitions-rejected-at-parse",
		SchemaJSON:     `{"elements":{"definitions":{"x":{}},"type":"string"}}`,
		WantParseError: true,
	},
	{
		Name:           "boundary-ref-only-cycle-rejected-at-parse",
		SchemaJSON:     `{"definitions":{"a":{"ref":"b"},"b":{"ref":"a"}},"ref":"a"}`,
		WantParseError: true,
	},
	{
		Name:         "boundary-ref-cycle-through-elements-accepted",
		SchemaJSON:   `{"definitions":{"node":{"properties":{"children":{"elements":{"ref":"node"}}}}},"ref":"node"}`,
		InstanceJSON: `{"children":[{"children":[]}]}`,
	},
}

// Result is the outcome of running one Case.
type Result struct {
	Case   Case
	Passed bool
	Detail string
}

// RunAll parses and validates every Case, comparing observed behaviour to
// the case's expectation.
func RunAll() []Result {
	results := make([]Result, 0, len(Cases))
	for _, c := range Cases {
		results = append(results, run(c))
	}
	return results
}

func run(c Case) Result {
	dialect := schema.Detect(jsontext.Value(c.SchemaJSON))

	if dialect == schema.DialectJS2020 {
		s, err := js2020.Parse([]byte(c.SchemaJSON))
		if c.WantParseError {
			if err == nil {
				return Result{Case: c, Passed: false, Detail: "expected parse error, got none"}
			}
			return Result{Case: c, Passed: true}
		}
		if err != nil {
			return Result{Case: c, Passed: false, Detail: fmt.Sprintf("unexpected parse error: %v", err)}
		}
		instance, err := js2020.DecodeInstance([]byte(c.InstanceJSON))
		if err != nil {
			return Result{Case: c, Passed: false, Detail: fmt.Sprintf("bad instance fixture: %v", err)}
		}
		errs := js2020.Validate(s, instance)
		return compare(c, toExpected(errs))
	}

	s, err := jtd.Parse([]byte(c.SchemaJSON))
	if c.WantParseError {
		if err == nil {
			return Result{Case: c, Passed: false, Detail: "expected parse error, got none"}
		}
		return Result{Case: c, Passed: true}
	}
	if err != nil {
		return Result{Case: c, Passed: false, Detail: fmt.Sprintf("unexpected parse error: %v", err)}
	}
	instance, err := jtd.DecodeInstance([]byte(c.InstanceJSON))
	if err != nil {
		return Result{Case: c, Passed: false, Detail: fmt.Sprintf("bad instance fixture: %v", err)}
	}
	errs := jtd.Validate(s, instance)
	out := make([]ExpectedError, len(errs))
	for i, e := range errs {
		out[i] = ExpectedError{InstancePath: e.InstancePath, SchemaPath: e.SchemaPath}
	}
	return compare(c, out)
}

func toExpected(errs []js2020.ValidationError) []ExpectedError {
	out := make([]ExpectedError, len(errs))
	for i, e := range errs {
		out[i] = ExpectedError{InstancePath: e.InstancePath, SchemaPath: e.SchemaPath}
	}
	return out
}

func compare(c Case, got []ExpectedError) Result {
	if len(got) != len(c.ExpectedErrors) {
		return Result{Case: c, Passed: false, Detail: fmt.Sprintf("expected %d error(s), got %d: %v", len(c.ExpectedErrors), len(got), got)}
	}
	seen := make([]bool, len(got))
	for _, want := range c.ExpectedErrors {
		found := false
		for i, g := range got {
			if seen[i] {
				continue
			}
			if g == want {
				seen[i] = true
				found = true
				break
			}
		}
		if !found {
			return Result{Case: c, Passed: false, Detail: fmt.Sprintf("missing expected error %+v in %v", want, got)}
		}
	}
	return Result{Case: c, Passed: true}
}
