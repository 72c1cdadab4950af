package js2020

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Schema {
	t.Helper()
	s, err := Parse([]byte(text))
	require.NoError(t, err)
	return s
}

func mustDecode(t *testing.T, text string) any {
	t.Helper()
	v, err := DecodeInstance([]byte(text))
	require.NoError(t, err)
	return v
}

func TestValidate_Scenario5_PrefixItemsTypeMismatch(t *testing.T) {
	s := mustParse(t, `{"$schema":"https://json-schema.org/draft/2020-12/schema",
		"prefixItems":[{"type":"string"},{"type":"number"}]}`)
	errs := Validate(s, mustDecode(t, `[42,"hello"]`))

	require.Len(t, errs, 2)
	assert.Contains(t, errs, ValidationError{InstancePath: "/0", SchemaPath: "/prefixItems/0/type"})
	assert.Contains(t, errs, ValidationError{InstancePath: "/1", SchemaPath: "/prefixItems/1/type"})
}

func TestValidate_Scenario6_OneOfMultipleSatisfiableBranches(t *testing.T) {
	s := mustParse(t, `{"$schema":"https://json-schema.org/draft/2020-12/schema",
		"oneOf":[{"type":"string"},{"minLength":1}]}`)
	errs := Validate(s, mustDecode(t, `"hello"`))

	require.Len(t, errs, 1)
	assert.Equal(t, "", errs[0].InstancePath)
	assert.Equal(t, "/oneOf", errs[0].SchemaPath)
}

func TestValidate_Type(t *testing.T) {
	s := mustParse(t, `{"type":"string"}`)
	assert.Empty(t, Validate(s, "hello"))
	assert.NotEmpty(t, Validate(s, float64(1)))
}

func TestValidate_TypeUnionAcceptsEither(t *testing.T) {
	s := mustParse(t, `{"type":["string","null"]}`)
	assert.Empty(t, Validate(s, "hello"))
	assert.Empty(t, Validate(s, nil))
	assert.NotEmpty(t, Validate(s, float64(1)))
}

func TestValidate_EnumAndConst(t *testing.T) {
	s := mustParse(t, `{"enum":["a","b"]}`)
	assert.Empty(t, Validate(s, "a"))
	assert.NotEmpty(t, Validate(s, "c"))

	s = mustParse(t, `{"const":42}`)
	assert.Empty(t, Validate(s, float64(42)))
	assert.NotEmpty(t, Validate(s, float64(43)))
}

func TestValidate_AllOfAnyOfNot(t *testing.T) {
	s := mustParse(t, `{"allOf":[{"type":"string"},{"minLength":2}]}`)
	assert.Empty(t, Validate(s, "ab"))
	assert.NotEmpty(t, Validate(s, "a"))

	s = mustParse(t, `{"anyOf":[{"type":"string"},{"type":"number"}]}`)
	assert.Empty(t, Validate(s, "x"))
	assert.Empty(t, Validate(s, float64(1)))
	assert.NotEmpty(t, Validate(s, true))

	s = mustParse(t, `{"not":{"type":"string"}}`)
	assert.Empty(t, Validate(s, float64(1)))
	assert.NotEmpty(t, Validate(s, "x"))
}

func TestValidate_IfThenElse(t *testing.T) {
	s := mustParse(t, `{"if":{"type":"string"},"then":{"minLength":3},"else":{"minimum":10}}`)
	assert.Empty(t, Validate(s, "abc"))
	assert.NotEmpty(t, Validate(s, "a"))
	assert.Empty(t, Validate(s, float64(11)))
	assert.NotEmpty(t, Validate(s, float64(1)))
}

func TestValidate_RefShortCircuits(t *testing.T) {
	s := mustParse(t, `{"$defs":{"Pos":{"type":"number","minimum":0}},
		"$ref":"#/$defs/Pos","type":"string"}`)
	// Per spec's $ref short-circuit rule, sibling keywords (type:string) are
	// ignored once $ref resolves.
	assert.Empty(t, Validate(s, float64(5)))
	assert.NotEmpty(t, Validate(s, float64(-5)))
}

func TestValidate_ArrayKeywords(t *testing.T) {
	s := mustParse(t, `{"minItems":1,"maxItems":2,"uniqueItems":true,
		"contains":{"const":1}}`)
	assert.Empty(t, Validate(s, mustDecode(t, `[1,2]`)))
	assert.NotEmpty(t, Validate(s, mustDecode(t, `[]`)))
	assert.NotEmpty(t, Validate(s, mustDecode(t, `[2,3,4]`)))
	assert.NotEmpty(t, Validate(s, mustDecode(t, `[2,2]`)))
	assert.NotEmpty(t, Validate(s, mustDecode(t, `[2,3]`)))
}

func TestValidate_ObjectKeywords(t *testing.T) {
	s := mustParse(t, `{"properties":{"name":{"type":"string"}},
		"required":["name"],"additionalProperties":false}`)
	assert.Empty(t, Validate(s, mustDecode(t, `{"name":"a"}`)))
	assert.NotEmpty(t, Validate(s, mustDecode(t, `{}`)))
	assert.NotEmpty(t, Validate(s, mustDecode(t, `{"name":"a","extra":1}`)))
}

func TestValidate_PatternProperties(t *testing.T) {
	s := mustParse(t, `{"patternProperties":{"^x-":{"type":"number"}}}`)
	assert.Empty(t, Validate(s, mustDecode(t, `{"x-foo":1}`)))
	assert.NotEmpty(t, Validate(s, mustDecode(t, `{"x-foo":"bad"}`)))
}

func TestValidate_StringKeywords(t *testing.T) {
	s := mustParse(t, `{"minLength":2,"maxLength":4,"pattern":"^a"}`)
	assert.Empty(t, Validate(s, "abc"))
	assert.NotEmpty(t, Validate(s, "a"))
	assert.NotEmpty(t, Validate(s, "abcde"))
	assert.NotEmpty(t, Validate(s, "bbb"))
}

func TestValidate_NumericKeywords(t *testing.T) {
	s := mustParse(t, `{"minimum":0,"maximum":10,"exclusiveMinimum":0,
		"exclusiveMaximum":10,"multipleOf":2}`)
	assert.Empty(t, Validate(s, float64(4)))
	assert.NotEmpty(t, Validate(s, float64(0)))
	assert.NotEmpty(t, Validate(s, float64(10)))
	assert.NotEmpty(t, Validate(s, float64(3)))
}

func TestValidate_BooleanSchemas(t *testing.T) {
	assert.Empty(t, Validate(mustParse(t, `true`), "anything"))
	assert.NotEmpty(t, Validate(mustParse(t, `false`), "anything"))
}
