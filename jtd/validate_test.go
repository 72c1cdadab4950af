package jtd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structflow/schemafuzz/jtd"
)

func mustParse(t *testing.T, text string) *jtd.Schema {
	t.Helper()
	s, err := jtd.Parse([]byte(text))
	require.NoError(t, err)
	return s
}

func mustInstance(t *testing.T, text string) any {
	t.Helper()
	v, err := jtd.DecodeInstance([]byte(text))
	require.NoError(t, err)
	return v
}

// End-to-end scenarios reproduced verbatim from the spec's testable
// properties section.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("scenario 1: boolean type rejects a string", func(t *testing.T) {
		s := mustParse(t, `{"type":"boolean"}`)
		errs := jtd.Validate(s, "true")
		require.Len(t, errs, 1)
		assert.Equal(t, "", errs[0].InstancePath)
		assert.Equal(t, "", errs[0].SchemaPath)
	})

	t.Run("scenario 2: elements with one wrong-typed member", func(t *testing.T) {
		s := mustParse(t, `{"elements":{"type":"string"}}`)
		instance := mustInstance(t, `["a",42,"c"]`)
		errs := jtd.Validate(s, instance)
		require.Len(t, errs, 1)
		assert.Equal(t, "/1", errs[0].InstancePath)
		assert.Equal(t, "/elements", errs[0].SchemaPath)
	})

	t.Run("scenario 3: missing required property", func(t *testing.T) {
		s := mustParse(t, `{"properties":{"name":{"type":"string"},"age":{"type":"uint8"}}}`)
		instance := mustInstance(t, `{"name":"Alice"}`)
		errs := jtd.Validate(s, instance)
		require.Len(t, errs, 1)
		assert.Equal(t, "/properties/age", errs[0].SchemaPath)
	})

	t.Run("scenario 4: discriminator tag not in mapping", func(t *testing.T) {
		s := mustParse(t, `{"discriminator":"type","mapping":{"user":{"properties":{"name":{"type":"string"}}}}}`)
		instance := mustInstance(t, `{"type":"unknown","name":"Alice"}`)
		errs := jtd.Validate(s, instance)
		require.Len(t, errs, 1)
		assert.Equal(t, "/type", errs[0].InstancePath)
		assert.Equal(t, "/mapping", errs[0].SchemaPath)
	})
}

func TestIntegerBoundaries(t *testing.T) {
	s := mustParse(t, `{"type":"int8"}`)
	assert.Empty(t, jtd.Validate(s, float64(127)))
	assert.Empty(t, jtd.Validate(s, float64(-128)))
	assert.NotEmpty(t, jtd.Validate(s, float64(128)))
	assert.NotEmpty(t, jtd.Validate(s, float64(-129)))

	u8 := mustParse(t, `{"type":"uint8"}`)
	assert.Empty(t, jtd.Validate(u8, float64(255)))
	assert.NotEmpty(t, jtd.Validate(u8, float64(-1)))
	assert.NotEmpty(t, jtd.Validate(u8, float64(256)))
}

func TestNullableHandling(t *testing.T) {
	nullableStr := mustParse(t, `{"type":"string","nullable":true}`)
	assert.Empty(t, jtd.Validate(nullableStr, nil))

	nonNullableStr := mustParse(t, `{"type":"string"}`)
	assert.NotEmpty(t, jtd.Validate(nonNullableStr, nil))

	empty := mustParse(t, `{}`)
	assert.Empty(t, jtd.Validate(empty, nil))
}

func TestAdditionalProperties(t *testing.T) {
	s := mustParse(t, `{"properties":{"name":{"type":"string"}}}`)
	instance := mustInstance(t, `{"name":"Alice","extra":1}`)
	errs := jtd.Validate(s, instance)
	require.Len(t, errs, 1)
	assert.Equal(t, "/extra", errs[0].InstancePath)

	loose := mustParse(t, `{"properties":{"name":{"type":"string"}},"additionalProperties":true}`)
	assert.Empty(t, jtd.Validate(loose, instance))
}

func TestDiscriminatorTagExemption(t *testing.T) {
	s := mustParse(t, `{"discriminator":"type","mapping":{"user":{"properties":{"name":{"type":"string"}}}}}`)
	instance := mustInstance(t, `{"type":"user","name":"Alice"}`)
	assert.Empty(t, jtd.Validate(s, instance))
}

func TestRefRecursion(t *testing.T) {
	s := mustParse(t, `{
		"definitions": {
			"node": {
				"properties": {
					"value": {"type":"int32"},
					"children": {"elements": {"ref":"node"}}
				}
			}
		},
		"ref": "node"
	}`)
	instance := mustInstance(t, `{"value":1,"children":[{"value":2,"children":[]}]}`)
	assert.Empty(t, jtd.Validate(s, instance))
}
