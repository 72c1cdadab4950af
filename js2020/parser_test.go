package js2020

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BooleanSchema(t *testing.T) {
	s, err := Parse([]byte(`true`))
	require.NoError(t, err)
	assert.True(t, s.Boolean)
	assert.True(t, s.BoolValue)

	s, err = Parse([]byte(`false`))
	require.NoError(t, err)
	assert.True(t, s.Boolean)
	assert.False(t, s.BoolValue)
}

func TestParse_SingularAndArrayType(t *testing.T) {
	s, err := Parse([]byte(`{"type":"string"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"string"}, s.Type)

	s, err = Parse([]byte(`{"type":["string","null"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"string", "null"}, s.Type)
}

func TestParse_RejectsNonDraft2020Schema(t *testing.T) {
	_, err := Parse([]byte(`{"$schema":"https://json-schema.org/draft-07/schema"}`))
	require.Error(t, err)
}

func TestParse_RejectsNonDraft2020NestedInDefs(t *testing.T) {
	_, err := Parse([]byte(`{"$defs":{"a":{"$schema":"draft-04"}}}`))
	require.Error(t, err)
}

func TestParse_ItemsBooleanAndSchema(t *testing.T) {
	s, err := Parse([]byte(`{"prefixItems":[{"type":"string"}],"items":false}`))
	require.NoError(t, err)
	require.NotNil(t, s.Items)
	require.NotNil(t, s.Items.Bool)
	assert.False(t, *s.Items.Bool)

	s, err = Parse([]byte(`{"items":{"type":"number"}}`))
	require.NoError(t, err)
	require.NotNil(t, s.Items.Schema)
	assert.Equal(t, []string{"number"}, s.Items.Schema.Type)
}

func TestParse_AdditionalPropertiesVariants(t *testing.T) {
	s, err := Parse([]byte(`{"additionalProperties":false}`))
	require.NoError(t, err)
	require.NotNil(t, s.AdditionalProperties.Bool)
	assert.False(t, *s.AdditionalProperties.Bool)

	s, err = Parse([]byte(`{"additionalProperties":{"type":"string"}}`))
	require.NoError(t, err)
	require.NotNil(t, s.AdditionalProperties.Schema)
}

func TestParse_ConstDistinguishesNullFromAbsent(t *testing.T) {
	s, err := Parse([]byte(`{"const":null}`))
	require.NoError(t, err)
	require.NotNil(t, s.Const)
	assert.True(t, s.Const.IsSet)
	assert.Nil(t, s.Const.Value)

	s, err = Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, s.Const)
}

func TestResolveRef_DefsForm(t *testing.T) {
	root, err := Parse([]byte(`{"$defs":{"Name":{"type":"string"}},"$ref":"#/$defs/Name"}`))
	require.NoError(t, err)

	target, ok := ResolveRef(root.Ref, root)
	require.True(t, ok)
	assert.Equal(t, []string{"string"}, target.Type)
}

func TestResolveRef_UnsupportedPointerShape(t *testing.T) {
	root, err := Parse([]byte(`{"$defs":{"Name":{"type":"string"}}}`))
	require.NoError(t, err)

	_, ok := ResolveRef("#/properties/name", root)
	assert.False(t, ok)
}
