package jtd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structflow/schemafuzz/jtd"
)

func TestFormExclusivity(t *testing.T) {
	_, err := jtd.Parse([]byte(`{"type":"string","enum":["a","b"]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, jtd.ErrSchemaSyntax)
}

func TestEmptyFormWhenNoKeywordPresent(t *testing.T) {
	s, err := jtd.Parse([]byte(`{"nullable":true}`))
	require.NoError(t, err)
	_, ok := s.Form.(jtd.FormEmpty)
	assert.True(t, ok)
}

func TestDefinitionsMustBeAtRoot(t *testing.T) {
	_, err := jtd.Parse([]byte(`{"elements":{"type":"string","definitions":{"x":{}}}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, jtd.ErrSchemaSyntax)
}

func TestEmptyEnumRejected(t *testing.T) {
	_, err := jtd.Parse([]byte(`{"enum":[]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, jtd.ErrInvalidEnum)
}

func TestDuplicateEnumRejected(t *testing.T) {
	_, err := jtd.Parse([]byte(`{"enum":["a","b","a"]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, jtd.ErrInvalidEnum)
}

func TestUnresolvedReferenceRejected(t *testing.T) {
	_, err := jtd.Parse([]byte(`{"ref":"missing"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, jtd.ErrReferenceNotFound)
}

func TestReferenceInsideOrphanedDefinitionIsChecked(t *testing.T) {
	// Nothing in the reachable tree points at "orphan", but it still must
	// resolve: this module checks every Ref node, not just reachable ones.
	_, err := jtd.Parse([]byte(`{
		"definitions": {
			"orphan": {"ref":"does-not-exist"}
		},
		"type": "string"
	}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, jtd.ErrReferenceNotFound)
}

func TestBareRefCycleRejected(t *testing.T) {
	_, err := jtd.Parse([]byte(`{
		"definitions": {
			"a": {"ref":"b"},
			"b": {"ref":"a"}
		},
		"ref": "a"
	}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, jtd.ErrCircularReference)
}

func TestRecursionThroughContainerIsAccepted(t *testing.T) {
	_, err := jtd.Parse([]byte(`{
		"definitions": {
			"node": {
				"properties": {
					"children": {"elements":{"ref":"node"}}
				}
			}
		},
		"ref": "node"
	}`))
	require.NoError(t, err)
}

func TestDiscriminatorMappingMustBeProperties(t *testing.T) {
	_, err := jtd.Parse([]byte(`{"discriminator":"type","mapping":{"x":{"type":"string"}}}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, jtd.ErrSchemaSyntax)
}
