// Package js2020 implements the draft-2020-12 style general schema
// dialect: its AST, static validation, and instance validator.
package js2020

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// ConstValue wraps a const keyword's payload so a literal JSON null can be
// distinguished from the keyword being absent altogether.
type ConstValue struct {
	Value any
	IsSet bool
}

// Items is the items keyword's sub-schema-or-boolean payload.
type Items struct {
	Schema *Schema
	Bool   *bool
}

// AdditionalProperties is the additionalProperties keyword's
// sub-schema-or-boolean payload.
type AdditionalProperties struct {
	Schema *Schema
	Bool   *bool
}

// Schema is a JS2020 schema node. A node is either a boolean schema
// (Boolean==true, BoolValue holds true/false) or an object schema carrying
// any subset of the keyword groups below. Absent keywords are vacuously
// satisfied, matching spec §3.2.
type Schema struct {
	Boolean   bool
	BoolValue bool

	// Identity / reference
	SchemaKeyword string              `json:"$schema,omitempty"`
	ID            string              `json:"$id,omitempty"`
	Anchor        string              `json:"$anchor,omitempty"`
	DynamicAnchor string              `json:"$dynamicAnchor,omitempty"`
	Ref           string              `json:"$ref,omitempty"`
	DynamicRef    string              `json:"$dynamicRef,omitempty"`
	Defs          map[string]*Schema  `json:"$defs,omitempty"`

	// Type constraints
	Type  []string    `json:"type,omitempty"`
	Enum  []any       `json:"enum,omitempty"`
	Const *ConstValue `json:"const,omitempty"`

	// Composition
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`
	If    *Schema   `json:"if,omitempty"`
	Then  *Schema   `json:"then,omitempty"`
	Else  *Schema   `json:"else,omitempty"`

	// Array keywords
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	Items       *Items    `json:"items,omitempty"`
	Contains    *Schema   `json:"contains,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`
	UniqueItems *bool     `json:"uniqueItems,omitempty"`

	// Object keywords
	Properties           map[string]*Schema    `json:"properties,omitempty"`
	PatternProperties    map[string]*Schema    `json:"patternProperties,omitempty"`
	AdditionalProperties *AdditionalProperties `json:"additionalProperties,omitempty"`
	Required             []string              `json:"required,omitempty"`
	MinProperties        *int                  `json:"minProperties,omitempty"`
	MaxProperties        *int                  `json:"maxProperties,omitempty"`
	// OptionalProperties is a cross-dialect extension keyword, not part of
	// any JSON Schema standard draft.
	OptionalProperties map[string]*Schema `json:"optionalProperties,omitempty"`

	// String keywords
	MinLength *int    `json:"minLength,omitempty"`
	MaxLength *int    `json:"maxLength,omitempty"`
	Pattern   *string `json:"pattern,omitempty"`

	// Numeric keywords
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`
}

// UnmarshalJSON handles the boolean-or-object shape every JS2020 node can
// take, mirroring the teacher's own boolean-schema special case.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = Schema{Boolean: true, BoolValue: b}
		return nil
	}

	type schemaAlias Schema
	aux := struct {
		*schemaAlias
		Type                 jsontext.Value `json:"type,omitempty"`
		Items                jsontext.Value `json:"items,omitempty"`
		AdditionalProperties jsontext.Value `json:"additionalProperties,omitempty"`
		Const                jsontext.Value `json:"const,omitempty"`
	}{schemaAlias: (*schemaAlias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("js2020: %w", err)
	}

	if len(aux.Type) > 0 {
		types, err := decodeType(aux.Type)
		if err != nil {
			return err
		}
		s.Type = types
	}
	if len(aux.Items) > 0 {
		items, err := decodeItems(aux.Items)
		if err != nil {
			return err
		}
		s.Items = items
	}
	if len(aux.AdditionalProperties) > 0 {
		ap, err := decodeAdditionalProperties(aux.AdditionalProperties)
		if err != nil {
			return err
		}
		s.AdditionalProperties = ap
	}
	if len(aux.Const) > 0 {
		var v any
		if err := json.Unmarshal(aux.Const, &v); err != nil {
			return err
		}
		s.Const = &ConstValue{Value: v, IsSet: true}
	}
	return nil
}

// decodeType accepts the standard single-string type keyword as well as
// the array-of-strings form some dialects allow for a type union.
func decodeType(raw jsontext.Value) ([]string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, err
	}
	return many, nil
}

func decodeItems(raw jsontext.Value) (*Items, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &Items{Bool: &b}, nil
	}
	var sub Schema
	if err := json.Unmarshal(raw, &sub); err != nil {
		return nil, err
	}
	return &Items{Schema: &sub}, nil
}

func decodeAdditionalProperties(raw jsontext.Value) (*AdditionalProperties, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &AdditionalProperties{Bool: &b}, nil
	}
	var sub Schema
	if err := json.Unmarshal(raw, &sub); err != nil {
		return nil, err
	}
	return &AdditionalProperties{Schema: &sub}, nil
}
