// Package jtd implements the compact RFC 8927 type-definition dialect: its
// AST, static well-formedness checks, and instance validator.
package jtd

import (
	"github.com/go-json-experiment/json/jsontext"
)

// Primitive is one of the eleven JTD scalar type names.
type Primitive string

const (
	PrimitiveBoolean   Primitive = "boolean"
	PrimitiveString    Primitive = "string"
	PrimitiveTimestamp Primitive = "timestamp"
	PrimitiveFloat32   Primitive = "float32"
	PrimitiveFloat64   Primitive = "float64"
	PrimitiveInt8      Primitive = "int8"
	PrimitiveUint8     Primitive = "uint8"
	PrimitiveInt16     Primitive = "int16"
	PrimitiveUint16    Primitive = "uint16"
	PrimitiveInt32     Primitive = "int32"
	PrimitiveUint32    Primitive = "uint32"
)

// validPrimitives is the closed set of accepted Type payloads.
var validPrimitives = map[Primitive]bool{
	PrimitiveBoolean: true, PrimitiveString: true, PrimitiveTimestamp: true,
	PrimitiveFloat32: true, PrimitiveFloat64: true,
	PrimitiveInt8: true, PrimitiveUint8: true,
	PrimitiveInt16: true, PrimitiveUint16: true,
	PrimitiveInt32: true, PrimitiveUint32: true,
}

// Form is the sealed set of eight mutually-exclusive schema shapes. A
// flat struct with optional fields loses the exclusivity invariant and
// forces a run-time check at every traversal site, so each form gets its
// own concrete type instead (see SPEC_FULL.md's Design Notes carryover).
type Form interface {
	formTag() string
}

type FormEmpty struct{}

func (FormEmpty) formTag() string { return "empty" }

type FormRef struct {
	Name string
}

func (FormRef) formTag() string { return "ref" }

type FormType struct {
	Primitive Primitive
}

func (FormType) formTag() string { return "type" }

type FormEnum struct {
	Values []string
}

func (FormEnum) formTag() string { return "enum" }

type FormElements struct {
	Elements *Schema
}

func (FormElements) formTag() string { return "elements" }

type FormValues struct {
	Values *Schema
}

func (FormValues) formTag() string { return "values" }

type FormProperties struct {
	Properties           map[string]*Schema
	OptionalProperties   map[string]*Schema
	AdditionalProperties bool
}

func (FormProperties) formTag() string { return "properties" }

type FormDiscriminator struct {
	Discriminator string
	Mapping       map[string]*Schema
}

func (FormDiscriminator) formTag() string { return "discriminator" }

// Schema is a JTD schema node: three optional decorators plus exactly one
// Form. Definitions is non-nil only at the root.
type Schema struct {
	Nullable    bool
	Metadata    jsontext.Value
	Definitions map[string]*Schema
	Form        Form
}

// valueCarryingChildren returns the nested value-constructing sub-schemas
// the form carries (none for Ref, which only carries a name). Used by the
// cycle detector, which clears the Ref-stack frame when descending into them.
func (s *Schema) valueCarryingChildren() []*Schema {
	switch f := s.Form.(type) {
	case FormElements:
		return []*Schema{f.Elements}
	case FormValues:
		return []*Schema{f.Values}
	case FormProperties:
		children := make([]*Schema, 0, len(f.Properties)+len(f.OptionalProperties))
		for _, v := range f.Properties {
			children = append(children, v)
		}
		for _, v := range f.OptionalProperties {
			children = append(children, v)
		}
		return children
	case FormDiscriminator:
		children := make([]*Schema, 0, len(f.Mapping))
		for _, v := range f.Mapping {
			children = append(children, v)
		}
		return children
	default:
		return nil
	}
}
