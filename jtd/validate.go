package jtd

import (
	"math"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/structflow/schemafuzz/schema"
)

// ValidationError is a pair of RFC 6901 JSON Pointers: instance_path
// addresses the offending value, schema_path addresses the rejecting
// keyword. The set of errors is fixed for a given (schema, instance) pair;
// their order is not, since Properties and Values forms are walked in Go
// map iteration order, which can differ between two calls.
type ValidationError struct {
	InstancePath string
	SchemaPath   string
}

// Validate checks instance against schema, threading the root definitions
// for Ref resolution. The initial call uses empty paths; the recursion
// never mutates schema and always returns a fresh error slice.
func Validate(s *Schema, instance any) []ValidationError {
	return validate(s, s.Definitions, instance, "", "")
}

// ValidateNode checks instance against s using defs as the root
// definitions for Ref resolution, for callers holding a non-root node
// (e.g. a sub-schema reached mid-recursion) that still needs Ref lookups
// to resolve against the schema's actual root. Used by the fuzzer to
// verify a generated candidate is a genuine violation before returning it.
func ValidateNode(s *Schema, defs map[string]*Schema, instance any) []ValidationError {
	return validate(s, defs, instance, "", "")
}

func validate(s *Schema, defs map[string]*Schema, instance any, instancePath, schemaPath string) []ValidationError {
	if instance == nil {
		if s.Nullable {
			return nil
		}
		if _, ok := s.Form.(FormEmpty); ok {
			return nil
		}
		return []ValidationError{{InstancePath: instancePath, SchemaPath: schemaPath}}
	}

	switch f := s.Form.(type) {
	case FormEmpty:
		return nil
	case FormRef:
		target, ok := defs[f.Name]
		if !ok {
			// Cannot occur in a schema that passed Parse; kept for callers
			// that construct a Schema by hand.
			return []ValidationError{{InstancePath: instancePath, SchemaPath: schema.Push(schema.Push(schemaPath, "definitions"), f.Name)}}
		}
		return validate(target, defs, instance, instancePath, schemaPath)
	case FormType:
		return validateType(f.Primitive, instance, instancePath, schemaPath)
	case FormEnum:
		return validateEnumInstance(f.Values, instance, instancePath, schemaPath)
	case FormElements:
		return validateElements(f.Elements, defs, instance, instancePath, schemaPath)
	case FormValues:
		return validateValues(f.Values, defs, instance, instancePath, schemaPath)
	case FormProperties:
		return validateProperties(f, defs, instance, instancePath, schemaPath)
	case FormDiscriminator:
		return validateDiscriminator(f, defs, instance, instancePath, schemaPath)
	}
	return nil
}

func fail(instancePath, schemaPath string) []ValidationError {
	return []ValidationError{{InstancePath: instancePath, SchemaPath: schemaPath}}
}

func validateType(p Primitive, instance any, instancePath, schemaPath string) []ValidationError {
	switch p {
	case PrimitiveBoolean:
		if _, ok := instance.(bool); !ok {
			return fail(instancePath, schemaPath)
		}
	case PrimitiveString:
		if _, ok := instance.(string); !ok {
			return fail(instancePath, schemaPath)
		}
	case PrimitiveTimestamp:
		str, ok := instance.(string)
		if !ok {
			return fail(instancePath, schemaPath)
		}
		if _, err := time.Parse(time.RFC3339, str); err != nil {
			return fail(instancePath, schemaPath)
		}
	case PrimitiveFloat32:
		num, ok := instance.(float64)
		if !ok {
			return fail(instancePath, schemaPath)
		}
		if num < -math.MaxFloat32 || num > math.MaxFloat32 {
			return fail(instancePath, schemaPath)
		}
	case PrimitiveFloat64:
		if _, ok := instance.(float64); !ok {
			return fail(instancePath, schemaPath)
		}
	case PrimitiveInt8:
		return validateIntRange(instance, -128, 127, instancePath, schemaPath)
	case PrimitiveUint8:
		return validateIntRange(instance, 0, 255, instancePath, schemaPath)
	case PrimitiveInt16:
		return validateIntRange(instance, -32768, 32767, instancePath, schemaPath)
	case PrimitiveUint16:
		return validateIntRange(instance, 0, 65535, instancePath, schemaPath)
	case PrimitiveInt32:
		return validateIntRange(instance, -2147483648, 2147483647, instancePath, schemaPath)
	case PrimitiveUint32:
		return validateIntRange(instance, 0, 4294967295, instancePath, schemaPath)
	}
	return nil
}

func validateIntRange(instance any, min, max float64, instancePath, schemaPath string) []ValidationError {
	num, ok := instance.(float64)
	if !ok {
		return fail(instancePath, schemaPath)
	}
	if num != math.Trunc(num) {
		return fail(instancePath, schemaPath)
	}
	if num < min || num > max {
		return fail(instancePath, schemaPath)
	}
	return nil
}

func validateEnumInstance(values []string, instance any, instancePath, schemaPath string) []ValidationError {
	str, ok := instance.(string)
	if !ok {
		return fail(instancePath, schemaPath)
	}
	for _, v := range values {
		if v == str {
			return nil
		}
	}
	return fail(instancePath, schemaPath)
}

func validateElements(sub *Schema, defs map[string]*Schema, instance any, instancePath, schemaPath string) []ValidationError {
	arr, ok := instance.([]any)
	if !ok {
		return fail(instancePath, schemaPath)
	}
	var errs []ValidationError
	elemSchemaPath := schema.Push(schemaPath, "elements")
	for i, elem := range arr {
		errs = append(errs, validate(sub, defs, elem, schema.PushIndex(instancePath, i), elemSchemaPath)...)
	}
	return errs
}

func validateValues(sub *Schema, defs map[string]*Schema, instance any, instancePath, schemaPath string) []ValidationError {
	obj, ok := instance.(map[string]any)
	if !ok {
		return fail(instancePath, schemaPath)
	}
	var errs []ValidationError
	valuesSchemaPath := schema.Push(schemaPath, "values")
	for k, v := range obj {
		errs = append(errs, validate(sub, defs, v, schema.Push(instancePath, k), valuesSchemaPath)...)
	}
	return errs
}

func validateProperties(f FormProperties, defs map[string]*Schema, instance any, instancePath, schemaPath string) []ValidationError {
	obj, ok := instance.(map[string]any)
	if !ok {
		return fail(instancePath, schemaPath)
	}

	var errs []ValidationError
	allowed := make(map[string]struct{}, len(f.Properties)+len(f.OptionalProperties))

	for key, sub := range f.Properties {
		allowed[key] = struct{}{}
		if v, present := obj[key]; present {
			errs = append(errs, validate(sub, defs, v, schema.Push(instancePath, key), schema.Push(schema.Push(schemaPath, "properties"), key))...)
		} else {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schema.Push(schemaPath, "properties"), key)})
		}
	}
	for key, sub := range f.OptionalProperties {
		allowed[key] = struct{}{}
		if v, present := obj[key]; present {
			errs = append(errs, validate(sub, defs, v, schema.Push(instancePath, key), schema.Push(schema.Push(schemaPath, "optionalProperties"), key))...)
		}
	}
	if !f.AdditionalProperties {
		for key := range obj {
			if _, ok := allowed[key]; !ok {
				errs = append(errs, ValidationError{InstancePath: schema.Push(instancePath, key), SchemaPath: schemaPath})
			}
		}
	}
	return errs
}

func validateDiscriminator(f FormDiscriminator, defs map[string]*Schema, instance any, instancePath, schemaPath string) []ValidationError {
	obj, ok := instance.(map[string]any)
	if !ok {
		return fail(instancePath, schema.Push(schemaPath, "discriminator"))
	}
	tagValRaw, present := obj[f.Discriminator]
	if !present {
		return fail(instancePath, schema.Push(schemaPath, "discriminator"))
	}
	tag, ok := tagValRaw.(string)
	if !ok {
		return fail(schema.Push(instancePath, f.Discriminator), schema.Push(schemaPath, "discriminator"))
	}
	sub, ok := f.Mapping[tag]
	if !ok {
		return fail(schema.Push(instancePath, f.Discriminator), schema.Push(schemaPath, "mapping"))
	}

	// Tag exemption: the discriminator key is hidden from the mapped
	// Properties sub-schema so it isn't rejected as an unexpected property.
	clone := make(map[string]any, len(obj)-1)
	for k, v := range obj {
		if k == f.Discriminator {
			continue
		}
		clone[k] = v
	}
	return validate(sub, defs, clone, instancePath, schemaPath)
}

// DecodeInstance unmarshals instance JSON text into the any-tree shape
// Validate expects (map[string]any / []any / string / float64 / bool / nil).
func DecodeInstance(text []byte) (any, error) {
	var v any
	if err := json.Unmarshal(text, &v); err != nil {
		return nil, err
	}
	return v, nil
}
