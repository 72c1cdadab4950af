package js2020

import (
	"math"
	"regexp"
	"unicode/utf8"

	"github.com/go-json-experiment/json"

	"github.com/structflow/schemafuzz/schema"
)

// ValidationError mirrors jtd.ValidationError: a pair of RFC 6901 JSON
// Pointers, instance_path addressing the offending value and schema_path
// addressing the rejecting keyword.
type ValidationError struct {
	InstancePath string
	SchemaPath   string
}

func fail(instancePath, schemaPath string) []ValidationError {
	return []ValidationError{{InstancePath: instancePath, SchemaPath: schemaPath}}
}

// Validate checks instance against s, using s itself as the root for
// $ref resolution (every $ref in this dialect resolves against the
// document's own $defs — spec §4.1).
func Validate(s *Schema, instance any) []ValidationError {
	return validate(s, instance, "", "", s)
}

func validate(s *Schema, instance any, instancePath, schemaPath string, root *Schema) []ValidationError {
	if s == nil {
		return nil
	}
	if s.Boolean {
		if s.BoolValue {
			return nil
		}
		return fail(instancePath, schemaPath)
	}

	var errs []ValidationError

	// $ref short-circuits the remainder of the schema when it resolves
	// (spec §4.3 composition rule 1); an unresolvable $ref falls through.
	if s.Ref != "" {
		if target, ok := ResolveRef(s.Ref, root); ok {
			return validate(target, instance, instancePath, schema.Push(schemaPath, "$ref"), root)
		}
	}

	for i, sub := range s.AllOf {
		errs = append(errs, validate(sub, instance, instancePath, schema.PushIndex(schema.Push(schemaPath, "allOf"), i), root)...)
	}

	if len(s.AnyOf) > 0 {
		var anyErrs []ValidationError
		anyValid := false
		for i, sub := range s.AnyOf {
			subErrs := validate(sub, instance, instancePath, schema.PushIndex(schema.Push(schemaPath, "anyOf"), i), root)
			if len(subErrs) == 0 {
				anyValid = true
			} else {
				anyErrs = append(anyErrs, subErrs...)
			}
		}
		if !anyValid {
			errs = append(errs, anyErrs...)
		}
	}

	if len(s.OneOf) > 0 {
		valid := 0
		for i, sub := range s.OneOf {
			if len(validate(sub, instance, instancePath, schema.PushIndex(schema.Push(schemaPath, "oneOf"), i), root)) == 0 {
				valid++
			}
		}
		if valid != 1 {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "oneOf")})
		}
	}

	if s.Not != nil {
		notPath := schema.Push(schemaPath, "not")
		if len(validate(s.Not, instance, instancePath, notPath, root)) == 0 {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: notPath})
		}
	}

	if s.If != nil {
		ifPath := schema.Push(schemaPath, "if")
		conditionMet := len(validate(s.If, instance, instancePath, ifPath, root)) == 0
		if conditionMet && s.Then != nil {
			errs = append(errs, validate(s.Then, instance, instancePath, schema.Push(schemaPath, "then"), root)...)
		} else if !conditionMet && s.Else != nil {
			errs = append(errs, validate(s.Else, instance, instancePath, schema.Push(schemaPath, "else"), root)...)
		}
	}

	if len(s.Type) > 0 {
		if !matchesAnyType(s.Type, instance) {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "type")})
		}
	}

	if s.Enum != nil {
		found := false
		for _, v := range s.Enum {
			if deepEqual(v, instance) {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "enum")})
		}
	}

	if s.Const != nil && s.Const.IsSet {
		if !deepEqual(s.Const.Value, instance) {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "const")})
		}
	}

	switch v := instance.(type) {
	case []any:
		errs = append(errs, validateArray(s, v, instancePath, schemaPath, root)...)
	case map[string]any:
		errs = append(errs, validateObject(s, v, instancePath, schemaPath, root)...)
	case string:
		errs = append(errs, validateString(s, v, instancePath, schemaPath)...)
	case float64:
		errs = append(errs, validateNumber(s, v, instancePath, schemaPath)...)
	}

	return errs
}

func matchesAnyType(types []string, instance any) bool {
	for _, t := range types {
		if matchesType(t, instance) {
			return true
		}
	}
	return false
}

func matchesType(t string, instance any) bool {
	switch t {
	case "null":
		return instance == nil
	case "boolean":
		_, ok := instance.(bool)
		return ok
	case "object":
		_, ok := instance.(map[string]any)
		return ok
	case "array":
		_, ok := instance.([]any)
		return ok
	case "number":
		_, ok := instance.(float64)
		return ok
	case "string":
		_, ok := instance.(string)
		return ok
	case "integer":
		n, ok := instance.(float64)
		return ok && n == math.Trunc(n)
	}
	return false
}

func deepEqual(a, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, present := bv[k]
			if !present || !deepEqual(v, other) {
				return false
			}
		}
		return true
	}
	return false
}

func validateArray(s *Schema, arr []any, instancePath, schemaPath string, root *Schema) []ValidationError {
	var errs []ValidationError

	prefixLen := len(s.PrefixItems)
	for i, itemSchema := range s.PrefixItems {
		if i >= len(arr) {
			break
		}
		itemPath := schema.PushIndex(instancePath, i)
		itemSchemaPath := schema.PushIndex(schema.Push(schemaPath, "prefixItems"), i)
		errs = append(errs, validate(itemSchema, arr[i], itemPath, itemSchemaPath, root)...)
	}

	if s.Items != nil {
		switch {
		case s.Items.Schema != nil:
			itemsSchemaPath := schema.Push(schemaPath, "items")
			for i := prefixLen; i < len(arr); i++ {
				errs = append(errs, validate(s.Items.Schema, arr[i], schema.PushIndex(instancePath, i), itemsSchemaPath, root)...)
			}
		case s.Items.Bool != nil && !*s.Items.Bool:
			itemsSchemaPath := schema.Push(schemaPath, "items")
			for i := prefixLen; i < len(arr); i++ {
				errs = append(errs, ValidationError{InstancePath: schema.PushIndex(instancePath, i), SchemaPath: itemsSchemaPath})
			}
		}
	}

	if s.MinItems != nil && len(arr) < *s.MinItems {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "minItems")})
	}
	if s.MaxItems != nil && len(arr) > *s.MaxItems {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "maxItems")})
	}

	if s.UniqueItems != nil && *s.UniqueItems {
		for i := 0; i < len(arr); i++ {
			for j := 0; j < i; j++ {
				if deepEqual(arr[i], arr[j]) {
					errs = append(errs, ValidationError{InstancePath: schema.PushIndex(instancePath, i), SchemaPath: schema.Push(schemaPath, "uniqueItems")})
					break
				}
			}
		}
	}

	if s.Contains != nil {
		containsPath := schema.Push(schemaPath, "contains")
		found := false
		for i, item := range arr {
			if len(validate(s.Contains, item, schema.PushIndex(instancePath, i), containsPath, root)) == 0 {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: containsPath})
		}
	}

	return errs
}

func validateObject(s *Schema, obj map[string]any, instancePath, schemaPath string, root *Schema) []ValidationError {
	var errs []ValidationError
	evaluated := make(map[string]struct{})

	for key, propSchema := range s.Properties {
		evaluated[key] = struct{}{}
		if v, present := obj[key]; present {
			errs = append(errs, validate(propSchema, v, schema.Push(instancePath, key), schema.Push(schema.Push(schemaPath, "properties"), key), root)...)
		} else if containsString(s.Required, key) {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schema.Push(schemaPath, "properties"), key)})
		}
	}

	for key, optSchema := range s.OptionalProperties {
		evaluated[key] = struct{}{}
		if v, present := obj[key]; present {
			errs = append(errs, validate(optSchema, v, schema.Push(instancePath, key), schema.Push(schema.Push(schemaPath, "optionalProperties"), key), root)...)
		}
	}

	for pattern, patternSchema := range s.PatternProperties {
		re, err := regexp.Compile(pattern)
		if err != nil {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schema.Push(schemaPath, "patternProperties"), pattern)})
			continue
		}
		for key, v := range obj {
			if re.MatchString(key) {
				evaluated[key] = struct{}{}
				errs = append(errs, validate(patternSchema, v, schema.Push(instancePath, key), schema.Push(schema.Push(schemaPath, "patternProperties"), pattern), root)...)
			}
		}
	}

	if s.AdditionalProperties != nil {
		switch {
		case s.AdditionalProperties.Schema != nil:
			for key, v := range obj {
				if _, done := evaluated[key]; done {
					continue
				}
				errs = append(errs, validate(s.AdditionalProperties.Schema, v, schema.Push(instancePath, key), schema.Push(schemaPath, "additionalProperties"), root)...)
			}
		case s.AdditionalProperties.Bool != nil && !*s.AdditionalProperties.Bool:
			for key := range obj {
				if _, done := evaluated[key]; done {
					continue
				}
				errs = append(errs, ValidationError{InstancePath: schema.Push(instancePath, key), SchemaPath: schema.Push(schemaPath, "additionalProperties")})
			}
		}
	}

	if s.MinProperties != nil && len(obj) < *s.MinProperties {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "minProperties")})
	}
	if s.MaxProperties != nil && len(obj) > *s.MaxProperties {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "maxProperties")})
	}

	return errs
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func validateString(s *Schema, str string, instancePath, schemaPath string) []ValidationError {
	var errs []ValidationError
	length := utf8.RuneCountInString(str)

	if s.MinLength != nil && length < *s.MinLength {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "minLength")})
	}
	if s.MaxLength != nil && length > *s.MaxLength {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "maxLength")})
	}
	if s.Pattern != nil {
		re, err := regexp.Compile(*s.Pattern)
		if err != nil {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "pattern")})
		} else if !re.MatchString(str) {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "pattern")})
		}
	}
	return errs
}

// multipleOfEpsilon tolerates floating-point rounding in the multipleOf
// quotient check (spec §4.3, §9: exact-decimal implementations are also
// acceptable, but no tolerance is mandated by the standard itself).
const multipleOfEpsilon = 1e-9

func validateNumber(s *Schema, num float64, instancePath, schemaPath string) []ValidationError {
	var errs []ValidationError

	if s.MultipleOf != nil && *s.MultipleOf != 0 {
		q := num / *s.MultipleOf
		frac := q - math.Trunc(q)
		if math.Abs(frac) > multipleOfEpsilon && math.Abs(frac-1) > multipleOfEpsilon {
			errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "multipleOf")})
		}
	}
	if s.Minimum != nil && num < *s.Minimum {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "minimum")})
	}
	if s.Maximum != nil && num > *s.Maximum {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "maximum")})
	}
	if s.ExclusiveMinimum != nil && num <= *s.ExclusiveMinimum {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "exclusiveMinimum")})
	}
	if s.ExclusiveMaximum != nil && num >= *s.ExclusiveMaximum {
		errs = append(errs, ValidationError{InstancePath: instancePath, SchemaPath: schema.Push(schemaPath, "exclusiveMaximum")})
	}
	return errs
}

// DecodeInstance unmarshals instance JSON text into the any-tree shape
// Validate expects, matching jtd.DecodeInstance.
func DecodeInstance(text []byte) (any, error) {
	var v any
	if err := json.Unmarshal(text, &v); err != nil {
		return nil, err
	}
	return v, nil
}
