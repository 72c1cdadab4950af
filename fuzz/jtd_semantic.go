package fuzz

import (
	"fmt"
	"math/rand"

	"github.com/structflow/schemafuzz/jtd"
)

// outOfRangeSentinels holds the fixed out-of-bounds magnitudes the
// original generator used per bounded primitive (spec SPEC_FULL.md
// Supplemented Features item 1, grounded on
// original_source/src/fuzzer/mutations.rs's generate_out_of_range_value),
// so fuzz output is stable across runs rather than an arbitrary overflow.
var outOfRangeSentinels = map[jtd.Primitive]any{
	jtd.PrimitiveInt8:    float64(200),
	jtd.PrimitiveUint8:   float64(-1),
	jtd.PrimitiveInt16:   float64(40000),
	jtd.PrimitiveUint16:  float64(-1),
	jtd.PrimitiveInt32:   float64(3000000000),
	jtd.PrimitiveUint32:  float64(-1),
	jtd.PrimitiveFloat32: float64(1e50),
}

// GenerateSemanticInvalid produces a well-formed JSON value violating s
// under the named mutation (or a uniformly-sampled one when name is
// empty), per spec §4.4. An inapplicable named mutation yields the
// sentinel JSON null rather than a fabricated substitute.
func GenerateSemanticInvalid(s *jtd.Schema, name string, rng *rand.Rand) any {
	return generateSemanticInvalid(s, s.Definitions, name, rng)
}

func generateSemanticInvalid(s *jtd.Schema, defs map[string]*jtd.Schema, name string, rng *rand.Rand) any {
	name = Normalize(name)

	switch f := s.Form.(type) {
	case jtd.FormEmpty:
		if name == "" {
			name = "null-for-empty"
		}
		// Empty accepts every value, null included, so both branches yield
		// null, which here is only the inapplicable sentinel.
		if !s.Nullable {
			return nil
		}
		return nilSentinel
	case jtd.FormRef:
		target, ok := defs[f.Name]
		if !ok {
			return nilSentinel
		}
		return generateSemanticInvalid(target, defs, name, rng)
	case jtd.FormType:
		return semanticInvalidType(s, f.Primitive, name, rng)
	case jtd.FormEnum:
		return semanticInvalidEnum(f.Values, name, rng)
	case jtd.FormElements:
		return semanticInvalidElements(s, f.Elements, defs, name, rng)
	case jtd.FormValues:
		return semanticInvalidValues(s, f.Values, defs, name, rng)
	case jtd.FormProperties:
		return semanticInvalidProperties(s, f, defs, name, rng)
	case jtd.FormDiscriminator:
		return semanticInvalidDiscriminator(s, f, defs, name, rng)
	}
	return nilSentinel
}

// nilSentinel is the benign "mutation inapplicable" marker. It is
// representationally indistinguishable from a real JSON null — spec §4.4
// accepts this ambiguity explicitly ("returns a benign sentinel (null)").
var nilSentinel any = nil

func pick(names []string, rng *rand.Rand) string {
	return names[rng.Intn(len(names))]
}

func semanticInvalidType(s *jtd.Schema, p jtd.Primitive, name string, rng *rand.Rand) any {
	if name == "" {
		name = pick(JTDSemanticMutationNames["type"], rng)
	}
	switch name {
	case "wrong-type":
		return wrongTypeValue(p, rng)
	case "out-of-range":
		if v, ok := outOfRangeSentinels[p]; ok {
			return v
		}
		return nilSentinel
	case "null-for-non-nullable":
		if !s.Nullable {
			return nil
		}
		return nilSentinel
	}
	return nilSentinel
}

func wrongTypeValue(p jtd.Primitive, rng *rand.Rand) any {
	switch p {
	case jtd.PrimitiveBoolean:
		return "not_a_boolean"
	case jtd.PrimitiveString, jtd.PrimitiveTimestamp:
		return float64(42)
	default:
		return "not_a_number"
	}
}

func semanticInvalidEnum(values []string, name string, rng *rand.Rand) any {
	if name == "" {
		name = pick(JTDSemanticMutationNames["enum"], rng)
	}
	contains := func(v string) bool {
		for _, e := range values {
			if e == v {
				return true
			}
		}
		return false
	}
	switch name {
	case "not-in-enum":
		for i := 0; ; i++ {
			candidate := fmt.Sprintf("not_in_enum_%d", i)
			if !contains(candidate) {
				return candidate
			}
		}
	case "similar-but-different":
		if len(values) == 0 {
			return nilSentinel
		}
		candidate := values[0] + "_modified"
		if contains(candidate) {
			return nilSentinel
		}
		return candidate
	case "empty-string":
		if contains("") {
			return nilSentinel
		}
		return ""
	}
	return nilSentinel
}

// guaranteedInvalid returns a value that unconditionally fails sub's
// validator — independent of rng draws, nullability, or primitive range —
// for use by composite mutations (elements/values/properties/
// discriminator) that embed one sub-schema's violation inside an
// otherwise-valid wrapper. Blindly sampling a named mutation for sub (as
// generateSemanticInvalid does when asked for one by an empty name) can
// land on a mutation that's inapplicable to this particular sub (e.g.
// null-for-non-nullable when sub actually is nullable) and silently
// return the benign sentinel, which the wrapper would then embed as if it
// were a genuine violation. The one form with no guaranteed-invalid value
// is Empty: every JSON value, including null, passes it, so there is
// nothing to return but the sentinel.
func guaranteedInvalid(sub *jtd.Schema, defs map[string]*jtd.Schema, rng *rand.Rand) any {
	switch f := sub.Form.(type) {
	case jtd.FormRef:
		if target, ok := defs[f.Name]; ok {
			return guaranteedInvalid(target, defs, rng)
		}
		return nilSentinel
	case jtd.FormType:
		return wrongTypeValue(f.Primitive, rng)
	case jtd.FormEnum:
		return semanticInvalidEnum(f.Values, "not-in-enum", rng)
	case jtd.FormElements:
		return "not_an_array"
	case jtd.FormValues, jtd.FormProperties, jtd.FormDiscriminator:
		return []any{}
	default: // FormEmpty
		return nilSentinel
	}
}

// verifyOrSentinel re-validates a composite mutation's finished candidate
// against the node it's meant to violate (s, under defs) and only returns
// it if the validator actually rejects it — the safety net for the rare
// case guaranteedInvalid itself bottoms out on an Empty sub-schema and the
// wrapper ends up accidentally valid despite every effort.
func verifyOrSentinel(s *jtd.Schema, defs map[string]*jtd.Schema, candidate any) any {
	if len(jtd.ValidateNode(s, defs, candidate)) == 0 {
		return nilSentinel
	}
	return candidate
}

func semanticInvalidElements(s *jtd.Schema, elem *jtd.Schema, defs map[string]*jtd.Schema, name string, rng *rand.Rand) any {
	if name == "" {
		name = pick(JTDSemanticMutationNames["elements"], rng)
	}
	switch name {
	case "not-an-array":
		return "not_an_array"
	case "single-invalid-element":
		return verifyOrSentinel(s, defs, []any{guaranteedInvalid(elem, defs, rng)})
	case "mixed-types":
		size := 3 + rng.Intn(4)
		arr := make([]any, size)
		for i := range arr {
			if i%2 == 0 {
				arr[i] = generateValid(elem, defs, rng)
			} else {
				arr[i] = guaranteedInvalid(elem, defs, rng)
			}
		}
		return verifyOrSentinel(s, defs, arr)
	case "all-invalid-elements":
		size := 2 + rng.Intn(3)
		arr := make([]any, size)
		for i := range arr {
			arr[i] = guaranteedInvalid(elem, defs, rng)
		}
		return verifyOrSentinel(s, defs, arr)
	case "completely-different-types":
		pool := []any{"mixed_type_string", float64(42), true, map[string]any{}, []any{}, nil}
		size := 3 + rng.Intn(3)
		arr := make([]any, size)
		for i := range arr {
			arr[i] = pool[i%len(pool)]
		}
		return verifyOrSentinel(s, defs, arr)
	case "empty-array":
		// An empty array is always valid against any Elements schema, so
		// this mutation is never applicable.
		return nilSentinel
	}
	return nilSentinel
}

func semanticInvalidValues(s *jtd.Schema, val *jtd.Schema, defs map[string]*jtd.Schema, name string, rng *rand.Rand) any {
	if name == "" {
		name = pick(JTDSemanticMutationNames["values"], rng)
	}
	switch name {
	case "not-an-object":
		return []any{}
	case "single-invalid-value":
		return verifyOrSentinel(s, defs, map[string]any{"key": guaranteedInvalid(val, defs, rng)})
	case "multiple-invalid-values":
		count := 2 + rng.Intn(3)
		obj := make(map[string]any, count)
		for i := 0; i < count; i++ {
			obj[fmt.Sprintf("key_%d", i)] = guaranteedInvalid(val, defs, rng)
		}
		return verifyOrSentinel(s, defs, obj)
	}
	return nilSentinel
}

func semanticInvalidProperties(s *jtd.Schema, f jtd.FormProperties, defs map[string]*jtd.Schema, name string, rng *rand.Rand) any {
	if name == "" {
		name = pick(JTDSemanticMutationNames["properties"], rng)
	}

	requiredKeys := make([]string, 0, len(f.Properties))
	for k := range f.Properties {
		requiredKeys = append(requiredKeys, k)
	}
	optionalKeys := make([]string, 0, len(f.OptionalProperties))
	for k := range f.OptionalProperties {
		optionalKeys = append(optionalKeys, k)
	}

	validObj := func() map[string]any {
		return generateValidProperties(f, defs, rng)
	}

	switch name {
	case "not-an-object-prop":
		return []any{}
	case "all-required-missing":
		obj := validObj()
		for _, k := range requiredKeys {
			delete(obj, k)
		}
		if len(requiredKeys) == 0 {
			return nilSentinel
		}
		return obj
	case "one-required-missing":
		if len(requiredKeys) == 0 {
			return nilSentinel
		}
		obj := validObj()
		delete(obj, requiredKeys[rng.Intn(len(requiredKeys))])
		return obj
	case "additional-properties":
		if f.AdditionalProperties {
			return nilSentinel
		}
		obj := validObj()
		obj["extra_property_0"] = "invalid"
		return obj
	case "single-invalid-property":
		if len(requiredKeys) == 0 {
			return nilSentinel
		}
		obj := validObj()
		key := requiredKeys[rng.Intn(len(requiredKeys))]
		obj[key] = guaranteedInvalid(f.Properties[key], defs, rng)
		return verifyOrSentinel(s, defs, obj)
	case "all-invalid-properties":
		if len(requiredKeys) == 0 {
			return nilSentinel
		}
		obj := validObj()
		for _, k := range requiredKeys {
			obj[k] = guaranteedInvalid(f.Properties[k], defs, rng)
		}
		return verifyOrSentinel(s, defs, obj)
	case "invalid-optional-property":
		if len(optionalKeys) == 0 {
			return nilSentinel
		}
		obj := validObj()
		key := optionalKeys[rng.Intn(len(optionalKeys))]
		obj[key] = guaranteedInvalid(f.OptionalProperties[key], defs, rng)
		return verifyOrSentinel(s, defs, obj)
	case "null-for-non-nullable-prop", "null-object":
		if !s.Nullable {
			return nil
		}
		return nilSentinel
	case "missing-plus-additional":
		if len(requiredKeys) == 0 {
			return nilSentinel
		}
		obj := validObj()
		delete(obj, requiredKeys[rng.Intn(len(requiredKeys))])
		obj["extra_property_0"] = "invalid"
		return obj
	case "empty-object":
		if len(requiredKeys) == 0 {
			return nilSentinel
		}
		return map[string]any{}
	}
	return nilSentinel
}

func semanticInvalidDiscriminator(s *jtd.Schema, f jtd.FormDiscriminator, defs map[string]*jtd.Schema, name string, rng *rand.Rand) any {
	if name == "" {
		name = pick(JTDSemanticMutationNames["discriminator"], rng)
	}

	tags := make([]string, 0, len(f.Mapping))
	for tag := range f.Mapping {
		tags = append(tags, tag)
	}
	tag := tags[rng.Intn(len(tags))]
	sub := f.Mapping[tag]

	switch name {
	case "not-an-object-disc":
		return []any{}
	case "missing-tag":
		obj := make(map[string]any)
		if props, ok := sub.Form.(jtd.FormProperties); ok {
			for k, v := range generateValidProperties(props, defs, rng) {
				obj[k] = v
			}
		}
		return obj
	case "invalid-tag":
		obj := map[string]any{f.Discriminator: tag + "_unknown"}
		return obj
	case "tag-not-string":
		return map[string]any{f.Discriminator: float64(42)}
	case "invalid-instance":
		props, ok := sub.Form.(jtd.FormProperties)
		if !ok {
			return nilSentinel
		}
		invalid, ok := semanticInvalidProperties(sub, props, defs, "all-invalid-properties", rng).(map[string]any)
		if !ok {
			// all-invalid-properties came back as the inapplicable
			// sentinel (e.g. the mapped form has no required keys to
			// corrupt) — honor that rather than fabricating a valid body,
			// which would make this "mutation" a silent no-op.
			return nilSentinel
		}
		obj := map[string]any{f.Discriminator: tag}
		for k, v := range invalid {
			obj[k] = v
		}
		return verifyOrSentinel(s, defs, obj)
	}
	return nilSentinel
}
