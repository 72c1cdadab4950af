package fuzz

import (
	"fmt"
	"math/rand"

	"github.com/structflow/schemafuzz/jtd"
)

// GenerateValid produces a JSON value that jtd.Validate accepts against s,
// per spec §4.4's per-form recursive contract (grounded on
// original_source/src/fuzzer/generator.rs's generate_with_definitions).
func GenerateValid(s *jtd.Schema, rng *rand.Rand) any {
	return generateValid(s, s.Definitions, rng)
}

func generateValid(s *jtd.Schema, defs map[string]*jtd.Schema, rng *rand.Rand) any {
	switch f := s.Form.(type) {
	case jtd.FormEmpty:
		return generateArbitraryValue(rng)
	case jtd.FormRef:
		target, ok := defs[f.Name]
		if !ok {
			return nil
		}
		return generateValid(target, defs, rng)
	case jtd.FormType:
		return generateTypeValue(f.Primitive, rng)
	case jtd.FormEnum:
		return f.Values[rng.Intn(len(f.Values))]
	case jtd.FormElements:
		size := rng.Intn(6)
		arr := make([]any, size)
		for i := range arr {
			arr[i] = generateValid(f.Elements, defs, rng)
		}
		return arr
	case jtd.FormValues:
		size := rng.Intn(6)
		obj := make(map[string]any, size)
		for i := 0; i < size; i++ {
			obj[fmt.Sprintf("key_%d", i)] = generateValid(f.Values, defs, rng)
		}
		return obj
	case jtd.FormProperties:
		return generateValidProperties(f, defs, rng)
	case jtd.FormDiscriminator:
		return generateValidDiscriminator(f, defs, rng)
	}
	return nil
}

func generateValidProperties(f jtd.FormProperties, defs map[string]*jtd.Schema, rng *rand.Rand) map[string]any {
	obj := make(map[string]any, len(f.Properties)+len(f.OptionalProperties))
	for key, sub := range f.Properties {
		obj[key] = generateValid(sub, defs, rng)
	}
	for key, sub := range f.OptionalProperties {
		if rng.Float64() < 0.5 {
			obj[key] = generateValid(sub, defs, rng)
		}
	}
	return obj
}

func generateValidDiscriminator(f jtd.FormDiscriminator, defs map[string]*jtd.Schema, rng *rand.Rand) map[string]any {
	tags := make([]string, 0, len(f.Mapping))
	for tag := range f.Mapping {
		tags = append(tags, tag)
	}
	tag := tags[rng.Intn(len(tags))]
	obj := map[string]any{f.Discriminator: tag}
	sub := f.Mapping[tag]
	if props, ok := sub.Form.(jtd.FormProperties); ok {
		for k, v := range generateValidProperties(props, defs, rng) {
			obj[k] = v
		}
	}
	return obj
}

func generateArbitraryValue(rng *rand.Rand) any {
	switch rng.Intn(5) {
	case 0:
		return nil
	case 1:
		return rng.Intn(2) == 1
	case 2:
		return float64(rng.Intn(101))
	case 3:
		return "arbitrary"
	default:
		return []any{}
	}
}

const randomStringAlphabet = "abcdefghijklmnopqrstuvwxyz"

func randomString(n int, rng *rand.Rand) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = randomStringAlphabet[rng.Intn(len(randomStringAlphabet))]
	}
	return string(b)
}

func generateTypeValue(p jtd.Primitive, rng *rand.Rand) any {
	switch p {
	case jtd.PrimitiveBoolean:
		return rng.Intn(2) == 1
	case jtd.PrimitiveString:
		return randomString(rng.Intn(21), rng)
	case jtd.PrimitiveTimestamp:
		return formatTimestamp(rng)
	case jtd.PrimitiveFloat32:
		return -1000 + rng.Float64()*2000
	case jtd.PrimitiveFloat64:
		return -1000 + rng.Float64()*2000
	case jtd.PrimitiveInt8:
		return float64(rng.Intn(256) - 128)
	case jtd.PrimitiveUint8:
		return float64(rng.Intn(256))
	case jtd.PrimitiveInt16:
		return float64(rng.Intn(65536) - 32768)
	case jtd.PrimitiveUint16:
		return float64(rng.Intn(65536))
	case jtd.PrimitiveInt32:
		return float64(rng.Int63n(4294967296) - 2147483648)
	case jtd.PrimitiveUint32:
		return float64(rng.Int63n(4294967296))
	}
	return nil
}

func formatTimestamp(rng *rand.Rand) string {
	year := 2000 + rng.Intn(101)
	month := 1 + rng.Intn(12)
	day := 1 + rng.Intn(28)
	hour := rng.Intn(24)
	minute := rng.Intn(60)
	second := rng.Intn(60)
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ", year, month, day, hour, minute, second)
}
