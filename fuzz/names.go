package fuzz

import "strings"

// Normalize accepts a mutation name in either its hyphenated or underscored
// spelling and returns the canonical hyphenated form used as the map key
// throughout this package (spec §6.4: "Names accept both hyphenated and
// underscored forms", grounded on original_source's mutation_names.rs
// dual-spelling from_str implementations).
func Normalize(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// SyntaxMutationNames is the fixed catalogue of byte-level corruptions,
// in the order spec §4.4 lists them.
var SyntaxMutationNames = []string{
	"missing-closing-brace",
	"missing-opening-brace",
	"invalid-character",
	"comma-to-semicolon",
	"remove-quotes",
	"trailing-comma",
	"colon-to-equals",
	"truncated-json",
	"mixed-indentation",
}

// JTDSemanticMutationNames groups every named JTD semantic mutation by the
// form it applies to, per spec §6.4.
var JTDSemanticMutationNames = map[string][]string{
	"empty": {"null-for-empty"},
	"ref":   {"invalid-reference", "non-existent-reference"},
	"type":  {"wrong-type", "out-of-range", "null-for-non-nullable"},
	"enum":  {"not-in-enum", "similar-but-different", "empty-string"},
	"elements": {
		"not-an-array", "single-invalid-element", "mixed-types",
		"all-invalid-elements", "completely-different-types", "empty-array",
	},
	"values": {"not-an-object", "single-invalid-value", "multiple-invalid-values"},
	"properties": {
		"not-an-object-prop", "all-required-missing", "one-required-missing",
		"additional-properties", "single-invalid-property", "all-invalid-properties",
		"invalid-optional-property", "null-for-non-nullable-prop",
		"missing-plus-additional", "empty-object", "null-object",
	},
	"discriminator": {
		"not-an-object-disc", "missing-tag", "invalid-tag", "tag-not-string",
		"invalid-instance",
	},
}

// JS2020SemanticMutationNames is the flat JS2020 catalogue from spec §6.4;
// unlike JTD's per-form grouping, any of these may apply to a JS2020 node
// depending on which keywords it carries.
var JS2020SemanticMutationNames = []string{
	"type-violation", "enum-violation", "const-different", "missing-required",
	"min-items-violation", "max-items-violation", "unique-items-violation",
	"contains-violation", "min-properties-violation", "max-properties-violation",
	"min-length-violation", "max-length-violation", "pattern-violation",
	"minimum-violation", "maximum-violation", "exclusive-minimum-violation",
	"exclusive-maximum-violation", "multiple-of-violation",
	"prefix-items-wrong-type", "prefix-items-extra", "prefix-items-too-few",
	"all-of-invalid", "any-of-all-invalid", "one-of-multiple-valid",
	"not-satisfied", "if-then-invalid", "if-else-invalid",
	"additional-properties-violation", "pattern-properties-invalid-value",
	"ref-invalid",
}
