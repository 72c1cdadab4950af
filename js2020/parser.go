package js2020

import (
	"fmt"
	"strings"
)

// Parse decodes JS2020 schema text into a checked Schema. Decoding itself
// (including the boolean-or-object shape) happens in Schema.UnmarshalJSON;
// Parse additionally walks the tree checking $schema, matching the
// teacher's field-tagging decode idiom plus the original source's
// validate_json_schema_syntax recursive walk.
func Parse(text []byte) (*Schema, error) {
	var s Schema
	if err := s.UnmarshalJSON(text); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}
	if err := checkSyntax(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// checkSyntax validates $schema (when present, must mention 2020-12) and
// recurses into every sub-schema position. Regex strings inside pattern/
// patternProperties are intentionally left uncompiled here — a malformed
// regex surfaces as a validation-time error at the keyword's path instead
// of invalidating the whole document (spec §4.1, §9).
func checkSyntax(s *Schema) error {
	if s == nil || s.Boolean {
		return nil
	}
	if s.SchemaKeyword != "" && !strings.Contains(s.SchemaKeyword, "2020-12") {
		return fmt.Errorf("%w: $schema %q does not mention 2020-12", ErrSchemaSyntax, s.SchemaKeyword)
	}

	for _, def := range s.Defs {
		if err := checkSyntax(def); err != nil {
			return err
		}
	}
	for _, sub := range s.AllOf {
		if err := checkSyntax(sub); err != nil {
			return err
		}
	}
	for _, sub := range s.AnyOf {
		if err := checkSyntax(sub); err != nil {
			return err
		}
	}
	for _, sub := range s.OneOf {
		if err := checkSyntax(sub); err != nil {
			return err
		}
	}
	if err := checkSyntax(s.Not); err != nil {
		return err
	}
	if err := checkSyntax(s.If); err != nil {
		return err
	}
	if err := checkSyntax(s.Then); err != nil {
		return err
	}
	if err := checkSyntax(s.Else); err != nil {
		return err
	}
	for _, sub := range s.PrefixItems {
		if err := checkSyntax(sub); err != nil {
			return err
		}
	}
	if s.Items != nil && s.Items.Schema != nil {
		if err := checkSyntax(s.Items.Schema); err != nil {
			return err
		}
	}
	if err := checkSyntax(s.Contains); err != nil {
		return err
	}
	for _, sub := range s.Properties {
		if err := checkSyntax(sub); err != nil {
			return err
		}
	}
	for _, sub := range s.OptionalProperties {
		if err := checkSyntax(sub); err != nil {
			return err
		}
	}
	for _, sub := range s.PatternProperties {
		if err := checkSyntax(sub); err != nil {
			return err
		}
	}
	if s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil {
		if err := checkSyntax(s.AdditionalProperties.Schema); err != nil {
			return err
		}
	}
	return nil
}

// ResolveRef resolves the supported "#/$defs/Name" (or bare "Name") form
// against root's $defs. Any other shape is reported unresolved, matching
// the original's resolve_ref, which supports only $defs references.
func ResolveRef(ref string, root *Schema) (*Schema, bool) {
	if root == nil {
		return nil, false
	}
	name := ref
	switch {
	case strings.HasPrefix(ref, "#/$defs/"):
		name = ref[len("#/$defs/"):]
	case strings.HasPrefix(ref, "#/"):
		return nil, false
	}
	sub, ok := root.Defs[name]
	return sub, ok
}
