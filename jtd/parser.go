package jtd

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// wireSchema is the raw decode shape before form exclusivity is enforced.
type wireSchema struct {
	Nullable              *bool                     `json:"nullable,omitempty"`
	Metadata              jsontext.Value            `json:"metadata,omitempty"`
	Definitions           map[string]jsontext.Value `json:"definitions,omitempty"`
	Ref                   *string                   `json:"ref,omitempty"`
	Type                  *string                   `json:"type,omitempty"`
	Enum                  []string                  `json:"enum,omitempty"`
	Elements              jsontext.Value            `json:"elements,omitempty"`
	Values                jsontext.Value            `json:"values,omitempty"`
	Properties            map[string]jsontext.Value `json:"properties,omitempty"`
	OptionalProperties    map[string]jsontext.Value `json:"optionalProperties,omitempty"`
	AdditionalProperties  *bool                     `json:"additionalProperties,omitempty"`
	Discriminator         *string                   `json:"discriminator,omitempty"`
	Mapping               map[string]jsontext.Value `json:"mapping,omitempty"`
}

// Parse decodes JTD schema text into a checked Schema: form exclusivity,
// definitions rooting, reference existence (including inside orphaned
// definitions — see SPEC_FULL.md), and cycle detection all run before a
// Schema is returned.
func Parse(text []byte) (*Schema, error) {
	var raw jsontext.Value = text
	root, err := decodeNode(raw, true)
	if err != nil {
		return nil, err
	}
	if err := validateAllReferences(root, root.Definitions); err != nil {
		return nil, err
	}
	if err := detectCycles(root, root.Definitions); err != nil {
		return nil, err
	}
	return root, nil
}

func decodeNode(raw jsontext.Value, isRoot bool) (*Schema, error) {
	var w wireSchema
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}

	if !isRoot && w.Definitions != nil {
		return nil, fmt.Errorf("%w: definitions can only appear at root level", ErrSchemaSyntax)
	}

	form, err := decodeForm(w)
	if err != nil {
		return nil, err
	}

	s := &Schema{Form: form, Metadata: w.Metadata}
	if w.Nullable != nil {
		s.Nullable = *w.Nullable
	}

	if isRoot && w.Definitions != nil {
		defs := make(map[string]*Schema, len(w.Definitions))
		for name, raw := range w.Definitions {
			child, err := decodeNode(raw, false)
			if err != nil {
				return nil, err
			}
			defs[name] = child
		}
		s.Definitions = defs
	}

	return s, nil
}

// decodeForm enforces form exclusivity: exactly one keyword group may be
// present; zero groups collapse to Empty.
func decodeForm(w wireSchema) (Form, error) {
	count := 0
	hasProps := w.Properties != nil || w.OptionalProperties != nil || w.AdditionalProperties != nil
	hasDisc := w.Discriminator != nil || w.Mapping != nil
	if w.Ref != nil {
		count++
	}
	if w.Type != nil {
		count++
	}
	if w.Enum != nil {
		count++
	}
	if w.Elements != nil {
		count++
	}
	if w.Values != nil {
		count++
	}
	if hasProps {
		count++
	}
	if hasDisc {
		count++
	}
	if count == 0 {
		return FormEmpty{}, nil
	}
	if count != 1 {
		return nil, fmt.Errorf("%w: schema must match exactly one form", ErrSchemaSyntax)
	}

	switch {
	case w.Ref != nil:
		return FormRef{Name: *w.Ref}, nil
	case w.Type != nil:
		p := Primitive(*w.Type)
		if !validPrimitives[p] {
			return nil, fmt.Errorf("%w: unknown primitive type %q", ErrSchemaSyntax, *w.Type)
		}
		return FormType{Primitive: p}, nil
	case w.Enum != nil:
		if err := validateEnum(w.Enum); err != nil {
			return nil, err
		}
		return FormEnum{Values: w.Enum}, nil
	case w.Elements != nil:
		sub, err := decodeNode(w.Elements, false)
		if err != nil {
			return nil, err
		}
		return FormElements{Elements: sub}, nil
	case w.Values != nil:
		sub, err := decodeNode(w.Values, false)
		if err != nil {
			return nil, err
		}
		return FormValues{Values: sub}, nil
	case hasProps:
		props, err := decodeSchemaMap(w.Properties)
		if err != nil {
			return nil, err
		}
		var optProps map[string]*Schema
		if w.OptionalProperties != nil {
			optProps, err = decodeSchemaMap(w.OptionalProperties)
			if err != nil {
				return nil, err
			}
		}
		additional := false
		if w.AdditionalProperties != nil {
			additional = *w.AdditionalProperties
		}
		return FormProperties{
			Properties:           props,
			OptionalProperties:   optProps,
			AdditionalProperties: additional,
		}, nil
	case hasDisc:
		if w.Discriminator == nil || w.Mapping == nil {
			return nil, fmt.Errorf("%w: discriminator requires both discriminator and mapping", ErrSchemaSyntax)
		}
		mapping, err := decodeSchemaMap(w.Mapping)
		if err != nil {
			return nil, err
		}
		for tag, sub := range mapping {
			if _, ok := sub.Form.(FormProperties); !ok {
				return nil, fmt.Errorf("%w: discriminator mapping %q must be a properties form", ErrSchemaSyntax, tag)
			}
		}
		return FormDiscriminator{Discriminator: *w.Discriminator, Mapping: mapping}, nil
	}
	return FormEmpty{}, nil
}

func decodeSchemaMap(raw map[string]jsontext.Value) (map[string]*Schema, error) {
	out := make(map[string]*Schema, len(raw))
	for k, v := range raw {
		sub, err := decodeNode(v, false)
		if err != nil {
			return nil, err
		}
		out[k] = sub
	}
	return out, nil
}

// validateEnum enforces non-emptiness and duplicate-freedom (byte-level
// comparison of the already-unescaped Go strings).
func validateEnum(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: enum must be non-empty", ErrInvalidEnum)
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%w: enum contains duplicate value %q", ErrInvalidEnum, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// validateAllReferences walks every node in the tree — including nodes
// inside definitions entries unreachable from the root — and checks that
// every Ref.name resolves in defs. This is stricter than the original
// source's reachability-scoped check; see SPEC_FULL.md.
func validateAllReferences(s *Schema, defs map[string]*Schema) error {
	switch f := s.Form.(type) {
	case FormRef:
		if defs == nil {
			return fmt.Errorf("%w: %s", ErrReferenceNotFound, f.Name)
		}
		if _, ok := defs[f.Name]; !ok {
			return fmt.Errorf("%w: %s", ErrReferenceNotFound, f.Name)
		}
	case FormElements:
		if err := validateAllReferences(f.Elements, defs); err != nil {
			return err
		}
	case FormValues:
		if err := validateAllReferences(f.Values, defs); err != nil {
			return err
		}
	case FormProperties:
		for _, sub := range f.Properties {
			if err := validateAllReferences(sub, defs); err != nil {
				return err
			}
		}
		for _, sub := range f.OptionalProperties {
			if err := validateAllReferences(sub, defs); err != nil {
				return err
			}
		}
	case FormDiscriminator:
		for _, sub := range f.Mapping {
			if err := validateAllReferences(sub, defs); err != nil {
				return err
			}
		}
	}
	for _, def := range s.Definitions {
		if err := validateAllReferences(def, defs); err != nil {
			return err
		}
	}
	return nil
}

// detectCycles performs the stack-based DFS described in spec §9: only
// names entered via Ref sit on the stack, and the stack is conceptually
// reset (not literally — a fresh visited set is threaded) whenever descent
// passes through a value-carrying form, so recursive-through-container
// schemas are accepted while bare Ref chains that close on themselves are
// rejected.
func detectCycles(s *Schema, defs map[string]*Schema) error {
	return detectCyclesVisit(s, defs, map[string]struct{}{})
}

func detectCyclesVisit(s *Schema, defs map[string]*Schema, visited map[string]struct{}) error {
	switch f := s.Form.(type) {
	case FormRef:
		if _, ok := visited[f.Name]; ok {
			return fmt.Errorf("%w: %s", ErrCircularReference, f.Name)
		}
		// Only a target that is itself a Ref continues the chain; any other
		// definition is walked once, from the root's definitions loop below,
		// so recursion through a container terminates.
		if target, ok := defs[f.Name]; ok {
			if _, chained := target.Form.(FormRef); chained {
				next := make(map[string]struct{}, len(visited)+1)
				for k := range visited {
					next[k] = struct{}{}
				}
				next[f.Name] = struct{}{}
				if err := detectCyclesVisit(target, defs, next); err != nil {
					return err
				}
			}
		}
	default:
		for _, child := range s.valueCarryingChildren() {
			if err := detectCyclesVisit(child, defs, map[string]struct{}{}); err != nil {
				return err
			}
		}
	}
	for _, def := range s.Definitions {
		if err := detectCyclesVisit(def, defs, map[string]struct{}{}); err != nil {
			return err
		}
	}
	return nil
}
