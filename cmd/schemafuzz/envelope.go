package main

import (
	"fmt"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/structflow/schemafuzz/jtd"
	"github.com/structflow/schemafuzz/js2020"
	"github.com/structflow/schemafuzz/schema"
)

// pointerPair is the CLI's dialect-agnostic rendering of a validation
// error, collapsing jtd.ValidationError and js2020.ValidationError (which
// are structurally identical but distinct types, one per validator) down
// to a single shape for printing.
type pointerPair struct {
	InstancePath string
	SchemaPath   string
}

// parsedSchema wraps whichever dialect schema.Detect picked, giving the
// CLI one place to dispatch Validate/generate calls instead of repeating
// the dialect switch in every subcommand.
type parsedSchema struct {
	dialect schema.Dialect
	jtd     *jtd.Schema
	js2020  *js2020.Schema
}

func parseSchemaFile(text []byte) (*parsedSchema, error) {
	dialect := schema.Detect(jsontext.Value(text))
	switch dialect {
	case schema.DialectJS2020:
		s, err := js2020.Parse(text)
		if err != nil {
			return nil, err
		}
		return &parsedSchema{dialect: dialect, js2020: s}, nil
	default:
		s, err := jtd.Parse(text)
		if err != nil {
			return nil, err
		}
		return &parsedSchema{dialect: dialect, jtd: s}, nil
	}
}

func (p *parsedSchema) validate(instance any) []pointerPair {
	switch p.dialect {
	case schema.DialectJS2020:
		errs := js2020.Validate(p.js2020, instance)
		out := make([]pointerPair, len(errs))
		for i, e := range errs {
			out[i] = pointerPair{InstancePath: e.InstancePath, SchemaPath: e.SchemaPath}
		}
		return out
	default:
		errs := jtd.Validate(p.jtd, instance)
		out := make([]pointerPair, len(errs))
		for i, e := range errs {
			out[i] = pointerPair{InstancePath: e.InstancePath, SchemaPath: e.SchemaPath}
		}
		return out
	}
}

func decodeInstance(dialect schema.Dialect, text []byte) (any, error) {
	if dialect == schema.DialectJS2020 {
		return js2020.DecodeInstance(text)
	}
	return jtd.DecodeInstance(text)
}

func formatPointerPairs(errs []pointerPair) string {
	if len(errs) == 0 {
		return "valid: no errors"
	}
	out := fmt.Sprintf("invalid: %d error(s)\n", len(errs))
	for _, e := range errs {
		out += fmt.Sprintf("  instance_path=%q schema_path=%q\n", e.InstancePath, e.SchemaPath)
	}
	return out
}
