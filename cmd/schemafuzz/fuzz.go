package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/structflow/schemafuzz/fuzz"
	"github.com/structflow/schemafuzz/schema"
)

func runFuzz(args []string) error {
	fs := flag.NewFlagSet("fuzz", flag.ContinueOnError)
	syntaxMode := fs.Bool("syntax", false, "generate syntactically-invalid JSON")
	semanticMode := fs.Bool("semantic", false, "generate semantically-invalid JSON (default)")
	mutation := fs.String("mutation", "", "named mutation; sampled uniformly when empty")
	count := fs.Int("count", 1, "number of invalid cases to emit")
	output := fs.String("output", "", "directory to write invalid_*.json files; stdout when empty")
	listMutations := fs.Bool("list-mutations", false, "print the mutation catalogue and exit")
	seed := fs.Int64("seed", time.Now().UnixNano(), "PRNG seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *listMutations {
		printMutationCatalogue()
		return nil
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: schemafuzz fuzz <schema-file> [flags]")
	}
	schemaText, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	parsed, err := parseSchemaFile(schemaText)
	if err != nil {
		return err
	}

	rng := fuzz.New(*seed)
	mode := "semantic"
	if *syntaxMode && !*semanticMode {
		mode = "syntax"
	}

	for i := 0; i < *count; i++ {
		var body []byte
		var name string
		switch mode {
		case "syntax":
			validBytes, err := syntaxSeedFor(parsed, rng)
			if err != nil {
				return err
			}
			body = []byte(fuzz.GenerateSyntacticInvalid(string(validBytes), *mutation, rng))
			name = fmt.Sprintf("invalid_syntax_%04d.json", i)
		default:
			value, err := semanticInvalidFor(parsed, *mutation, rng)
			if err != nil {
				return err
			}
			body, err = json.Marshal(value, json.Deterministic(true))
			if err != nil {
				return err
			}
			name = fmt.Sprintf("invalid_semantic_%04d.json", i)
		}

		if *output == "" {
			fmt.Println(string(body))
			continue
		}
		if err := os.MkdirAll(*output, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(*output, name), body, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// syntaxSeedFor produces the serialised valid instance that syntactic
// mutation corrupts. Only JTD has a general-purpose valid-value generator
// (spec §4.4 scopes generate_valid to JTD); for JS2020 the literal {}
// document stands in.
func syntaxSeedFor(p *parsedSchema, rng *rand.Rand) ([]byte, error) {
	var value any
	if p.dialect == schema.DialectJTD {
		value = fuzz.GenerateValid(p.jtd, rng)
	} else {
		value = map[string]any{}
	}
	return json.Marshal(value, json.Deterministic(true))
}

func semanticInvalidFor(p *parsedSchema, mutation string, rng *rand.Rand) (any, error) {
	switch p.dialect {
	case schema.DialectJS2020:
		return fuzz.GenerateSemanticInvalidJS2020(p.js2020, mutation, rng), nil
	default:
		return fuzz.GenerateSemanticInvalid(p.jtd, mutation, rng), nil
	}
}

func printMutationCatalogue() {
	fmt.Println("syntax:")
	for _, n := range fuzz.SyntaxMutationNames {
		fmt.Printf("  %s\n", n)
	}
	fmt.Println("jtd:")
	for _, form := range []string{"empty", "ref", "type", "enum", "elements", "values", "properties", "discriminator"} {
		fmt.Printf("  %s:\n", form)
		for _, n := range fuzz.JTDSemanticMutationNames[form] {
			fmt.Printf("    %s\n", n)
		}
	}
	fmt.Println("js2020:")
	for _, n := range fuzz.JS2020SemanticMutationNames {
		fmt.Printf("  %s\n", n)
	}
}
