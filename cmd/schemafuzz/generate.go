package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/structflow/schemafuzz/fuzz"
	"github.com/structflow/schemafuzz/schema"
)

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	seed := fs.Int64("seed", time.Now().UnixNano(), "PRNG seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return fmt.Errorf("usage: schemafuzz generate <schema-file> [output-file]")
	}

	schemaText, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if schema.Detect(jsontext.Value(schemaText)) != schema.DialectJTD {
		return fmt.Errorf("generate only supports JTD schemas")
	}
	parsed, err := parseSchemaFile(schemaText)
	if err != nil {
		return err
	}

	value := fuzz.GenerateValid(parsed.jtd, fuzz.New(*seed))
	out, err := json.Marshal(value, json.Deterministic(true))
	if err != nil {
		return err
	}

	if fs.NArg() == 2 {
		return os.WriteFile(fs.Arg(1), out, 0o644)
	}
	fmt.Println(string(out))
	return nil
}
