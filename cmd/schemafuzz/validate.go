package main

import (
	"flag"
	"fmt"
	"os"
)

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: schemafuzz validate <schema-file> <instance-file>")
	}

	schemaText, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	instanceText, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}

	parsed, err := parseSchemaFile(schemaText)
	if err != nil {
		return err
	}
	instance, err := decodeInstance(parsed.dialect, instanceText)
	if err != nil {
		return err
	}

	errs := parsed.validate(instance)
	fmt.Println(formatPointerPairs(errs))
	if len(errs) > 0 {
		os.Exit(1)
	}
	return nil
}
