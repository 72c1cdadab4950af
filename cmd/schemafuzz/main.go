// Package main implements the schemafuzz command-line tool: a thin
// collaborator around the jtd/js2020/fuzz core, with hand-rolled
// subcommands, one flag.FlagSet each.
//
// Usage:
//
//	schemafuzz run-tests
//	schemafuzz validate <schema-file> <instance-file>
//	schemafuzz fuzz <schema-file> [--syntax|--semantic] [--mutation NAME] [--count N] [--output DIR] [--list-mutations]
//	schemafuzz generate <schema-file> [<output-file>]
//	schemafuzz analyze-rfc
package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run-tests":
		err = runRunTests(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "fuzz":
		err = runFuzz(os.Args[2:])
	case "generate":
		err = runGenerate(os.Args[2:])
	case "analyze-rfc":
		err = runAnalyzeRFC(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "schemafuzz: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Printf("schemafuzz: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `schemafuzz - schema-directed JSON Schema fuzzing tool

USAGE:
    schemafuzz <command> [flags]

COMMANDS:
    run-tests                                exercise the built-in conformance table
    validate <schema-file> <instance-file>   validate one instance against one schema
    fuzz <schema-file> [flags]               emit invalid instances derived from a schema
    generate <schema-file> [output-file]     emit a valid instance (JTD only)
    analyze-rfc                              print the RFC 8927 / draft-2020-12 keyword table`)
}
