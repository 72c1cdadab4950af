package main

import "fmt"

// rfcSection is one row of the static conformance-shape table printed by
// analyze-rfc: a keyword group and how many individually-testable facets
// it contributes. Grounded on original_source/src/tests/rfc_analysis.rs's
// print_analysis, reshaped from its free-form category list into a fixed
// (dialect, group, facet count) table per SPEC_FULL.md supplement 2 (the
// spec names the command but not its content).
type rfcSection struct {
	dialect     string
	group       string
	description string
	facets      int
}

var rfcTable = []rfcSection{
	{"JTD (RFC 8927)", "empty", "matches any value; nullable gates null", 3},
	{"JTD (RFC 8927)", "type", "11 primitives, each with an exact legal range", 13},
	{"JTD (RFC 8927)", "enum", "non-empty, duplicate-free string set", 5},
	{"JTD (RFC 8927)", "elements", "homogeneous array", 5},
	{"JTD (RFC 8927)", "values", "homogeneous string-keyed map", 4},
	{"JTD (RFC 8927)", "properties", "required/optional/additional keys", 8},
	{"JTD (RFC 8927)", "discriminator", "tag-dispatched mapping, tag exemption", 8},
	{"JTD (RFC 8927)", "ref/definitions", "root-only definitions, cycle detection", 5},
	{"JS2020 (draft 2020-12)", "type/enum/const", "type union, enum, const", 3},
	{"JS2020 (draft 2020-12)", "composition", "allOf/anyOf/oneOf/not/if-then-else", 6},
	{"JS2020 (draft 2020-12)", "array", "prefixItems/items/contains/minItems/maxItems/uniqueItems", 6},
	{"JS2020 (draft 2020-12)", "object", "properties/patternProperties/additionalProperties/required", 7},
	{"JS2020 (draft 2020-12)", "string", "minLength/maxLength/pattern", 3},
	{"JS2020 (draft 2020-12)", "numeric", "minimum/maximum/exclusive*/multipleOf", 5},
}

func runAnalyzeRFC(args []string) error {
	fmt.Println("=== RFC 8927 / draft-2020-12 keyword-group conformance shape ===")
	fmt.Println()
	last := ""
	for _, row := range rfcTable {
		if row.dialect != last {
			fmt.Printf("%s\n", row.dialect)
			last = row.dialect
		}
		fmt.Printf("  %-16s %-55s facets=%d\n", row.group, row.description, row.facets)
	}
	total := 0
	for _, row := range rfcTable {
		total += row.facets
	}
	fmt.Printf("\n%d keyword groups, %d testable facets total\n", len(rfcTable), total)
	return nil
}
