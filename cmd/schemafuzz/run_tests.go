package main

import (
	"fmt"

	"github.com/structflow/schemafuzz/internal/conformance"
)

func runRunTests(args []string) error {
	results := conformance.RunAll()
	failed := 0
	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
			failed++
		}
		fmt.Printf("[%s] %s\n", status, r.Case.Name)
		if !r.Passed {
			fmt.Printf("       %s\n", r.Detail)
		}
	}
	fmt.Printf("\n%d/%d passed\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d conformance case(s) failed", failed)
	}
	return nil
}
