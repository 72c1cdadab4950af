package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAll(t *testing.T) {
	for _, r := range RunAll() {
		assert.Truef(t, r.Passed, "%s: %s", r.Case.Name, r.Detail)
	}
}
