package schema

import (
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Dialect identifies which of the two schema families a document belongs
// to.
type Dialect int

const (
	// DialectJTD is the compact RFC 8927 type-definition dialect.
	DialectJTD Dialect = iota
	// DialectJS2020 is the draft-2020-12 style general schema dialect.
	DialectJS2020
)

func (d Dialect) String() string {
	if d == DialectJS2020 {
		return "js2020"
	}
	return "jtd"
}

// js2020DetectionKeys are the keywords whose mere presence marks a document
// as JS2020 regardless of $schema.
var js2020DetectionKeys = []string{
	"prefixItems", "$defs", "unevaluatedItems", "unevaluatedProperties",
	"$dynamicRef", "$dynamicAnchor",
}

// Detect applies the dialect-detection rule: JS2020 if the top-level object
// carries a $schema string containing "2020-12", or any of the JS2020-only
// keywords; JTD otherwise. Non-object top-level values (including JS2020's
// boolean schema shape) carry no keywords and always detect as JTD —
// callers that already know the dialect should skip detection entirely.
func Detect(raw jsontext.Value) Dialect {
	var obj map[string]jsontext.Value
	if err := json.Unmarshal(raw, &obj); err != nil {
		return DialectJTD
	}
	if schemaVal, ok := obj["$schema"]; ok {
		var s string
		if err := json.Unmarshal(schemaVal, &s); err == nil && strings.Contains(s, "2020-12") {
			return DialectJS2020
		}
	}
	for _, k := range js2020DetectionKeys {
		if _, ok := obj[k]; ok {
			return DialectJS2020
		}
	}
	return DialectJTD
}

// Envelope is the tagged variant crossing the engine's external boundary:
// exactly one of JTD or JS2020 is populated, selected by Dialect.
type Envelope struct {
	Dialect Dialect
	JTD     interface{} // *jtd.Schema, typed at the call site to avoid an import cycle
	JS2020  interface{} // *js2020.Schema
}
