// Package gff parses the pieces of a GFF3 file that the converter consumes:
// nine-column feature records, their key=value attribute blocks and the
// provenance comments written by upstream tools.
//
// Parsing functions return tagged results ((T, bool) or (T, error)) so that a
// line which does not match surfaces as an explicit variant.
package gff

import (
	"sort"
	"strings"
)

// Well known attribute keys.
const (
	AttrID           = "ID"
	AttrName         = "Name"
	AttrNote         = "Note"
	AttrOntologyTerm = "Ontology_term"
)

// Attributes maps attribute keys to their raw values.
type Attributes map[string]string

// ParseAttributes splits a semicolon separated attribute block into a map.
// Each token is split on its first '='. A token without '=' yields the key
// with an empty value and empty tokens are skipped. When a key repeats, the
// last occurrence wins.
//
// Values are not unescaped: an encoded ';' or '=' inside a value is kept
// verbatim and a literal one splits the token.
func ParseAttributes(s string) Attributes {
	attrs := make(Attributes)
	for _, token := range strings.Split(s, ";") {
		if token == "" {
			continue
		}
		key, value, _ := strings.Cut(token, "=")
		attrs[key] = value
	}
	return attrs
}

// Get returns the value for key, or "" if it is absent.
func (a Attributes) Get(key string) string {
	return a[key]
}

// Has reports whether key was present, even with an empty value.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// OntologyTerms returns the comma separated tokens of the Ontology_term
// attribute, in order. Empty tokens are dropped.
func (a Attributes) OntologyTerms() []string {
	raw := a[AttrOntologyTerm]
	if raw == "" {
		return nil
	}
	var terms []string
	for _, term := range strings.Split(raw, ",") {
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// Keys returns the attribute keys in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
