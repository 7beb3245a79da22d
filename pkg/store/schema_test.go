package store

import (
	"strings"
	"testing"
)

func TestNamespaces(t *testing.T) {
	namespaces := []struct {
		name string
		uri  string
	}{
		{"RDF", NamespaceRDF},
		{"RDFS", NamespaceRDFS},
		{"XSD", NamespaceXSD},
		{"DCTerms", NamespaceDCTerms},
		{"Prov", NamespaceProv},
		{"SBOL", NamespaceSBOL},
	}

	for _, ns := range namespaces {
		if !strings.HasPrefix(ns.uri, "http://") {
			t.Errorf("Namespace %s should be a valid URI, got %s", ns.name, ns.uri)
		}
		if !strings.HasSuffix(ns.uri, "#") && !strings.HasSuffix(ns.uri, "/") {
			t.Errorf("Namespace %s should end with # or /, got %s", ns.name, ns.uri)
		}
	}
}

func TestDefaultPrefixMappings(t *testing.T) {
	mappings := defaultPrefixMappings()

	if len(mappings) != 4 {
		t.Fatalf("Expected 4 default prefixes, got %d", len(mappings))
	}

	expected := map[string]string{
		"rdf":     NamespaceRDF,
		"dcterms": NamespaceDCTerms,
		"prov":    NamespaceProv,
		"sbol":    NamespaceSBOL,
	}
	for _, mapping := range mappings {
		if expected[mapping.Prefix] != mapping.Namespace {
			t.Errorf("Unexpected mapping %s -> %s", mapping.Prefix, mapping.Namespace)
		}
	}
}

func TestNamespaceTable_LastMappingWins(t *testing.T) {
	table := newNamespaceTable([]PrefixMapping{
		{Prefix: "ex", Namespace: "http://a.example/"},
		{Prefix: "ex", Namespace: "http://b.example/"},
	})

	if len(table.mappings) != 1 {
		t.Fatalf("Expected 1 mapping, got %d", len(table.mappings))
	}
	if _, _, ok := table.split("http://a.example/x", isValidLocalName); ok {
		t.Error("Replaced namespace should no longer match")
	}
	if prefix, local, ok := table.split("http://b.example/x", isValidLocalName); !ok || prefix != "ex" || local != "x" {
		t.Errorf("Unexpected split: %s %s %v", prefix, local, ok)
	}
}

func TestNamespaceTable_LongestMatch(t *testing.T) {
	table := newNamespaceTable([]PrefixMapping{
		{Prefix: "base", Namespace: "http://ncl.ac.uk/"},
		{Prefix: "yeast", Namespace: "http://ncl.ac.uk/syntheticyeast/"},
	})

	prefix, local, ok := table.split("http://ncl.ac.uk/syntheticyeast/chrXI", isValidLocalName)
	if !ok || prefix != "yeast" || local != "chrXI" {
		t.Errorf("Expected yeast:chrXI, got %s:%s (%v)", prefix, local, ok)
	}
}

func TestIsXMLName(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"displayId", true},
		{"_x", true},
		{"persistent-identity.1", true},
		{"1abc", false},
		{"", false},
		{"a b", false},
		{"SO:0000704", false},
	}

	for _, tc := range tests {
		if got := isXMLName(tc.input); got != tc.valid {
			t.Errorf("isXMLName(%q) = %v, want %v", tc.input, got, tc.valid)
		}
	}
}
