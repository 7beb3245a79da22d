package store

import (
	"strings"
	"testing"
)

func TestTurtleSerializer_Prefixes(t *testing.T) {
	output := NewTurtleSerializer().Serialize(NewTripleStore())

	expected := "@prefix dcterms: <http://purl.org/dc/terms/> .\n" +
		"@prefix prov: <http://www.w3.org/ns/prov#> .\n" +
		"@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .\n" +
		"@prefix sbol: <http://sbols.org/v2#> .\n\n"

	if output != expected {
		t.Errorf("Unexpected prefix block:\n%s", output)
	}
}

func TestTurtleSerializer_SubjectGroup(t *testing.T) {
	output := NewTurtleSerializer(WithPrefix("ex", testBase)).Serialize(sampleDesignStore())

	tests := []struct {
		name     string
		expected string
	}{
		{"type shorthand", "<http://example.org/design/chrXI/1> a sbol:ComponentDefinition"},
		{"literal", `sbol:displayId "chrXI"`},
		{"typed literal", `sbol:start "1"^^<http://www.w3.org/2001/XMLSchema#int>`},
		{"role resource", "sbol:role <http://identifiers.org/so/SO:0000340>"},
		{"statement terminator", " .\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !strings.Contains(output, tc.expected) {
				t.Errorf("Expected output to contain %q\n%s", tc.expected, output)
			}
		})
	}
}

func TestTurtleSerializer_MultipleObjects(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("http://x/s", NamespaceSBOL+"role", IRI("http://x/b"))
	_ = store.Add("http://x/s", NamespaceSBOL+"role", IRI("http://x/a"))

	output := NewTurtleSerializer().Serialize(store)

	if !strings.Contains(output, "sbol:role <http://x/a> ,\n        <http://x/b> .") {
		t.Errorf("Expected comma separated sorted objects\n%s", output)
	}
}

func TestTurtleSerializer_WithoutDefaultPrefixes(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("http://x/s", NamespaceSBOL+"displayId", Literal("s"))

	output := NewTurtleSerializer(WithoutDefaultPrefixes()).Serialize(store)

	if strings.Contains(output, "@prefix") {
		t.Errorf("Expected no prefix declarations\n%s", output)
	}
	if !strings.Contains(output, "<http://sbols.org/v2#displayId>") {
		t.Errorf("Expected full predicate IRI\n%s", output)
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", `"plain"`},
		{"line\nbreak", `"line\nbreak"`},
		{`back\slash`, `"back\\slash"`},
		{`"quote"`, `"\"quote\""`},
	}

	for _, tc := range tests {
		if got := formatLiteral(tc.input); got != tc.expected {
			t.Errorf("formatLiteral(%q) = %s, want %s", tc.input, got, tc.expected)
		}
	}
}

func TestEscapeIRI(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"http://x/a", "http://x/a"},
		{"http://x/a b", `http://x/a\u0020b`},
		{"http://x/<a>", `http://x/\u003Ca\u003E`},
	}

	for _, tc := range tests {
		if got := escapeIRI(tc.input); got != tc.expected {
			t.Errorf("escapeIRI(%q) = %s, want %s", tc.input, got, tc.expected)
		}
	}
}
