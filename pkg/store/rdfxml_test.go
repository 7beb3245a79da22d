package store

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

func sampleDesignStore() *TripleStore {
	store := NewTripleStore()
	cd := testBase + "chrXI/1"
	_ = store.Add(cd, RDFType, IRI(NamespaceSBOL+"ComponentDefinition"))
	_ = store.Add(cd, NamespaceSBOL+"displayId", Literal("chrXI"))
	_ = store.Add(cd, NamespaceDCTerms+"title", Literal("Chromosome <XI> & friends"))
	_ = store.Add(cd, NamespaceSBOL+"role", IRI("http://identifiers.org/so/SO:0000340"))

	rng := testBase + "chrXI/GENE1/range/1"
	_ = store.Add(rng, RDFType, IRI(NamespaceSBOL+"Range"))
	_ = store.Add(rng, NamespaceSBOL+"start", TypedLiteral("1", XSDInt))
	_ = store.Add(rng, NamespaceSBOL+"end", TypedLiteral("4", XSDInt))
	return store
}

func TestRDFXMLSerializer_Header(t *testing.T) {
	output := NewRDFXMLSerializer().Serialize(NewTripleStore())

	if !strings.HasPrefix(output, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("Missing XML declaration: %s", output)
	}

	for _, ns := range []string{
		`xmlns:dcterms="http://purl.org/dc/terms/"`,
		`xmlns:prov="http://www.w3.org/ns/prov#"`,
		`xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"`,
		`xmlns:sbol="http://sbols.org/v2#"`,
	} {
		if !strings.Contains(output, ns) {
			t.Errorf("Expected namespace declaration %s", ns)
		}
	}

	if !strings.HasSuffix(output, "</rdf:RDF>\n") {
		t.Error("Expected closing rdf:RDF element")
	}
}

func TestRDFXMLSerializer_Properties(t *testing.T) {
	output := NewRDFXMLSerializer().Serialize(sampleDesignStore())

	tests := []struct {
		name     string
		expected string
	}{
		{"description element", `<rdf:Description rdf:about="http://example.org/design/chrXI/1">`},
		{"type as resource", `<rdf:type rdf:resource="http://sbols.org/v2#ComponentDefinition"/>`},
		{"plain literal", `<sbol:displayId>chrXI</sbol:displayId>`},
		{"escaped literal", `<dcterms:title>Chromosome &lt;XI&gt; &amp; friends</dcterms:title>`},
		{"role resource", `<sbol:role rdf:resource="http://identifiers.org/so/SO:0000340"/>`},
		{"typed literal", `<sbol:start rdf:datatype="http://www.w3.org/2001/XMLSchema#int">1</sbol:start>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !strings.Contains(output, tc.expected) {
				t.Errorf("Expected output to contain %s\n%s", tc.expected, output)
			}
		})
	}
}

func TestRDFXMLSerializer_TypeFirst(t *testing.T) {
	output := NewRDFXMLSerializer().Serialize(sampleDesignStore())

	typeIndex := strings.Index(output, "<rdf:type rdf:resource=\"http://sbols.org/v2#ComponentDefinition\"/>")
	titleIndex := strings.Index(output, "<dcterms:title>")
	if typeIndex < 0 || titleIndex < 0 || typeIndex > titleIndex {
		t.Errorf("Expected rdf:type before other properties")
	}
}

func TestRDFXMLSerializer_WellFormed(t *testing.T) {
	output := NewRDFXMLSerializer().Serialize(sampleDesignStore())

	decoder := xml.NewDecoder(strings.NewReader(output))
	for {
		_, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("Output is not well-formed XML: %v", err)
		}
	}
}

func TestRDFXMLSerializer_Deterministic(t *testing.T) {
	serializer := NewRDFXMLSerializer()
	first := serializer.Serialize(sampleDesignStore())
	second := serializer.Serialize(sampleDesignStore())

	if first != second {
		t.Error("Serializing the same triples twice should produce identical output")
	}
}

func TestRDFXMLSerializer_CustomPrefix(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add(testBase+"x/1", "http://wiki.synbiohub.org/wiki/Terms/GFF3#source", Literal("SGD"))

	output := NewRDFXMLSerializer(
		WithRDFXMLPrefix("gff3", "http://wiki.synbiohub.org/wiki/Terms/GFF3#"),
	).Serialize(store)

	if !strings.Contains(output, `xmlns:gff3="http://wiki.synbiohub.org/wiki/Terms/GFF3#"`) {
		t.Error("Expected custom gff3 namespace declaration")
	}
	if !strings.Contains(output, "<gff3:source>SGD</gff3:source>") {
		t.Errorf("Expected gff3:source element\n%s", output)
	}
}

func TestRDFXMLSerializer_GeneratedPrefix(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add(testBase+"x/1", "http://other.example/terms#flag", Literal("on"))

	output := NewRDFXMLSerializer().Serialize(store)

	if !strings.Contains(output, `xmlns:ns1="http://other.example/terms#"`) {
		t.Errorf("Expected generated ns1 declaration\n%s", output)
	}
	if !strings.Contains(output, "<ns1:flag>on</ns1:flag>") {
		t.Errorf("Expected ns1:flag element\n%s", output)
	}
}

func TestRDFXMLSerializer_WithoutDefaultPrefixes(t *testing.T) {
	output := NewRDFXMLSerializer(WithoutRDFXMLDefaultPrefixes()).Serialize(NewTripleStore())

	if !strings.Contains(output, `xmlns:rdf=`) {
		t.Error("rdf prefix must always be declared")
	}
	if strings.Contains(output, `xmlns:sbol=`) {
		t.Error("sbol prefix should not be declared")
	}
}

func TestEscapeXMLAttribute(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`plain`, `plain`},
		{`a&b`, `a&amp;b`},
		{`"quoted"`, `&quot;quoted&quot;`},
		{`<tag>`, `&lt;tag&gt;`},
	}

	for _, tc := range tests {
		if got := escapeXMLAttribute(tc.input); got != tc.expected {
			t.Errorf("escapeXMLAttribute(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
