package store

import "testing"

const testBase = "http://example.org/design/"

func TestNewTriple(t *testing.T) {
	triple := NewTriple(testBase+"chrXI/1", RDFType, IRI(NamespaceSBOL+"ComponentDefinition"))

	if triple.Subject != testBase+"chrXI/1" {
		t.Errorf("Subject mismatch: got %s", triple.Subject)
	}
	if triple.Predicate != RDFType {
		t.Errorf("Predicate mismatch: got %s", triple.Predicate)
	}
	if !triple.Object.IsIRI() || triple.Object.Value != NamespaceSBOL+"ComponentDefinition" {
		t.Errorf("Object mismatch: got %+v", triple.Object)
	}
}

func TestTriple_Equals(t *testing.T) {
	t1 := NewTriple(testBase+"a/1", NamespaceDCTerms+"title", Literal("a"))
	t2 := NewTriple(testBase+"a/1", NamespaceDCTerms+"title", Literal("a"))
	t3 := NewTriple(testBase+"a/1", NamespaceDCTerms+"title", IRI("a"))

	if !t1.Equals(t2) {
		t.Error("Identical triples should be equal")
	}

	if t1.Equals(t3) {
		t.Error("A literal and an IRI with the same value should not be equal")
	}
}

func TestTriple_NTriples(t *testing.T) {
	tests := []struct {
		name     string
		triple   Triple
		expected string
	}{
		{
			name:     "resource object",
			triple:   NewTriple("http://x/s", "http://x/p", IRI("http://x/o")),
			expected: "<http://x/s> <http://x/p> <http://x/o> .",
		},
		{
			name:     "plain literal",
			triple:   NewTriple("http://x/s", "http://x/p", Literal(`say "hi"`)),
			expected: `<http://x/s> <http://x/p> "say \"hi\"" .`,
		},
		{
			name:     "typed literal",
			triple:   NewTriple("http://x/s", "http://x/p", TypedLiteral("12", XSDInt)),
			expected: `<http://x/s> <http://x/p> "12"^^<http://www.w3.org/2001/XMLSchema#int> .`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.triple.NTriples(); got != tc.expected {
				t.Errorf("NTriples mismatch: got %s, want %s", got, tc.expected)
			}
		})
	}
}

func TestTriple_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		triple  Triple
		isValid bool
	}{
		{"valid triple", NewTriple("s", "p", Literal("o")), true},
		{"empty subject", NewTriple("", "p", Literal("o")), false},
		{"empty predicate", NewTriple("s", "", Literal("o")), false},
		{"empty object", NewTriple("s", "p", Literal("")), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.triple.IsValid(); got != tc.isValid {
				t.Errorf("IsValid() = %v, want %v", got, tc.isValid)
			}
		})
	}
}

func TestSortPredicatesTypeFirst(t *testing.T) {
	predicateObjectMap := map[string][]Term{
		NamespaceSBOL + "role":      {IRI("r")},
		RDFType:                     {IRI("t")},
		NamespaceDCTerms + "title":  {Literal("n")},
		NamespaceSBOL + "displayId": {Literal("d")},
	}

	sorted := sortPredicatesTypeFirst(predicateObjectMap)

	expected := []string{
		RDFType,
		NamespaceDCTerms + "title",
		NamespaceSBOL + "displayId",
		NamespaceSBOL + "role",
	}
	if len(sorted) != len(expected) {
		t.Fatalf("Expected %d predicates, got %d", len(expected), len(sorted))
	}
	for i := range expected {
		if sorted[i] != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], sorted[i])
		}
	}
}
