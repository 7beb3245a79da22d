package store

import (
	"fmt"
	"sort"
	"strings"
)

// TermKind distinguishes resource objects from literal objects.
type TermKind int

const (
	// KindIRI marks an object that references another resource.
	KindIRI TermKind = iota

	// KindLiteral marks a plain or typed literal value.
	KindLiteral
)

// Term is the object position of a triple. Literals may carry an XSD
// datatype; IRIs never do.
type Term struct {
	Value    string
	Kind     TermKind
	Datatype string
}

// IRI returns a resource term.
func IRI(value string) Term {
	return Term{Value: value, Kind: KindIRI}
}

// Literal returns a plain string literal.
func Literal(value string) Term {
	return Term{Value: value, Kind: KindLiteral}
}

// TypedLiteral returns a literal carrying the given datatype URI.
func TypedLiteral(value, datatype string) Term {
	return Term{Value: value, Kind: KindLiteral, Datatype: datatype}
}

// IsIRI reports whether the term references a resource.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// IsZero reports whether the term is empty. A zero term acts as a wildcard in Find.
func (t Term) IsZero() bool {
	return t.Value == ""
}

// NTriples returns the term in N-Triples syntax.
func (t Term) NTriples() string {
	if t.IsIRI() {
		return "<" + t.Value + ">"
	}
	lit := `"` + escapeLiteralString(t.Value) + `"`
	if t.Datatype != "" {
		lit += "^^<" + t.Datatype + ">"
	}
	return lit
}

// less orders terms by value, then kind, then datatype.
func (t Term) less(other Term) bool {
	if t.Value != other.Value {
		return t.Value < other.Value
	}
	if t.Kind != other.Kind {
		return t.Kind < other.Kind
	}
	return t.Datatype < other.Datatype
}

// Triple represents an RDF Subject-Predicate-Object triple.
// In an SBOL document:
//   - Subject: the URI of an identified object (e.g. ".../chrXI/1")
//   - Predicate: a full property URI (e.g. sbol:role)
//   - Object: another resource or a literal value
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// NewTriple creates a new triple with the given components.
func NewTriple(subject, predicate string, object Term) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// Equals checks if two triples have identical components.
func (t Triple) Equals(other Triple) bool {
	return t.Subject == other.Subject &&
		t.Predicate == other.Predicate &&
		t.Object == other.Object
}

// String returns a human-readable representation of the triple.
func (t Triple) String() string {
	return fmt.Sprintf("<%s> <%s> %s", t.Subject, t.Predicate, t.Object.NTriples())
}

// NTriples returns the triple in N-Triples format.
func (t Triple) NTriples() string {
	return fmt.Sprintf("<%s> <%s> %s .", t.Subject, t.Predicate, t.Object.NTriples())
}

// IsValid returns true if all components are non-empty.
func (t Triple) IsValid() bool {
	return t.Subject != "" && t.Predicate != "" && !t.Object.IsZero()
}

// subjectGroups maps subject -> predicate -> objects.
type subjectGroups map[string]map[string][]Term

// groupTriplesBySubject organizes the store's triples for per-subject output.
func groupTriplesBySubject(store *TripleStore) subjectGroups {
	groups := make(subjectGroups)

	for _, triple := range store.All() {
		if _, exists := groups[triple.Subject]; !exists {
			groups[triple.Subject] = make(map[string][]Term)
		}
		groups[triple.Subject][triple.Predicate] = append(
			groups[triple.Subject][triple.Predicate],
			triple.Object,
		)
	}

	return groups
}

// sortPredicatesTypeFirst sorts predicates with rdf:type first, then alphabetically.
func sortPredicatesTypeFirst(predicateObjectMap map[string][]Term) []string {
	predicates := make([]string, 0, len(predicateObjectMap))
	hasRDFType := false

	for predicate := range predicateObjectMap {
		if predicate == RDFType {
			hasRDFType = true
			continue
		}
		predicates = append(predicates, predicate)
	}

	sort.Strings(predicates)

	if hasRDFType {
		predicates = append([]string{RDFType}, predicates...)
	}

	return predicates
}

func sortTerms(terms []Term) {
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].less(terms[j])
	})
}

// escapeLiteralString escapes special characters per W3C Turtle / N-Triples.
func escapeLiteralString(value string) string {
	var builder strings.Builder
	builder.Grow(len(value) + len(value)/8)

	for _, char := range value {
		switch char {
		case '\\':
			builder.WriteString(`\\`)
		case '"':
			builder.WriteString(`\"`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// sortedKeys returns the keys of a map sorted alphabetically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
