package store

import (
	"fmt"
	"strings"
)

// TurtleSerializer converts a TripleStore into W3C Turtle (TTL).
type TurtleSerializer struct {
	namespaces *namespaceTable
}

// TurtleOption is a functional option for configuring the TurtleSerializer.
type TurtleOption func(*[]PrefixMapping)

// NewTurtleSerializer creates a TurtleSerializer with the default prefix declarations.
func NewTurtleSerializer(options ...TurtleOption) *TurtleSerializer {
	mappings := defaultPrefixMappings()

	for _, option := range options {
		option(&mappings)
	}

	return &TurtleSerializer{namespaces: newNamespaceTable(mappings)}
}

// WithPrefix adds or overrides a prefix mapping.
func WithPrefix(prefix, namespace string) TurtleOption {
	return func(mappings *[]PrefixMapping) {
		*mappings = append(*mappings, PrefixMapping{Prefix: prefix, Namespace: namespace})
	}
}

// WithoutDefaultPrefixes clears default prefixes so only custom ones are used.
func WithoutDefaultPrefixes() TurtleOption {
	return func(mappings *[]PrefixMapping) {
		*mappings = nil
	}
}

// Serialize converts all triples in the store to Turtle format.
func (serializer *TurtleSerializer) Serialize(store *TripleStore) string {
	var builder strings.Builder

	serializer.writePrefixDeclarations(&builder)

	groups := groupTriplesBySubject(store)

	for subjectIndex, subject := range sortedKeys(groups) {
		if subjectIndex > 0 {
			builder.WriteString("\n")
		}
		serializer.writeSubjectGroup(&builder, subject, groups[subject])
	}

	return builder.String()
}

func (serializer *TurtleSerializer) writePrefixDeclarations(builder *strings.Builder) {
	sortedMappings := serializer.namespaces.sorted()

	for _, mapping := range sortedMappings {
		fmt.Fprintf(builder, "@prefix %s: <%s> .\n", mapping.Prefix, mapping.Namespace)
	}

	if len(sortedMappings) > 0 {
		builder.WriteString("\n")
	}
}

func (serializer *TurtleSerializer) writeSubjectGroup(
	builder *strings.Builder,
	subject string,
	predicateObjectMap map[string][]Term,
) {
	builder.WriteString(serializer.formatResource(subject))

	for predicateIndex, predicate := range sortPredicatesTypeFirst(predicateObjectMap) {
		objects := predicateObjectMap[predicate]
		sortTerms(objects)

		if predicateIndex == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(" ;\n    ")
		}

		builder.WriteString(serializer.formatPredicate(predicate))

		for objectIndex, object := range objects {
			if objectIndex > 0 {
				builder.WriteString(" ,\n        ")
			} else {
				builder.WriteString(" ")
			}
			builder.WriteString(serializer.formatObject(object))
		}
	}

	builder.WriteString(" .\n")
}

// formatResource formats a URI, compacting it when a prefix matches.
func (serializer *TurtleSerializer) formatResource(value string) string {
	if prefix, localName, ok := serializer.namespaces.split(value, isValidLocalName); ok {
		return prefix + ":" + localName
	}
	return "<" + escapeIRI(value) + ">"
}

// formatPredicate formats a predicate, using "a" shorthand for rdf:type.
func (serializer *TurtleSerializer) formatPredicate(predicate string) string {
	if predicate == RDFType {
		return "a"
	}
	return serializer.formatResource(predicate)
}

// formatObject formats a resource or a (typed) literal.
func (serializer *TurtleSerializer) formatObject(object Term) string {
	if object.IsIRI() {
		return serializer.formatResource(object.Value)
	}

	literal := formatLiteral(object.Value)
	if object.Datatype != "" {
		literal += "^^" + serializer.formatResource(object.Datatype)
	}
	return literal
}

// formatLiteral wraps a string value in Turtle double quotes.
func formatLiteral(value string) string {
	return `"` + escapeLiteralString(value) + `"`
}

// escapeIRI escapes characters not allowed in IRIs within angle brackets.
func escapeIRI(iri string) string {
	var builder strings.Builder
	builder.Grow(len(iri))

	for _, char := range iri {
		switch char {
		case '<':
			builder.WriteString(`\u003C`)
		case '>':
			builder.WriteString(`\u003E`)
		case '"':
			builder.WriteString(`\u0022`)
		case ' ':
			builder.WriteString(`\u0020`)
		case '{':
			builder.WriteString(`\u007B`)
		case '}':
			builder.WriteString(`\u007D`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}
