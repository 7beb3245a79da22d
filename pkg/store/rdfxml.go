package store

import (
	"fmt"
	"strings"
)

// RDFXMLSerializer converts a TripleStore into W3C RDF/XML, one
// rdf:Description per subject.
type RDFXMLSerializer struct {
	namespaces *namespaceTable
}

// RDFXMLOption is a functional option for configuring the RDFXMLSerializer.
type RDFXMLOption func(*[]PrefixMapping)

// NewRDFXMLSerializer creates an RDFXMLSerializer with the rdf, dcterms, prov
// and sbol namespace declarations.
func NewRDFXMLSerializer(options ...RDFXMLOption) *RDFXMLSerializer {
	mappings := defaultPrefixMappings()

	for _, option := range options {
		option(&mappings)
	}

	return &RDFXMLSerializer{namespaces: newNamespaceTable(mappings)}
}

// WithRDFXMLPrefix adds or overrides a namespace prefix mapping.
func WithRDFXMLPrefix(prefix, namespace string) RDFXMLOption {
	return func(mappings *[]PrefixMapping) {
		*mappings = append(*mappings, PrefixMapping{Prefix: prefix, Namespace: namespace})
	}
}

// WithoutRDFXMLDefaultPrefixes clears default prefixes so only custom ones are used.
// The rdf prefix is always declared since the syntax itself needs it.
func WithoutRDFXMLDefaultPrefixes() RDFXMLOption {
	return func(mappings *[]PrefixMapping) {
		*mappings = []PrefixMapping{{Prefix: "rdf", Namespace: NamespaceRDF}}
	}
}

// Serialize converts all triples in the store to RDF/XML.
func (serializer *RDFXMLSerializer) Serialize(store *TripleStore) string {
	var builder strings.Builder

	namespaces := serializer.namespaces.clone()
	namespaces.declarePredicates(store.Predicates())

	groups := groupTriplesBySubject(store)

	writeXMLHeader(&builder, namespaces)

	for _, subject := range sortedKeys(groups) {
		writeDescription(&builder, namespaces, subject, groups[subject])
	}

	builder.WriteString("</rdf:RDF>\n")

	return builder.String()
}

// writeXMLHeader writes the XML declaration and opening rdf:RDF element with namespace attributes.
func writeXMLHeader(builder *strings.Builder, namespaces *namespaceTable) {
	builder.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	builder.WriteString("<rdf:RDF")

	for _, mapping := range namespaces.sorted() {
		fmt.Fprintf(builder, "\n    xmlns:%s=\"%s\"", mapping.Prefix, escapeXMLAttribute(mapping.Namespace))
	}

	builder.WriteString(">\n")
}

// writeDescription writes an rdf:Description block for a single subject.
func writeDescription(
	builder *strings.Builder,
	namespaces *namespaceTable,
	subject string,
	predicateObjectMap map[string][]Term,
) {
	builder.WriteString("\n")
	fmt.Fprintf(builder, "  <rdf:Description rdf:about=\"%s\">\n", escapeXMLAttribute(subject))

	for _, predicate := range sortPredicatesTypeFirst(predicateObjectMap) {
		objects := predicateObjectMap[predicate]
		sortTerms(objects)

		elementName := predicateToElementName(namespaces, predicate)
		for _, object := range objects {
			writeProperty(builder, elementName, object)
		}
	}

	builder.WriteString("  </rdf:Description>\n")
}

// writeProperty writes a single predicate-object pair as an XML element.
func writeProperty(builder *strings.Builder, elementName string, object Term) {
	switch {
	case object.IsIRI():
		fmt.Fprintf(builder, "    <%s rdf:resource=\"%s\"/>\n", elementName, escapeXMLAttribute(object.Value))
	case object.Datatype != "":
		fmt.Fprintf(builder, "    <%s rdf:datatype=\"%s\">%s</%s>\n",
			elementName, escapeXMLAttribute(object.Datatype), escapeXMLText(object.Value), elementName)
	default:
		fmt.Fprintf(builder, "    <%s>%s</%s>\n", elementName, escapeXMLText(object.Value), elementName)
	}
}

// predicateToElementName converts a predicate URI to a prefixed XML element
// name. Predicates outside every known namespace fall back to the full URI,
// which keeps the data but is not a valid element name.
func predicateToElementName(namespaces *namespaceTable, predicate string) string {
	if prefix, localName, ok := namespaces.split(predicate, isXMLName); ok {
		return prefix + ":" + localName
	}
	return predicate
}

// escapeXMLText escapes characters that are special in XML text content.
func escapeXMLText(text string) string {
	var builder strings.Builder
	builder.Grow(len(text) + len(text)/8)

	for _, char := range text {
		switch char {
		case '&':
			builder.WriteString("&amp;")
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// escapeXMLAttribute escapes characters that are special in XML attribute values.
func escapeXMLAttribute(text string) string {
	var builder strings.Builder
	builder.Grow(len(text) + len(text)/8)

	for _, char := range text {
		switch char {
		case '&':
			builder.WriteString("&amp;")
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		case '"':
			builder.WriteString("&quot;")
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}
