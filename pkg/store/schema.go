// Package store provides an in-memory RDF triple store and the serializers
// used to write SBOL documents as RDF/XML, Turtle and JSON-LD.
package store

// Namespace URIs shared by every serialized document.
const (
	// NamespaceRDF is the standard RDF namespace.
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NamespaceRDFS is the RDF Schema namespace.
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NamespaceXSD is the XML Schema namespace for datatypes.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"

	// NamespaceDCTerms is the Dublin Core terms namespace (names, descriptions).
	NamespaceDCTerms = "http://purl.org/dc/terms/"

	// NamespaceProv is the W3C PROV-O namespace.
	NamespaceProv = "http://www.w3.org/ns/prov#"

	// NamespaceSBOL is the SBOL 2 data model namespace.
	NamespaceSBOL = "http://sbols.org/v2#"
)

// RDFType is the rdf:type predicate. Serializers always write it first.
const RDFType = NamespaceRDF + "type"

// XSD datatypes used for typed literals.
const (
	XSDInt      = NamespaceXSD + "int"
	XSDDateTime = NamespaceXSD + "dateTime"
)

// PrefixMapping associates a short prefix label with its full namespace URI.
type PrefixMapping struct {
	Prefix    string
	Namespace string
}

func defaultPrefixMappings() []PrefixMapping {
	return []PrefixMapping{
		{Prefix: "rdf", Namespace: NamespaceRDF},
		{Prefix: "dcterms", Namespace: NamespaceDCTerms},
		{Prefix: "prov", Namespace: NamespaceProv},
		{Prefix: "sbol", Namespace: NamespaceSBOL},
	}
}
