package store

import (
	"encoding/json"
)

// JSONLDContext represents a JSON-LD @context document.
type JSONLDContext map[string]interface{}

// JSONLDSerializer converts a TripleStore into JSON-LD.
type JSONLDSerializer struct {
	namespaces  *namespaceTable
	compactForm bool // If true, produce compact JSON-LD; otherwise expanded
}

// JSONLDOption is a functional option for configuring the JSONLDSerializer.
type JSONLDOption func(*JSONLDSerializer, *[]PrefixMapping)

// NewJSONLDSerializer creates a JSONLDSerializer with the default prefix declarations.
func NewJSONLDSerializer(options ...JSONLDOption) *JSONLDSerializer {
	serializer := &JSONLDSerializer{compactForm: true}
	mappings := defaultPrefixMappings()

	for _, option := range options {
		option(serializer, &mappings)
	}

	serializer.namespaces = newNamespaceTable(mappings)

	return serializer
}

// WithJSONLDPrefix adds or overrides a prefix mapping.
func WithJSONLDPrefix(prefix, namespace string) JSONLDOption {
	return func(_ *JSONLDSerializer, mappings *[]PrefixMapping) {
		*mappings = append(*mappings, PrefixMapping{Prefix: prefix, Namespace: namespace})
	}
}

// WithExpandedForm configures the serializer to output expanded JSON-LD (no context compaction).
func WithExpandedForm() JSONLDOption {
	return func(serializer *JSONLDSerializer, _ *[]PrefixMapping) {
		serializer.compactForm = false
	}
}

// BuildContext creates the JSON-LD @context document from prefix mappings.
func (serializer *JSONLDSerializer) BuildContext() JSONLDContext {
	context := make(JSONLDContext)

	for _, mapping := range serializer.namespaces.mappings {
		context[mapping.Prefix] = mapping.Namespace
	}

	return context
}

// JSONLDDocument represents a complete JSON-LD document.
type JSONLDDocument struct {
	Context interface{}              `json:"@context,omitempty"`
	Graph   []map[string]interface{} `json:"@graph"`
}

// Serialize converts all triples in the store to JSON-LD.
func (serializer *JSONLDSerializer) Serialize(store *TripleStore) ([]byte, error) {
	groups := groupTriplesBySubject(store)
	subjects := sortedKeys(groups)

	graph := make([]map[string]interface{}, 0, len(subjects))
	for _, subject := range subjects {
		graph = append(graph, serializer.buildNode(subject, groups[subject]))
	}

	if !serializer.compactForm {
		return json.MarshalIndent(graph, "", "  ")
	}

	return json.MarshalIndent(JSONLDDocument{
		Context: serializer.BuildContext(),
		Graph:   graph,
	}, "", "  ")
}

// SerializeToString returns the JSON-LD as a string.
func (serializer *JSONLDSerializer) SerializeToString(store *TripleStore) (string, error) {
	data, err := serializer.Serialize(store)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// buildNode creates a JSON-LD node from a subject and its predicates.
func (serializer *JSONLDSerializer) buildNode(subject string, predicateObjectMap map[string][]Term) map[string]interface{} {
	node := map[string]interface{}{
		"@id": serializer.compactURI(subject),
	}

	for _, predicate := range sortPredicatesTypeFirst(predicateObjectMap) {
		objects := predicateObjectMap[predicate]
		sortTerms(objects)

		if predicate == RDFType {
			types := make([]string, len(objects))
			for i, object := range objects {
				types[i] = serializer.compactURI(object.Value)
			}
			if len(types) == 1 {
				node["@type"] = types[0]
			} else {
				node["@type"] = types
			}
			continue
		}

		values := make([]interface{}, len(objects))
		for i, object := range objects {
			values[i] = serializer.formatObject(object)
		}

		key := serializer.compactURI(predicate)
		if len(values) == 1 && serializer.compactForm {
			node[key] = values[0]
		} else {
			node[key] = values
		}
	}

	return node
}

// formatObject renders a term as a node reference, a plain string or a value object.
func (serializer *JSONLDSerializer) formatObject(object Term) interface{} {
	if object.IsIRI() {
		return map[string]string{"@id": serializer.compactURI(object.Value)}
	}

	if object.Datatype != "" {
		return map[string]string{
			"@value": object.Value,
			"@type":  serializer.compactURI(object.Datatype),
		}
	}

	if serializer.compactForm {
		return object.Value
	}
	return map[string]string{"@value": object.Value}
}

// compactURI replaces a full namespace URI with its prefixed form in
// compact mode. Expanded output keeps full IRIs.
func (serializer *JSONLDSerializer) compactURI(fullURI string) string {
	if !serializer.compactForm {
		return fullURI
	}
	if prefix, localName, ok := serializer.namespaces.split(fullURI, isValidLocalName); ok {
		return prefix + ":" + localName
	}
	return fullURI
}
