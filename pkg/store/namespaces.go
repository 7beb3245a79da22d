package store

import (
	"sort"
	"strconv"
	"strings"
)

// namespaceTable indexes prefix mappings in both directions. A later mapping
// for an already known prefix replaces the earlier one.
type namespaceTable struct {
	mappings       []PrefixMapping
	prefixIndex    map[string]string // prefix -> namespace
	namespaceIndex map[string]string // namespace -> prefix
}

func newNamespaceTable(mappings []PrefixMapping) *namespaceTable {
	table := &namespaceTable{
		prefixIndex:    make(map[string]string, len(mappings)),
		namespaceIndex: make(map[string]string, len(mappings)),
	}
	for _, mapping := range mappings {
		table.add(mapping)
	}
	return table
}

func (table *namespaceTable) add(mapping PrefixMapping) {
	if previous, exists := table.prefixIndex[mapping.Prefix]; exists {
		delete(table.namespaceIndex, previous)
		for i := range table.mappings {
			if table.mappings[i].Prefix == mapping.Prefix {
				table.mappings[i].Namespace = mapping.Namespace
			}
		}
	} else {
		table.mappings = append(table.mappings, mapping)
	}
	table.prefixIndex[mapping.Prefix] = mapping.Namespace
	table.namespaceIndex[mapping.Namespace] = mapping.Prefix
}

func (table *namespaceTable) clone() *namespaceTable {
	return newNamespaceTable(table.mappings)
}

// sorted returns the mappings ordered by prefix.
func (table *namespaceTable) sorted() []PrefixMapping {
	sortedMappings := make([]PrefixMapping, len(table.mappings))
	copy(sortedMappings, table.mappings)
	sort.Slice(sortedMappings, func(i, j int) bool {
		return sortedMappings[i].Prefix < sortedMappings[j].Prefix
	})
	return sortedMappings
}

// split divides a full URI into a registered prefix and local name using the
// longest matching namespace. The local name must satisfy valid.
func (table *namespaceTable) split(fullURI string, valid func(string) bool) (string, string, bool) {
	bestPrefix := ""
	bestNamespace := ""

	for namespace, prefix := range table.namespaceIndex {
		if strings.HasPrefix(fullURI, namespace) && len(namespace) > len(bestNamespace) {
			if valid(fullURI[len(namespace):]) {
				bestPrefix = prefix
				bestNamespace = namespace
			}
		}
	}

	if bestNamespace == "" {
		return "", "", false
	}
	return bestPrefix, fullURI[len(bestNamespace):], true
}

// declarePredicates registers generated ns<N> prefixes for predicate
// namespaces nobody declared, so that every predicate can be written as a
// qualified name.
func (table *namespaceTable) declarePredicates(predicates []string) {
	generated := 0
	for _, predicate := range predicates {
		if _, _, ok := table.split(predicate, isXMLName); ok {
			continue
		}
		cut := strings.LastIndexAny(predicate, "#/")
		if cut < 0 || !isXMLName(predicate[cut+1:]) {
			continue
		}
		namespace := predicate[:cut+1]
		if _, known := table.namespaceIndex[namespace]; known {
			continue
		}
		for {
			generated++
			prefix := "ns" + strconv.Itoa(generated)
			if _, taken := table.prefixIndex[prefix]; !taken {
				table.add(PrefixMapping{Prefix: prefix, Namespace: namespace})
				break
			}
		}
	}
}

// isXMLName reports whether s can be used as the local part of an XML
// qualified name.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, char := range s {
		letter := char == '_' || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
		if i == 0 && !letter {
			return false
		}
		if !letter && !(char >= '0' && char <= '9') && char != '-' && char != '.' {
			return false
		}
	}
	return true
}

// isValidLocalName checks if a string is a usable Turtle / JSON-LD local name.
func isValidLocalName(localName string) bool {
	if localName == "" {
		return false
	}
	return !strings.ContainsAny(localName, " \t\n\r<>\"{}|^`\\/#%()*.,;:=")
}
