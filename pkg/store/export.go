package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// GraphNode represents a typed resource in the graph visualization.
type GraphNode struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Type     string            `json:"type"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// GraphEdge represents a resource-valued property between two nodes.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
	Type   string `json:"type"`
}

// GraphExport represents the complete graph for visualization.
type GraphExport struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	Stats GraphStats  `json:"stats"`
}

// GraphStats contains summary statistics for the graph.
type GraphStats struct {
	TotalNodes  int            `json:"total_nodes"`
	TotalEdges  int            `json:"total_edges"`
	NodesByType map[string]int `json:"nodes_by_type"`
	EdgesByType map[string]int `json:"edges_by_type"`
}

// labelPredicates are tried in order when choosing a node label.
var labelPredicates = []string{
	NamespaceDCTerms + "title",
	NamespaceSBOL + "displayId",
	NamespaceRDFS + "label",
}

// ExportGraph exports the subjects of the store and the resource links
// between them. Objects that are never described as subjects (role terms,
// type IRIs, external seeAlso links) do not become nodes.
func ExportGraph(store *TripleStore) *GraphExport {
	export := &GraphExport{
		Nodes: make([]GraphNode, 0),
		Edges: make([]GraphEdge, 0),
		Stats: GraphStats{
			NodesByType: make(map[string]int),
			EdgesByType: make(map[string]int),
		},
	}

	for _, subject := range store.Subjects() {
		node := createNode(subject, store)
		export.Nodes = append(export.Nodes, node)
		export.Stats.NodesByType[node.Type]++
	}

	for _, t := range store.All() {
		if !t.Object.IsIRI() || t.Predicate == RDFType {
			continue
		}
		if len(store.Find(t.Object.Value, "", Term{})) == 0 {
			continue
		}
		export.Edges = append(export.Edges, GraphEdge{
			Source: t.Subject,
			Target: t.Object.Value,
			Label:  extractLabel(t.Predicate),
			Type:   t.Predicate,
		})
		export.Stats.EdgesByType[t.Predicate]++
	}

	export.Stats.TotalNodes = len(export.Nodes)
	export.Stats.TotalEdges = len(export.Edges)

	return export
}

func createNode(uri string, store *TripleStore) GraphNode {
	node := GraphNode{
		ID:       uri,
		Label:    extractNodeLabel(uri, store),
		Type:     "Node",
		Metadata: make(map[string]string),
	}

	if typeTerm, ok := store.GetOne(uri, RDFType); ok {
		node.Type = extractLabel(typeTerm.Value)
	}

	for _, t := range store.Find(uri, "", Term{}) {
		if !t.Object.IsIRI() && len(t.Object.Value) < 100 {
			node.Metadata[extractLabel(t.Predicate)] = t.Object.Value
		}
	}

	return node
}

func extractNodeLabel(uri string, store *TripleStore) string {
	for _, predicate := range labelPredicates {
		if term, ok := store.GetOne(uri, predicate); ok && len(term.Value) < 50 {
			return term.Value
		}
	}
	return extractLabel(uri)
}

// extractLabel returns the part of a URI after its last '#' or '/'.
func extractLabel(uri string) string {
	if idx := strings.LastIndexAny(uri, "#/"); idx != -1 && idx < len(uri)-1 {
		return uri[idx+1:]
	}
	return uri
}

// ToJSON serializes the graph export to JSON.
func (g *GraphExport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// ToDOT exports the graph in DOT format for Graphviz.
func (g *GraphExport) ToDOT() string {
	var sb strings.Builder

	sb.WriteString("digraph SBOLDocument {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n\n")

	typeColors := map[string]string{
		"ComponentDefinition": "lightblue",
		"Component":           "lightgreen",
		"SequenceAnnotation":  "lightyellow",
		"Range":               "lavender",
		"Sequence":            "lightgray",
		"Activity":            "gold",
		"Usage":               "lightsalmon",
	}

	for _, node := range g.Nodes {
		color := typeColors[node.Type]
		if color == "" {
			color = "white"
		}
		label := node.Label
		if len(label) > 30 {
			label = label[:30] + "..."
		}
		fmt.Fprintf(&sb, "  \"%s\" [label=\"%s\" style=filled fillcolor=%s];\n",
			escapeDOT(node.ID), escapeDOT(label), color)
	}

	sb.WriteString("\n")

	edgeColors := map[string]string{
		"definition":         "blue",
		"component":          "blue",
		"sequenceAnnotation": "darkgreen",
		"location":           "darkgreen",
		"sequence":           "gray",
		"wasDerivedFrom":     "red",
		"wasGeneratedBy":     "orange",
		"qualifiedUsage":     "orange",
		"entity":             "orange",
	}

	edges := make([]GraphEdge, len(g.Edges))
	copy(edges, g.Edges)
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	for _, edge := range edges {
		color := edgeColors[edge.Label]
		if color == "" {
			color = "black"
		}
		fmt.Fprintf(&sb, "  \"%s\" -> \"%s\" [label=\"%s\" color=%s];\n",
			escapeDOT(edge.Source), escapeDOT(edge.Target), edge.Label, color)
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeDOT(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}
