package store

import (
	"encoding/json"
	"strings"
	"testing"
)

func linkedDesignStore() *TripleStore {
	store := sampleDesignStore()
	anno := testBase + "chrXI/GENE1/1"
	_ = store.Add(anno, RDFType, IRI(NamespaceSBOL+"SequenceAnnotation"))
	_ = store.Add(anno, NamespaceSBOL+"displayId", Literal("GENE1"))
	_ = store.Add(anno, NamespaceSBOL+"location", IRI(testBase+"chrXI/GENE1/range/1"))
	_ = store.Add(testBase+"chrXI/1", NamespaceSBOL+"sequenceAnnotation", IRI(anno))
	return store
}

func TestExportGraph(t *testing.T) {
	export := ExportGraph(linkedDesignStore())

	if export.Stats.TotalNodes != 3 {
		t.Errorf("Expected 3 nodes, got %d", export.Stats.TotalNodes)
	}
	if export.Stats.TotalEdges != 2 {
		t.Errorf("Expected 2 edges (role IRIs are not nodes), got %d", export.Stats.TotalEdges)
	}
	if export.Stats.NodesByType["ComponentDefinition"] != 1 {
		t.Errorf("Expected 1 ComponentDefinition node, got %v", export.Stats.NodesByType)
	}

	for _, node := range export.Nodes {
		if node.ID == testBase+"chrXI/1" && node.Label != "Chromosome <XI> & friends" {
			t.Errorf("Expected title as label, got %s", node.Label)
		}
		if node.ID == testBase+"chrXI/GENE1/1" && node.Label != "GENE1" {
			t.Errorf("Expected displayId as label, got %s", node.Label)
		}
	}
}

func TestGraphExport_ToJSON(t *testing.T) {
	data, err := ExportGraph(linkedDesignStore()).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded GraphExport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(decoded.Edges) != 2 {
		t.Errorf("Expected 2 edges, got %d", len(decoded.Edges))
	}
}

func TestGraphExport_ToDOT(t *testing.T) {
	dot := ExportGraph(linkedDesignStore()).ToDOT()

	if !strings.HasPrefix(dot, "digraph SBOLDocument {") {
		t.Errorf("Unexpected DOT header: %s", dot)
	}
	if !strings.Contains(dot, `[label="location" color=darkgreen]`) {
		t.Errorf("Expected location edge\n%s", dot)
	}
	if !strings.Contains(dot, "fillcolor=lightblue") {
		t.Errorf("Expected ComponentDefinition colour\n%s", dot)
	}
}

func TestExtractLabel(t *testing.T) {
	tests := map[string]string{
		"http://sbols.org/v2#role":          "role",
		"http://purl.org/dc/terms/title":    "title",
		"http://example.org/design/chrXI/1": "1",
		"plain":                             "plain",
	}

	for input, expected := range tests {
		if got := extractLabel(input); got != expected {
			t.Errorf("extractLabel(%q) = %q, want %q", input, got, expected)
		}
	}
}
