package store

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewTripleStore(t *testing.T) {
	store := NewTripleStore()

	if store == nil {
		t.Fatal("NewTripleStore returned nil")
	}

	if store.Count() != 0 {
		t.Errorf("New store should have 0 triples, got %d", store.Count())
	}
}

func TestTripleStore_Add(t *testing.T) {
	store := NewTripleStore()
	subject := testBase + "chrXI/1"

	if err := store.Add(subject, RDFType, IRI(NamespaceSBOL+"ComponentDefinition")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if store.Count() != 1 {
		t.Errorf("Expected 1 triple, got %d", store.Count())
	}

	// Add same triple again (idempotent)
	if err := store.Add(subject, RDFType, IRI(NamespaceSBOL+"ComponentDefinition")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if store.Count() != 1 {
		t.Errorf("Expected 1 triple after duplicate add, got %d", store.Count())
	}

	if err := store.Add(subject, NamespaceDCTerms+"title", Literal("chrXI")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if store.Count() != 2 {
		t.Errorf("Expected 2 triples, got %d", store.Count())
	}
}

func TestTripleStore_Add_InvalidTriple(t *testing.T) {
	store := NewTripleStore()

	if err := store.Add("", RDFType, IRI("x")); err == nil {
		t.Error("Expected error for empty subject")
	}
	if err := store.Add("s", "", IRI("x")); err == nil {
		t.Error("Expected error for empty predicate")
	}
	if err := store.Add("s", RDFType, Term{}); err == nil {
		t.Error("Expected error for empty object")
	}
	if store.Count() != 0 {
		t.Errorf("Expected 0 triples, got %d", store.Count())
	}
}

func TestTripleStore_LiteralAndIRIAreDistinct(t *testing.T) {
	store := NewTripleStore()

	_ = store.Add("s", "p", Literal("http://x/o"))
	_ = store.Add("s", "p", IRI("http://x/o"))

	if store.Count() != 2 {
		t.Errorf("Expected literal and IRI objects to be stored separately, got %d triples", store.Count())
	}
}

func TestTripleStore_BulkAdd(t *testing.T) {
	store := NewTripleStore()

	err := store.BulkAdd([]Triple{
		NewTriple("a", "p", Literal("1")),
		NewTriple("a", "p", Literal("1")),
		NewTriple("b", "p", Literal("2")),
		NewTriple("", "p", Literal("skipped")),
	})
	if err != nil {
		t.Fatalf("BulkAdd failed: %v", err)
	}

	if store.Count() != 2 {
		t.Errorf("Expected 2 triples, got %d", store.Count())
	}
}

func TestTripleStore_Find(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("anno", NamespaceSBOL+"location", IRI("range"))
	_ = store.Add("anno", NamespaceSBOL+"location", IRI("range2"))
	_ = store.Add("anno", NamespaceDCTerms+"title", Literal("GENE1"))
	_ = store.Add("other", NamespaceSBOL+"location", IRI("range"))

	tests := []struct {
		name      string
		subject   string
		predicate string
		object    Term
		expected  int
	}{
		{"all wildcards", "", "", Term{}, 4},
		{"subject only", "anno", "", Term{}, 3},
		{"subject and predicate", "anno", NamespaceSBOL + "location", Term{}, 2},
		{"fully specified", "anno", NamespaceSBOL + "location", IRI("range2"), 1},
		{"subject and object", "anno", "", IRI("range"), 1},
		{"predicate only", "", NamespaceSBOL + "location", Term{}, 3},
		{"predicate and object", "", NamespaceSBOL + "location", IRI("range"), 2},
		{"object only", "", "", IRI("range"), 2},
		{"no match", "missing", "", Term{}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := store.Find(tc.subject, tc.predicate, tc.object)
			if len(results) != tc.expected {
				t.Errorf("Expected %d results, got %d: %v", tc.expected, len(results), results)
			}
		})
	}
}

func TestTripleStore_GetAndGetOne(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("cd", NamespaceSBOL+"role", IRI("http://identifiers.org/so/SO:0000704"))
	_ = store.Add("cd", NamespaceSBOL+"role", IRI("http://identifiers.org/go/GO:0005739"))

	props := store.Get("cd")
	roles := props[NamespaceSBOL+"role"]
	if len(roles) != 2 {
		t.Fatalf("Expected 2 roles, got %d", len(roles))
	}
	if roles[0].Value != "http://identifiers.org/go/GO:0005739" {
		t.Errorf("Expected roles sorted by value, got %v", roles)
	}

	one, ok := store.GetOne("cd", NamespaceSBOL+"role")
	if !ok || one.Value != "http://identifiers.org/go/GO:0005739" {
		t.Errorf("GetOne returned %v, %v", one, ok)
	}

	if _, ok := store.GetOne("cd", "missing"); ok {
		t.Error("Expected GetOne to report a missing predicate")
	}
}

func TestTripleStore_All_IsSorted(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("b", "p", Literal("2"))
	_ = store.Add("a", "q", Literal("1"))
	_ = store.Add("a", "p", Literal("3"))

	all := store.All()
	expected := []string{"a p", "a q", "b p"}
	for i, triple := range all {
		if got := triple.Subject + " " + triple.Predicate; got != expected[i] {
			t.Errorf("Position %d: expected %s, got %s", i, expected[i], got)
		}
	}
}

func TestTripleStore_SubjectsAndPredicates(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("b", "q", Literal("1"))
	_ = store.Add("a", "p", Literal("1"))

	subjects := store.Subjects()
	if len(subjects) != 2 || subjects[0] != "a" {
		t.Errorf("Unexpected subjects: %v", subjects)
	}

	predicates := store.Predicates()
	if len(predicates) != 2 || predicates[0] != "p" {
		t.Errorf("Unexpected predicates: %v", predicates)
	}
}

func TestTripleStore_Stats(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("a", "p", Literal("1"))
	_ = store.Add("b", "p", Literal("2"))
	_ = store.Add("b", "q", Literal("3"))

	stats := store.Stats()

	if stats.TotalTriples != 3 {
		t.Errorf("Expected 3 triples, got %d", stats.TotalTriples)
	}
	if stats.UniqueSubjects != 2 {
		t.Errorf("Expected 2 subjects, got %d", stats.UniqueSubjects)
	}
	if stats.PredicateCounts["p"] != 2 {
		t.Errorf("Expected predicate p counted twice, got %d", stats.PredicateCounts["p"])
	}
}

func TestTripleStore_MergeFrom(t *testing.T) {
	target := NewTripleStore()
	_ = target.Add("a", "p", Literal("1"))

	source := NewTripleStore()
	_ = source.Add("a", "p", Literal("1"))
	_ = source.Add("b", "p", Literal("2"))

	if added := target.MergeFrom(source); added != 1 {
		t.Errorf("Expected 1 new triple, got %d", added)
	}
}

func TestTripleStore_ConcurrentWrites(t *testing.T) {
	store := NewTripleStore()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = store.Add(fmt.Sprintf("s%d", n), "p", Literal(fmt.Sprintf("%d", j)))
			}
		}(i)
	}
	wg.Wait()

	if store.Count() != 500 {
		t.Errorf("Expected 500 triples, got %d", store.Count())
	}
}
