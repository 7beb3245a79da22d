package store

import (
	"fmt"
	"sort"
	"sync"
)

// IndexStats contains statistics about the triple store.
type IndexStats struct {
	TotalTriples     int            `json:"total_triples"`
	UniqueSubjects   int            `json:"unique_subjects"`
	UniquePredicates int            `json:"unique_predicates"`
	PredicateCounts  map[string]int `json:"predicate_counts"`
}

// TripleStore is an in-memory RDF triple store with multiple indexes.
// It provides lookups via three indexes:
//   - SPO: Subject -> Predicate -> Object (facts about a resource)
//   - POS: Predicate -> Object -> Subject (resources with property=value)
//   - OSP: Object -> Subject -> Predicate (resources pointing at a resource)
//
// Adding an existing triple is a no-op, so the store is a set.
type TripleStore struct {
	mu sync.RWMutex

	spo map[string]map[string]map[Term]bool
	pos map[string]map[Term]map[string]bool
	osp map[Term]map[string]map[string]bool

	count           int
	predicateCounts map[string]int
}

// NewTripleStore creates a new in-memory triple store with all indexes initialized.
func NewTripleStore() *TripleStore {
	return &TripleStore{
		spo:             make(map[string]map[string]map[Term]bool),
		pos:             make(map[string]map[Term]map[string]bool),
		osp:             make(map[Term]map[string]map[string]bool),
		predicateCounts: make(map[string]int),
	}
}

// Add inserts a triple into the store. Returns nil if successful or if the
// triple already exists.
func (ts *TripleStore) Add(subject, predicate string, object Term) error {
	if subject == "" || predicate == "" || object.IsZero() {
		return fmt.Errorf("triple components cannot be empty")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.addUnsafe(subject, predicate, object)
	return nil
}

// AddTriple inserts a Triple struct into the store.
func (ts *TripleStore) AddTriple(triple Triple) error {
	return ts.Add(triple.Subject, triple.Predicate, triple.Object)
}

// BulkAdd inserts multiple triples under a single write lock. Invalid
// triples are skipped.
func (ts *TripleStore) BulkAdd(triples []Triple) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, triple := range triples {
		if !triple.IsValid() {
			continue
		}
		ts.addUnsafe(triple.Subject, triple.Predicate, triple.Object)
	}

	return nil
}

// MergeFrom copies all triples from the source store into this store.
// Returns the number of new triples added.
func (ts *TripleStore) MergeFrom(source *TripleStore) int {
	sourceTriples := source.All()
	previousCount := ts.Count()
	_ = ts.BulkAdd(sourceTriples)
	return ts.Count() - previousCount
}

// Find queries triples matching the pattern. Use "" or a zero Term for
// wildcards. Results are unordered.
func (ts *TripleStore) Find(subject, predicate string, object Term) []Triple {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.findUnsafe(subject, predicate, object)
}

// Exists checks if a specific triple exists in the store.
func (ts *TripleStore) Exists(subject, predicate string, object Term) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.existsUnsafe(subject, predicate, object)
}

// Get retrieves all properties for a subject as predicate -> objects.
func (ts *TripleStore) Get(subject string) map[string][]Term {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	result := make(map[string][]Term)

	for p, oMap := range ts.spo[subject] {
		objects := make([]Term, 0, len(oMap))
		for o := range oMap {
			objects = append(objects, o)
		}
		sortTerms(objects)
		result[p] = objects
	}

	return result
}

// GetOne retrieves the smallest object value for a subject-predicate pair.
func (ts *TripleStore) GetOne(subject, predicate string) (Term, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	var (
		best  Term
		found bool
	)
	for o := range ts.spo[subject][predicate] {
		if !found || o.less(best) {
			best = o
			found = true
		}
	}

	return best, found
}

// Count returns the total number of triples in the store.
func (ts *TripleStore) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.count
}

// Subjects returns all unique subjects in the store, sorted.
func (ts *TripleStore) Subjects() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return sortedKeys(ts.spo)
}

// Predicates returns all unique predicates in the store, sorted.
func (ts *TripleStore) Predicates() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return sortedKeys(ts.pos)
}

// Stats returns statistics about the store.
func (ts *TripleStore) Stats() IndexStats {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	predicateCounts := make(map[string]int, len(ts.predicateCounts))
	for k, v := range ts.predicateCounts {
		predicateCounts[k] = v
	}

	return IndexStats{
		TotalTriples:     ts.count,
		UniqueSubjects:   len(ts.spo),
		UniquePredicates: len(ts.pos),
		PredicateCounts:  predicateCounts,
	}
}

// String returns a string representation of the store statistics.
func (ts *TripleStore) String() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return fmt.Sprintf("TripleStore{triples: %d, subjects: %d, predicates: %d}",
		ts.count, len(ts.spo), len(ts.pos))
}

// All returns all triples sorted by subject, predicate and object, so that
// anything derived from it is deterministic.
func (ts *TripleStore) All() []Triple {
	triples := ts.Find("", "", Term{})
	sort.Slice(triples, func(i, j int) bool {
		a, b := triples[i], triples[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Predicate != b.Predicate {
			return a.Predicate < b.Predicate
		}
		return a.Object.less(b.Object)
	})
	return triples
}

func (ts *TripleStore) addUnsafe(subject, predicate string, object Term) {
	if ts.existsUnsafe(subject, predicate, object) {
		return
	}

	if ts.spo[subject] == nil {
		ts.spo[subject] = make(map[string]map[Term]bool)
	}
	if ts.spo[subject][predicate] == nil {
		ts.spo[subject][predicate] = make(map[Term]bool)
	}
	ts.spo[subject][predicate][object] = true

	if ts.pos[predicate] == nil {
		ts.pos[predicate] = make(map[Term]map[string]bool)
	}
	if ts.pos[predicate][object] == nil {
		ts.pos[predicate][object] = make(map[string]bool)
	}
	ts.pos[predicate][object][subject] = true

	if ts.osp[object] == nil {
		ts.osp[object] = make(map[string]map[string]bool)
	}
	if ts.osp[object][subject] == nil {
		ts.osp[object][subject] = make(map[string]bool)
	}
	ts.osp[object][subject][predicate] = true

	ts.predicateCounts[predicate]++
	ts.count++
}

// existsUnsafe checks if a triple exists without locking.
func (ts *TripleStore) existsUnsafe(subject, predicate string, object Term) bool {
	if pMap, ok := ts.spo[subject]; ok {
		if oMap, ok := pMap[predicate]; ok {
			return oMap[object]
		}
	}
	return false
}

// findUnsafe finds triples without locking, using the most specific index.
func (ts *TripleStore) findUnsafe(subject, predicate string, object Term) []Triple {
	var results []Triple

	switch {
	case subject != "":
		for p, oMap := range ts.spo[subject] {
			if predicate != "" && p != predicate {
				continue
			}
			for o := range oMap {
				if !object.IsZero() && o != object {
					continue
				}
				results = append(results, Triple{Subject: subject, Predicate: p, Object: o})
			}
		}

	case predicate != "":
		for o, sMap := range ts.pos[predicate] {
			if !object.IsZero() && o != object {
				continue
			}
			for s := range sMap {
				results = append(results, Triple{Subject: s, Predicate: predicate, Object: o})
			}
		}

	case !object.IsZero():
		for s, pMap := range ts.osp[object] {
			for p := range pMap {
				results = append(results, Triple{Subject: s, Predicate: p, Object: object})
			}
		}

	default:
		for s, pMap := range ts.spo {
			for p, oMap := range pMap {
				for o := range oMap {
					results = append(results, Triple{Subject: s, Predicate: p, Object: o})
				}
			}
		}
	}

	return results
}
