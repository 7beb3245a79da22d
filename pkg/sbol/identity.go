package sbol

import (
	"strings"

	"github.com/coolbeans/gff2sbol/pkg/store"
)

var displayIDReplacer = strings.NewReplacer(
	".", "_",
	"*", "_",
	" ", "_",
	"(", "_",
	")", "_",
	"-", "_",
)

// CleanDisplayID replaces each of ". * space ( ) -" with an underscore.
// Runs of special characters become runs of underscores.
func CleanDisplayID(label string) string {
	return displayIDReplacer.Replace(label)
}

// Annotation is an extra property attached to a resource.
type Annotation struct {
	Predicate string
	Value     store.Term
}

// Identified carries the fields every SBOL resource has.
type Identified struct {
	URI                string
	PersistentIdentity string
	DisplayID          string
	Version            string
	Name               string
	Description        string
	WasDerivedFrom     string
	Annotations        []Annotation
}

// SetIdentity derives the identity triplet from prefix and a label. The
// caller guarantees a non-empty label.
func SetIdentity(id *Identified, prefix, label string) {
	id.Version = Version
	id.DisplayID = CleanDisplayID(label)
	id.PersistentIdentity = prefix + id.DisplayID
	id.URI = id.PersistentIdentity + "/" + id.Version
}

// AddStringAnnotation attaches a literal valued annotation.
func (id *Identified) AddStringAnnotation(predicate, value string) {
	id.Annotations = append(id.Annotations, Annotation{Predicate: predicate, Value: store.Literal(value)})
}

// AddURIAnnotation attaches a resource valued annotation.
func (id *Identified) AddURIAnnotation(predicate, uri string) {
	id.Annotations = append(id.Annotations, Annotation{Predicate: predicate, Value: store.IRI(uri)})
}

// RemoveAnnotations drops every annotation with the given predicate.
func (id *Identified) RemoveAnnotations(predicate string) {
	kept := id.Annotations[:0]
	for _, a := range id.Annotations {
		if a.Predicate != predicate {
			kept = append(kept, a)
		}
	}
	id.Annotations = kept
}

// AnnotationValues returns the values recorded for predicate, in order.
func (id *Identified) AnnotationValues(predicate string) []string {
	var values []string
	for _, a := range id.Annotations {
		if a.Predicate == predicate {
			values = append(values, a.Value.Value)
		}
	}
	return values
}

func (id *Identified) addTriples(ts *store.TripleStore, class string) {
	_ = ts.Add(id.URI, store.RDFType, store.IRI(class))
	addLiteral(ts, id.URI, PropDisplayID, id.DisplayID)
	addIRI(ts, id.URI, PropPersistentIdentity, id.PersistentIdentity)
	addLiteral(ts, id.URI, PropVersion, id.Version)
	addLiteral(ts, id.URI, PropName, id.Name)
	addLiteral(ts, id.URI, PropDescription, id.Description)
	addIRI(ts, id.URI, PropWasDerivedFrom, id.WasDerivedFrom)
	for _, a := range id.Annotations {
		_ = ts.Add(id.URI, a.Predicate, a.Value)
	}
}

// addLiteral and addIRI skip empty values so optional fields stay absent.
func addLiteral(ts *store.TripleStore, subject, predicate, value string) {
	if value != "" {
		_ = ts.Add(subject, predicate, store.Literal(value))
	}
}

func addIRI(ts *store.TripleStore, subject, predicate, uri string) {
	if uri != "" {
		_ = ts.Add(subject, predicate, store.IRI(uri))
	}
}
