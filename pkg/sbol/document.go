package sbol

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/coolbeans/gff2sbol/pkg/store"
)

// Format selects the serialization syntax.
type Format string

const (
	FormatRDFXML Format = "rdfxml"
	FormatTurtle Format = "turtle"
	FormatJSONLD Format = "jsonld"
	FormatDOT    Format = "dot"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatRDFXML, FormatTurtle, FormatJSONLD, FormatDOT}

// Extension returns the conventional file extension of the format.
func (f Format) Extension() string {
	switch f {
	case FormatTurtle:
		return ".ttl"
	case FormatJSONLD:
		return ".jsonld"
	case FormatDOT:
		return ".dot"
	default:
		return ".xml"
	}
}

// ParseFormat resolves a format name. It accepts a few common aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "rdfxml", "rdf/xml", "xml", "rdf":
		return FormatRDFXML, nil
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "jsonld", "json-ld":
		return FormatJSONLD, nil
	case "dot", "graphviz":
		return FormatDOT, nil
	}
	return "", fmt.Errorf("unknown output format %q (want rdfxml, turtle, jsonld or dot)", name)
}

// Document is an append-only collection of top level resources.
type Document struct {
	ComponentDefinitions []*ComponentDefinition
	Sequences            []*Sequence
	Activities           []*Activity
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// AddComponentDefinition appends a top level definition.
func (d *Document) AddComponentDefinition(cd *ComponentDefinition) {
	d.ComponentDefinitions = append(d.ComponentDefinitions, cd)
}

// AddSequence appends a top level sequence.
func (d *Document) AddSequence(s *Sequence) {
	d.Sequences = append(d.Sequences, s)
}

// AddActivity appends a top level activity.
func (d *Document) AddActivity(a *Activity) {
	d.Activities = append(d.Activities, a)
}

// ComponentDefinition looks a definition up by URI.
func (d *Document) ComponentDefinition(uri string) (*ComponentDefinition, bool) {
	for _, cd := range d.ComponentDefinitions {
		if cd.URI == uri {
			return cd, true
		}
	}
	return nil, false
}

// Activity looks an activity up by URI.
func (d *Document) Activity(uri string) (*Activity, bool) {
	for _, a := range d.Activities {
		if a.URI == uri {
			return a, true
		}
	}
	return nil, false
}

// Triples converts the document into an RDF graph.
func (d *Document) Triples() *store.TripleStore {
	ts := store.NewTripleStore()

	for _, cd := range d.ComponentDefinitions {
		cd.addTriples(ts)
	}
	for _, s := range d.Sequences {
		s.addTriples(ts, ClassSequence)
		addLiteral(ts, s.URI, PropElements, s.Elements)
		addIRI(ts, s.URI, PropEncoding, s.Encoding)
	}
	for _, a := range d.Activities {
		a.addTriples(ts)
	}

	return ts
}

func (cd *ComponentDefinition) addTriples(ts *store.TripleStore) {
	cd.Identified.addTriples(ts, ClassComponentDefinition)
	for _, t := range cd.Types {
		addIRI(ts, cd.URI, PropType, t)
	}
	for _, r := range cd.Roles {
		addIRI(ts, cd.URI, PropRole, r)
	}
	for _, s := range cd.Sequences {
		addIRI(ts, cd.URI, PropSequence, s)
	}
	for _, c := range cd.Components {
		addIRI(ts, cd.URI, PropComponent, c.URI)
		c.Identified.addTriples(ts, ClassComponent)
		addIRI(ts, c.URI, PropDefinition, c.Definition)
		addIRI(ts, c.URI, PropAccess, c.Access)
	}
	for _, sa := range cd.SequenceAnnotations {
		addIRI(ts, cd.URI, PropSequenceAnnotation, sa.URI)
		sa.Identified.addTriples(ts, ClassSequenceAnnotation)
		addIRI(ts, sa.URI, PropComponent, sa.Component)
		for _, r := range sa.Locations {
			addIRI(ts, sa.URI, PropLocation, r.URI)
			r.Identified.addTriples(ts, ClassRange)
			addLiteral(ts, r.URI, PropStart, strconv.Itoa(r.Start))
			addLiteral(ts, r.URI, PropEnd, strconv.Itoa(r.End))
			addIRI(ts, r.URI, PropOrientation, r.OrientationURI())
		}
	}
}

func (a *Activity) addTriples(ts *store.TripleStore) {
	a.Identified.addTriples(ts, ClassActivity)
	if !a.EndedAtTime.IsZero() {
		_ = ts.Add(a.URI, PropEndedAtTime,
			store.TypedLiteral(a.EndedAtTime.UTC().Format(time.RFC3339), store.XSDDateTime))
	}
	for _, u := range a.Usages {
		addIRI(ts, a.URI, PropQualifiedUsage, u.URI)
		u.Identified.addTriples(ts, ClassUsage)
		addIRI(ts, u.URI, PropEntity, u.Entity)
		for _, r := range u.Roles {
			addIRI(ts, u.URI, PropHadRole, r)
		}
	}
}

// Serialize writes the document in the requested format. prefixes are
// declared in addition to rdf, dcterms, prov and sbol.
func (d *Document) Serialize(w io.Writer, format Format, prefixes ...store.PrefixMapping) error {
	ts := d.Triples()

	var out string
	switch format {
	case FormatRDFXML:
		var opts []store.RDFXMLOption
		for _, p := range prefixes {
			opts = append(opts, store.WithRDFXMLPrefix(p.Prefix, p.Namespace))
		}
		out = store.NewRDFXMLSerializer(opts...).Serialize(ts)
	case FormatTurtle:
		var opts []store.TurtleOption
		for _, p := range prefixes {
			opts = append(opts, store.WithPrefix(p.Prefix, p.Namespace))
		}
		out = store.NewTurtleSerializer(opts...).Serialize(ts)
	case FormatJSONLD:
		var opts []store.JSONLDOption
		for _, p := range prefixes {
			opts = append(opts, store.WithJSONLDPrefix(p.Prefix, p.Namespace))
		}
		s, err := store.NewJSONLDSerializer(opts...).SerializeToString(ts)
		if err != nil {
			return fmt.Errorf("encoding JSON-LD: %w", err)
		}
		out = s + "\n"
	case FormatDOT:
		out = store.ExportGraph(ts).ToDOT()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("writing %s output: %w", format, err)
	}
	return nil
}
