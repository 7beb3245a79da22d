package sbol

import (
	"strconv"
	"time"

	"github.com/biogo/biogo/feat"
)

// ComponentDefinition describes a DNA region.
type ComponentDefinition struct {
	Identified
	Types               []string
	Roles               []string
	Sequences           []string
	Components          []*Component
	SequenceAnnotations []*SequenceAnnotation
}

// NewComponentDefinition returns a DNA region definition with the given
// identity.
func NewComponentDefinition(prefix, label string) *ComponentDefinition {
	cd := &ComponentDefinition{Types: []string{TypeDNARegion}}
	SetIdentity(&cd.Identified, prefix, label)
	return cd
}

// AddRole appends role unless it is already present.
func (cd *ComponentDefinition) AddRole(role string) {
	for _, r := range cd.Roles {
		if r == role {
			return
		}
	}
	cd.Roles = append(cd.Roles, role)
}

// AddSequence links a sequence by URI.
func (cd *ComponentDefinition) AddSequence(seq *Sequence) {
	cd.Sequences = append(cd.Sequences, seq.URI)
}

// AddComponent appends a child instance.
func (cd *ComponentDefinition) AddComponent(c *Component) {
	cd.Components = append(cd.Components, c)
}

// AddSequenceAnnotation appends an annotation.
func (cd *ComponentDefinition) AddSequenceAnnotation(sa *SequenceAnnotation) {
	cd.SequenceAnnotations = append(cd.SequenceAnnotations, sa)
}

// Component instantiates a definition inside a parent definition.
type Component struct {
	Identified
	Definition string
	Access     string
}

// NewComponent returns a public instance of definition.
func NewComponent(prefix, label string, definition *ComponentDefinition) *Component {
	c := &Component{Definition: definition.URI, Access: AccessPublic}
	SetIdentity(&c.Identified, prefix, label)
	return c
}

// SequenceAnnotation marks a region of the parent sequence.
type SequenceAnnotation struct {
	Identified
	Locations []*Range
	Component string

	rangeN int
}

// NewSequenceAnnotation returns an annotation with no locations.
func NewSequenceAnnotation(prefix, label string) *SequenceAnnotation {
	sa := &SequenceAnnotation{}
	SetIdentity(&sa.Identified, prefix, label)
	return sa
}

// AddRange appends a location. The first is identified as "range", later
// ones as "range2", "range3" and so on.
func (sa *SequenceAnnotation) AddRange(start, end int, orientation feat.Orientation, name string) *Range {
	sa.rangeN++
	label := "range"
	if sa.rangeN > 1 {
		label += strconv.Itoa(sa.rangeN)
	}

	r := &Range{Start: start, End: end, Orientation: orientation}
	SetIdentity(&r.Identified, sa.PersistentIdentity+"/", label)
	r.Name = name

	sa.Locations = append(sa.Locations, r)
	return r
}

// SetComponent links the annotation to a component instance.
func (sa *SequenceAnnotation) SetComponent(c *Component) {
	sa.Component = c.URI
}

// Range is a 1-based inclusive interval on the parent sequence.
type Range struct {
	Identified
	Start       int
	End         int
	Orientation feat.Orientation
}

// OrientationURI returns the SBOL orientation, or "" when none is asserted.
func (r *Range) OrientationURI() string {
	switch r.Orientation {
	case feat.Forward:
		return OrientationInline
	case feat.Reverse:
		return OrientationReverseComplement
	default:
		return ""
	}
}

// Sequence holds the residues of a definition.
type Sequence struct {
	Identified
	Elements string
	Encoding string
}

// NewSequence returns a sequence with the IUPAC DNA encoding.
func NewSequence(prefix, label string) *Sequence {
	s := &Sequence{Encoding: EncodingIUPACDNA}
	SetIdentity(&s.Identified, prefix, label)
	return s
}

// Activity is a prov:Activity that generated some product.
type Activity struct {
	Identified
	EndedAtTime time.Time
	Usages      []*Usage
}

// NewActivity returns an activity with the given identity.
func NewActivity(prefix, label string) *Activity {
	a := &Activity{}
	SetIdentity(&a.Identified, prefix, label)
	return a
}

// AddUsage creates a usage of entity under the activity.
func (a *Activity) AddUsage(entity, role string) *Usage {
	u := &Usage{Entity: entity, Roles: []string{role}}
	SetIdentity(&u.Identified, a.PersistentIdentity+"/", "usage")
	a.Usages = append(a.Usages, u)
	return u
}

// AppendDescription adds text to the description, separated by "; ".
func (a *Activity) AppendDescription(text string) {
	if a.Description == "" {
		a.Description = text
		return
	}
	a.Description += "; " + text
}

// Usage records an entity consumed by an activity.
type Usage struct {
	Identified
	Entity string
	Roles  []string
}
