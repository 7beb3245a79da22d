// Package sbol is a small SBOL 2 object model: identified resources, the
// identity rules shared by all of them, and conversion of a whole document
// into RDF triples for serialization.
package sbol

import "github.com/coolbeans/gff2sbol/pkg/store"

// Version is the version token given to every resource.
const Version = "1"

// Classes.
const (
	ClassComponentDefinition = store.NamespaceSBOL + "ComponentDefinition"
	ClassComponent           = store.NamespaceSBOL + "Component"
	ClassSequenceAnnotation  = store.NamespaceSBOL + "SequenceAnnotation"
	ClassRange               = store.NamespaceSBOL + "Range"
	ClassSequence            = store.NamespaceSBOL + "Sequence"
	ClassActivity            = store.NamespaceProv + "Activity"
	ClassUsage               = store.NamespaceProv + "Usage"
)

// Identified properties.
const (
	PropDisplayID          = store.NamespaceSBOL + "displayId"
	PropPersistentIdentity = store.NamespaceSBOL + "persistentIdentity"
	PropVersion            = store.NamespaceSBOL + "version"
	PropName               = store.NamespaceDCTerms + "title"
	PropDescription        = store.NamespaceDCTerms + "description"
	PropWasDerivedFrom     = store.NamespaceProv + "wasDerivedFrom"
)

// Structural properties.
const (
	PropType               = store.NamespaceSBOL + "type"
	PropRole               = store.NamespaceSBOL + "role"
	PropSequence           = store.NamespaceSBOL + "sequence"
	PropComponent          = store.NamespaceSBOL + "component"
	PropSequenceAnnotation = store.NamespaceSBOL + "sequenceAnnotation"
	PropDefinition         = store.NamespaceSBOL + "definition"
	PropAccess             = store.NamespaceSBOL + "access"
	PropLocation           = store.NamespaceSBOL + "location"
	PropStart              = store.NamespaceSBOL + "start"
	PropEnd                = store.NamespaceSBOL + "end"
	PropOrientation        = store.NamespaceSBOL + "orientation"
	PropElements           = store.NamespaceSBOL + "elements"
	PropEncoding           = store.NamespaceSBOL + "encoding"
	PropEndedAtTime        = store.NamespaceProv + "endedAtTime"
	PropQualifiedUsage     = store.NamespaceProv + "qualifiedUsage"
	PropEntity             = store.NamespaceProv + "entity"
	PropHadRole            = store.NamespaceProv + "hadRole"
)

// Values.
const (
	TypeDNARegion = "http://www.biopax.org/release/biopax-level3.owl#DnaRegion"

	AccessPublic = store.NamespaceSBOL + "public"

	OrientationInline            = store.NamespaceSBOL + "inline"
	OrientationReverseComplement = store.NamespaceSBOL + "reverseComplement"

	EncodingIUPACDNA = "http://www.chem.qmul.ac.uk/iubmb/misc/naseq.html"

	RoleSource = store.NamespaceSBOL + "source"

	SeeAlso = store.NamespaceRDFS + "seeAlso"
)
