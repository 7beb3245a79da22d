package gff

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"
)

// Column positions of a GFF3 record.
const (
	FieldSeqid = iota
	FieldSource
	FieldType
	FieldStart
	FieldEnd
	FieldScore
	FieldStrand
	FieldPhase
	FieldAttributes

	// FieldCount is the number of tab separated columns in a record.
	FieldCount
)

var (
	// ErrFieldCount is returned for a record with fewer than nine columns.
	ErrFieldCount = errors.New("record has fewer than 9 tab-separated fields")

	// ErrCoordinate is returned when start or end is not an integer.
	ErrCoordinate = errors.New("record coordinate is not an integer")
)

// Record is one parsed feature line.
type Record struct {
	Seqid      string
	Source     string
	Type       string
	Start      int
	End        int
	Score      string
	Strand     feat.Orientation
	Phase      string
	Attributes Attributes
}

// ID returns the feature identifier used to merge records.
func (r *Record) ID() string {
	return r.Attributes.Get(AttrID)
}

// Name returns the display name of the feature.
func (r *Record) Name() string {
	return r.Attributes.Get(AttrName)
}

// ParseRecord splits a tab delimited line into its nine fields. Columns past
// the ninth are ignored.
func ParseRecord(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < FieldCount {
		return nil, fmt.Errorf("%w: got %d", ErrFieldCount, len(fields))
	}

	start, err := strconv.Atoi(strings.TrimSpace(fields[FieldStart]))
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrCoordinate, fields[FieldStart])
	}
	end, err := strconv.Atoi(strings.TrimSpace(fields[FieldEnd]))
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrCoordinate, fields[FieldEnd])
	}

	return &Record{
		Seqid:      fields[FieldSeqid],
		Source:     fields[FieldSource],
		Type:       fields[FieldType],
		Start:      start,
		End:        end,
		Score:      fields[FieldScore],
		Strand:     ParseStrand(fields[FieldStrand]),
		Phase:      fields[FieldPhase],
		Attributes: ParseAttributes(fields[FieldAttributes]),
	}, nil
}

// ParseStrand maps the strand column onto an orientation. "." and "?" both
// mean the strand is unknown, as does anything unrecognised.
func ParseStrand(s string) feat.Orientation {
	switch s {
	case "+":
		return feat.Forward
	case "-":
		return feat.Reverse
	default:
		return feat.NotOriented
	}
}

// Kind is a feature type that materializes a standalone definition in the
// output document.
type Kind string

const (
	KindChromosome Kind = "chromosome"
	KindCDS        Kind = "CDS"
	KindGene       Kind = "gene"
)

// DefinitionKinds is the closed set of feature types that get their own
// definition and instance. Every other type only produces an annotation.
var DefinitionKinds = map[Kind]struct{}{
	KindChromosome: {},
	KindCDS:        {},
	KindGene:       {},
}

// MaterializesDefinition reports whether a record of the given type gets a
// definition.
func MaterializesDefinition(featureType string) bool {
	_, ok := DefinitionKinds[Kind(featureType)]
	return ok
}
