package convert

import "strings"

// sequenceAccumulator collects the residue lines after the ">" header.
type sequenceAccumulator struct {
	active bool
	lines  []string
}

func (s *sequenceAccumulator) begin() {
	s.active = true
}

// add appends a line verbatim, whatever it contains.
func (s *sequenceAccumulator) add(line string) {
	s.lines = append(s.lines, line)
}

// elements returns the residues concatenated and lowercased.
func (s *sequenceAccumulator) elements() string {
	return strings.ToLower(strings.Join(s.lines, ""))
}
