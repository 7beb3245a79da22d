package convert

import "log/slog"

// Stats counts what a conversion produced.
type Stats struct {
	Lines               int `json:"lines" yaml:"lines"`
	Records             int `json:"records" yaml:"records"`
	Annotations         int `json:"annotations" yaml:"annotations"`
	Locations           int `json:"locations" yaml:"locations"`
	Definitions         int `json:"definitions" yaml:"definitions"`
	Components          int `json:"components" yaml:"components"`
	Activities          int `json:"activities" yaml:"activities"`
	Placeholders        int `json:"placeholders" yaml:"placeholders"`
	AdoptedPlaceholders int `json:"adopted_placeholders" yaml:"adopted_placeholders"`
	Continuations       int `json:"continuations" yaml:"continuations"`
	IgnoredComments     int `json:"ignored_comments" yaml:"ignored_comments"`
	BlankLines          int `json:"blank_lines" yaml:"blank_lines"`
	SequenceLength      int `json:"sequence_length" yaml:"sequence_length"`
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("lines", s.Lines),
		slog.Int("records", s.Records),
		slog.Int("annotations", s.Annotations),
		slog.Int("locations", s.Locations),
		slog.Int("definitions", s.Definitions),
		slog.Int("activities", s.Activities),
		slog.Int("placeholders", s.Placeholders),
		slog.Int("sequence_length", s.SequenceLength),
	)
}
