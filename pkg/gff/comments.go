package gff

import (
	"regexp"
	"strings"
)

var (
	creationHeaderPattern = regexp.MustCompile(`^# (.*) created from (.*) (.*) by (.*) \((.*)\)`)
	continuationPattern   = regexp.MustCompile(`^# # (.*)`)
)

// CreationHeader is a "# <product> created from <source> <date> by <agent>
// (<description>)" comment.
type CreationHeader struct {
	Product string
	Source  string
	Date    string
	Agent   string

	// Text is the matched comment without its leading "# ". It becomes the
	// activity description, parenthesized part included.
	Text string
}

// ParseCreationHeader matches a provenance header comment. The groups are
// greedy, so a source containing spaces keeps all but the last token before
// " by " and the date is that last token.
func ParseCreationHeader(line string) (CreationHeader, bool) {
	m := creationHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return CreationHeader{}, false
	}
	return CreationHeader{
		Product: m[1],
		Source:  m[2],
		Date:    m[3],
		Agent:   m[4],
		Text:    strings.TrimPrefix(m[0], "# "),
	}, true
}

// ParseContinuation matches a "# # <text>" comment and returns the text.
// Callers try it only after ParseCreationHeader has failed.
func ParseContinuation(line string) (string, bool) {
	m := continuationPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsComment reports whether the line is a comment.
func IsComment(line string) bool {
	return strings.HasPrefix(line, "#")
}

// IsSequenceHeader reports whether the line starts the sequence block.
func IsSequenceHeader(line string) bool {
	return strings.HasPrefix(line, ">")
}

// CountCreationHeaders counts the header comments that appear before the
// sequence block.
func CountCreationHeaders(lines []string) int {
	n := 0
	for _, line := range lines {
		if IsSequenceHeader(line) {
			break
		}
		if _, ok := ParseCreationHeader(line); ok {
			n++
		}
	}
	return n
}
