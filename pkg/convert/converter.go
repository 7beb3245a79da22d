// Package convert turns an annotated GFF3 file into an SBOL document.
//
// A Converter makes one pass over the input lines. Feature records become
// sequence annotations on a single root ComponentDefinition named after the
// contig, creation header comments become prov:Activity resources, and the
// FASTA block after the first ">" line becomes the root's Sequence.
//
// Every run starts from fresh state and either returns a complete document or
// the first error, wrapped in a *LineError. Partial documents are never
// returned.
package convert

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/coolbeans/gff2sbol/pkg/gff"
	"github.com/coolbeans/gff2sbol/pkg/gffio"
	"github.com/coolbeans/gff2sbol/pkg/roles"
	"github.com/coolbeans/gff2sbol/pkg/sbol"
	"github.com/coolbeans/gff2sbol/pkg/store"
)

const (
	// DefaultURIPrefix is the namespace new resources are minted under.
	DefaultURIPrefix = "http://ncl.ac.uk/syntheticyeast/"

	// DefaultAnnotationPrefix is the namespace of GFF3 specific annotations.
	DefaultAnnotationPrefix = "http://wiki.synbiohub.org/wiki/Terms/GFF3#"

	// DefaultContig names the root definition.
	DefaultContig = "yeast_chr11_3_34"

	// AnnotationPrefixName is the serialization prefix bound to the
	// annotation namespace.
	AnnotationPrefixName = "gff3"
)

// Options configure a Converter. Zero values fall back to the defaults.
type Options struct {
	URIPrefix        string
	AnnotationPrefix string
	Contig           string
	Roles            *roles.Registry
	Logger           *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.URIPrefix == "" {
		o.URIPrefix = DefaultURIPrefix
	}
	if o.AnnotationPrefix == "" {
		o.AnnotationPrefix = DefaultAnnotationPrefix
	}
	if o.Contig == "" {
		o.Contig = DefaultContig
	}
	if o.Roles == nil {
		o.Roles = roles.NewRegistry()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// product is an entry of the product registry, keyed by definition URI.
type product struct {
	def         *sbol.ComponentDefinition
	placeholder bool
	root        bool
}

// Converter converts GFF3 lines into an SBOL document. A Converter can run
// any number of conversions one after another, but is not safe for
// concurrent use.
type Converter struct {
	opts   Options
	logger *slog.Logger

	doc         *sbol.Document
	root        *sbol.ComponentDefinition
	annotations map[string]*sbol.SequenceAnnotation
	displayIDs  map[string]string
	products    map[string]*product
	current     *sbol.Activity
	provN       int
	seq         sequenceAccumulator
	stats       Stats
}

// New returns a Converter for opts.
func New(opts Options) *Converter {
	opts = opts.withDefaults()
	return &Converter{
		opts:   opts,
		logger: opts.Logger.With(slog.String("contig", opts.Contig)),
	}
}

// Options returns the effective options.
func (c *Converter) Options() Options {
	return c.opts
}

// Stats returns the counters of the last conversion.
func (c *Converter) Stats() Stats {
	return c.stats
}

// Prefixes returns the namespace declarations serializers should add on top
// of their defaults.
func (c *Converter) Prefixes() []store.PrefixMapping {
	return []store.PrefixMapping{
		{Prefix: "rdfs", Namespace: store.NamespaceRDFS},
		{Prefix: AnnotationPrefixName, Namespace: c.opts.AnnotationPrefix},
	}
}

// ConvertReader reads every line of r and converts them.
func (c *Converter) ConvertReader(r io.Reader) (*sbol.Document, error) {
	lines, err := gffio.ReadLines(r)
	if err != nil {
		return nil, err
	}
	return c.Convert(lines)
}

// Convert converts the lines of one GFF3 file.
func (c *Converter) Convert(lines []string) (*sbol.Document, error) {
	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = strings.TrimSuffix(line, "\r")
	}

	c.reset(gff.CountCreationHeaders(normalized))
	c.stats.Lines = len(normalized)

	for i, line := range normalized {
		if err := c.handleLine(i+1, line); err != nil {
			c.logger.Debug("Conversion aborted", slog.String("error", err.Error()))
			c.doc = nil
			return nil, err
		}
	}

	c.finishSequence()

	doc := c.doc
	c.doc = nil
	c.logger.Info("Converted GFF3", slog.Any("stats", c.stats))
	return doc, nil
}

func (c *Converter) reset(headers int) {
	c.doc = sbol.NewDocument()
	c.annotations = make(map[string]*sbol.SequenceAnnotation)
	c.displayIDs = make(map[string]string)
	c.products = make(map[string]*product)
	c.current = nil
	c.provN = headers
	c.seq = sequenceAccumulator{}
	c.stats = Stats{}

	c.root = sbol.NewComponentDefinition(c.opts.URIPrefix, c.opts.Contig)
	c.doc.AddComponentDefinition(c.root)
	c.products[c.root.URI] = &product{def: c.root, root: true}
	c.stats.Definitions++
}

func (c *Converter) handleLine(lineNo int, line string) error {
	if c.seq.active {
		c.seq.add(line)
		return nil
	}

	switch {
	case strings.TrimSpace(line) == "":
		c.stats.BlankLines++
		return nil
	case gff.IsComment(line):
		return c.handleComment(lineNo, line)
	case gff.IsSequenceHeader(line):
		c.seq.begin()
		return nil
	default:
		return c.handleRecord(lineNo, line)
	}
}

func (c *Converter) finishSequence() {
	s := sbol.NewSequence(c.opts.URIPrefix, c.opts.Contig+"_seq")
	s.Elements = c.seq.elements()
	c.root.AddSequence(s)
	c.doc.AddSequence(s)
	c.stats.SequenceLength = len(s.Elements)
}

// productURI returns the definition URI a product label resolves to.
func (c *Converter) productURI(label string) string {
	var id sbol.Identified
	sbol.SetIdentity(&id, c.opts.URIPrefix, label)
	return id.URI
}

// decodeText percent-decodes s. Text that is not valid percent encoding is
// kept as written.
func (c *Converter) decodeText(lineNo int, s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		c.logger.Warn("Keeping undecodable text",
			slog.Int("line", lineNo),
			slog.String("error", err.Error()))
		return s
	}
	return decoded
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedRecord}, args...)...)
}
