package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coolbeans/gff2sbol/pkg/gff"
	"github.com/coolbeans/gff2sbol/pkg/sbol"
)

const (
	// DateLayout is the YYMMDD layout of creation header dates.
	DateLayout = "060102"

	// PlaceholderDescription describes a product seen only in provenance.
	PlaceholderDescription = "Automatically generated from GFF3 provenance; no further information available"
)

var errUnexpectedHeader = errors.New("creation header was not counted")

// handleComment dispatches creation headers and their continuations.
// Other comments are ignored.
func (c *Converter) handleComment(lineNo int, line string) error {
	if h, ok := gff.ParseCreationHeader(line); ok {
		return c.handleCreationHeader(lineNo, line, h)
	}

	if text, ok := gff.ParseContinuation(line); ok {
		if c.current == nil {
			return lineError(lineNo, line, ErrOrphanContinuation)
		}
		c.current.AppendDescription(c.decodeText(lineNo, text))
		c.stats.Continuations++
		return nil
	}

	c.stats.IgnoredComments++
	c.logger.Debug("Ignoring comment", slog.Int("line", lineNo))
	return nil
}

// handleCreationHeader records one activity. Headers are numbered from the
// total count down, so the first header in the file gets the highest number.
func (c *Converter) handleCreationHeader(lineNo int, line string, h gff.CreationHeader) error {
	if strings.TrimSpace(h.Product) == "" || strings.TrimSpace(h.Source) == "" {
		return lineError(lineNo, line, ErrMalformedHeader)
	}

	ended, err := time.ParseInLocation(DateLayout, h.Date, time.UTC)
	if err != nil {
		return lineError(lineNo, line, fmt.Errorf("%w: %q", ErrMalformedDate, h.Date))
	}

	if c.provN < 1 {
		return lineError(lineNo, line, errUnexpectedHeader)
	}
	act := sbol.NewActivity(c.opts.URIPrefix, "prov"+strconv.Itoa(c.provN))
	c.provN--

	act.Name = h.Agent
	act.Description = h.Text
	act.EndedAtTime = ended
	act.AddUsage(c.opts.URIPrefix+url.PathEscape(h.Source), sbol.RoleSource)
	c.doc.AddActivity(act)
	c.current = act
	c.stats.Activities++

	c.deriveProduct(h.Product, act)
	return nil
}

// deriveProduct points the product's definition at act, creating a
// placeholder definition when the product has not been seen yet.
func (c *Converter) deriveProduct(label string, act *sbol.Activity) {
	uri := c.productURI(label)
	if entry, ok := c.products[uri]; ok {
		entry.def.WasDerivedFrom = act.URI
		return
	}

	def := sbol.NewComponentDefinition(c.opts.URIPrefix, label)
	def.Name = label
	def.Description = PlaceholderDescription
	def.WasDerivedFrom = act.URI
	def.AddURIAnnotation(sbol.SeeAlso, c.root.URI)

	c.products[uri] = &product{def: def, placeholder: true}
	c.doc.AddComponentDefinition(def)
	c.stats.Definitions++
	c.stats.Placeholders++

	c.logger.Debug("Created placeholder definition",
		slog.String("product", label),
		slog.String("activity", act.URI))
}
