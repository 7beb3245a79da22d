package convert

import (
	"log/slog"

	"github.com/coolbeans/gff2sbol/pkg/gff"
	"github.com/coolbeans/gff2sbol/pkg/sbol"
)

// handleRecord turns one feature line into a location on the root.
// Records sharing an ID extend the same annotation.
func (c *Converter) handleRecord(lineNo int, line string) error {
	rec, err := gff.ParseRecord(line)
	if err != nil {
		return lineError(lineNo, line, malformed("%w", err))
	}
	id := rec.ID()
	if id == "" {
		return lineError(lineNo, line, malformed("missing %s attribute", gff.AttrID))
	}
	c.stats.Records++

	if sa, ok := c.annotations[id]; ok {
		sa.AddRange(rec.Start, rec.End, rec.Strand, rec.Name())
		c.stats.Locations++
		return nil
	}

	// Distinct IDs must not clean to the same display ID, or their
	// annotations would share one URI.
	displayID := sbol.CleanDisplayID(id)
	if other, ok := c.displayIDs[displayID]; ok {
		return lineError(lineNo, line, malformed("ID %q collides with %q as %q", id, other, displayID))
	}
	c.displayIDs[displayID] = id

	rootPrefix := c.root.PersistentIdentity + "/"
	sa := sbol.NewSequenceAnnotation(rootPrefix, id+"_anno")
	sa.AddRange(rec.Start, rec.End, rec.Strand, rec.Name())
	c.root.AddSequenceAnnotation(sa)
	c.annotations[id] = sa
	c.stats.Annotations++
	c.stats.Locations++

	if !gff.MaterializesDefinition(rec.Type) {
		return nil
	}

	entry := c.definitionFor(lineNo, rec)
	if entry.root {
		// The record describes the contig itself.
		return nil
	}

	comp := sbol.NewComponent(rootPrefix, id+"_component", entry.def)
	c.root.AddComponent(comp)
	sa.SetComponent(comp)
	c.stats.Components++
	return nil
}

// definitionFor returns the definition a record materializes. A placeholder
// created by an earlier provenance header is adopted in place, keeping its
// derivation. An existing non placeholder definition is reused.
func (c *Converter) definitionFor(lineNo int, rec *gff.Record) *product {
	uri := c.productURI(rec.ID())

	entry, ok := c.products[uri]
	switch {
	case !ok:
		entry = &product{def: sbol.NewComponentDefinition(c.opts.URIPrefix, rec.ID())}
		c.products[uri] = entry
		c.doc.AddComponentDefinition(entry.def)
		c.stats.Definitions++
		c.describe(lineNo, entry.def, rec, true)

	case entry.placeholder:
		entry.placeholder = false
		entry.def.RemoveAnnotations(sbol.SeeAlso)
		entry.def.Description = ""
		c.stats.AdoptedPlaceholders++
		c.describe(lineNo, entry.def, rec, true)
		c.logger.Debug("Adopted placeholder definition",
			slog.Int("line", lineNo),
			slog.String("uri", uri))

	default:
		c.describe(lineNo, entry.def, rec, false)
		c.logger.Debug("Reusing existing definition",
			slog.Int("line", lineNo),
			slog.String("uri", uri))
	}
	return entry
}

// describe copies name, roles, note and source of rec onto def. When
// overwrite is false only unset fields are filled.
func (c *Converter) describe(lineNo int, def *sbol.ComponentDefinition, rec *gff.Record, overwrite bool) {
	if name := rec.Name(); name != "" && (overwrite || def.Name == "") {
		def.Name = name
	}
	for _, role := range c.opts.Roles.Classify(rec.Type, rec.Attributes.OntologyTerms()) {
		def.AddRole(role)
	}
	if rec.Attributes.Has(gff.AttrNote) && (overwrite || def.Description == "") {
		def.Description = c.decodeText(lineNo, rec.Attributes.Get(gff.AttrNote))
	}

	sourcePredicate := c.opts.AnnotationPrefix + "source"
	if len(def.AnnotationValues(sourcePredicate)) == 0 {
		def.AddStringAnnotation(sourcePredicate, rec.Source)
	}
}
