// Package roles maps GFF3 feature types and ontology terms to SBOL role URIs.
//
// The built-in table covers the Sequence Ontology terms the converter has
// always known about. Extra YAML tables can be layered on top from a
// directory, which can be watched for changes.
package roles

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

const (
	// SequenceOntologyBase prefixes SO term identifiers.
	SequenceOntologyBase = "http://identifiers.org/so/"

	// GeneOntologyBase prefixes GO term identifiers.
	GeneOntologyBase = "http://identifiers.org/go/"

	// GeneOntologyPrefix marks Ontology_term tokens that become roles.
	GeneOntologyPrefix = "GO:"
)

// defaultTable is the built-in feature type to SO term table.
var defaultTable = []Mapping{
	{Type: "chromosome", Role: "SO:0000340"},
	{Type: "CDS", Role: "SO:0000316"},
	{Type: "telomere", Role: "SO:0000624"},
	{Type: "deletion", Role: "SO:0000159"},
	{Type: "site_specific_recombination_target_region", Role: "SO:0000342"},
	{Type: "gene", Role: "SO:0000704"},
	{Type: "stop_retained_variant", Role: "SO:0001567"},
	{Type: "PCR_product", Role: "SO:0000006"},
	{Type: "tag", Role: "SO:0000324"},
	{Type: "restriction_enzyme_recognition_site", Role: "SO:0001687"},
	{Type: "ARS", Role: "SO:0000436"},
	{Type: "noncoding_exon", Role: "SO:0000198"},
}

// Mapping associates one feature type with a role. Role is either a full
// URI or a bare SO term such as "SO:0000704".
type Mapping struct {
	Type string `yaml:"type"`
	Role string `yaml:"role"`
}

// Table is the on-disk form of a role table.
type Table struct {
	Name     string    `yaml:"name,omitempty"`
	Mappings []Mapping `yaml:"roles"`
}

// Validate checks that every mapping names a type and a role.
func (t *Table) Validate() error {
	for i, m := range t.Mappings {
		if strings.TrimSpace(m.Type) == "" {
			return fmt.Errorf("mapping %d: type is required", i)
		}
		if strings.TrimSpace(m.Role) == "" {
			return fmt.Errorf("mapping %d (%s): role is required", i, m.Type)
		}
	}
	return nil
}

// Registry holds the effective feature type to role table. It is safe for
// concurrent use: a watch loop may reload it while conversions read it.
type Registry struct {
	mu       sync.RWMutex
	roles    map[string]string
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, path string)
	logger   *slog.Logger
}

// NewRegistry returns a registry holding the built-in table.
func NewRegistry() *Registry {
	r := &Registry{logger: slog.Default()}
	r.roles = builtinRoles()
	return r
}

// NewRegistryWithDirectory returns a registry with the built-in table
// overlaid by every YAML table in dir.
func NewRegistryWithDirectory(dir string) (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadDirectory(dir); err != nil {
		return nil, err
	}
	return r, nil
}

func builtinRoles() map[string]string {
	roles := make(map[string]string, len(defaultTable))
	for _, m := range defaultTable {
		roles[m.Type] = expandRole(m.Role)
	}
	return roles
}

// SetLogger replaces the logger used by the watch loop.
func (r *Registry) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Register sets the role for a feature type, replacing any earlier entry.
func (r *Registry) Register(featureType, role string) error {
	if featureType == "" {
		return fmt.Errorf("feature type cannot be empty")
	}
	if role == "" {
		return fmt.Errorf("role for %q cannot be empty", featureType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[featureType] = expandRole(role)
	return nil
}

// expandRole turns "SO:0000704" into a full identifiers.org URI.
func expandRole(role string) string {
	if strings.HasPrefix(role, "SO:") {
		return SequenceOntologyBase + role
	}
	if strings.HasPrefix(role, GeneOntologyPrefix) {
		return GeneOntologyBase + role
	}
	return role
}

// Role returns the role for a feature type.
func (r *Registry) Role(featureType string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[featureType]
	return role, ok
}

// Classify returns the roles for a record: the type role first when the type
// is known, then one GO role per "GO:" token of ontologyTerms in order.
// Duplicates are dropped and other tokens are skipped.
func (r *Registry) Classify(featureType string, ontologyTerms []string) []string {
	var result []string
	seen := make(map[string]bool)
	add := func(role string) {
		if !seen[role] {
			seen[role] = true
			result = append(result, role)
		}
	}

	if role, ok := r.Role(featureType); ok {
		add(role)
	}
	for _, term := range ontologyTerms {
		if strings.HasPrefix(term, GeneOntologyPrefix) {
			add(GeneOntologyBase + term)
		}
	}
	return result
}

// Entries returns the effective table sorted by feature type.
func (r *Registry) Entries() []Mapping {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Mapping, 0, len(r.roles))
	for typ, role := range r.roles {
		entries = append(entries, Mapping{Type: typ, Role: role})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Type < entries[j].Type })
	return entries
}

// Count returns the number of known feature types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.roles)
}

// Dir returns the configured table directory.
func (r *Registry) Dir() string {
	return r.dir
}

// LoadDirectory loads all YAML tables from dir in file name order, so later
// files override earlier ones. A missing directory is not an error.
func (r *Registry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", entry.Name(), err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading role tables: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

// LoadFile loads a single YAML table.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("invalid table: %w", err)
	}

	for _, m := range table.Mappings {
		if err := r.Register(m.Type, m.Role); err != nil {
			return fmt.Errorf("registering %s: %w", m.Type, err)
		}
	}
	return nil
}

// Reload rebuilds the table from the built-in entries and the directory.
// The swap happens only when every file loaded cleanly, so readers never see
// a half-loaded table.
func (r *Registry) Reload() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}

	fresh, err := NewRegistryWithDirectory(r.dir)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.roles = fresh.roles
	r.mu.Unlock()
	return nil
}

// SetOnChange sets a callback run after the watch loop reloads the table.
func (r *Registry) SetOnChange(fn func(event string, path string)) {
	r.onChange = fn
}

// Watch starts watching the table directory for changes.
func (r *Registry) Watch() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})
	go r.watchLoop(watcher, r.stopChan)

	return nil
}

func (r *Registry) watchLoop(watcher *fsnotify.Watcher, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isYAML(event.Name) {
				continue
			}

			var kind string
			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				kind = "create"
			case event.Op&fsnotify.Write == fsnotify.Write:
				kind = "modify"
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				kind = "remove"
			default:
				continue
			}

			// A removed or edited file can withdraw entries, so always rebuild.
			if err := r.Reload(); err != nil {
				r.logger.Warn("Reloading role tables failed",
					slog.String("path", event.Name),
					slog.String("error", err.Error()))
				continue
			}
			r.logger.Debug("Reloaded role tables",
				slog.String("event", kind),
				slog.String("path", event.Name),
				slog.Int("roles", r.Count()))

			if r.onChange != nil {
				r.onChange(kind, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("Role table watcher error", slog.String("error", err.Error()))
		}
	}
}

// StopWatch stops watching the table directory.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
		r.stopChan = nil
	}
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}

// SaveTable writes the effective table as YAML, usable as a starting point
// for a custom table.
func (r *Registry) SaveTable(path string) error {
	table := Table{Name: "gff2sbol roles", Mappings: r.Entries()}
	data, err := yaml.Marshal(&table)
	if err != nil {
		return fmt.Errorf("marshaling role table: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing role table: %w", err)
	}
	return nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
