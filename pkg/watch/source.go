// Package watch monitors GFF3 input files and triggers a reconversion when
// one of them changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// SourceStatus indicates the operational state of a watched source.
type SourceStatus string

const (
	// SourceStatusActive indicates the source is being watched.
	SourceStatusActive SourceStatus = "active"

	// SourceStatusPaused indicates changes are ignored for now.
	SourceStatusPaused SourceStatus = "paused"

	// SourceStatusError indicates the last conversion failed.
	SourceStatusError SourceStatus = "error"

	// SourceStatusDisabled indicates the source is configured but off.
	SourceStatusDisabled SourceStatus = "disabled"
)

// DefaultDebounce is how long a source must stay quiet before a change fires.
const DefaultDebounce = 250 * time.Millisecond

// maxErrors is how many recent errors a status keeps.
const maxErrors = 10

// ErrSourceDisabled is returned when a disabled source is asked to convert.
var ErrSourceDisabled = errors.New("source is disabled")

// SourceConfig holds configuration for a single watched input.
type SourceConfig struct {
	// Name identifies the source; defaults to the input's base name.
	Name string `yaml:"name" json:"name"`

	// Input is the GFF3 file to watch.
	Input string `yaml:"input" json:"input"`

	// Output is where the converted document goes; derived from Input when
	// empty.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`

	// Format overrides the configured output format.
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// Contig overrides the configured contig name.
	Contig string `yaml:"contig,omitempty" json:"contig,omitempty"`

	// Enabled indicates if this source is active (default true).
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

func (s SourceConfig) enabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// SourcesConfig holds the complete sources configuration.
type SourcesConfig struct {
	Sources []SourceConfig `yaml:"sources" json:"sources"`
}

// Validate fills in default names and checks each source.
func (c *SourcesConfig) Validate() error {
	names := make(map[string]bool)
	inputs := make(map[string]bool)
	for i := range c.Sources {
		source := &c.Sources[i]
		if source.Input == "" {
			return fmt.Errorf("source %d: input is required", i)
		}
		if source.Name == "" {
			source.Name = filepath.Base(source.Input)
		}
		if names[source.Name] {
			return fmt.Errorf("source %s: duplicate name", source.Name)
		}
		names[source.Name] = true

		abs, err := filepath.Abs(source.Input)
		if err != nil {
			return fmt.Errorf("source %s: %w", source.Name, err)
		}
		if inputs[abs] {
			return fmt.Errorf("source %s: input %s is already watched", source.Name, source.Input)
		}
		inputs[abs] = true
	}
	return nil
}

// LoadSourcesConfig loads source configuration from a YAML file.
func LoadSourcesConfig(path string) (*SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config: %w", err)
	}

	var config SourcesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse sources config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Change is delivered to callbacks when a source settles after a change.
type Change struct {
	Source SourceConfig
	Path   string
	Time   time.Time
}

// SourceStatusInfo provides status information for a source.
type SourceStatusInfo struct {
	Name        string       `json:"name"`
	Input       string       `json:"input"`
	Status      SourceStatus `json:"status"`
	LastChange  time.Time    `json:"last_change"`
	Conversions int          `json:"conversions"`
	Errors      []string     `json:"errors,omitempty"`
}

// Monitor watches source files and calls back once per settled change.
type Monitor struct {
	config     *SourcesConfig
	debounce   time.Duration
	logger     *slog.Logger
	byPath     map[string]SourceConfig
	statuses   map[string]*SourceStatusInfo
	statusMu   sync.RWMutex
	callbacks  []func(Change) error
	callbackMu sync.RWMutex
	fireLocks  map[string]*sync.Mutex
	timers     map[string]*time.Timer
	timerMu    sync.Mutex
	watcher    *fsnotify.Watcher
	stopChan   chan struct{}
	done       chan struct{}
	running    bool
	runningMu  sync.Mutex
}

// NewMonitor creates a monitor for config. A non-positive debounce uses
// DefaultDebounce.
func NewMonitor(config *SourcesConfig, debounce time.Duration) *Monitor {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	m := &Monitor{
		config:    config,
		debounce:  debounce,
		logger:    slog.Default(),
		byPath:    make(map[string]SourceConfig),
		statuses:  make(map[string]*SourceStatusInfo),
		timers:    make(map[string]*time.Timer),
		fireLocks: make(map[string]*sync.Mutex),
	}
	for _, source := range config.Sources {
		m.fireLocks[source.Name] = &sync.Mutex{}
		status := SourceStatusActive
		if !source.enabled() {
			status = SourceStatusDisabled
		}
		m.statuses[source.Name] = &SourceStatusInfo{
			Name:   source.Name,
			Input:  source.Input,
			Status: status,
		}
	}
	return m
}

// SetLogger replaces the monitor's logger.
func (m *Monitor) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// OnChange registers a callback run for every settled change. A callback
// error marks the source as failing until the next success.
func (m *Monitor) OnChange(callback func(Change) error) {
	m.callbackMu.Lock()
	defer m.callbackMu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// Start begins watching the enabled sources. Directories rather than files
// are watched so editors that replace files on save are still seen.
func (m *Monitor) Start(ctx context.Context) error {
	m.runningMu.Lock()
	defer m.runningMu.Unlock()
	if m.running {
		return fmt.Errorf("monitor is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	dirs := make(map[string]bool)
	byPath := make(map[string]SourceConfig)
	for _, source := range m.config.Sources {
		if !source.enabled() {
			continue
		}
		abs, err := filepath.Abs(source.Input)
		if err != nil {
			watcher.Close()
			return fmt.Errorf("source %s: %w", source.Name, err)
		}
		byPath[abs] = source

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	m.byPath = byPath
	m.watcher = watcher
	m.stopChan = make(chan struct{})
	m.done = make(chan struct{})
	m.running = true

	go m.loop(ctx, watcher, m.stopChan, m.done)
	return nil
}

// Stop stops the monitor and cancels pending changes.
func (m *Monitor) Stop() error {
	m.runningMu.Lock()
	defer m.runningMu.Unlock()
	if !m.running {
		return fmt.Errorf("monitor is not running")
	}

	close(m.stopChan)
	<-m.done
	m.watcher.Close()
	m.running = false

	m.timerMu.Lock()
	for path, t := range m.timers {
		t.Stop()
		delete(m.timers, path)
	}
	m.timerMu.Unlock()
	return nil
}

// Run starts the monitor and blocks until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	if err := m.Stop(); err != nil {
		return err
	}
	return ctx.Err()
}

func (m *Monitor) loop(ctx context.Context, watcher *fsnotify.Watcher, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if source, ok := m.byPath[abs]; ok {
				m.schedule(source, abs)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("Watcher error", slog.String("error", err.Error()))
		}
	}
}

// schedule restarts the quiet period for a source.
func (m *Monitor) schedule(source SourceConfig, path string) {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()

	if t, ok := m.timers[path]; ok {
		t.Reset(m.debounce)
		return
	}
	m.timers[path] = time.AfterFunc(m.debounce, func() {
		m.timerMu.Lock()
		delete(m.timers, path)
		m.timerMu.Unlock()

		if m.paused(source.Name) {
			m.logger.Debug("Ignoring change to paused source", slog.String("source", source.Name))
			return
		}
		m.fire(Change{Source: source, Path: path, Time: time.Now()})
	})
}

// CheckNow runs the callbacks for a source immediately. Disabled sources
// return ErrSourceDisabled without running anything.
func (m *Monitor) CheckNow(sourceName string) error {
	for _, source := range m.config.Sources {
		if source.Name == sourceName {
			if !source.enabled() {
				return fmt.Errorf("%w: %s", ErrSourceDisabled, sourceName)
			}
			abs, err := filepath.Abs(source.Input)
			if err != nil {
				return err
			}
			return m.fire(Change{Source: source, Path: abs, Time: time.Now()})
		}
	}
	return fmt.Errorf("source not found: %s", sourceName)
}

// fire runs the callbacks for one change. Changes to the same source run one
// at a time since they write the same output.
func (m *Monitor) fire(change Change) error {
	if mu, ok := m.fireLocks[change.Source.Name]; ok {
		mu.Lock()
		defer mu.Unlock()
	}

	m.callbackMu.RLock()
	callbacks := append([]func(Change) error(nil), m.callbacks...)
	m.callbackMu.RUnlock()

	var firstErr error
	for _, callback := range callbacks {
		if err := callback(change); err != nil {
			m.recordError(change.Source.Name, err.Error())
			m.logger.Warn("Reconversion failed",
				slog.String("source", change.Source.Name),
				slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr == nil {
		m.recordSuccess(change)
	}
	return firstErr
}

// Status returns the status of all sources sorted by name.
func (m *Monitor) Status() []SourceStatusInfo {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()

	result := make([]SourceStatusInfo, 0, len(m.statuses))
	for _, status := range m.statuses {
		info := *status
		info.Errors = append([]string(nil), status.Errors...)
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Pause stops reacting to changes of a source.
func (m *Monitor) Pause(sourceName string) error {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()

	status, ok := m.statuses[sourceName]
	if !ok {
		return fmt.Errorf("source not found: %s", sourceName)
	}
	status.Status = SourceStatusPaused
	return nil
}

// Resume resumes a paused source.
func (m *Monitor) Resume(sourceName string) error {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()

	status, ok := m.statuses[sourceName]
	if !ok {
		return fmt.Errorf("source not found: %s", sourceName)
	}
	if status.Status == SourceStatusPaused {
		status.Status = SourceStatusActive
	}
	return nil
}

func (m *Monitor) paused(sourceName string) bool {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	status := m.statuses[sourceName]
	return status != nil && status.Status == SourceStatusPaused
}

func (m *Monitor) recordSuccess(change Change) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()

	status, ok := m.statuses[change.Source.Name]
	if !ok {
		return
	}
	status.LastChange = change.Time
	status.Conversions++
	if status.Status == SourceStatusError {
		status.Status = SourceStatusActive
	}
}

// recordError records an error for a source.
func (m *Monitor) recordError(sourceName, errMsg string) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()

	status, ok := m.statuses[sourceName]
	if !ok {
		status = &SourceStatusInfo{Name: sourceName}
		m.statuses[sourceName] = status
	}

	// A paused or disabled source stays that way; the error is only history.
	if status.Status == SourceStatusActive || status.Status == SourceStatusError {
		status.Status = SourceStatusError
	}
	status.Errors = append(status.Errors, errMsg)
	if len(status.Errors) > maxErrors {
		status.Errors = status.Errors[len(status.Errors)-maxErrors:]
	}
}
