// Package report provides a registry for report format generators.
//
// Each output format (html, json, csv) registers a factory function that
// creates a Reporter. The CLI uses this registry to look up the correct
// generator at runtime based on the --format flag.
//
// To add a new format:
//  1. Create internal/report/<format>/ with a Reporter implementation.
//  2. Call report.Register("<format>", factory) in an init() function.
//  3. Import the package (blank import) in cmd/cmmcready/formats.go.
package report

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/cmmcready/cmmcready/internal/scoring"
)

// Reporter writes a readiness report for a metrics bundle.
type Reporter interface {
	// Generate writes the report to w. The bundle is read-only.
	Generate(w io.Writer, bundle *scoring.Bundle) error
}

// Factory creates a new Reporter for a specific format.
type Factory func() Reporter

var (
	mu      sync.RWMutex
	formats = make(map[string]Factory)
)

// Register adds a report format to the global registry.
//
// Panics if a format with the same name is already registered.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := formats[name]; exists {
		panic(fmt.Sprintf("report: format %q already registered", name))
	}
	formats[name] = factory
}

// Get returns the factory for a registered format.
// Returns an error if the format is not registered.
func Get(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	factory, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q; available: %s", name, listNamesLocked())
	}
	return factory, nil
}

// List returns the names of all registered formats in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	return listNamesLocked()
}

// listNamesLocked returns sorted format names. Caller must hold mu.
func listNamesLocked() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
