// Package framework defines the compliance framework catalog model:
// a framework is an ordered set of sections (domains), each holding
// categories of assessment questions keyed by control identifier.
package framework

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Question is a single assessment question tied to one control.
type Question struct {
	// ControlID is the practice identifier (e.g. "AC.L2-3.1.1").
	ControlID string `yaml:"control_id"`
	// Title is a short label for the control.
	Title string `yaml:"title"`
	// Prompt is the full question text shown to the assessment taker.
	Prompt string `yaml:"prompt,omitempty"`
}

// Category groups related questions within a section.
type Category struct {
	Name      string     `yaml:"name"`
	Questions []Question `yaml:"questions"`
}

// Section is a framework domain (e.g. "Access Control") used for
// aggregate scoring.
type Section struct {
	// ID is the short domain code (e.g. "AC").
	ID string `yaml:"id"`
	// Name is the display name (e.g. "Access Control").
	Name string `yaml:"name"`
	// Categories contains the section's question groups, in order.
	Categories []Category `yaml:"categories"`
}

// Questions returns the section's questions flattened across categories,
// preserving category and question order.
func (s *Section) Questions() []Question {
	var questions []Question
	for _, c := range s.Categories {
		questions = append(questions, c.Questions...)
	}
	return questions
}

// Framework represents a single compliance framework loaded from YAML.
type Framework struct {
	// ID identifies the framework (e.g. "cmmc-level2").
	ID string `yaml:"id"`
	// Name is the display name (e.g. "CMMC 2.0 Level 2").
	Name string `yaml:"name"`
	// Version records the framework revision, if any.
	Version string `yaml:"version,omitempty"`
	// Sections contains the framework domains, in order.
	Sections []Section `yaml:"sections"`
}

// ControlCount returns the total number of questions across all sections.
func (f *Framework) ControlCount() int {
	n := 0
	for i := range f.Sections {
		n += len(f.Sections[i].Questions())
	}
	return n
}

// Validate checks the structural invariants of a framework definition:
// non-empty identifiers, at least one section, and control IDs unique
// within the framework.
func (f *Framework) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("framework has no ID")
	}
	if len(f.Sections) == 0 {
		return fmt.Errorf("framework %s has no sections", f.ID)
	}
	seen := make(map[string]string)
	for _, s := range f.Sections {
		if s.Name == "" {
			return fmt.Errorf("framework %s has a section with no name", f.ID)
		}
		for _, q := range s.Questions() {
			if q.ControlID == "" {
				return fmt.Errorf("framework %s section %s has a question with no control ID", f.ID, s.Name)
			}
			if prev, ok := seen[q.ControlID]; ok {
				return fmt.Errorf("framework %s has duplicate control ID %s (sections %s and %s)", f.ID, q.ControlID, prev, s.Name)
			}
			seen[q.ControlID] = s.Name
		}
	}
	return nil
}

// HasControl reports whether the framework defines the given control ID.
func (f *Framework) HasControl(controlID string) bool {
	for i := range f.Sections {
		for _, q := range f.Sections[i].Questions() {
			if q.ControlID == controlID {
				return true
			}
		}
	}
	return false
}

// MissingFrameworkError indicates that a requested framework identifier
// has no matching definition. Callers fall back to a zero-state result
// rather than computing partial scores.
type MissingFrameworkError struct {
	ID string
}

func (e *MissingFrameworkError) Error() string {
	return fmt.Sprintf("no framework definition for %q", e.ID)
}

// Find returns the framework with the given ID, or a
// MissingFrameworkError if none matches.
func Find(frameworks []Framework, id string) (*Framework, error) {
	for i := range frameworks {
		if frameworks[i].ID == id {
			return &frameworks[i], nil
		}
	}
	return nil, &MissingFrameworkError{ID: id}
}

// LoadDir loads all framework YAML files from a directory.
func LoadDir(dir string) ([]Framework, error) {
	var frameworks []Framework

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading framework file %s: %w", path, err)
		}

		f, err := parse(data, path)
		if err != nil {
			return err
		}
		frameworks = append(frameworks, f)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("loading frameworks from %s: %w", dir, err)
	}

	return frameworks, nil
}

// LoadFS loads all framework YAML files from an fs.FS, typically the
// embedded built-in catalogs.
func LoadFS(fsys fs.FS) ([]Framework, error) {
	var frameworks []Framework

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading framework file %s: %w", path, err)
		}

		f, err := parse(data, path)
		if err != nil {
			return err
		}
		frameworks = append(frameworks, f)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("loading embedded frameworks: %w", err)
	}

	return frameworks, nil
}

// parse unmarshals and validates a single framework definition.
func parse(data []byte, src string) (Framework, error) {
	var f Framework
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Framework{}, fmt.Errorf("parsing framework file %s: %w", src, err)
	}
	if err := f.Validate(); err != nil {
		return Framework{}, fmt.Errorf("invalid framework in %s: %w", src, err)
	}
	return f, nil
}
