// Package assessment defines the assessment record model, the JSON file
// store, and selection of the active assessment.
package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Record represents a single assessment of one framework: the per-control
// maturity responses plus bookkeeping metadata. Records are owned by the
// store; the scoring engine treats them as read-only input.
type Record struct {
	// ID is a unique identifier for this assessment.
	ID string `json:"id"`
	// FrameworkID names the framework this assessment answers.
	FrameworkID string `json:"framework_id"`
	// OrgName is an optional organization display name.
	OrgName string `json:"org_name,omitempty"`
	// Responses maps control ID to the self-reported maturity level (0-3).
	// Controls without an entry are unanswered.
	Responses map[string]int `json:"responses"`
	// LastModified is an RFC 3339 timestamp. It may be absent or
	// unparsable; see ModifiedAt.
	LastModified string `json:"last_modified,omitempty"`
	// Completed marks the assessment as finished by the taker.
	Completed bool `json:"completed"`
	// TimeSpentMinutes is the elapsed assessment time, if tracked.
	TimeSpentMinutes int `json:"time_spent_minutes,omitempty"`
}

// AmbiguousTimestampError indicates a record's last-modified value could
// not be parsed. It is recovered locally by the selector's last-place
// tie-break and is never surfaced to CLI callers.
type AmbiguousTimestampError struct {
	ID    string
	Value string
}

func (e *AmbiguousTimestampError) Error() string {
	return fmt.Sprintf("assessment %s has unparsable last_modified %q", e.ID, e.Value)
}

// ModifiedAt parses the record's last-modified timestamp. A missing or
// unparsable value yields an AmbiguousTimestampError; callers treat such
// records as sorting last, never first.
func (r *Record) ModifiedAt() (time.Time, error) {
	if r.LastModified == "" {
		return time.Time{}, &AmbiguousTimestampError{ID: r.ID, Value: r.LastModified}
	}
	t, err := time.Parse(time.RFC3339, r.LastModified)
	if err != nil {
		return time.Time{}, &AmbiguousTimestampError{ID: r.ID, Value: r.LastModified}
	}
	return t, nil
}

// Touch updates the record's last-modified timestamp to now.
func (r *Record) Touch() {
	r.LastModified = time.Now().UTC().Format(time.RFC3339)
}

// New creates a blank assessment record for the given framework.
func New(frameworkID, orgName string) Record {
	r := Record{
		ID:          uuid.NewString(),
		FrameworkID: frameworkID,
		OrgName:     orgName,
		Responses:   make(map[string]int),
	}
	r.Touch()
	return r
}

// File is the on-disk assessment store: a JSON document holding all
// assessment records.
type File struct {
	// Assessments contains all stored records.
	Assessments []Record `json:"assessments"`
	// SavedAt is when the file was last written.
	SavedAt time.Time `json:"saved_at,omitempty"`
}

// Load reads an assessment file from disk. A missing file is not an
// error: it yields an empty store, so first-run commands work without
// setup.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading assessment file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing assessment file %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the assessment file to disk.
func (f *File) Save(path string) error {
	f.SavedAt = time.Now().UTC()
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling assessment file: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing assessment file: %w", err)
	}
	return nil
}

// Get returns the record with the given ID, or nil.
func (f *File) Get(id string) *Record {
	for i := range f.Assessments {
		if f.Assessments[i].ID == id {
			return &f.Assessments[i]
		}
	}
	return nil
}

// SelectActive chooses the most relevant assessment from the collection:
// the record with the most recent valid last-modified timestamp, filtered
// to frameworkID when non-empty. Records with missing or unparsable
// timestamps are only chosen when no record has a valid one, preserving
// input order among themselves. The second return is false when the
// collection is empty after filtering; callers must fall back to their
// zero-state outputs.
func SelectActive(records []Record, frameworkID string) (*Record, bool) {
	var (
		best        *Record
		bestTime    time.Time
		bestIsValid bool
	)

	for i := range records {
		r := &records[i]
		if frameworkID != "" && r.FrameworkID != frameworkID {
			continue
		}

		t, err := r.ModifiedAt()
		valid := err == nil

		switch {
		case best == nil:
			best, bestTime, bestIsValid = r, t, valid
		case valid && !bestIsValid:
			best, bestTime, bestIsValid = r, t, true
		case valid && bestIsValid && t.After(bestTime):
			best, bestTime, bestIsValid = r, t, true
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}
