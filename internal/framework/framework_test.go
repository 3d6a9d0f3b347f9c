package framework

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmmcready/cmmcready/frameworks"
)

const testFrameworkYAML = `
id: test-framework
name: Test Framework
version: "1.0"
sections:
  - id: AC
    name: Access Control
    categories:
      - name: Basic Security Requirements
        questions:
          - control_id: AC.1
            title: Authorized Access Control
            prompt: Limit system access to authorized users.
          - control_id: AC.2
            title: Transaction and Function Control
      - name: Derived Security Requirements
        questions:
          - control_id: AC.3
            title: Control CUI Flow
  - id: IR
    name: Incident Response
    categories:
      - name: Basic Security Requirements
        questions:
          - control_id: IR.1
            title: Incident Handling
`

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(testFrameworkYAML), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	fws, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if len(fws) != 1 {
		t.Fatalf("LoadDir() returned %d frameworks, want 1", len(fws))
	}

	f := &fws[0]
	if f.ID != "test-framework" {
		t.Errorf("ID = %s, want test-framework", f.ID)
	}
	if len(f.Sections) != 2 {
		t.Errorf("len(Sections) = %d, want 2", len(f.Sections))
	}
	if f.ControlCount() != 4 {
		t.Errorf("ControlCount() = %d, want 4", f.ControlCount())
	}
}

func TestLoadDirIgnoresNonYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not yaml"), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	fws, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}
	if len(fws) != 0 {
		t.Errorf("LoadDir() returned %d frameworks, want 0", len(fws))
	}
}

func TestLoadDirRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no id",
			yaml: "name: Nameless\nsections:\n  - id: AC\n    name: Access Control\n    categories:\n      - name: Basic\n        questions:\n          - control_id: AC.1\n            title: T\n",
		},
		{
			name: "no sections",
			yaml: "id: empty\nname: Empty\n",
		},
		{
			name: "question without control id",
			yaml: "id: f\nname: F\nsections:\n  - id: AC\n    name: Access Control\n    categories:\n      - name: Basic\n        questions:\n          - title: T\n",
		},
		{
			name: "duplicate control id",
			yaml: "id: f\nname: F\nsections:\n  - id: AC\n    name: Access Control\n    categories:\n      - name: Basic\n        questions:\n          - control_id: AC.1\n            title: T\n          - control_id: AC.1\n            title: T2\n",
		},
		{
			name: "malformed yaml",
			yaml: "id: [unclosed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(tt.yaml), 0600); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
			if _, err := LoadDir(dir); err == nil {
				t.Error("LoadDir() expected error, got nil")
			}
		})
	}
}

func TestSectionQuestionsFlattens(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(testFrameworkYAML), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	fws, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error: %v", err)
	}

	questions := fws[0].Sections[0].Questions()
	want := []string{"AC.1", "AC.2", "AC.3"}
	if len(questions) != len(want) {
		t.Fatalf("len(questions) = %d, want %d", len(questions), len(want))
	}
	for i, q := range questions {
		if q.ControlID != want[i] {
			t.Errorf("questions[%d].ControlID = %s, want %s", i, q.ControlID, want[i])
		}
	}
}

func TestFind(t *testing.T) {
	fws := []Framework{
		{ID: "cmmc-level1", Name: "CMMC 2.0 Level 1"},
		{ID: "cmmc-level2", Name: "CMMC 2.0 Level 2"},
	}

	f, err := Find(fws, "cmmc-level2")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if f.Name != "CMMC 2.0 Level 2" {
		t.Errorf("Name = %s, want CMMC 2.0 Level 2", f.Name)
	}
}

func TestFindMissing(t *testing.T) {
	_, err := Find(nil, "nonexistent")
	if err == nil {
		t.Fatal("Find() expected error for unknown framework")
	}
	var mfe *MissingFrameworkError
	if !errors.As(err, &mfe) {
		t.Fatalf("error type = %T, want *MissingFrameworkError", err)
	}
	if mfe.ID != "nonexistent" {
		t.Errorf("MissingFrameworkError.ID = %s, want nonexistent", mfe.ID)
	}
}

func TestHasControl(t *testing.T) {
	f := Framework{
		ID:   "f",
		Name: "F",
		Sections: []Section{
			{ID: "AC", Name: "Access Control", Categories: []Category{
				{Name: "Basic", Questions: []Question{{ControlID: "AC.1", Title: "T"}}},
			}},
		},
	}

	if !f.HasControl("AC.1") {
		t.Error("HasControl(AC.1) = false, want true")
	}
	if f.HasControl("ZZ.9") {
		t.Error("HasControl(ZZ.9) = true, want false")
	}
}

func TestBuiltinCatalogs(t *testing.T) {
	fws, err := LoadFS(frameworks.Embedded)
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}
	if len(fws) != 2 {
		t.Fatalf("LoadFS() returned %d frameworks, want 2", len(fws))
	}

	tests := []struct {
		id           string
		wantSections int
		wantControls int
	}{
		{"cmmc-level1", 6, 17},
		{"cmmc-level2", 14, 110},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			f, err := Find(fws, tt.id)
			if err != nil {
				t.Fatalf("Find(%s) error: %v", tt.id, err)
			}
			if len(f.Sections) != tt.wantSections {
				t.Errorf("len(Sections) = %d, want %d", len(f.Sections), tt.wantSections)
			}
			if f.ControlCount() != tt.wantControls {
				t.Errorf("ControlCount() = %d, want %d", f.ControlCount(), tt.wantControls)
			}
		})
	}
}
