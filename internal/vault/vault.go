package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SampleNoteName is the note created in the vault root on first run.
const SampleNoteName = "Sample Issues.md"

const sampleNote = `# Sample Issues

Reference tracker issues anywhere in a note with #PROJECT-NUMBER tokens:

#EP-11
#EP-16

Run the fetch command on a note to insert a Title: line beneath each
reference. Lines that already carry a Title: annotation are left untouched.
`

// DirVault exposes a directory of notes. The active note, when set, is the
// target of annotation passes.
type DirVault struct {
	root   string
	active string
}

// New opens a vault rooted at dir.
func New(dir string) (*DirVault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path %s is not a directory", dir)
	}
	return &DirVault{root: abs}, nil
}

// Root returns the absolute vault directory.
func (v *DirVault) Root() string {
	return v.root
}

// SetActive marks an existing note, named relative to the vault root, as the
// active document.
func (v *DirVault) SetActive(name string) error {
	path, err := v.resolve(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to open note %s: %w", name, err)
	}
	v.active = name
	return nil
}

// ActiveFile returns the relative path of the active note, if any.
func (v *DirVault) ActiveFile() (string, bool) {
	if v.active == "" {
		return "", false
	}
	return v.active, true
}

// Read returns the contents of a note.
func (v *DirVault) Read(name string) (string, error) {
	path, err := v.resolve(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read note %s: %w", name, err)
	}
	return string(data), nil
}

// Modify replaces the contents of an existing note.
func (v *DirVault) Modify(name, text string) error {
	path, err := v.resolve(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to modify note %s: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write note %s: %w", name, err)
	}
	return nil
}

// Create writes a new note, failing if it already exists.
func (v *DirVault) Create(name, text string) error {
	path, err := v.resolve(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("note %s already exists", name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create note directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to create note %s: %w", name, err)
	}
	return nil
}

// Exists reports whether a note is present in the vault.
func (v *DirVault) Exists(name string) bool {
	path, err := v.resolve(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// EnsureSampleNote creates the sample note in the vault root when it is not
// already present. It reports whether the note was created.
func (v *DirVault) EnsureSampleNote() (bool, error) {
	if v.Exists(SampleNoteName) {
		return false, nil
	}
	if err := v.Create(SampleNoteName, sampleNote); err != nil {
		return false, err
	}
	return true, nil
}

// resolve maps a note name to an absolute path inside the vault.
func (v *DirVault) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("note name is empty")
	}
	path := filepath.Join(v.root, filepath.FromSlash(name))
	rel, err := filepath.Rel(v.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("note %s is outside the vault", name)
	}
	return path, nil
}
