package persist

import (
	"fmt"
	"os"

	"github.com/orbitalstate/hfsm"
	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk shape a FileSaverLoader reads and writes.
type fileDocument struct {
	Current        string                       `yaml:"current,omitempty"`
	CurrentPresent bool                          `yaml:"current_present"`
	History        map[hfsm.StateID]hfsm.StateID `yaml:"history"`
}

// FileSaverLoader persists to a single YAML file, grounded on the
// teacher's YAMLPersister but writing one machine's state per file
// rather than a directory keyed by machine id.
type FileSaverLoader struct {
	path string
	doc  fileDocument
}

// NewFileSaverLoader creates a FileSaverLoader writing to path. path
// need not exist yet; it is created on the first Save.
func NewFileSaverLoader(path string) *FileSaverLoader {
	return &FileSaverLoader{path: path}
}

func (f *FileSaverLoader) SaveCurrentState(current hfsm.StateID, present bool) error {
	f.doc.Current = string(current)
	f.doc.CurrentPresent = present
	return f.flush()
}

func (f *FileSaverLoader) SaveHistoryStates(history map[hfsm.StateID]hfsm.StateID) error {
	f.doc.History = history
	return f.flush()
}

func (f *FileSaverLoader) flush() error {
	data, err := yaml.Marshal(f.doc)
	if err != nil {
		return fmt.Errorf("persist: yaml marshal: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("persist: write %s: %w", f.path, err)
	}
	return nil
}

func (f *FileSaverLoader) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("persist: read %s: %w", f.path, err)
	}
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("persist: yaml unmarshal: %w", err)
	}
	f.doc = doc
	return nil
}

func (f *FileSaverLoader) LoadCurrentState() (hfsm.StateID, bool, error) {
	if err := f.load(); err != nil {
		return "", false, err
	}
	return hfsm.StateID(f.doc.Current), f.doc.CurrentPresent, nil
}

func (f *FileSaverLoader) LoadHistoryStates() (map[hfsm.StateID]hfsm.StateID, error) {
	if f.doc.History == nil {
		if err := f.load(); err != nil {
			return nil, err
		}
	}
	if f.doc.History == nil {
		return map[hfsm.StateID]hfsm.StateID{}, nil
	}
	return f.doc.History, nil
}
