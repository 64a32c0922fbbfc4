package report

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record kinds, one subdirectory each
const (
	KindRun   = "runs"
	KindSweep = "sweeps"
)

const recordExt = ".yaml"

// Store handles save/load of run and sweep records under a base directory
type Store struct {
	basePath string
}

// NewStore creates a store with the given base directory
func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

// FilePath returns the path for a record file
func (s *Store) FilePath(kind, id string) string {
	return filepath.Join(s.basePath, kind, id+recordExt)
}

// Exists checks if a record file exists
func (s *Store) Exists(kind, id string) bool {
	_, err := os.Stat(s.FilePath(kind, id))
	return err == nil
}

// List returns stored record ids of a kind, sorted
func (s *Store) List(kind string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), recordExt))
	}
	slices.Sort(ids)
	return ids, nil
}

// SaveRun writes a run record and returns its path
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	return s.save(KindRun, rec.ID, rec)
}

// LoadRun reads a run record
func (s *Store) LoadRun(id string) (RunRecord, error) {
	var rec RunRecord
	err := s.load(KindRun, id, &rec)
	return rec, err
}

// SaveSweep writes a sweep record and returns its path
func (s *Store) SaveSweep(rec SweepRecord) (string, error) {
	return s.save(KindSweep, rec.ID, rec)
}

// LoadSweep reads a sweep record
func (s *Store) LoadSweep(id string) (SweepRecord, error) {
	var rec SweepRecord
	err := s.load(KindSweep, id, &rec)
	return rec, err
}

func (s *Store) save(kind, id string, v any) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("report: invalid record id %q", id)
	}
	if err := os.MkdirAll(filepath.Join(s.basePath, kind), 0755); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("report: encode %s/%s: %w", kind, id, err)
	}

	path := s.FilePath(kind, id)
	return path, os.WriteFile(path, data, 0644)
}

func (s *Store) load(kind, id string, v any) error {
	data, err := os.ReadFile(s.FilePath(kind, id))
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("report: decode %s/%s: %w", kind, id, err)
	}
	return nil
}
