package skills

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store keeps the vocabulary in a JSON file holding a sorted array of skills.
// Read-modify-write cycles go through Update so concurrent submissions never lose skills.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the vocabulary. A missing or empty file is an empty vocabulary.
func (s *Store) Load() (*Vocabulary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Update runs fn on the current vocabulary and persists the result while holding the store lock.
func (s *Store) Update(fn func(v *Vocabulary) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.load()
	if err != nil {
		return err
	}

	if err := fn(v); err != nil {
		return err
	}

	return s.save(v)
}

// Merge folds new skills into the stored vocabulary and returns those that were added.
func (s *Store) Merge(newSkills ...string) ([]string, error) {
	var added []string
	err := s.Update(func(v *Vocabulary) error {
		added = v.Merge(newSkills...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Store) load() (*Vocabulary, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewVocabulary(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file %q: %w", s.path, err)
	}

	if len(data) == 0 {
		return NewVocabulary(), nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding vocabulary file %q: %w", s.path, err)
	}

	return NewVocabulary(items...), nil
}

func (s *Store) save(v *Vocabulary) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating vocabulary dir: %w", err)
	}

	file, err := os.CreateTemp(dir, ".skills_*.json")
	if err != nil {
		return fmt.Errorf("creating temporary vocabulary file: %w", err)
	}
	defer os.Remove(file.Name())

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v.Items()); err != nil {
		file.Close()
		return fmt.Errorf("encoding vocabulary: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing temporary vocabulary file: %w", err)
	}

	if err := os.Rename(file.Name(), s.path); err != nil {
		return fmt.Errorf("replacing vocabulary file: %w", err)
	}

	return nil
}
