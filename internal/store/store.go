// Package store implements the persisted allow-list of authorized RFID tags.
//
// The list lives in memory and is mirrored to a flat JSON array on disk.
// Every mutation rewrites the whole file; the in-memory list is authoritative
// for the session, so a failed write is reported but never fatal.
package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultTags seeds a fresh or unreadable tags file.
var DefaultTags = []string{"0001234567", "0009876543", "0005555555", "12345", "67890"}

// Store is the ordered, duplicate-free allow-list backed by a JSON file.
type Store struct {
	path string
	tags []string
}

// Open loads the allow-list at path. A missing, unparseable, or non-array
// file is replaced with the default tag set; the error returned is the
// persistence failure from that rewrite, if any, and the store is usable
// either way.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err == nil {
		var tags []string
		// A JSON null unmarshals into a nil slice without error; only an
		// actual array keeps the file's contents.
		if json.Unmarshal(data, &tags) == nil && tags != nil {
			s.tags = dedupe(tags)
			return s, nil
		}
	}

	s.tags = append([]string(nil), DefaultTags...)
	if err := s.save(); err != nil {
		return s, fmt.Errorf("seed default tags: %w", err)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Tags returns a copy of the allow-list in insertion order.
func (s *Store) Tags() []string {
	return append([]string(nil), s.tags...)
}

// Len returns the number of stored tags.
func (s *Store) Len() int {
	return len(s.tags)
}

// Contains reports whether tag is in the allow-list.
func (s *Store) Contains(tag string) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Add appends tag and rewrites the file. It returns false and leaves the
// store unchanged when the tag is already present. The error is the
// persistence failure; the in-memory add has happened regardless.
func (s *Store) Add(tag string) (bool, error) {
	if tag == "" || s.Contains(tag) {
		return false, nil
	}
	s.tags = append(s.tags, tag)
	if err := s.save(); err != nil {
		return true, fmt.Errorf("persist tags: %w", err)
	}
	return true, nil
}

// Remove deletes tag and rewrites the file. It returns false and leaves the
// store unchanged when the tag is absent.
func (s *Store) Remove(tag string) (bool, error) {
	idx := -1
	for i, t := range s.tags {
		if t == tag {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	s.tags = append(s.tags[:idx], s.tags[idx+1:]...)
	if err := s.save(); err != nil {
		return true, fmt.Errorf("persist tags: %w", err)
	}
	return true, nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.tags, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	return os.WriteFile(s.path, append(data, '\n'), 0644)
}

func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
