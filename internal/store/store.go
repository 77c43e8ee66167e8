// Package store keeps a user's saved drawings in a JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/example/whiteboard/internal/action"
)

// NewID is the placeholder id of a drawing that has never been saved.
const NewID = "new"

// DefaultName is used when a drawing is saved without a name.
const DefaultName = "Untitled Drawing"

// DefaultUser owns drawings when no user is configured.
const DefaultUser = "local"

// ErrNotFound is returned when no drawing has the requested id.
var ErrNotFound = errors.New("drawing not found")

// Drawing is a saved whiteboard.
type Drawing struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Thumbnail string          `json:"thumbnail"`
	CreatedAt int64           `json:"createdAt"`
	Actions   []action.Action `json:"actions,omitempty"`
}

// Created converts CreatedAt, stored in Unix milliseconds, to a time.
func (d Drawing) Created() time.Time { return time.UnixMilli(d.CreatedAt) }

// Store reads and writes the drawings of one user.
type Store struct {
	Dir  string
	User string
	// Now defaults to time.Now.
	Now func() time.Time
}

// New returns a Store for user rooted at dir.
func New(dir, user string) *Store {
	return &Store{Dir: dir, User: user}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Path is the file holding the user's drawings.
func (s *Store) Path() string {
	user := unsafeChars.ReplaceAllString(s.User, "_")
	if user == "" {
		user = DefaultUser
	}
	return filepath.Join(s.Dir, "drawings_"+user+".json")
}

// List returns all saved drawings in stored order. A missing file is an
// empty list, and so is a corrupt one, which is logged.
func (s *Store) List() ([]Drawing, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read drawings: %w", err)
	}
	var drawings []Drawing
	if err := json.Unmarshal(data, &drawings); err != nil {
		log.Printf("store: ignoring corrupt %s: %v", s.Path(), err)
		return nil, nil
	}
	return drawings, nil
}

// Get returns the drawing with id.
func (s *Store) Get(id string) (Drawing, error) {
	drawings, err := s.List()
	if err != nil {
		return Drawing{}, err
	}
	for _, d := range drawings {
		if d.ID == id {
			return d, nil
		}
	}
	return Drawing{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save inserts or replaces d and returns the stored record. Drawings with an
// empty or "new" id get a fresh id; an empty name becomes DefaultName.
func (s *Store) Save(d Drawing) (Drawing, error) {
	if d.ID == "" || d.ID == NewID {
		d.ID = uuid.NewString()
	}
	if d.Name == "" {
		d.Name = DefaultName
	}
	d.CreatedAt = s.now().UnixMilli()

	drawings, err := s.List()
	if err != nil {
		return Drawing{}, err
	}
	replaced := false
	for i := range drawings {
		if drawings[i].ID == d.ID {
			drawings[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		drawings = append(drawings, d)
	}
	if err := s.write(drawings); err != nil {
		return Drawing{}, err
	}
	return d, nil
}

// Delete removes the drawing with id.
func (s *Store) Delete(id string) error {
	drawings, err := s.List()
	if err != nil {
		return err
	}
	kept := drawings[:0]
	for _, d := range drawings {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(drawings) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.write(kept)
}

func (s *Store) write(drawings []Drawing) error {
	if drawings == nil {
		drawings = []Drawing{}
	}
	data, err := json.MarshalIndent(drawings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode drawings: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.Dir, err)
	}
	tmp, err := os.CreateTemp(s.Dir, ".drawings-*")
	if err != nil {
		return fmt.Errorf("write drawings: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write drawings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write drawings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write drawings: %w", err)
	}
	return nil
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
