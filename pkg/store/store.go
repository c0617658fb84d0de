// Package store provides in-memory storage for checked roundscript programs.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lemonberrylabs/roundscript/pkg/ast"
)

var (
	// ErrNotFound is returned when no program has the requested ID.
	ErrNotFound = errors.New("program not found")

	// ErrFull is returned when the store has reached its program limit.
	ErrFull = errors.New("program store is full")
)

// Program represents a stored, successfully parsed program.
type Program struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	CreateTime time.Time `json:"createTime"`
	Statements int       `json:"statements"`
	HasBegin   bool      `json:"hasBegin"`
	HasExpect  bool      `json:"hasExpect"`

	// Tree is the parsed program. It is never modified after parsing.
	Tree *ast.Program `json:"-"`
}

// Store is a thread-safe in-memory storage for programs.
type Store struct {
	mu       sync.RWMutex
	programs map[string]*Program
	limit    int
}

// New creates a new empty store holding at most limit programs.
// A limit of 0 means no limit.
func New(limit int) *Store {
	return &Store{
		programs: make(map[string]*Program),
		limit:    limit,
	}
}

// Create stores a parsed program under a new ID.
func (s *Store) Create(name string, tree *ast.Program) (*Program, error) {
	if tree == nil {
		return nil, fmt.Errorf("store: nil program")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limit > 0 && len(s.programs) >= s.limit {
		return nil, fmt.Errorf("%w (limit %d)", ErrFull, s.limit)
	}

	p := &Program{
		ID:         uuid.NewString(),
		Name:       name,
		CreateTime: time.Now(),
		Statements: tree.Len(),
		HasBegin:   tree.Begin != nil,
		HasExpect:  tree.Expect != nil,
		Tree:       tree,
	}
	s.programs[p.ID] = p
	return p, nil
}

// Get retrieves a program by ID.
func (s *Store) Get(id string) (*Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.programs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// List returns all programs, oldest first.
func (s *Store) List() []*Program {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Program, 0, len(s.programs))
	for _, p := range s.programs {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreateTime.Equal(result[j].CreateTime) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreateTime.Before(result[j].CreateTime)
	})
	return result
}

// Delete removes a program.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.programs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.programs, id)
	return nil
}

// Len returns the number of stored programs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.programs)
}
