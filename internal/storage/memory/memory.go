// Package memory provides the in-memory implementation of storage.Storage.
//
// The roster is an ordered slice, newest first. Every mutation builds a new
// slice and swaps it in, so a slice handed to a reader is never written to
// again. That is what lets SearchStudents return a lazy sequence without
// holding the lock while the caller iterates.
package memory

import (
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/aanand-mishra/student-roster/internal/idgen"
	"github.com/aanand-mishra/student-roster/internal/search"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// Store is the in-memory roster. The zero value is not usable; call New.
type Store struct {
	mu       sync.RWMutex
	students []types.Student

	ids idgen.Generator
	now func() time.Time
}

var _ storage.Storage = (*Store)(nil)

// New returns an empty Store that takes ids from ids and timestamps from
// now. A nil now means time.Now.
func New(ids idgen.Generator, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		students: []types.Student{},
		ids:      ids,
		now:      now,
	}
}

// CreateStudent prepends a new student built from data. It never fails.
func (s *Store) CreateStudent(data types.StudentFormData) (types.Student, error) {
	student := types.Student{
		ID:        s.ids.NewID(),
		Name:      data.Name,
		RollNo:    data.RollNo,
		Age:       data.Age,
		ClassName: data.ClassName,
		Year:      data.Year,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]types.Student, 0, len(s.students)+1)
	next = append(next, student)
	next = append(next, s.students...)
	s.students = next

	return student, nil
}

// GetStudentByID returns the student with id or storage.ErrNotFound.
func (s *Store) GetStudentByID(id string) (types.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return types.Student{}, storage.ErrNotFound
	}
	return s.students[i], nil
}

// UpdateStudentByID replaces the mutable fields of the student with id.
// An unknown id leaves the roster untouched.
func (s *Store) UpdateStudentByID(id string, data types.StudentFormData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	next := slices.Clone(s.students)
	current := next[i]
	next[i] = types.Student{
		ID:        current.ID,
		Name:      data.Name,
		RollNo:    data.RollNo,
		Age:       data.Age,
		ClassName: data.ClassName,
		Year:      data.Year,
		CreatedAt: current.CreatedAt,
	}
	s.students = next

	return nil
}

// DeleteStudentByID removes the student with id. An unknown id is ignored.
func (s *Store) DeleteStudentByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	next := make([]types.Student, 0, len(s.students)-1)
	next = append(next, s.students[:i]...)
	next = append(next, s.students[i+1:]...)
	s.students = next

	return nil
}

// SearchStudents filters the roster as it stands right now. Later
// mutations do not affect the returned sequence.
func (s *Store) SearchStudents(query string) (iter.Seq[types.Student], error) {
	return search.Filter(s.snapshot(), query), nil
}

// Len returns the number of students on the roster.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.students)
}

func (s *Store) snapshot() []types.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.students
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.students, func(st types.Student) bool {
		return st.ID == id
	})
}
