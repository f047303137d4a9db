// Package storage defines the Storage interface: the contract every roster
// backend satisfies.
//
// Handlers depend only on this interface, so the in-memory store and the
// SQLite store are interchangeable, and tests can run against either.
package storage

import (
	"errors"
	"iter"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// ErrNotFound is returned by GetStudentByID when no student has the id.
var ErrNotFound = errors.New("student not found")

// Storage is the roster contract.
//
// Update and delete of an unknown id are no-ops, not errors: callers only
// ever pass ids they obtained from the store. Errors are reserved for
// backend failures.
type Storage interface {
	// CreateStudent assigns a fresh id and creation time, stores the new
	// student at the front of the roster and returns it. No validation or
	// uniqueness check happens here.
	CreateStudent(data types.StudentFormData) (types.Student, error)

	// GetStudentByID returns the student with id, or ErrNotFound.
	GetStudentByID(id string) (types.Student, error)

	// UpdateStudentByID replaces every field except ID and CreatedAt.
	// The student keeps its position in the roster.
	UpdateStudentByID(id string, data types.StudentFormData) error

	// DeleteStudentByID removes the student with id.
	DeleteStudentByID(id string) error

	// SearchStudents returns the students matching query, newest first.
	// A blank query returns the whole roster. The sequence reflects the
	// roster at the time of the call and can be ranged over repeatedly.
	SearchStudents(query string) (iter.Seq[types.Student], error)
}
