// Package search implements the roster's free-text filter.
//
// A query matches a student when it appears, ignoring case, anywhere in the
// student's name, roll number or class name. A blank query matches
// everyone. There is no index: every call is a linear scan, which is all a
// class roster needs.
package search

import (
	"iter"
	"strings"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// IsBlank reports whether query should be treated as "no filter".
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}

// Matches reports whether student matches query.
//
// Only the blank check trims the query. A query with surrounding spaces is
// matched as typed, so " emma" does not match "Emma Wilson".
func Matches(student types.Student, query string) bool {
	if IsBlank(query) {
		return true
	}
	return contains(student, strings.ToLower(query))
}

// Filter returns a lazy view of the students matching query, in the order
// they appear in students.
//
// The returned sequence can be ranged over any number of times; each pass
// re-scans students. Callers must not mutate students while the sequence is
// in use.
func Filter(students []types.Student, query string) iter.Seq[types.Student] {
	all := IsBlank(query)
	q := strings.ToLower(query)

	return func(yield func(types.Student) bool) {
		for _, s := range students {
			if !all && !contains(s, q) {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// contains expects q to be lowercased already.
func contains(s types.Student, q string) bool {
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.RollNo), q) ||
		strings.Contains(strings.ToLower(s.ClassName), q)
}
