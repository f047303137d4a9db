// Package seed loads the demo roster shown when the application starts.
// The sample is for demos and manual testing only.
package seed

import (
	"fmt"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// Students returns the sample roster in display order.
func Students() []types.StudentFormData {
	return []types.StudentFormData{
		{Name: "John Smith", RollNo: "2025001", Age: 16, ClassName: "Class 10", Year: 2025},
		{Name: "Emma Wilson", RollNo: "2025002", Age: 15, ClassName: "Class 9", Year: 2025},
		{Name: "Michael Brown", RollNo: "2025003", Age: 17, ClassName: "Class 11", Year: 2025},
	}
}

// Load adds the sample roster to s. Stores prepend new students, so the
// sample is inserted last-to-first to end up in display order.
func Load(s storage.Storage) error {
	students := Students()
	for i := len(students) - 1; i >= 0; i-- {
		if _, err := s.CreateStudent(students[i]); err != nil {
			return fmt.Errorf("seed.Load: %w", err)
		}
	}
	return nil
}
