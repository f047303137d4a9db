// Package types holds the shared data structures used across the
// application. Handlers, storage, search and validation all import types
// without depending on each other.
package types

import (
	"fmt"
	"time"
)

// Student is one record on the roster.
//
// ID and CreatedAt are assigned by the store when the record is created and
// never change afterwards. Everything else is replaced wholesale by an
// update (see StudentFormData).
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RollNo    string    `json:"rollNo"`
	Age       int       `json:"age"`
	ClassName string    `json:"className"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"createdAt"`
}

// StudentFormData is the mutable part of a Student: the shape accepted by
// create and update.
//
// The validate:"..." tags are read by the validation package. nonblank,
// classname and yearwindow are custom tags registered there.
type StudentFormData struct {
	Name      string `json:"name"      validate:"nonblank,max=100"`
	RollNo    string `json:"rollNo"    validate:"nonblank,max=20"`
	Age       int    `json:"age"       validate:"required,min=1,max=100"`
	ClassName string `json:"className" validate:"required,classname"`
	Year      int    `json:"year"      validate:"required,yearwindow"`
}

// FormData returns the mutable fields of s.
func (s Student) FormData() StudentFormData {
	return StudentFormData{
		Name:      s.Name,
		RollNo:    s.RollNo,
		Age:       s.Age,
		ClassName: s.ClassName,
		Year:      s.Year,
	}
}

// ClassOptions is the fixed, ordered list of class labels a student can
// belong to.
var ClassOptions = func() []string {
	classes := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		classes = append(classes, fmt.Sprintf("Class %d", i))
	}
	return classes
}()

// IsValidClass reports whether name is one of ClassOptions.
func IsValidClass(name string) bool {
	for _, c := range ClassOptions {
		if c == name {
			return true
		}
	}
	return false
}

// YearRange is an inclusive range of acceptable academic years.
// The zero value accepts every year.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// YearWindow returns the ten-year window offered by the form when it is
// opened at now: five years back through four years ahead.
func YearWindow(now time.Time) YearRange {
	y := now.Year()
	return YearRange{Min: y - 5, Max: y + 4}
}

// IsZero reports whether r is unset.
func (r YearRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Contains reports whether year falls inside r.
func (r YearRange) Contains(year int) bool {
	if r.IsZero() {
		return true
	}
	return year >= r.Min && year <= r.Max
}

// Years lists every year in r in ascending order.
func (r YearRange) Years() []int {
	if r.IsZero() || r.Max < r.Min {
		return []int{}
	}
	years := make([]int, 0, r.Max-r.Min+1)
	for y := r.Min; y <= r.Max; y++ {
		years = append(years, y)
	}
	return years
}
