// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The default path is ":memory:", which keeps the roster inside the process
// exactly like the memory store: nothing survives a restart. Pointing the
// path at a file is possible but is not something the application relies
// on.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	// Side-effect import: registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/student-roster/internal/idgen"
	"github.com/aanand-mishra/student-roster/internal/search"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// SQLite is the database-backed roster.
type SQLite struct {
	Db *sql.DB

	ids idgen.Generator
	now func() time.Time
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the database at path, creates the students table if needed and
// returns a ready-to-use *SQLite. A nil now means time.Now.
func New(path string, ids idgen.Generator, now func() time.Time) (*SQLite, error) {
	if now == nil {
		now = time.Now
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Every connection to ":memory:" gets its own empty database, so the
	// pool must never grow past one connection.
	db.SetMaxOpenConns(1)

	// seq orders the roster: the highest seq is the newest student.
	// created_at is stored as Unix nanoseconds.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT    NOT NULL UNIQUE,
			name       TEXT    NOT NULL,
			roll_no    TEXT    NOT NULL,
			age        INTEGER NOT NULL,
			class_name TEXT    NOT NULL,
			year       INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db, ids: ids, now: now}, nil
}

// Close releases the database. With ":memory:" the roster is gone
// afterwards.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateStudent inserts a new row. Its seq makes it the newest student.
func (s *SQLite) CreateStudent(data types.StudentFormData) (types.Student, error) {
	student := types.Student{
		ID:        s.ids.NewID(),
		Name:      data.Name,
		RollNo:    data.RollNo,
		Age:       data.Age,
		ClassName: data.ClassName,
		Year:      data.Year,
		CreatedAt: s.now(),
	}

	stmt, err := s.Db.Prepare(
		"INSERT INTO students (id, name, roll_no, age, class_name, year, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		student.ID,
		student.Name,
		student.RollNo,
		student.Age,
		student.ClassName,
		student.Year,
		student.CreatedAt.UnixNano(),
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return student, nil
}

// GetStudentByID fetches exactly one student by id.
func (s *SQLite) GetStudentByID(id string) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, roll_no, age, class_name, year, created_at FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("GetStudentByID %s: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// UpdateStudentByID rewrites the mutable columns. No matching row means no
// change and no error.
func (s *SQLite) UpdateStudentByID(id string, data types.StudentFormData) error {
	stmt, err := s.Db.Prepare(
		"UPDATE students SET name = ?, roll_no = ?, age = ?, class_name = ?, year = ? WHERE id = ?",
	)
	if err != nil {
		return fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(data.Name, data.RollNo, data.Age, data.ClassName, data.Year, id)
	if err != nil {
		return fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	return nil
}

// DeleteStudentByID removes a student row by id.
func (s *SQLite) DeleteStudentByID(id string) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	return nil
}

// SearchStudents loads the whole roster, newest first, and filters it with
// the same matcher the memory store uses. Matching in Go rather than SQL
// keeps case folding identical for non-ASCII names.
func (s *SQLite) SearchStudents(query string) (iter.Seq[types.Student], error) {
	students, err := s.getStudents()
	if err != nil {
		return nil, err
	}
	return search.Filter(students, query), nil
}

func (s *SQLite) getStudents() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, roll_no, age, class_name, year, created_at FROM students ORDER BY seq DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("SearchStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("SearchStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("SearchStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SearchStudents: rows iteration: %w", err)
	}

	return students, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var (
		student   types.Student
		createdAt int64
	)
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.RollNo,
		&student.Age,
		&student.ClassName,
		&student.Year,
		&createdAt,
	)
	if err != nil {
		return types.Student{}, err
	}
	student.CreatedAt = time.Unix(0, createdAt).UTC()
	return student, nil
}
