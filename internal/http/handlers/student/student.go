// Package student contains the HTTP handlers for the roster.
//
// Handlers are built with factory functions: each factory receives its
// dependencies (storage, validator) once at startup and returns the
// http.HandlerFunc that serves every request.
//
//	router.HandleFunc("POST /api/students", student.New(storage, v))
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
	"github.com/aanand-mishra/student-roster/internal/validation"
)

// Result is the body of a successful create or update: the stored student
// plus the confirmation shown to the user.
type Result struct {
	Student types.Student `json:"student"`
	Message string        `json:"message"`
}

// Form describes the choices offered by the add/edit form.
type Form struct {
	Classes     []string        `json:"classes"`
	Years       []int           `json:"years"`
	YearRange   types.YearRange `json:"yearRange"`
	DefaultYear int             `json:"defaultYear"`
}

// Register mounts the roster routes on router:
//
//	GET    /api/students        → list, optionally filtered by ?q=
//	POST   /api/students        → create a student
//	GET    /api/students/{id}   → get one student
//	PUT    /api/students/{id}   → update a student
//	DELETE /api/students/{id}   → delete a student
//	GET    /api/form            → class and year choices for the form
func Register(router *http.ServeMux, storage storage.Storage, v *validation.Validator, currentYear int) {
	router.HandleFunc("GET /api/students", GetList(storage))
	router.HandleFunc("POST /api/students", New(storage, v))
	router.HandleFunc("GET /api/students/{id}", GetByID(storage))
	router.HandleFunc("PUT /api/students/{id}", Update(storage, v))
	router.HandleFunc("DELETE /api/students/{id}", Delete(storage))
	router.HandleFunc("GET /api/form", FormOptions(v, currentYear))
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "name": "Zoe", "rollNo": "Z1", "age": 10, "className": "Class 1", "year": 2025 }
//
// Success response (201 Created):
//
//	{ "student": { "id": "...", ... }, "message": "Zoe has been added successfully." }
//
// Error responses:
//
//	400 Bad Request : empty body, malformed JSON, or failed validation
//	500 Internal    : storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage, v *validation.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		data, ok := decodeForm(w, r, v)
		if !ok {
			return
		}

		student, err := storage.CreateStudent(data)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.String("id", student.ID))

		response.WriteJSON(w, http.StatusCreated, Result{
			Student: student,
			Message: fmt.Sprintf("%s has been added successfully.", student.Name),
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
//	200 OK        : the student
//	404 Not Found : no student with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		student, ok := lookup(w, storage, id)
		if !ok {
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students?q=<query>
//
// Returns the roster newest first, filtered by q when it is not blank.
// Returns an empty array [] (not null) when nothing matches.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		slog.Info("listing students", slog.String("query", query))

		seq, err := storage.SearchStudents(query)
		if err != nil {
			slog.Error("error listing students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		students := make([]types.Student, 0)
		for s := range seq {
			students = append(students, s)
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces every field except id and createdAt.
//
//	200 OK          : { "student": {...}, "message": "Zoe's details have been updated." }
//	400 Bad Request : empty body, malformed JSON, or failed validation
//	404 Not Found   : no student with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage, v *validation.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		if _, ok := lookup(w, storage, id); !ok {
			return
		}

		data, ok := decodeForm(w, r, v)
		if !ok {
			return
		}

		if err := storage.UpdateStudentByID(id, data); err != nil {
			slog.Error("error updating student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		updated, ok := lookup(w, storage, id)
		if !ok {
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, Result{
			Student: updated,
			Message: fmt.Sprintf("%s's details have been updated.", updated.Name),
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
//	200 OK        : { "status": "ok", "message": "John Smith has been removed." }
//	404 Not Found : no student with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		student, ok := lookup(w, storage, id)
		if !ok {
			return
		}

		if err := storage.DeleteStudentByID(id); err != nil {
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK,
			response.OK(fmt.Sprintf("%s has been removed.", student.Name)))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// FormOptions handles GET /api/form
// Returns the class labels and the year window the validator enforces.
// The default year is the current year when it falls inside the window.
// ─────────────────────────────────────────────────────────────────────────────
func FormOptions(v *validation.Validator, currentYear int) http.HandlerFunc {
	years := v.Years()
	def := currentYear
	if !years.Contains(def) {
		def = years.Min
	}

	form := Form{
		Classes:     types.ClassOptions,
		Years:       years.Years(),
		YearRange:   years,
		DefaultYear: def,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, form)
	}
}

// decodeForm reads and validates the request body. On failure it writes the
// error response and returns false.
func decodeForm(w http.ResponseWriter, r *http.Request, v *validation.Validator) (types.StudentFormData, bool) {
	var data types.StudentFormData

	err := json.NewDecoder(r.Body).Decode(&data)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return data, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return data, false
	}

	if errs := v.Validate(data); !errs.Valid() {
		slog.Info("validation failed", slog.Any("fields", map[string]string(errs)))
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
		return data, false
	}

	return data, true
}

// lookup fetches a student and writes 404/500 when it cannot.
func lookup(w http.ResponseWriter, s storage.Storage, id string) (types.Student, bool) {
	student, err := s.GetStudentByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound,
			response.GeneralError(fmt.Errorf("no student found with id: %s", id)))
		return student, false
	}
	if err != nil {
		slog.Error("error getting student",
			slog.String("id", id),
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
		return student, false
	}
	return student, true
}
