package student

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/idgen"
	"github.com/aanand-mishra/student-roster/internal/storage/memory"
	"github.com/aanand-mishra/student-roster/internal/storage/seed"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
	"github.com/aanand-mishra/student-roster/internal/validation"
)

var fixedNow = time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)

// newServer returns a router over a seeded store. Seeding assigns
// student-3 to John Smith, student-2 to Emma Wilson and student-1 to
// Michael Brown.
func newServer(t *testing.T) (*http.ServeMux, *memory.Store) {
	t.Helper()

	store := memory.New(idgen.NewSequence("student"), func() time.Time { return fixedNow })
	require.NoError(t, seed.Load(store))

	router := http.NewServeMux()
	Register(router, store, validation.New(types.YearWindow(fixedNow)), fixedNow.Year())
	return router, store
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestGetList(t *testing.T) {
	router, _ := newServer(t)

	rec := do(t, router, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	students := decode[[]types.Student](t, rec)
	require.Len(t, students, 3)
	assert.Equal(t, "John Smith", students[0].Name)
	assert.Equal(t, "Michael Brown", students[2].Name)
}

func TestGetList_Query(t *testing.T) {
	router, _ := newServer(t)

	rec := do(t, router, http.MethodGet, "/api/students?q=EMMA", "")
	require.Equal(t, http.StatusOK, rec.Code)

	students := decode[[]types.Student](t, rec)
	require.Len(t, students, 1)
	assert.Equal(t, "Emma Wilson", students[0].Name)
}

func TestGetList_EmptyIsArray(t *testing.T) {
	router, _ := newServer(t)

	rec := do(t, router, http.MethodGet, "/api/students?q=nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestGetByID(t *testing.T) {
	router, _ := newServer(t)

	rec := do(t, router, http.MethodGet, "/api/students/student-2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Emma Wilson", decode[types.Student](t, rec).Name)

	rec = do(t, router, http.MethodGet, "/api/students/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNew(t *testing.T) {
	router, store := newServer(t)

	rec := do(t, router, http.MethodPost, "/api/students",
		`{"name":"Zoe","rollNo":"Z1","age":10,"className":"Class 1","year":2025}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	res := decode[Result](t, rec)
	assert.Equal(t, "student-4", res.Student.ID)
	assert.Equal(t, "Zoe has been added successfully.", res.Message)
	assert.True(t, fixedNow.Equal(res.Student.CreatedAt))
	assert.Equal(t, 4, store.Len())

	rec = do(t, router, http.MethodGet, "/api/students", "")
	students := decode[[]types.Student](t, rec)
	assert.Equal(t, "Zoe", students[0].Name)
}

func TestNew_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "request body is empty"},
		{"malformed json", "{", "unexpected EOF"},
		{"wrong type", `{"age":"ten"}`, "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := newServer(t)

			rec := do(t, router, http.MethodPost, "/api/students", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			res := decode[response.Response](t, rec)
			assert.Equal(t, response.StatusError, res.Status)
			assert.Contains(t, res.Error, tt.want)
			assert.Equal(t, 3, store.Len())
		})
	}
}

func TestNew_ValidationFailure(t *testing.T) {
	router, store := newServer(t)

	rec := do(t, router, http.MethodPost, "/api/students",
		`{"name":"","rollNo":"2025099","age":15,"className":"Class 9","year":2025}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	res := decode[response.Response](t, rec)
	assert.Equal(t, "validation failed", res.Error)
	assert.Equal(t, map[string]string{"name": "Name is required"}, res.Fields)
	assert.Equal(t, 3, store.Len())
}

func TestUpdate(t *testing.T) {
	router, store := newServer(t)

	rec := do(t, router, http.MethodPut, "/api/students/student-2",
		`{"name":"Emma W. Jones","rollNo":"2025102","age":16,"className":"Class 10","year":2026}`)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[Result](t, rec)
	assert.Equal(t, "student-2", res.Student.ID)
	assert.Equal(t, "Emma W. Jones", res.Student.Name)
	assert.Equal(t, "Emma W. Jones's details have been updated.", res.Message)

	got, err := store.GetStudentByID("student-2")
	require.NoError(t, err)
	assert.Equal(t, 16, got.Age)
	assert.True(t, fixedNow.Equal(got.CreatedAt))
}

func TestUpdate_Errors(t *testing.T) {
	router, _ := newServer(t)

	rec := do(t, router, http.MethodPut, "/api/students/missing",
		`{"name":"Ghost","rollNo":"0","age":10,"className":"Class 1","year":2025}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPut, "/api/students/student-2",
		`{"name":"Emma","rollNo":"2025002","age":150,"className":"Class 9","year":2025}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	res := decode[response.Response](t, rec)
	assert.Equal(t, map[string]string{"age": "Age must be between 1 and 100"}, res.Fields)
}

func TestDelete(t *testing.T) {
	router, store := newServer(t)

	rec := do(t, router, http.MethodDelete, "/api/students/student-3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[response.Response](t, rec)
	assert.Equal(t, response.StatusOK, res.Status)
	assert.Equal(t, "John Smith has been removed.", res.Message)
	assert.Equal(t, 2, store.Len())

	rec = do(t, router, http.MethodDelete, "/api/students/student-3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFormOptions(t *testing.T) {
	router, _ := newServer(t)

	rec := do(t, router, http.MethodGet, "/api/form", "")
	require.Equal(t, http.StatusOK, rec.Code)

	form := decode[Form](t, rec)
	assert.Equal(t, types.ClassOptions, form.Classes)
	assert.Equal(t, []int{2020, 2021, 2022, 2023, 2024, 2025, 2026, 2027, 2028, 2029}, form.Years)
	assert.Equal(t, types.YearRange{Min: 2020, Max: 2029}, form.YearRange)
	assert.Equal(t, 2025, form.DefaultYear)
}
