package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-records/internal/models"
	"github.com/noah-isme/school-records/internal/service"
)

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct{ Code string } `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func buildSchoolRouter(guard ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	school := service.NewSchoolService(service.SchoolServiceParams{})
	reports := service.NewReportService(school, nil, 0, nil)

	r := gin.New()
	Routes{
		Students:    NewStudentHandler(school),
		Courses:     NewCourseHandler(school),
		Enrollments: NewEnrollmentHandler(school),
		Reports:     NewReportHandler(reports),
		Guard:       guard,
	}.Register(r.Group("/api/v1"))
	return r
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if dest != nil {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return env
}

func TestSchoolRoutesIntegration(t *testing.T) {
	router := buildSchoolRouter()

	t.Run("empty report", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/reports/school", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
		assert.Contains(t, w.Body.String(), "No student has been registered yet.")
	})

	t.Run("register students", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/students",
			`{"first_name":"Ann","last_name":"Lee","date_of_birth":{"day":1,"month":2,"year":2000}}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var item struct {
			Index     int    `json:"index"`
			FirstName string `json:"first_name"`
		}
		decode(t, w, &item)
		assert.Equal(t, 0, item.Index)
		assert.Equal(t, "Ann", item.FirstName)

		w = performRequest(router, http.MethodPost, "/api/v1/students", `{"first_name":"Bob","last_name":"Ray"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = performRequest(router, http.MethodPost, "/api/v1/students", `{"first_name":"Ann","last_name":"Lee"}`)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = performRequest(router, http.MethodPost, "/api/v1/students", `{"first_name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("offer courses", func(t *testing.T) {
		for _, body := range []string{`{"name":"CS101","credit_hours":3}`, `{"name":"CS102","credit_hours":4}`} {
			w := performRequest(router, http.MethodPost, "/api/v1/courses", body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}
		w := performRequest(router, http.MethodPost, "/api/v1/courses", `{"name":"CS101","credit_hours":1}`)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = performRequest(router, http.MethodGet, "/api/v1/courses", "")
		require.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w, nil)
		assert.EqualValues(t, 2, env.Meta["total"])
	})

	t.Run("search", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/students/search?first=Bob&last=Ray", "")
		require.Equal(t, http.StatusOK, w.Code)
		w = performRequest(router, http.MethodGet, "/api/v1/students/search?first=Farhan&last=Rahmoon", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = performRequest(router, http.MethodGet, "/api/v1/courses/search?name=CMPT225", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = performRequest(router, http.MethodGet, "/api/v1/courses/search?name=CS102", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("enrol and grade", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/students/0/enrollments", `{"course_index":0}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = performRequest(router, http.MethodPost, "/api/v1/students/0/enrollments", `{"course_index":1}`)
		require.Equal(t, http.StatusCreated, w.Code)
		w = performRequest(router, http.MethodPost, "/api/v1/students/0/enrollments", `{"course_index":1}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		w = performRequest(router, http.MethodPost, "/api/v1/students/0/enrollments", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = performRequest(router, http.MethodPut, "/api/v1/students/0/enrollments/0/grade", `{"grade":"A"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = performRequest(router, http.MethodPut, "/api/v1/students/0/enrollments/1/grade", `{"grade":"B"}`)
		require.Equal(t, http.StatusOK, w.Code)
		w = performRequest(router, http.MethodPut, "/api/v1/students/0/enrollments/1/grade", `{"grade":"E"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = performRequest(router, http.MethodPut, "/api/v1/students/1/enrollments/1/grade", `{"grade":"B"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var gpa struct {
			GPA float64 `json:"gpa"`
		}
		w = performRequest(router, http.MethodGet, "/api/v1/students/0/gpa", "")
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &gpa)
		assert.InDelta(t, 24.0/7.0, gpa.GPA, 1e-9)

		var top struct {
			StudentIndex int `json:"student_index"`
		}
		w = performRequest(router, http.MethodGet, "/api/v1/students/top", "")
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &top)
		assert.Equal(t, 0, top.StudentIndex)
	})

	t.Run("report reflects enrollments", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/reports/school", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Student at index 0\n0, A\n1, B\nGPA = 3.42857\n")
		assert.Contains(t, w.Body.String(), "Student at index 1\n[Empty Map]\nGPA = 0\n")

		w = performRequest(router, http.MethodGet, "/api/v1/reports/school/export?format=csv", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
		assert.Contains(t, w.Body.String(), "Ann Lee")

		w = performRequest(router, http.MethodGet, "/api/v1/reports/school/export?format=doc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remove course renumbers enrollments", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, "/api/v1/courses/0", "")
		require.Equal(t, http.StatusNoContent, w.Code)

		var enrollments struct {
			Enrollments []struct {
				CourseIndex int                `json:"course_index"`
				Course      string             `json:"course"`
				Grade       models.LetterGrade `json:"grade"`
			} `json:"enrollments"`
			GPA float64 `json:"gpa"`
		}
		w = performRequest(router, http.MethodGet, "/api/v1/students/0/enrollments", "")
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &enrollments)
		require.Len(t, enrollments.Enrollments, 1)
		assert.Equal(t, 0, enrollments.Enrollments[0].CourseIndex)
		assert.Equal(t, "CS102", enrollments.Enrollments[0].Course)
		assert.InDelta(t, 3.0, enrollments.GPA, 1e-9)
	})

	t.Run("withdraw and remove student", func(t *testing.T) {
		w := performRequest(router, http.MethodDelete, "/api/v1/students/0/enrollments/0", "")
		require.Equal(t, http.StatusNoContent, w.Code)
		w = performRequest(router, http.MethodDelete, "/api/v1/students/0/enrollments/0", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = performRequest(router, http.MethodDelete, "/api/v1/students/0", "")
		require.Equal(t, http.StatusNoContent, w.Code)
		w = performRequest(router, http.MethodGet, "/api/v1/students/0", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"first_name":"Bob"`)
		w = performRequest(router, http.MethodGet, "/api/v1/students/1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad index", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/students/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = performRequest(router, http.MethodDelete, "/api/v1/courses/-1", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSchoolRoutesGuardMutations(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	router := buildSchoolRouter(deny)

	w := performRequest(router, http.MethodPost, "/api/v1/courses", `{"name":"CS101","credit_hours":3}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = performRequest(router, http.MethodPut, "/api/v1/students/0/enrollments/0/grade", `{"grade":"A"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodGet, "/api/v1/courses", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(router, http.MethodGet, "/api/v1/reports/school", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
