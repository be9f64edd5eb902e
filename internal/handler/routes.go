package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/school-records/internal/middleware"
)

// Routes groups the handlers mounted under the API prefix.
type Routes struct {
	Auth        *AuthHandler
	Students    *StudentHandler
	Courses     *CourseHandler
	Enrollments *EnrollmentHandler
	Reports     *ReportHandler
	Exports     *ExportHandler

	// Guard runs before every mutating route, typically JWT plus RequireRoles.
	Guard []gin.HandlerFunc
	// AuditLogger receives one entry per successful mutation.
	AuditLogger *zap.Logger
}

// Register mounts every route on api.
func (r Routes) Register(api *gin.RouterGroup) {
	api.Use(middleware.ResponseMeta())

	if r.Auth != nil {
		api.POST("/auth/login", r.Auth.Login)
	}

	mutate := func(action string, h gin.HandlerFunc) []gin.HandlerFunc {
		chain := append([]gin.HandlerFunc{}, r.Guard...)
		return append(chain, middleware.Audit(r.AuditLogger, action), h)
	}

	students := api.Group("/students")
	students.GET("", r.Students.List)
	students.GET("/search", r.Students.Search)
	students.GET("/top", r.Students.Top)
	students.GET("/:index", r.Students.Get)
	students.GET("/:index/gpa", r.Students.GPA)
	students.POST("", mutate("register_student", r.Students.Create)...)
	students.DELETE("/:index", mutate("remove_student", r.Students.Delete)...)

	students.GET("/:index/enrollments", r.Enrollments.List)
	students.POST("/:index/enrollments", mutate("enrol_student", r.Enrollments.Enrol)...)
	students.DELETE("/:index/enrollments/:course", mutate("withdraw_student", r.Enrollments.Withdraw)...)
	students.PUT("/:index/enrollments/:course/grade", mutate("assign_grade", r.Enrollments.AssignGrade)...)

	courses := api.Group("/courses")
	courses.GET("", r.Courses.List)
	courses.GET("/search", r.Courses.Search)
	courses.GET("/:index", r.Courses.Get)
	courses.POST("", mutate("offer_course", r.Courses.Create)...)
	courses.DELETE("/:index", mutate("remove_course", r.Courses.Delete)...)

	reports := api.Group("/reports")
	reports.GET("/school", r.Reports.School)
	reports.GET("/school/export", r.Reports.Export)

	if r.Exports != nil {
		reports.POST("/school/exports", mutate("export_report", r.Exports.Create)...)
		reports.GET("/school/exports/:id", r.Exports.Status)
		reports.GET("/files/:token", r.Exports.Download)
	}
}
