package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Records API",
        "description": "Students, courses, enrollments and letter grades held in memory",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Administrator login"},
        {"name": "Students", "description": "Student registration, lookup and GPA"},
        {"name": "Courses", "description": "Course offering and lookup"},
        {"name": "Enrollments", "description": "Enrollments and letter grades"},
        {"name": "Reports", "description": "Whole-school report"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Administrator login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List registered students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Same first and last name already registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/search": {
            "get": {
                "tags": ["Students"],
                "summary": "Find a student by name",
                "parameters": [
                    {"name": "first", "in": "query", "required": true, "type": "string"},
                    {"name": "last", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not a student", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/top": {
            "get": {
                "tags": ["Students"],
                "summary": "Student with the highest GPA",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No students", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{index}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get the student at an index",
                "parameters": [{"name": "index", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No student at index", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Remove a student and its enrollments",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "index", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "No student at index", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{index}/gpa": {
            "get": {
                "tags": ["Students"],
                "summary": "Credit-weighted GPA over graded courses",
                "parameters": [{"name": "index", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{index}/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List a student's enrollments",
                "parameters": [{"name": "index", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enrol a student in a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "index", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrolRequest"}}
                ],
                "responses": {
                    "201": {"description": "Enrolled with grade N", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{index}/enrollments/{course}": {
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Withdraw a student from a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "index", "in": "path", "required": true, "type": "integer"},
                    {"name": "course", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Withdrawn"},
                    "404": {"description": "Not enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{index}/enrollments/{course}/grade": {
            "put": {
                "tags": ["Enrollments"],
                "summary": "Assign a letter grade",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "index", "in": "path", "required": true, "type": "integer"},
                    {"name": "course", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List offered courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Offer a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/OfferCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Course name already offered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/search": {
            "get": {
                "tags": ["Courses"],
                "summary": "Find a course by name",
                "parameters": [{"name": "name", "in": "query", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not offered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{index}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get the course at an index",
                "parameters": [{"name": "index", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No course at index", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Remove a course and withdraw its students",
                "description": "Courses after the removed one move down by one index.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "index", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "No course at index", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/school": {
            "get": {
                "tags": ["Reports"],
                "summary": "Formatted school report",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Plain text report", "schema": {"type": "string"}}
                }
            }
        },
        "/reports/school/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download the school report",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/school/exports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue a school report export",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportJobRequest"}}],
                "responses": {
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/school/exports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export job status",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown job", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/files/{token}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a finished export",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [{"name": "token", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "DateInput": {
            "type": "object",
            "properties": {
                "day": {"type": "integer"},
                "month": {"type": "integer"},
                "year": {"type": "integer"}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "required": ["first_name", "last_name"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "date_of_birth": {"$ref": "#/definitions/DateInput"}
            }
        },
        "OfferCourseRequest": {
            "type": "object",
            "required": ["name", "credit_hours"],
            "properties": {
                "name": {"type": "string"},
                "credit_hours": {"type": "integer", "minimum": 0}
            }
        },
        "EnrolRequest": {
            "type": "object",
            "required": ["course_index"],
            "properties": {
                "course_index": {"type": "integer", "minimum": 0}
            }
        },
        "AssignGradeRequest": {
            "type": "object",
            "required": ["grade"],
            "properties": {
                "grade": {"type": "string", "enum": ["A", "B", "C", "D", "F"]}
            }
        },
        "ExportJobRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
