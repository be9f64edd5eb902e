package models

import "fmt"

// Course is a unit offered by the school. Its name identifies it.
type Course struct {
	Name        string `json:"name"`
	CreditHours int    `json:"credit_hours"`
}

// DefaultCourse returns the placeholder course used before any input is read.
func DefaultCourse() Course {
	return Course{Name: "None"}
}

// Equal compares every field.
func (c Course) Equal(other Course) bool {
	return c == other
}

// SameIdentity reports whether both values name the same course.
func (c Course) SameIdentity(other Course) bool {
	return c.Name == other.Name
}

func (c Course) String() string {
	return fmt.Sprintf("Course Name = %s, Credit Hours = %d", c.Name, c.CreditHours)
}
