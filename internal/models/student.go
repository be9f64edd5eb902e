package models

import "fmt"

// Date is a day/month/year triple. No calendar validation is applied.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (d Date) String() string {
	return fmt.Sprintf("%d-%d-%d", d.Day, d.Month, d.Year)
}

// Student represents a learner registered in the school.
type Student struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth Date   `json:"date_of_birth"`
}

// DefaultStudent returns the placeholder student used before any input is read.
func DefaultStudent() Student {
	return Student{FirstName: "None", LastName: "None"}
}

// Equal compares names and date of birth.
func (s Student) Equal(other Student) bool {
	return s == other
}

// SameIdentity reports whether both values carry the same first and last name.
// Registration uniqueness is decided on this subset only.
func (s Student) SameIdentity(other Student) bool {
	return s.FirstName == other.FirstName && s.LastName == other.LastName
}

// FullName joins first and last name.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

func (s Student) String() string {
	return fmt.Sprintf("Full Name = %s: DOB (d-m-y) = %s", s.FullName(), s.DateOfBirth)
}
