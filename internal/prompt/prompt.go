// Package prompt reads courses and students interactively. Values are read
// as whitespace separated tokens, one prompt per field.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/noah-isme/school-records/internal/models"
)

// Reader prompts on out and scans answers from in.
type Reader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewReader returns a Reader over in and out.
func NewReader(in io.Reader, out io.Writer) *Reader {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Reader{scanner: scanner, out: out}
}

// ReadCourse asks for the course name and its credit hours.
func (r *Reader) ReadCourse() (models.Course, error) {
	c := models.DefaultCourse()
	var err error
	if c.Name, err = r.word("Please input the name of the course: "); err != nil {
		return c, err
	}
	if c.CreditHours, err = r.number("Please input the credit hours of the course: "); err != nil {
		return c, err
	}
	return c, nil
}

// ReadStudent asks for first name, last name and date of birth (month, day, year).
func (r *Reader) ReadStudent() (models.Student, error) {
	s := models.DefaultStudent()
	var err error
	if s.FirstName, err = r.word("Please enter your first name: "); err != nil {
		return s, err
	}
	if s.LastName, err = r.word("Please enter your last name: "); err != nil {
		return s, err
	}
	if _, err = fmt.Fprintln(r.out, "Please enter your date of birth: "); err != nil {
		return s, err
	}
	if s.DateOfBirth.Month, err = r.number("\tMonth: "); err != nil {
		return s, err
	}
	if s.DateOfBirth.Day, err = r.number("\tDay: "); err != nil {
		return s, err
	}
	if s.DateOfBirth.Year, err = r.number("\tYear: "); err != nil {
		return s, err
	}
	return s, nil
}

func (r *Reader) word(label string) (string, error) {
	if _, err := io.WriteString(r.out, label); err != nil {
		return "", err
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return r.scanner.Text(), nil
}

func (r *Reader) number(label string) (int, error) {
	raw, err := r.word(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("expected a whole number, got %q", raw)
	}
	return n, nil
}
