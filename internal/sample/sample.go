// Package sample produces random students and letter grades for
// demonstrations and load tests. Callers own the random source so runs are
// reproducible.
package sample

import (
	"math/rand"
	"strings"

	"github.com/noah-isme/school-records/internal/models"
)

const nameLength = 10

// Generator draws sample data from an injected source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a generator over rnd.
func New(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// NewSeeded returns a generator with its own source seeded with seed.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// Intn exposes the underlying source for callers that pick indices.
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Student returns a student with capitalised ten letter names born between
// 1998 and 2002. Days run 1 to 30 regardless of month.
func (g *Generator) Student() models.Student {
	first := g.name()
	last := g.name()
	return models.Student{
		FirstName: first,
		LastName:  last,
		DateOfBirth: models.Date{
			Year:  1998 + g.rnd.Intn(5),
			Month: 1 + g.rnd.Intn(12),
			Day:   1 + g.rnd.Intn(30),
		},
	}
}

// LetterGrade returns a final grade weighted A 1, B 2, C 3, D 2, F 3 out of 11.
func (g *Generator) LetterGrade() models.LetterGrade {
	switch n := g.rnd.Intn(11); {
	case n == 0:
		return models.GradeA
	case n <= 2:
		return models.GradeB
	case n <= 5:
		return models.GradeC
	case n <= 7:
		return models.GradeD
	default:
		return models.GradeF
	}
}

func (g *Generator) name() string {
	var b strings.Builder
	b.Grow(nameLength)
	b.WriteByte(byte('A' + g.rnd.Intn(26)))
	for i := 1; i < nameLength; i++ {
		b.WriteByte(byte('a' + g.rnd.Intn(26)))
	}
	return b.String()
}
