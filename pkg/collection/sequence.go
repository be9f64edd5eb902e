// Package collection provides small ordered containers with value semantics.
//
// Element access comes in two flavours. At and the Map accessors treat an
// invalid index or a missing key as a caller bug and panic. Remove tolerates
// an invalid index and reports it through its boolean result.
package collection

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

var (
	// ErrKeyNotFound is the panic value (wrapped) of Map.Lookup for an absent key.
	ErrKeyNotFound = errors.New("collection: key not found")
	// ErrValueNotFound is the panic value (wrapped) of Map.LookupValue for an absent value.
	ErrValueNotFound = errors.New("collection: value not found")
)

// IndexError is the panic value raised on access outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("collection: index %d out of range [0,%d)", e.Index, e.Len)
}

// Sequence is an ordered, zero-based list that owns its elements.
// The zero value is an empty sequence whose elements compare with
// reflect.DeepEqual and are stored without cloning.
type Sequence[T any] struct {
	items []T
	equal func(a, b T) bool
	clone func(T) T
}

// New builds a sequence whose elements compare with ==.
func New[T comparable](items ...T) *Sequence[T] {
	return NewFunc(func(a, b T) bool { return a == b }, nil, items...)
}

// NewFunc builds a sequence with explicit element equality. clone, when not
// nil, deep-copies an element; it is applied on Append and Clone so that the
// sequence never shares mutable state with its callers.
func NewFunc[T any](equal func(a, b T) bool, clone func(T) T, items ...T) *Sequence[T] {
	s := &Sequence[T]{equal: equal, clone: clone, items: make([]T, 0, len(items))}
	for _, item := range items {
		s.Append(item)
	}
	return s
}

// Len returns the number of elements.
func (s *Sequence[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns a pointer to the element at index. The pointer stays valid
// until the next Append or Remove.
func (s *Sequence[T]) At(index int) *T {
	if index < 0 || index >= s.Len() {
		panic(&IndexError{Index: index, Len: s.Len()})
	}
	return &s.items[index]
}

// Find returns the first index holding an element equal to value, or -1.
func (s *Sequence[T]) Find(value T) int {
	for i := 0; i < s.Len(); i++ {
		if s.eq(s.items[i], value) {
			return i
		}
	}
	return -1
}

func (s *Sequence[T]) eq(a, b T) bool {
	if s.equal == nil {
		return reflect.DeepEqual(a, b)
	}
	return s.equal(a, b)
}

// Append adds value at the end.
func (s *Sequence[T]) Append(value T) {
	if s.clone != nil {
		value = s.clone(value)
	}
	s.items = append(s.items, value)
}

// Remove deletes the element at index and shifts later elements down.
// It returns false and leaves the sequence untouched when index is invalid.
func (s *Sequence[T]) Remove(index int) bool {
	if index < 0 || index >= s.Len() {
		return false
	}
	s.items = slices.Delete(s.items, index, index+1)
	return true
}

// Equal reports whether both sequences hold equal elements in the same order.
func (s *Sequence[T]) Equal(other *Sequence[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if !s.eq(s.items[i], other.items[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent deep copy.
func (s *Sequence[T]) Clone() *Sequence[T] {
	if s == nil {
		return nil
	}
	out := &Sequence[T]{equal: s.equal, clone: s.clone, items: make([]T, len(s.items))}
	for i, item := range s.items {
		if s.clone != nil {
			item = s.clone(item)
		}
		out.items[i] = item
	}
	return out
}

// Values returns a shallow copy of the elements.
func (s *Sequence[T]) Values() []T {
	if s == nil {
		return nil
	}
	return slices.Clone(s.items)
}

// String renders one element per line, or "[Empty List]".
func (s *Sequence[T]) String() string {
	if s.Len() == 0 {
		return "[Empty List]"
	}
	var b strings.Builder
	for _, item := range s.items {
		fmt.Fprintln(&b, item)
	}
	return b.String()
}
