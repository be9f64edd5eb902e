package collection

import (
	"fmt"
	"strings"
)

// Map is an ordered list of key/value pairs kept in two index-aligned
// sequences. Keys are not required to be unique; lookups return the first
// match in insertion order. The zero value is an empty map ready to use.
type Map[K comparable, V comparable] struct {
	keys   *Sequence[K]
	values *Sequence[V]
}

// NewMap returns an empty map.
func NewMap[K comparable, V comparable]() *Map[K, V] {
	return &Map[K, V]{keys: New[K](), values: New[V]()}
}

// Len returns the number of pairs.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.keys.Len()
}

// Append adds the pair (key, value) at the end.
func (m *Map[K, V]) Append(key K, value V) {
	if m.keys == nil {
		m.keys, m.values = New[K](), New[V]()
	}
	m.keys.Append(key)
	m.values.Append(value)
}

// FindKey returns the index of the first pair with the given key, or -1.
func (m *Map[K, V]) FindKey(key K) int {
	if m == nil {
		return -1
	}
	return m.keys.Find(key)
}

// FindValue returns the index of the first pair with the given value, or -1.
func (m *Map[K, V]) FindValue(value V) int {
	if m == nil {
		return -1
	}
	return m.values.Find(value)
}

// KeyAt returns a pointer to the key of pair index. Panics with *IndexError.
func (m *Map[K, V]) KeyAt(index int) *K {
	m.checkIndex(index)
	return m.keys.At(index)
}

// ValueAt returns a pointer to the value of pair index. Panics with *IndexError.
func (m *Map[K, V]) ValueAt(index int) *V {
	m.checkIndex(index)
	return m.values.At(index)
}

// Lookup returns the value paired with the first occurrence of key.
// An absent key is a caller bug and panics with ErrKeyNotFound.
func (m *Map[K, V]) Lookup(key K) *V {
	i := m.FindKey(key)
	if i < 0 {
		panic(fmt.Errorf("%w: %v", ErrKeyNotFound, key))
	}
	return m.values.At(i)
}

// LookupValue returns the key paired with the first occurrence of value.
// An absent value panics with ErrValueNotFound.
func (m *Map[K, V]) LookupValue(value V) *K {
	i := m.FindValue(value)
	if i < 0 {
		panic(fmt.Errorf("%w: %v", ErrValueNotFound, value))
	}
	return m.keys.At(i)
}

// Remove deletes pair index, key and value together. Invalid indices
// return false without touching the map.
func (m *Map[K, V]) Remove(index int) bool {
	if index < 0 || index >= m.Len() {
		return false
	}
	m.keys.Remove(index)
	m.values.Remove(index)
	return true
}

// Keys returns a copy of the keys in pair order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return m.keys.Values()
}

// Values returns a copy of the values in pair order.
func (m *Map[K, V]) Values() []V {
	if m == nil {
		return nil
	}
	return m.values.Values()
}

// Equal reports whether both maps hold the same pairs in the same order.
func (m *Map[K, V]) Equal(other *Map[K, V]) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	return m.keys.Equal(other.keys) && m.values.Equal(other.values)
}

// Clone returns an independent copy.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil {
		return nil
	}
	return &Map[K, V]{keys: m.keys.Clone(), values: m.values.Clone()}
}

// String renders "key, value" per line, or "[Empty Map]".
func (m *Map[K, V]) String() string {
	if m.Len() == 0 {
		return "[Empty Map]\n"
	}
	var b strings.Builder
	for i := 0; i < m.Len(); i++ {
		fmt.Fprintf(&b, "%v, %v\n", *m.keys.At(i), *m.values.At(i))
	}
	return b.String()
}

func (m *Map[K, V]) checkIndex(index int) {
	if index < 0 || index >= m.Len() {
		panic(&IndexError{Index: index, Len: m.Len()})
	}
}
