package features

import (
	"fmt"
	"strings"
)

// Kind tells whether a field holds a number or a category label
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	if k == Categorical {
		return "categorical"
	}
	return "numeric"
}

// Value is a single feature value
type Value struct {
	Kind     Kind
	Number   float64
	Category string
}

func (v Value) String() string {
	if v.Kind == Categorical {
		return v.Category
	}
	return fmt.Sprintf("%g", v.Number)
}

// FeatureVector is an ordered set of named values. Field order is fixed by
// the schema and does not depend on which model reads the vector.
type FeatureVector struct {
	names  []string
	values []Value
	index  map[string]int
}

func newVector(capacity int) *FeatureVector {
	return &FeatureVector{
		names:  make([]string, 0, capacity),
		values: make([]Value, 0, capacity),
		index:  make(map[string]int, capacity),
	}
}

func (fv *FeatureVector) setNumber(name string, v float64) {
	fv.set(name, Value{Kind: Numeric, Number: v})
}

func (fv *FeatureVector) setCategory(name, v string) {
	fv.set(name, Value{Kind: Categorical, Category: v})
}

func (fv *FeatureVector) set(name string, v Value) {
	if i, ok := fv.index[name]; ok {
		fv.values[i] = v
		return
	}
	fv.index[name] = len(fv.names)
	fv.names = append(fv.names, name)
	fv.values = append(fv.values, v)
}

// Len returns the number of fields
func (fv FeatureVector) Len() int {
	return len(fv.names)
}

// Names returns the field names in schema order
func (fv FeatureVector) Names() []string {
	out := make([]string, len(fv.names))
	copy(out, fv.names)
	return out
}

// Has reports whether the vector carries the named field
func (fv FeatureVector) Has(name string) bool {
	_, ok := fv.index[name]
	return ok
}

// Get returns the value of the named field
func (fv FeatureVector) Get(name string) (Value, bool) {
	i, ok := fv.index[name]
	if !ok {
		return Value{}, false
	}
	return fv.values[i], true
}

// Number returns a numeric field. ok is false when the field is absent or
// categorical.
func (fv FeatureVector) Number(name string) (float64, bool) {
	v, ok := fv.Get(name)
	if !ok || v.Kind != Numeric {
		return 0, false
	}
	return v.Number, true
}

// Category returns a categorical field. ok is false when the field is absent
// or numeric.
func (fv FeatureVector) Category(name string) (string, bool) {
	v, ok := fv.Get(name)
	if !ok || v.Kind != Categorical {
		return "", false
	}
	return v.Category, true
}

// Each calls fn for every field in order
func (fv FeatureVector) Each(fn func(name string, v Value)) {
	for i, name := range fv.names {
		fn(name, fv.values[i])
	}
}

// String renders the vector as name=value pairs, for logging
func (fv FeatureVector) String() string {
	var b strings.Builder
	fv.Each(func(name string, v Value) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(v.String())
	})
	return b.String()
}
