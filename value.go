package jsondiff

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind enumerates the JSON value types
type Kind uint8

const (
	// KindNull is the JSON null literal
	KindNull Kind = iota
	// KindBool is true or false
	KindBool
	// KindNumber is any JSON number
	KindNumber
	// KindString is a JSON string
	KindString
	// KindArray is an ordered list of values
	KindArray
	// KindObject is an ordered mapping of unique string keys to values
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is a JSON value. The set of implementations is closed: Null, Bool,
// Number, String, *Array and *Object. Switch on the concrete type or on
// Kind() to handle every case.
type Value interface {
	Kind() Kind
	sealed()
}

// Null is the JSON null value
type Null struct{}

// Bool is a JSON boolean
type Bool bool

// Number is a JSON number, stored as its literal text so integers of any size
// survive a round trip
type Number string

// String is a JSON string
type String string

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }

func (Null) sealed()   {}
func (Bool) sealed()   {}
func (Number) sealed() {}
func (String) sealed() {}

// Float reads the number as a float64
func (n Number) Float() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// canonical returns a spelling that is equal for numerically equal numbers,
// eg: 1, 1.0 and 1e0
func (n Number) canonical() string {
	if f, err := n.Float(); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return string(n)
}

// Array is an ordered, mutable list of values
type Array struct {
	elems []Value
}

// NewArray creates an array holding vals
func NewArray(vals ...Value) *Array {
	a := &Array{elems: make([]Value, 0, len(vals))}
	for _, v := range vals {
		a.elems = append(a.elems, orNull(v))
	}
	return a
}

// Kind implements Value
func (a *Array) Kind() Kind { return KindArray }
func (a *Array) sealed()    {}

// Len returns the number of elements
func (a *Array) Len() int { return len(a.elems) }

// Get returns element i, which must be in range
func (a *Array) Get(i int) Value { return a.elems[i] }

// Set replaces element i, which must be in range
func (a *Array) Set(i int, v Value) { a.elems[i] = orNull(v) }

// Push appends v
func (a *Array) Push(v Value) { a.elems = append(a.elems, orNull(v)) }

// Insert places v at index i, shifting elements at i and later to the right.
// i must be in [0, Len()]
func (a *Array) Insert(i int, v Value) {
	a.elems = append(a.elems, nil)
	copy(a.elems[i+1:], a.elems[i:])
	a.elems[i] = orNull(v)
}

// Remove deletes element i, shifting later elements left
func (a *Array) Remove(i int) {
	copy(a.elems[i:], a.elems[i+1:])
	a.elems[len(a.elems)-1] = nil
	a.elems = a.elems[:len(a.elems)-1]
}

// Values returns the underlying elements. callers must not modify the slice
func (a *Array) Values() []Value { return a.elems }

// Object is a mutable mapping of unique string keys to values that remembers
// insertion order
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject creates an empty object
func NewObject() *Object {
	return &Object{vals: map[string]Value{}}
}

// Kind implements Value
func (o *Object) Kind() Kind { return KindObject }
func (o *Object) sealed()    {}

// Len returns the number of members
func (o *Object) Len() int { return len(o.keys) }

// Get returns the value of key & whether the key is present
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Has reports whether key is a member
func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Set assigns key. new keys are appended, existing keys keep their position
func (o *Object) Set(key string, v Value) {
	if o.vals == nil {
		o.vals = map[string]Value{}
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = orNull(v)
}

// Remove deletes key, reporting whether it was present
func (o *Object) Remove(key string) bool {
	if _, ok := o.vals[key]; !ok {
		return false
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys lists member keys in insertion order. callers must not modify the
// returned slice
func (o *Object) Keys() []string { return o.keys }

// SortedKeys lists member keys in ascending order
func (o *Object) SortedKeys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	sort.Strings(keys)
	return keys
}

func orNull(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v
}

// IsNull reports whether v is JSON null. a nil Value counts as null
func IsNull(v Value) bool { return v == nil || v.Kind() == KindNull }

// IsObject reports whether v is an object
func IsObject(v Value) bool { return v != nil && v.Kind() == KindObject }

// IsArray reports whether v is an array
func IsArray(v Value) bool { return v != nil && v.Kind() == KindArray }

// IsPrimitive reports whether v is a bool, number or string
func IsPrimitive(v Value) bool {
	if v == nil {
		return false
	}
	switch v.Kind() {
	case KindBool, KindNumber, KindString:
		return true
	}
	return false
}

// Equal reports whether a and b are deeply equal. object member order is
// not significant, array element order is
func Equal(a, b Value) bool {
	a, b = orNull(a), orNull(b)
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Null:
		return true
	case Bool:
		return x == b.(Bool)
	case Number:
		return x.canonical() == b.(Number).canonical()
	case String:
		return x == b.(String)
	case *Array:
		y := b.(*Array)
		if x.Len() != y.Len() {
			return false
		}
		for i, v := range x.elems {
			if !Equal(v, y.elems[i]) {
				return false
			}
		}
		return true
	case *Object:
		y := b.(*Object)
		if x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			yv, ok := y.vals[k]
			if !ok || !Equal(x.vals[k], yv) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy of v
func Clone(v Value) Value {
	switch x := orNull(v).(type) {
	case *Array:
		cp := &Array{elems: make([]Value, len(x.elems))}
		for i, el := range x.elems {
			cp.elems[i] = Clone(el)
		}
		return cp
	case *Object:
		cp := &Object{keys: make([]string, len(x.keys)), vals: make(map[string]Value, len(x.vals))}
		copy(cp.keys, x.keys)
		for k, el := range x.vals {
			cp.vals[k] = Clone(el)
		}
		return cp
	default:
		return x
	}
}

// FromNative converts a document tree made of go types, as produced by
// encoding/json unmarshaling into an interface{}, into a Value. maps have no
// order, their keys are added in sorted order
func FromNative(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return Number(x), nil
	case float64:
		return Number(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case float32:
		return Number(strconv.FormatFloat(float64(x), 'g', -1, 32)), nil
	case int:
		return Number(strconv.Itoa(x)), nil
	case int64:
		return Number(strconv.FormatInt(x, 10)), nil
	case int32:
		return Number(strconv.FormatInt(int64(x), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(x, 10)), nil
	case []interface{}:
		arr := &Array{elems: make([]Value, len(x))}
		for i, el := range x {
			cv, err := FromNative(el)
			if err != nil {
				return nil, err
			}
			arr.elems[i] = cv
		}
		return arr, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			cv, err := FromNative(x[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, cv)
		}
		return obj, nil
	case Value:
		return x, nil
	default:
		return nil, fmt.Errorf("unexpected type: %T", v)
	}
}

// ToNative converts v into go types: map[string]interface{}, []interface{},
// float64, string, bool & nil. numbers that don't fit a float64 come back as
// json.Number
func ToNative(v Value) interface{} {
	switch x := orNull(v).(type) {
	case Null:
		return nil
	case Bool:
		return bool(x)
	case Number:
		if f, err := x.Float(); err == nil {
			return f
		}
		return json.Number(x)
	case String:
		return string(x)
	case *Array:
		out := make([]interface{}, len(x.elems))
		for i, el := range x.elems {
			out[i] = ToNative(el)
		}
		return out
	case *Object:
		out := make(map[string]interface{}, len(x.keys))
		for _, k := range x.keys {
			out[k] = ToNative(x.vals[k])
		}
		return out
	}
	return nil
}
