// Package tree defines the in-memory JSON value model: a tagged Value and its
// two ordered containers, Array and Dictionary.
//
// A node owning an Array or Dictionary owns its whole subtree. Trees are not
// safe for concurrent mutation; concurrent reads are safe while no goroutine
// mutates.
package tree

// Value is a tagged JSON value. The payload read by an accessor is meaningful
// only when Type matches; mismatched accessors return the zero value.
type Value struct {
	typ  Type
	num  float64
	str  string
	arr  *Array
	dict *Dictionary
}

// Null returns the null value. The zero Value is also null.
func Null() Value { return Value{} }

// Bool returns True or False.
func Bool(b bool) Value {
	if b {
		return Value{typ: TypeTrue}
	}
	return Value{typ: TypeFalse}
}

// Number returns a numeric value.
func Number(f float64) Value { return Value{typ: TypeNumber, num: f} }

// String returns a string value.
func String(s string) Value { return Value{typ: TypeString, str: s} }

// ArrayOf wraps a; a nil array yields null.
func ArrayOf(a *Array) Value {
	if a == nil {
		return Value{}
	}
	return Value{typ: TypeArray, arr: a}
}

// ObjectOf wraps d; a nil dictionary yields null.
func ObjectOf(d *Dictionary) Value {
	if d == nil {
		return Value{}
	}
	return Value{typ: TypeObject, dict: d}
}

// Elements builds an array value holding values.
func Elements(values ...Value) Value {
	a := NewArray(len(values))
	for _, v := range values {
		a.Add(v)
	}
	return ArrayOf(a)
}

func (v Value) Type() Type { return v.typ }

func (v Value) IsNull() bool { return v.typ == TypeNull }

// Bool returns the boolean payload of True/False nodes.
func (v Value) Bool() bool { return v.typ == TypeTrue }

// Float returns the Number payload.
func (v Value) Float() float64 {
	if v.typ != TypeNumber {
		return 0
	}
	return v.num
}

// Text returns the String payload.
func (v Value) Text() string {
	if v.typ != TypeString {
		return ""
	}
	return v.str
}

// Array returns the Array payload or nil.
func (v Value) Array() *Array {
	if v.typ != TypeArray {
		return nil
	}
	return v.arr
}

// Dictionary returns the Object payload or nil.
func (v Value) Dictionary() *Dictionary {
	if v.typ != TypeObject {
		return nil
	}
	return v.dict
}
