package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds {"a":[1,{"b":"x"}],"c":true}.
func sample() Value {
	inner := NewDictionary(1)
	inner.Add("b", String("x"))
	root := NewDictionary(2)
	root.Add("a", Elements(Number(1), ObjectOf(inner)))
	root.Add("c", Bool(true))
	return ObjectOf(root)
}

func TestValue_Payloads(t *testing.T) {
	var testCases = []struct {
		description string
		value       Value
		expectType  Type
		expectName  string
	}{
		{description: "zero value is null", value: Value{}, expectType: TypeNull, expectName: "Null"},
		{description: "true", value: Bool(true), expectType: TypeTrue, expectName: "True"},
		{description: "false", value: Bool(false), expectType: TypeFalse, expectName: "False"},
		{description: "number", value: Number(1.5), expectType: TypeNumber, expectName: "Number"},
		{description: "string", value: String("s"), expectType: TypeString, expectName: "String"},
		{description: "array", value: Elements(), expectType: TypeArray, expectName: "Array"},
		{description: "object", value: ObjectOf(&Dictionary{}), expectType: TypeObject, expectName: "Object"},
		{description: "nil array is null", value: ArrayOf(nil), expectType: TypeNull, expectName: "Null"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expectType, testCase.value.Type())
			assert.Equal(t, testCase.expectName, testCase.value.Type().String())
			assert.Equal(t, testCase.expectType == TypeArray, testCase.value.Array() != nil)
			assert.Equal(t, testCase.expectType == TypeObject, testCase.value.Dictionary() != nil)
		})
	}
	n := Number(2)
	assert.Equal(t, "", n.Text())
	assert.Equal(t, 0.0, String("2").Float())
}

func TestValue_Access(t *testing.T) {
	v := sample()
	got, err := v.Lookup("a", 1, "b")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Text())

	assert.True(t, v.IsDefined("a"))
	assert.False(t, v.IsDefined("z"))
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.True(t, a.IsDefinedAt(1))
	assert.False(t, a.IsDefinedAt(2))
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, v.Len())

	require.NoError(t, v.Set("d", Number(4)))
	assert.Equal(t, []string{"a", "c", "d"}, v.Dictionary().Keys())
	assert.True(t, v.Delete("d"))
	assert.False(t, v.Delete("d"))
	assert.False(t, a.Delete("a"))
	assert.True(t, a.DeleteAt(0))
	assert.False(t, a.DeleteAt(5))
	require.NoError(t, a.SetAt(3, Bool(false)))
	assert.Equal(t, 4, a.Len())
}

func TestValue_AccessErrors(t *testing.T) {
	v := sample()
	var testCases = []struct {
		description string
		err         error
		expect      any
	}{
		{description: "missing property", err: func() error { _, err := v.Lookup("z"); return err }(), expect: &KeyNotFoundError{}},
		{description: "index out of range", err: func() error { _, err := v.Lookup("a", 9); return err }(), expect: &IndexError{}},
		{description: "index on object", err: func() error { _, err := v.Lookup(0); return err }(), expect: &OperationError{}},
		{description: "property on array", err: func() error { _, err := v.Lookup("a", "b"); return err }(), expect: &OperationError{}},
		{description: "nil key", err: func() error { _, err := v.Lookup(nil); return err }(), expect: &ArgumentError{}},
		{description: "nil key put", err: v.Put(nil, Null()), expect: &ArgumentError{}},
		{description: "nil key remove", err: func() error { _, err := v.Remove(nil); return err }(), expect: &ArgumentError{}},
		{description: "float key", err: v.Put(1.5, Null()), expect: &ArgumentError{}},
		{description: "set index on object", err: v.SetAt(0, Null()), expect: &OperationError{}},
		{description: "set property on primitive", err: func() error { n := Number(1); return n.Set("a", Null()) }(), expect: &OperationError{}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			require.Error(t, testCase.err)
			assert.IsType(t, testCase.expect, testCase.err)
		})
	}
}

func TestValue_PutRemove(t *testing.T) {
	v := sample()
	require.NoError(t, v.Put("e", String("e")))
	removed, err := v.Remove("e")
	require.NoError(t, err)
	assert.True(t, removed)
	arr, _ := v.Get("a")
	require.NoError(t, arr.Put(0, String("first")))
	first, _ := arr.At(0)
	assert.Equal(t, "first", first.Text())
	removed, err = arr.Remove(0)
	require.NoError(t, err)
	assert.True(t, removed)
}
