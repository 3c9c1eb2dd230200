package typecache

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type meta struct {
	name   string
	fields int
}

func describe(counter *atomic.Int32) func(reflect.Type) *meta {
	return func(t reflect.Type) *meta {
		counter.Add(1)
		ret := &meta{name: t.String()}
		if t.Kind() == reflect.Struct {
			ret.fields = t.NumField()
		}
		return ret
	}
}

func TestTypeDictionary_Get(t *testing.T) {
	type A struct{ X, Y int }
	type B struct{ Z string }
	var testCases = []struct {
		description  string
		types        []reflect.Type
		expectLen    int
		expectComput int32
	}{
		{description: "single type", types: []reflect.Type{reflect.TypeOf(A{})}, expectLen: 1, expectComput: 1},
		{description: "repeated type computed once", types: []reflect.Type{reflect.TypeOf(A{}), reflect.TypeOf(A{})}, expectLen: 1, expectComput: 1},
		{
			description:  "growth beyond initial capacity",
			types:        []reflect.Type{reflect.TypeOf(A{}), reflect.TypeOf(B{}), reflect.TypeOf(0), reflect.TypeOf(""), reflect.TypeOf(1.0), reflect.TypeOf(true), reflect.TypeOf([]int{}), reflect.TypeOf(A{})},
			expectLen:    7,
			expectComput: 7,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			counter := &atomic.Int32{}
			d := New(describe(counter), nil)
			for _, typ := range testCase.types {
				got := d.Get(typ)
				assert.Equal(t, typ.String(), got.name)
			}
			assert.Equal(t, testCase.expectLen, d.Len())
			assert.Equal(t, testCase.expectComput, counter.Load())
			assert.Equal(t, 2, d.Get(reflect.TypeOf(A{})).fields)
		})
	}
}

func TestTypeDictionary_ConcurrentFirstUse(t *testing.T) {
	type Record struct{ A, B, C int }
	counter := &atomic.Int32{}
	d := New(describe(counter), nil)
	typ := reflect.TypeOf(Record{})
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := d.Get(typ)
			assert.Equal(t, &meta{name: typ.String(), fields: 3}, got)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, d.Len())
	assert.GreaterOrEqual(t, counter.Load(), int32(1))
}
