package serializer

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dynajson/parser"
	"github.com/viant/dynajson/tree"
)

func object(kv ...any) tree.Value {
	d := tree.NewDictionary(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		d.Add(kv[i].(string), kv[i+1].(tree.Value))
	}
	return tree.ObjectOf(d)
}

func TestSerializer_Serialize(t *testing.T) {
	var testCases = []struct {
		description string
		value       tree.Value
		expect      string
	}{
		{description: "null", value: tree.Null(), expect: "null"},
		{description: "booleans", value: tree.Elements(tree.Bool(true), tree.Bool(false)), expect: "[true,false]"},
		{description: "numbers", value: tree.Elements(tree.Number(0), tree.Number(1), tree.Number(-1.5), tree.Number(1e21)), expect: "[0,1,-1.5,1e21]"},
		{description: "empty array", value: tree.Elements(), expect: "[]"},
		{description: "empty object", value: object(), expect: "{}"},
		{description: "nulls", value: tree.Elements(tree.Null(), tree.Null()), expect: "[null,null]"},
		{description: "object", value: object("a", tree.Number(0), "b", tree.Bool(false)), expect: `{"a":0,"b":false}`},
		{description: "null members", value: object("S", tree.Null(), "Obj", tree.Null()), expect: `{"S":null,"Obj":null}`},
		{description: "escaped key", value: object(`"`, tree.String("b")), expect: `{"\"":"b"}`},
		{
			description: "escapes",
			value:       tree.String("\\\"/\b\t\n\f\r\u0001\u001f大"),
			expect:      `"\\\"\/\b\t\n\f\r\u0001\u001f大"`,
		},
		{
			description: "nested",
			value: tree.Elements(
				object("a", object("b", tree.String("string"), "c", tree.Bool(false)), "d", tree.Elements(tree.Bool(true), tree.Elements(tree.Number(0), tree.Number(1)), object("e", tree.Null()))),
				tree.String("end"),
			),
			expect: `[{"a":{"b":"string","c":false},"d":[true,[0,1],{"e":null}]},"end"]`,
		},
	}
	s := New(Config{})
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got, err := s.Serialize(&testCase.value)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, got)

			buf := &bytes.Buffer{}
			require.NoError(t, s.Write(buf, &testCase.value))
			assert.Equal(t, testCase.expect, buf.String())

			appended, err := s.Append([]byte("x="), &testCase.value)
			require.NoError(t, err)
			assert.Equal(t, "x="+testCase.expect, string(appended))
		})
	}
}

func TestSerializer_RoundTrip(t *testing.T) {
	inputs := []string{
		`[{"a":{"b":"string","c":false},"d":[true,[0,1],{"e":null}]},"end"]`,
		`{"z":1,"a":[0.1,2.5e-7,1.7976931348623157e308,5e-324],"m":"\/\u0001\"\\"}`,
		`[[[[[[[[[[]]]]]]]]]]`,
		` { "sp" : [ 1 , 2 , ] , } `,
	}
	p := parser.New(parser.Config{})
	s := New(Config{})
	for _, input := range inputs {
		v, err := p.ParseString(input)
		require.NoError(t, err, input)
		first, err := s.Serialize(&v)
		require.NoError(t, err)
		again, err := p.ParseString(first)
		require.NoError(t, err, first)
		second, err := s.Serialize(&again)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
	v, err := p.ParseString(inputs[0])
	require.NoError(t, err)
	out, err := s.Serialize(&v)
	require.NoError(t, err)
	assert.Equal(t, inputs[0], out)
}

func TestSerializer_Depth(t *testing.T) {
	deep := strings.Repeat("[", 20) + strings.Repeat("]", 20)
	v, err := parser.New(parser.Config{}).ParseString(deep)
	require.NoError(t, err)
	_, err = New(Config{MaxDepth: 19}).Serialize(&v)
	var depthErr *tree.DepthError
	require.ErrorAs(t, err, &depthErr)
	assert.Equal(t, 20, depthErr.Depth)
	out, err := New(Config{MaxDepth: 20}).Serialize(&v)
	require.NoError(t, err)
	assert.Equal(t, deep, out)
}

func TestSerializer_Cycle(t *testing.T) {
	a := tree.NewArray(1)
	self := tree.ArrayOf(a)
	a.Add(self)
	_, err := New(Config{}).Serialize(&self)
	var depthErr *tree.DepthError
	require.ErrorAs(t, err, &depthErr)
	assert.Equal(t, DefaultMaxDepth+1, depthErr.Depth)
}

func TestSerializer_Unsupported(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		v := tree.Elements(tree.Number(f))
		_, err := New(Config{}).Serialize(&v)
		var unsupported *UnsupportedValueError
		assert.ErrorAs(t, err, &unsupported)
	}
}
