package dynajson

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	"golang.org/x/text/encoding/unicode"
)

type Item struct {
	Name     string
	Quantity int
	Price    float64
	Tags     []string `json:",omitempty"`
}

type Order struct {
	ID      int
	Created time.Time
	Items   []Item
	Notes   map[string]string
}

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		json        string
		options     []Option
		expect      string
		expectErr   string
	}{
		{description: "object", json: ` {"a": [1, 2.5, "x", null, true]} `, expect: `{"a":[1,2.5,"x",null,true]}`},
		{description: "lenient trailing comma", json: `[1,]`, expect: `[1]`},
		{description: "lenient leading zero", json: `[01]`, expect: `[1]`},
		{description: "strict trailing comma", json: `[1,]`, options: []Option{WithMode(ModeStrict)}, expectErr: "Unexpected character ']' at 3"},
		{description: "max depth", json: `[[[1]]]`, options: []Option{WithMaxDepth(2)}, expectErr: "Too deep nesting 3 at 2"},
		{description: "unexpected end", json: `{"a":`, expectErr: "Unexpected end at 5"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			v, err := Parse(testCase.json, testCase.options...)
			if testCase.expectErr != "" {
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr), "%v", err)
				assert.EqualError(t, err, testCase.expectErr)
				return
			}
			require.NoError(t, err)
			actual, err := Serialize(&v)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestParseReader_Encoding(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	encoded, err := enc.NewEncoder().String(`{"name":"żółw"}`)
	require.NoError(t, err)

	v, err := ParseReader(strings.NewReader(encoded), WithEncoding(enc))
	require.NoError(t, err)
	name, ok := v.Get("name")
	require.True(t, ok)
	assert.Equal(t, "żółw", name.Text())

	v, err = ParseBytes([]byte(encoded), WithEncoding(enc))
	require.NoError(t, err)
	assert.True(t, v.IsDefined("name"))
}

func TestMarshalUnmarshal(t *testing.T) {
	order := Order{
		ID:      7,
		Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Items:   []Item{{Name: "pen", Quantity: 2, Price: 1.25}, {Name: "ink", Quantity: 1, Price: 0.1, Tags: []string{"blue"}}},
		Notes:   map[string]string{"z": "last", "a": "first"},
	}
	text, err := Marshal(order)
	require.NoError(t, err)
	assert.Equal(t, `{"ID":7,"Created":"2024-01-02T03:04:05Z","Items":[{"Name":"pen","Quantity":2,"Price":1.25},{"Name":"ink","Quantity":1,"Price":0.1,"Tags":["blue"]}],"Notes":{"a":"first","z":"last"}}`, text)

	actual, err := Unmarshal[Order](text)
	require.NoError(t, err)
	assert.Equal(t, order, actual)

	var into Order
	require.NoError(t, UnmarshalInto([]byte(text), &into))
	assert.Equal(t, order, into)

	buf := new(bytes.Buffer)
	require.NoError(t, MarshalTo(buf, &order))
	assert.Equal(t, text, buf.String())
}

func TestConvert(t *testing.T) {
	v, err := Parse(`{"Name":"pen","Quantity":"3","Unknown":true}`)
	require.NoError(t, err)
	item, err := Convert[Item](&v)
	require.NoError(t, err)
	assert.Equal(t, Item{Name: "pen", Quantity: 3}, item)

	_, err = Convert[[]Item](&v)
	var castErr *CastError
	require.True(t, errors.As(err, &castErr))
	assert.EqualError(t, err, "Unable to cast value of type Object to type '[]dynajson.Item'")

	loose, err := Convert[any](&v)
	require.NoError(t, err)
	assert.Equal(t, Object{{Key: "Name", Value: "pen"}, {Key: "Quantity", Value: "3"}, {Key: "Unknown", Value: true}}, loose)

	back, err := ConvertFrom(loose)
	require.NoError(t, err)
	text, err := Serialize(&back)
	require.NoError(t, err)
	assert.Equal(t, `{"Name":"pen","Quantity":"3","Unknown":true}`, text)

	var into Item
	require.NoError(t, ConvertInto(&v, &into))
	assert.Equal(t, 3, into.Quantity)
}

func TestOptions(t *testing.T) {
	order := Order{ID: 1, Created: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)}
	var testCases = []struct {
		description string
		options     []Option
		expect      string
	}{
		{description: "case format", options: []Option{WithCaseFormat(text.CaseFormatLowerUnderscore)}, expect: `{"id":1,"created":"2024-05-06T00:00:00Z","items":null,"notes":null}`},
		{description: "time layout", options: []Option{WithTimeLayout("2006-01-02")}, expect: `{"ID":1,"Created":"2024-05-06","Items":null,"Notes":null}`},
		{description: "omit empty", options: []Option{WithOmitEmpty(true)}, expect: `{"ID":1,"Created":"2024-05-06T00:00:00Z"}`},
		{description: "format tag", options: []Option{WithFormatTag(&format.Tag{CaseFormat: string(text.CaseFormatLowerCamel), DateFormat: "YYYY-MM-DD"})}, expect: `{"id":1,"created":"2024-05-06","items":null,"notes":null}`},
		{description: "logger", options: []Option{WithLogger(log.NewNopLogger())}, expect: `{"ID":1,"Created":"2024-05-06T00:00:00Z","Items":null,"Notes":null}`},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := Marshal(order, testCase.options...)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestEngineReuse(t *testing.T) {
	assert.Same(t, defaultEngine, engineFor(nil))
	first := engineFor([]Option{WithCaseFormat(text.CaseFormatLowerCamel)})
	second := engineFor([]Option{WithCaseFormat(text.CaseFormatLowerCamel)})
	assert.Same(t, first, second)
	assert.NotSame(t, first, engineFor([]Option{WithMaxDepth(3)}))
}

func TestSerializeTo(t *testing.T) {
	v := Elements(Number(1), String("a"), Bool(true), Null())
	buf := new(bytes.Buffer)
	require.NoError(t, SerializeTo(buf, &v))
	assert.Equal(t, `[1,"a",true,null]`, buf.String())
	require.NoError(t, v.SetAt(5, Number(2)))
	text, err := Serialize(&v)
	require.NoError(t, err)
	assert.Equal(t, `[1,"a",true,null,null,2]`, text)
}
