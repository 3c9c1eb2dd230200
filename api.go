package dynajson

import (
	"io"

	"github.com/viant/dynajson/conv"
	"github.com/viant/dynajson/internal/lru"
	"github.com/viant/dynajson/parser"
	"github.com/viant/dynajson/serializer"
	"github.com/viant/dynajson/tree"
	"github.com/viant/tagly/format/text"
)

// engine bundles the components configured by one set of options.
type engine struct {
	parser     *parser.Parser
	serializer *serializer.Serializer
	converter  *conv.Converter
}

// engineKey identifies options whose engines can be shared; converters keep
// per-type metadata, so reusing them avoids rebuilding member records.
type engineKey struct {
	maxDepth   int
	mode       Mode
	caseFormat text.CaseFormat
	timeLayout string
	omitEmpty  bool
}

const maxCachedEngines = 64

var (
	defaultEngine = newEngine(defaultOptions())
	engines       = lru.New[engineKey, *engine](maxCachedEngines)
)

func newEngine(options Options) *engine {
	return &engine{
		parser: parser.New(parser.Config{
			MaxDepth: options.MaxDepth,
			Strict:   options.Mode == ModeStrict,
			Encoding: options.Encoding,
			Logger:   options.Logger,
		}),
		serializer: serializer.New(serializer.Config{MaxDepth: options.MaxDepth}),
		converter: conv.NewConverter(conv.Options{
			MaxDepth:   options.MaxDepth,
			TimeLayout: options.TimeLayout,
			CaseFormat: options.CaseFormat,
			OmitEmpty:  options.OmitEmpty,
			Logger:     options.Logger,
		}),
	}
}

func engineFor(opts []Option) *engine {
	if len(opts) == 0 {
		return defaultEngine
	}
	options := resolveOptions(opts)
	if options.Encoding != nil || options.setLogger {
		return newEngine(options)
	}
	key := engineKey{
		maxDepth:   options.MaxDepth,
		mode:       options.Mode,
		caseFormat: options.CaseFormat,
		timeLayout: options.TimeLayout,
		omitEmpty:  options.OmitEmpty,
	}
	return engines.GetOrCreate(key, func() *engine { return newEngine(options) })
}

// Parse parses JSON text.
func Parse(text string, opts ...Option) (Value, error) {
	return engineFor(opts).parser.ParseString(text)
}

// ParseBytes parses JSON bytes, decoding them first when WithEncoding is set.
func ParseBytes(data []byte, opts ...Option) (Value, error) {
	return engineFor(opts).parser.ParseBytes(data)
}

// ParseReader parses a single JSON value streamed from r.
func ParseReader(r io.Reader, opts ...Option) (Value, error) {
	return engineFor(opts).parser.Parse(r)
}

// Serialize renders v as JSON text.
func Serialize(v *Value, opts ...Option) (string, error) {
	return engineFor(opts).serializer.Serialize(v)
}

// SerializeTo writes v as JSON text to w.
func SerializeTo(w io.Writer, v *Value, opts ...Option) error {
	return engineFor(opts).serializer.Write(w, v)
}

// Marshal converts value to a tree and renders it as JSON text.
func Marshal(value any, opts ...Option) (string, error) {
	e := engineFor(opts)
	v, err := e.converter.ToTree(value)
	if err != nil {
		return "", err
	}
	return e.serializer.Serialize(&v)
}

// MarshalTo converts value to a tree and writes it as JSON text to w.
func MarshalTo(w io.Writer, value any, opts ...Option) error {
	e := engineFor(opts)
	v, err := e.converter.ToTree(value)
	if err != nil {
		return err
	}
	return e.serializer.Write(w, &v)
}

// ConvertFrom converts a native value into a tree.
func ConvertFrom(value any, opts ...Option) (Value, error) {
	return engineFor(opts).converter.ToTree(value)
}

// ConvertInto populates dest, a non-nil pointer, from v.
func ConvertInto(v *Value, dest any, opts ...Option) error {
	return engineFor(opts).converter.FromTree(v, dest)
}

// Convert converts v into a new T.
func Convert[T any](v *Value, opts ...Option) (T, error) {
	return conv.To[T](engineFor(opts).converter, v)
}

// Unmarshal parses text and converts the result into a new T.
func Unmarshal[T any](text string, opts ...Option) (T, error) {
	e := engineFor(opts)
	v, err := e.parser.ParseString(text)
	if err != nil {
		var zero T
		return zero, err
	}
	return conv.To[T](e.converter, &v)
}

// UnmarshalInto parses data and populates dest from the result.
func UnmarshalInto(data []byte, dest any, opts ...Option) error {
	e := engineFor(opts)
	v, err := e.parser.ParseBytes(data)
	if err != nil {
		return err
	}
	return e.converter.FromTree(&v, dest)
}

// Node constructors.
var (
	Null     = tree.Null
	Bool     = tree.Bool
	Number   = tree.Number
	String   = tree.String
	Elements = tree.Elements
)
