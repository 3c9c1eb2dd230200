package dynajson

import (
	"github.com/go-kit/log"
	"github.com/viant/dynajson/conv"
	"github.com/viant/dynajson/parser"
	"github.com/viant/dynajson/serializer"
	"github.com/viant/dynajson/tree"
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	"golang.org/x/text/encoding"
)

// Mode controls parser leniency.
type Mode int

const (
	// ModeLenient accepts trailing commas and leading zeros.
	ModeLenient Mode = iota
	// ModeStrict rejects them.
	ModeStrict
)

// Option configures a call.
type Option interface {
	apply(*Options)
}

// Options holds effective configuration of parse, serialize and convert calls.
type Options struct {
	MaxDepth   int
	Mode       Mode
	Encoding   encoding.Encoding
	CaseFormat text.CaseFormat
	FormatTag  *format.Tag
	TimeLayout string
	OmitEmpty  bool
	Logger     log.Logger

	setCaseFormat bool
	setLogger     bool
}

type (
	// Value is a parsed JSON node.
	Value = tree.Value
	// Type is the JSON tag of a Value.
	Type = tree.Type
	// Array is an ordered JSON array.
	Array = tree.Array
	// Dictionary is an ordered JSON object.
	Dictionary = tree.Dictionary
	// Object is the ordered loose mirror of a JSON object.
	Object = conv.Object
	// Member is one Object entry.
	Member = conv.Member

	ParseError            = parser.Error
	CastError             = conv.CastError
	ConvertError          = conv.ConvertError
	UnsupportedTypeError  = conv.UnsupportedTypeError
	UnsupportedValueError = serializer.UnsupportedValueError
	ArgumentError         = tree.ArgumentError
	KeyNotFoundError      = tree.KeyNotFoundError
	IndexError            = tree.IndexError
	OperationError        = tree.OperationError
	DepthError            = tree.DepthError
)

const (
	TypeNull   = tree.TypeNull
	TypeTrue   = tree.TypeTrue
	TypeFalse  = tree.TypeFalse
	TypeNumber = tree.TypeNumber
	TypeString = tree.TypeString
	TypeArray  = tree.TypeArray
	TypeObject = tree.TypeObject
)

// ErrKeyNotFound matches KeyNotFoundError.
var ErrKeyNotFound = tree.ErrKeyNotFound
