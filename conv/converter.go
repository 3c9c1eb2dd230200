package conv

import (
	"errors"
	"reflect"
	"time"

	"github.com/go-kit/log"
	"github.com/viant/dynajson/internal/typecache"
	"github.com/viant/dynajson/tree"
	"github.com/viant/tagly/format/text"
)

// DefaultMaxDepth bounds nesting in both conversion directions.
const DefaultMaxDepth = 512

// Options contains configuration for the converter
type Options struct {
	// MaxDepth bounds container nesting
	MaxDepth int
	// TimeLayout is used for time.Time members without a format tag layout
	TimeLayout string
	// CaseFormat renames members without an explicit json or format name
	CaseFormat text.CaseFormat
	// OmitEmpty skips zero members when converting to a tree
	OmitEmpty bool
	// Logger receives metadata cache diagnostics
	Logger log.Logger
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{
		MaxDepth:   DefaultMaxDepth,
		TimeLayout: time.RFC3339,
	}
}

// Converter maps native values to trees and trees to native values.
type Converter struct {
	options Options
	records *typecache.TypeDictionary[*record]
}

// NewConverter creates a new converter with the provided options
func NewConverter(options Options) *Converter {
	if options.MaxDepth <= 0 {
		options.MaxDepth = DefaultMaxDepth
	}
	if options.TimeLayout == "" {
		options.TimeLayout = time.RFC3339
	}
	if options.Logger == nil {
		options.Logger = log.NewNopLogger()
	}
	ret := &Converter{options: options}
	ret.records = typecache.New(ret.buildRecord, options.Logger)
	return ret
}

// Options returns the effective converter options.
func (c *Converter) Options() Options {
	return c.options
}

func (c *Converter) record(t reflect.Type) *record {
	return c.records.Get(t)
}

// ToTree converts value into a tree. Tree nodes passed in are reused by reference.
func (c *Converter) ToTree(value any) (tree.Value, error) {
	if value == nil {
		return tree.Null(), nil
	}
	return c.encode(reflect.ValueOf(value))
}

// FromTree populates dest, which must be a non-nil pointer, from v.
func (c *Converter) FromTree(v *tree.Value, dest any) error {
	if dest == nil {
		return errors.New("destination cannot be nil")
	}
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return errors.New("destination must be a pointer")
	}
	if destValue.IsNil() {
		return errors.New("destination pointer cannot be nil")
	}
	if v == nil {
		null := tree.Null()
		v = &null
	}
	return c.decode(v, destValue.Elem())
}

// To converts v into a new T.
func To[T any](c *Converter, v *tree.Value) (T, error) {
	var ret T
	err := c.FromTree(v, &ret)
	return ret, err
}
