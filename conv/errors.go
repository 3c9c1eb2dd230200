package conv

import (
	"fmt"
	"reflect"

	"github.com/viant/dynajson/tree"
)

// CastError reports a tree shape that cannot populate the requested Go type.
type CastError struct {
	From tree.Type
	To   reflect.Type
}

func (e *CastError) Error() string {
	return fmt.Sprintf("Unable to cast value of type %s to type '%s'", e.From, typeName(e.To))
}

// ConvertError reports a failed representation change, such as a
// non-numeric string into an int.
type ConvertError struct {
	From tree.Type
	To   reflect.Type
	Err  error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("Unable to convert value of type %s to type '%s': %v", e.From, typeName(e.To), e.Err)
}

func (e *ConvertError) Unwrap() error { return e.Err }

// UnsupportedTypeError reports a Go type with no JSON form.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type: %s", typeName(e.Type))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
