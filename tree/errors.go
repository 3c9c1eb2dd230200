package tree

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound matches every KeyNotFoundError.
var ErrKeyNotFound = errors.New("key not found")

// KeyNotFoundError is returned by an indexed read of an absent key.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("the given key '%s' was not present in the dictionary", e.Key)
}

func (e *KeyNotFoundError) Is(target error) bool { return target == ErrKeyNotFound }

// ArgumentError reports an invalid key passed to a key or index operation.
type ArgumentError struct {
	Name    string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Message)
}

// IndexError reports an index outside the array bounds.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d is out of range [0:%d]", e.Index, e.Len)
}

// OperationError reports a key operation on a non-object node or an index
// operation on a non-array node.
type OperationError struct {
	Op   string
	Type Type
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("cannot %s on value of type %s", e.Op, e.Type)
}

// DepthError reports nesting beyond the configured maximum depth.
type DepthError struct {
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("too deep nesting %d", e.Depth)
}
