// Package serializer writes a tree.Value as JSON text. The walk is iterative
// over an explicit frame stack, so document depth never grows the call stack.
package serializer

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/viant/dynajson/dtoa"
	"github.com/viant/dynajson/internal/stack"
	"github.com/viant/dynajson/tree"
)

// DefaultMaxDepth bounds container nesting when Config.MaxDepth is unset.
const DefaultMaxDepth = 512

// Config controls a Serializer.
type Config struct {
	MaxDepth int
}

// UnsupportedValueError reports a number JSON cannot represent.
type UnsupportedValueError struct {
	Value float64
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("json: unsupported value: %v", e.Value)
}

// Serializer is safe for concurrent use.
type Serializer struct {
	maxDepth int
}

type frame struct {
	arr    *tree.Array
	index  int
	cursor tree.Cursor
	object bool
}

type session struct {
	buf    []byte
	frames stack.Stack[frame]
}

var sessionPool = sync.Pool{New: func() interface{} { return &session{buf: make([]byte, 0, 256)} }}

func acquireSession() *session {
	s := sessionPool.Get().(*session)
	s.buf = s.buf[:0]
	return s
}

func releaseSession(s *session) {
	const maxPooledCap = 64 << 10
	if cap(s.buf) > maxPooledCap {
		s.buf = make([]byte, 0, 256)
	}
	s.buf = s.buf[:0]
	s.frames.Reset()
	sessionPool.Put(s)
}

// New creates a serializer.
func New(cfg Config) *Serializer {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Serializer{maxDepth: cfg.MaxDepth}
}

// Serialize returns v as JSON text.
func (s *Serializer) Serialize(v *tree.Value) (string, error) {
	sess := acquireSession()
	defer releaseSession(sess)
	buf, err := s.appendValue(sess.buf, &sess.frames, v)
	sess.buf = buf
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Append appends v as JSON text to dst.
func (s *Serializer) Append(dst []byte, v *tree.Value) ([]byte, error) {
	sess := acquireSession()
	defer releaseSession(sess)
	return s.appendValue(dst, &sess.frames, v)
}

// Write writes v as JSON text to w.
func (s *Serializer) Write(w io.Writer, v *tree.Value) error {
	sess := acquireSession()
	defer releaseSession(sess)
	buf, err := s.appendValue(sess.buf, &sess.frames, v)
	sess.buf = buf
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

func (s *Serializer) appendValue(dst []byte, frames *stack.Stack[frame], v *tree.Value) ([]byte, error) {
	for {
		switch v.Type() {
		case tree.TypeNull:
			dst = append(dst, "null"...)
		case tree.TypeTrue:
			dst = append(dst, "true"...)
		case tree.TypeFalse:
			dst = append(dst, "false"...)
		case tree.TypeNumber:
			f := v.Float()
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return dst, &UnsupportedValueError{Value: f}
			}
			dst = dtoa.AppendFloat(dst, f)
		case tree.TypeString:
			dst = appendQuoted(dst, v.Text())
		case tree.TypeArray:
			if frames.Len() == s.maxDepth {
				return dst, &tree.DepthError{Depth: frames.Len() + 1}
			}
			dst = append(dst, '[')
			frames.Push(frame{arr: v.Array()})
		case tree.TypeObject:
			if frames.Len() == s.maxDepth {
				return dst, &tree.DepthError{Depth: frames.Len() + 1}
			}
			dst = append(dst, '{')
			frames.Push(frame{cursor: v.Dictionary().Cursor(), object: true})
		}

		// Resume the innermost open container until it yields its next child.
		v = nil
		for v == nil {
			if frames.Len() == 0 {
				return dst, nil
			}
			top := frames.Peek()
			if top.object {
				if !top.cursor.Next() {
					dst = append(dst, '}')
					frames.Pop()
					continue
				}
				if top.index > 0 {
					dst = append(dst, ',')
				}
				top.index++
				dst = appendQuoted(dst, top.cursor.Key())
				dst = append(dst, ':')
				v = top.cursor.Value()
				continue
			}
			if top.index == top.arr.Len() {
				dst = append(dst, ']')
				frames.Pop()
				continue
			}
			if top.index > 0 {
				dst = append(dst, ',')
			}
			v, _ = top.arr.At(top.index)
			top.index++
		}
	}
}
