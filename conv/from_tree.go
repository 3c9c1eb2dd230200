package conv

import (
	"encoding"
	"reflect"
	"strconv"
	"time"
	"unsafe"

	"github.com/viant/dynajson/internal/stack"
	"github.com/viant/dynajson/tree"
)

type decodeMode uint8

const (
	decodeList decodeMode = iota
	decodeRecord
	decodeMap
	decodeObject
)

// decodeFrame resumes populating one native container.
type decodeFrame struct {
	mode     decodeMode
	arr      *tree.Array
	limit    int
	dict     *tree.Dictionary
	cursor   tree.Cursor
	index    int
	dest     reflect.Value
	rec      *record
	ptr      unsafe.Pointer
	object   Object
	pending  bool
	key      reflect.Value
	holder   reflect.Value
	presence unsafe.Pointer
}

func (c *Converter) decode(src *tree.Value, dest reflect.Value) error {
	frame, push, err := c.decodeValue(src, dest, "")
	if err != nil || !push {
		return err
	}
	frames := stack.New[decodeFrame](8)
	frames.Push(frame)
	for frames.Len() > 0 {
		f := frames.Peek()
		if f.pending {
			f.dest.SetMapIndex(f.key, f.holder)
			f.pending = false
		}
		childFrame, push, done, err := c.step(f)
		if err != nil {
			return err
		}
		if done {
			frames.Pop()
			continue
		}
		if push {
			if frames.Len() >= c.options.MaxDepth {
				return &tree.DepthError{Depth: frames.Len() + 1}
			}
			frames.Push(childFrame)
		}
	}
	return nil
}

// step populates the next child of f and reports done once f is exhausted.
func (c *Converter) step(f *decodeFrame) (child decodeFrame, push bool, done bool, err error) {
	switch f.mode {
	case decodeList:
		if f.index >= f.limit {
			return decodeFrame{}, false, true, nil
		}
		item, _ := f.arr.At(f.index)
		dest := f.dest.Index(f.index)
		f.index++
		child, push, err = c.decodeValue(item, dest, "")
		return child, push, false, err
	case decodeRecord:
		for f.index < len(f.rec.members) {
			m := f.rec.members[f.index]
			f.index++
			item := f.dict.Lookup(m.name)
			if item == nil {
				continue
			}
			if m.presence != nil {
				if f.presence == nil {
					f.presence = f.rec.presence.ensure(f.ptr)
				}
				m.presence.SetBool(f.presence, true)
			}
			if c.assignFast(m, item, f.ptr) {
				continue
			}
			child, push, err = c.decodeValue(item, m.value(f.ptr), m.timeLayout)
			return child, push, false, err
		}
		return decodeFrame{}, false, true, nil
	case decodeMap:
		if !f.cursor.Next() {
			return decodeFrame{}, false, true, nil
		}
		mapType := f.dest.Type()
		key, err := mapKey(f.cursor.Key(), mapType.Key())
		if err != nil {
			return decodeFrame{}, false, false, err
		}
		holder := reflect.New(mapType.Elem()).Elem()
		child, push, err = c.decodeValue(f.cursor.Value(), holder, "")
		if err != nil {
			return decodeFrame{}, false, false, err
		}
		if push {
			f.pending, f.key, f.holder = true, key, holder
		} else {
			f.dest.SetMapIndex(key, holder)
		}
		return child, push, false, nil
	default:
		if !f.cursor.Next() {
			return decodeFrame{}, false, true, nil
		}
		m := &f.object[f.index]
		f.index++
		m.Key = f.cursor.Key()
		child, push, err = c.decodeValue(f.cursor.Value(), reflect.ValueOf(&m.Value).Elem(), "")
		return child, push, false, err
	}
}

// assignFast writes boolean, numeric and string members straight through
// their field accessor when the node carries the natural tag.
func (c *Converter) assignFast(m *member, item *tree.Value, ptr unsafe.Pointer) bool {
	switch m.fast {
	case fastBool:
		switch item.Type() {
		case tree.TypeTrue, tree.TypeFalse:
			m.field.SetBool(ptr, item.Bool())
			return true
		}
	case fastFloat64:
		if item.Type() == tree.TypeNumber {
			m.field.SetFloat64(ptr, item.Float())
			return true
		}
	case fastString:
		if item.Type() == tree.TypeString {
			m.field.SetString(ptr, item.Text())
			return true
		}
	case fastInt:
		if item.Type() == tree.TypeNumber {
			if n, ok := roundInt(item.Float(), strconv.IntSize); ok {
				m.field.SetInt(ptr, int(n))
				return true
			}
		}
	}
	return false
}

// decodeValue writes a scalar into dest, or prepares dest as a container
// and returns the frame that fills it.
func (c *Converter) decodeValue(src *tree.Value, dest reflect.Value, layout string) (decodeFrame, bool, error) {
	for dest.Kind() == reflect.Ptr {
		if src.IsNull() {
			dest.SetZero()
			return decodeFrame{}, false, nil
		}
		if dest.IsNil() {
			dest.Set(reflect.New(dest.Type().Elem()))
		}
		dest = dest.Elem()
	}
	destType := dest.Type()
	switch destType {
	case valueType:
		dest.Set(reflect.ValueOf(*src))
		return decodeFrame{}, false, nil
	case timeType:
		return decodeFrame{}, false, c.decodeTime(src, dest, layout)
	case objectType:
		if src.Type() != tree.TypeObject {
			return c.decodeNullable(src, dest)
		}
		return c.decodeLooseObject(src, dest)
	}
	if dest.Kind() == reflect.Interface {
		if destType.NumMethod() != 0 {
			if src.IsNull() {
				dest.SetZero()
				return decodeFrame{}, false, nil
			}
			return decodeFrame{}, false, &CastError{From: src.Type(), To: destType}
		}
		return c.decodeLoose(src, dest)
	}
	if src.Type() == tree.TypeString && reflect.PointerTo(destType).Implements(textUnmarshalerType) {
		if err := dest.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(src.Text())); err != nil {
			return decodeFrame{}, false, &ConvertError{From: src.Type(), To: destType, Err: err}
		}
		return decodeFrame{}, false, nil
	}
	switch src.Type() {
	case tree.TypeArray:
		return c.decodeArray(src.Array(), dest)
	case tree.TypeObject:
		return c.decodeObject(src.Dictionary(), dest)
	case tree.TypeNull:
		return c.decodeNullable(src, dest)
	}
	return decodeFrame{}, false, assignScalar(src, dest)
}

func (c *Converter) decodeNullable(src *tree.Value, dest reflect.Value) (decodeFrame, bool, error) {
	if src.IsNull() {
		switch dest.Kind() {
		case reflect.Slice, reflect.Map, reflect.Interface:
			dest.SetZero()
			return decodeFrame{}, false, nil
		}
	}
	return decodeFrame{}, false, &CastError{From: src.Type(), To: dest.Type()}
}

func (c *Converter) decodeArray(arr *tree.Array, dest reflect.Value) (decodeFrame, bool, error) {
	switch dest.Kind() {
	case reflect.Slice:
		dest.Set(reflect.MakeSlice(dest.Type(), arr.Len(), arr.Len()))
		return decodeFrame{mode: decodeList, arr: arr, limit: arr.Len(), dest: dest}, true, nil
	case reflect.Array:
		dest.SetZero()
		return decodeFrame{mode: decodeList, arr: arr, limit: min(arr.Len(), dest.Len()), dest: dest}, true, nil
	}
	return decodeFrame{}, false, &CastError{From: tree.TypeArray, To: dest.Type()}
}

func (c *Converter) decodeObject(dict *tree.Dictionary, dest reflect.Value) (decodeFrame, bool, error) {
	switch dest.Kind() {
	case reflect.Struct:
		rec := c.record(dest.Type())
		ptr := dest.Addr().UnsafePointer()
		return decodeFrame{mode: decodeRecord, dict: dict, rec: rec, ptr: ptr, dest: dest}, true, nil
	case reflect.Map:
		switch dest.Type().Key().Kind() {
		case reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		default:
			return decodeFrame{}, false, &UnsupportedTypeError{Type: dest.Type()}
		}
		if dest.IsNil() {
			dest.Set(reflect.MakeMapWithSize(dest.Type(), dict.Len()))
		}
		return decodeFrame{mode: decodeMap, cursor: dict.Cursor(), dest: dest}, true, nil
	}
	return decodeFrame{}, false, &CastError{From: tree.TypeObject, To: dest.Type()}
}

// decodeLoose builds the untyped mirror of src into an empty interface.
func (c *Converter) decodeLoose(src *tree.Value, dest reflect.Value) (decodeFrame, bool, error) {
	switch src.Type() {
	case tree.TypeNull:
		dest.SetZero()
	case tree.TypeTrue, tree.TypeFalse:
		dest.Set(reflect.ValueOf(src.Bool()))
	case tree.TypeNumber:
		dest.Set(reflect.ValueOf(src.Float()))
	case tree.TypeString:
		dest.Set(reflect.ValueOf(src.Text()))
	case tree.TypeArray:
		arr := src.Array()
		items := make([]any, arr.Len())
		dest.Set(reflect.ValueOf(items))
		return decodeFrame{mode: decodeList, arr: arr, limit: arr.Len(), dest: reflect.ValueOf(items)}, true, nil
	case tree.TypeObject:
		return c.decodeLooseObject(src, dest)
	}
	return decodeFrame{}, false, nil
}

func (c *Converter) decodeLooseObject(src *tree.Value, dest reflect.Value) (decodeFrame, bool, error) {
	dict := src.Dictionary()
	object := make(Object, dict.Len())
	dest.Set(reflect.ValueOf(object))
	return decodeFrame{mode: decodeObject, cursor: dict.Cursor(), object: object}, true, nil
}

func (c *Converter) decodeTime(src *tree.Value, dest reflect.Value, layout string) error {
	if src.Type() != tree.TypeString {
		return &CastError{From: src.Type(), To: dest.Type()}
	}
	if layout == "" {
		layout = c.options.TimeLayout
	}
	ts, err := time.Parse(layout, src.Text())
	if err != nil {
		return &ConvertError{From: src.Type(), To: dest.Type(), Err: err}
	}
	dest.Set(reflect.ValueOf(ts))
	return nil
}

func mapKey(key string, keyType reflect.Type) (reflect.Value, error) {
	ret := reflect.New(keyType).Elem()
	switch keyType.Kind() {
	case reflect.String:
		ret.SetString(key)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, keyType.Bits())
		if err != nil {
			return ret, &ConvertError{From: tree.TypeString, To: keyType, Err: err}
		}
		ret.SetInt(n)
	default:
		n, err := strconv.ParseUint(key, 10, keyType.Bits())
		if err != nil {
			return ret, &ConvertError{From: tree.TypeString, To: keyType, Err: err}
		}
		ret.SetUint(n)
	}
	return ret, nil
}
