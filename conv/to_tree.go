package conv

import (
	"encoding"
	"reflect"
	"sort"
	"strconv"
	"time"
	"unsafe"

	"github.com/viant/dynajson/internal/stack"
	"github.com/viant/dynajson/tree"
)

type encodeMode uint8

const (
	encodeList encodeMode = iota
	encodeMap
	encodeRecord
	encodeObject
)

type mapItem struct {
	key   string
	value reflect.Value
}

// encodeFrame resumes filling one container.
type encodeFrame struct {
	mode   encodeMode
	src    reflect.Value
	index  int
	items  []mapItem
	object Object
	rec    *record
	ptr    unsafe.Pointer
	arr    *tree.Array
	dict   *tree.Dictionary
}

func (c *Converter) encode(root reflect.Value) (tree.Value, error) {
	ret, frame, push, err := c.encodeValue(root, "")
	if err != nil || !push {
		return ret, err
	}
	frames := stack.New[encodeFrame](8)
	frames.Push(frame)
	for frames.Len() > 0 {
		f := frames.Peek()
		child, layout, key, ok := c.next(f)
		if !ok {
			frames.Pop()
			continue
		}
		if f.mode == encodeRecord && f.rec.members[f.index-1].fast != fastNone {
			f.dict.Set(key, c.readFast(f.rec.members[f.index-1], f.ptr))
			continue
		}
		v, childFrame, push, err := c.encodeValue(child, layout)
		if err != nil {
			return tree.Value{}, err
		}
		if f.arr != nil {
			f.arr.Add(v)
		} else {
			f.dict.Set(key, v)
		}
		if push {
			if frames.Len() >= c.options.MaxDepth {
				return tree.Value{}, &tree.DepthError{Depth: frames.Len() + 1}
			}
			frames.Push(childFrame)
		}
	}
	return ret, nil
}

// next advances f and returns the native child with its key. Records skip
// omitted members here.
func (c *Converter) next(f *encodeFrame) (reflect.Value, string, string, bool) {
	switch f.mode {
	case encodeList:
		if f.index >= f.src.Len() {
			return reflect.Value{}, "", "", false
		}
		f.index++
		return f.src.Index(f.index - 1), "", "", true
	case encodeMap:
		if f.index >= len(f.items) {
			return reflect.Value{}, "", "", false
		}
		f.index++
		item := f.items[f.index-1]
		return item.value, "", item.key, true
	case encodeObject:
		if f.index >= len(f.object) {
			return reflect.Value{}, "", "", false
		}
		f.index++
		m := f.object[f.index-1]
		return reflect.ValueOf(&m.Value).Elem(), "", m.Key, true
	default:
		for f.index < len(f.rec.members) {
			m := f.rec.members[f.index]
			f.index++
			if m.omitEmpty && isEmpty(m, f.ptr) {
				continue
			}
			if m.fast != fastNone {
				return reflect.Value{}, "", m.name, true
			}
			return m.value(f.ptr), m.timeLayout, m.name, true
		}
		return reflect.Value{}, "", "", false
	}
}

func (c *Converter) readFast(m *member, ptr unsafe.Pointer) tree.Value {
	switch m.fast {
	case fastBool:
		return tree.Bool(m.field.Bool(ptr))
	case fastInt:
		return tree.Number(float64(m.field.Int(ptr)))
	case fastFloat64:
		return tree.Number(m.field.Float64(ptr))
	default:
		return tree.String(m.field.String(ptr))
	}
}

func isEmpty(m *member, ptr unsafe.Pointer) bool {
	switch m.fast {
	case fastBool:
		return !m.field.Bool(ptr)
	case fastInt:
		return m.field.Int(ptr) == 0
	case fastFloat64:
		return m.field.Float64(ptr) == 0
	case fastString:
		return m.field.String(ptr) == ""
	}
	v := m.value(ptr)
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	}
	return v.IsZero()
}

// encodeValue converts a scalar directly. For a container it returns the
// container node, already linked to its frame, plus the frame to fill it.
func (c *Converter) encodeValue(v reflect.Value, layout string) (tree.Value, encodeFrame, bool, error) {
	for {
		if !v.IsValid() {
			return tree.Null(), encodeFrame{}, false, nil
		}
		switch v.Type() {
		case valueType:
			return v.Interface().(tree.Value), encodeFrame{}, false, nil
		case valuePtrType:
			if v.IsNil() {
				return tree.Null(), encodeFrame{}, false, nil
			}
			return *(v.Interface().(*tree.Value)), encodeFrame{}, false, nil
		case arrayPtrType:
			return tree.ArrayOf(v.Interface().(*tree.Array)), encodeFrame{}, false, nil
		case dictionaryPtrType:
			return tree.ObjectOf(v.Interface().(*tree.Dictionary)), encodeFrame{}, false, nil
		case objectType:
			object := v.Interface().(Object)
			dict := tree.NewDictionary(len(object))
			return tree.ObjectOf(dict), encodeFrame{mode: encodeObject, object: object, dict: dict}, true, nil
		case timeType:
			if layout == "" {
				layout = c.options.TimeLayout
			}
			return tree.String(v.Interface().(time.Time).Format(layout)), encodeFrame{}, false, nil
		}
		switch v.Kind() {
		case reflect.Ptr, reflect.Interface:
			if v.IsNil() {
				return tree.Null(), encodeFrame{}, false, nil
			}
			if v.Kind() == reflect.Ptr && v.Type().Implements(textMarshalerType) {
				return marshalText(v)
			}
			v = v.Elem()
			continue
		}
		if v.Type().Implements(textMarshalerType) {
			return marshalText(v)
		}
		if v.CanAddr() && v.Addr().Type().Implements(textMarshalerType) {
			return marshalText(v.Addr())
		}
		return c.encodeKind(v)
	}
}

func (c *Converter) encodeKind(v reflect.Value) (tree.Value, encodeFrame, bool, error) {
	switch v.Kind() {
	case reflect.Bool:
		return tree.Bool(v.Bool()), encodeFrame{}, false, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return tree.Number(float64(v.Int())), encodeFrame{}, false, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return tree.Number(float64(v.Uint())), encodeFrame{}, false, nil
	case reflect.Float32, reflect.Float64:
		return tree.Number(v.Float()), encodeFrame{}, false, nil
	case reflect.String:
		return tree.String(v.String()), encodeFrame{}, false, nil
	case reflect.Slice:
		if v.IsNil() {
			return tree.Null(), encodeFrame{}, false, nil
		}
		fallthrough
	case reflect.Array:
		arr := tree.NewArray(v.Len())
		return tree.ArrayOf(arr), encodeFrame{mode: encodeList, src: v, arr: arr}, true, nil
	case reflect.Map:
		if v.IsNil() {
			return tree.Null(), encodeFrame{}, false, nil
		}
		items, err := mapItems(v)
		if err != nil {
			return tree.Value{}, encodeFrame{}, false, err
		}
		dict := tree.NewDictionary(len(items))
		return tree.ObjectOf(dict), encodeFrame{mode: encodeMap, items: items, dict: dict}, true, nil
	case reflect.Struct:
		rec := c.record(v.Type())
		dict := tree.NewDictionary(len(rec.members))
		frame := encodeFrame{mode: encodeRecord, rec: rec, ptr: structPointer(v), dict: dict}
		return tree.ObjectOf(dict), frame, true, nil
	}
	return tree.Value{}, encodeFrame{}, false, &UnsupportedTypeError{Type: v.Type()}
}

// structPointer returns the address of v, copying it when v is not addressable.
func structPointer(v reflect.Value) unsafe.Pointer {
	if v.CanAddr() {
		return v.Addr().UnsafePointer()
	}
	cp := reflect.New(v.Type())
	cp.Elem().Set(v)
	return cp.UnsafePointer()
}

func marshalText(v reflect.Value) (tree.Value, encodeFrame, bool, error) {
	text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return tree.Value{}, encodeFrame{}, false, err
	}
	return tree.String(string(text)), encodeFrame{}, false, nil
}

// mapItems renders keys as strings and sorts them.
func mapItems(v reflect.Value) ([]mapItem, error) {
	keyType := v.Type().Key()
	var format func(reflect.Value) string
	switch keyType.Kind() {
	case reflect.String:
		format = func(k reflect.Value) string { return k.String() }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		format = func(k reflect.Value) string { return strconv.FormatInt(k.Int(), 10) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		format = func(k reflect.Value) string { return strconv.FormatUint(k.Uint(), 10) }
	default:
		return nil, &UnsupportedTypeError{Type: v.Type()}
	}
	items := make([]mapItem, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		items = append(items, mapItem{key: format(iter.Key()), value: iter.Value()})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].key < items[j].key })
	return items, nil
}
