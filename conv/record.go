package conv

import (
	"encoding"
	"reflect"
	"time"
	"unsafe"

	"github.com/viant/dynajson/internal/tagutil"
	"github.com/viant/dynajson/tree"
	"github.com/viant/xunsafe"
)

type fastKind uint8

const (
	fastNone fastKind = iota
	fastBool
	fastInt
	fastFloat64
	fastString
)

var (
	timeType            = reflect.TypeOf(time.Time{})
	valueType           = reflect.TypeOf(tree.Value{})
	valuePtrType        = reflect.TypeOf(&tree.Value{})
	arrayPtrType        = reflect.TypeOf(&tree.Array{})
	dictionaryPtrType   = reflect.TypeOf(&tree.Dictionary{})
	objectType          = reflect.TypeOf(Object{})
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// member is a readable and writable named struct member.
type member struct {
	name       string
	fieldName  string
	field      *xunsafe.Field
	rType      reflect.Type
	fast       fastKind
	omitEmpty  bool
	timeLayout string
	presence   *xunsafe.Field
}

func (m *member) pointer(structPtr unsafe.Pointer) unsafe.Pointer {
	return m.field.Pointer(structPtr)
}

func (m *member) value(structPtr unsafe.Pointer) reflect.Value {
	return reflect.NewAt(m.rType, m.pointer(structPtr)).Elem()
}

type presencePlan struct {
	holder     *xunsafe.Field
	holderType reflect.Type
}

// ensure returns the holder struct pointer, allocating a pointer holder on first use.
func (p *presencePlan) ensure(structPtr unsafe.Pointer) unsafe.Pointer {
	if p.holderType.Kind() != reflect.Ptr {
		return p.holder.Pointer(structPtr)
	}
	if holderPtr := p.holder.ValuePointer(structPtr); holderPtr != nil {
		return holderPtr
	}
	p.holder.SetValue(structPtr, reflect.New(p.holderType.Elem()).Interface())
	return p.holder.ValuePointer(structPtr)
}

// record is the cached member list of a struct type.
type record struct {
	rType    reflect.Type
	members  []*member
	presence *presencePlan
}

func (c *Converter) buildRecord(rType reflect.Type) *record {
	ret := &record{rType: rType}
	outer := map[string]bool{}
	for i := 0; i < rType.NumField(); i++ {
		sf := rType.Field(i)
		if tagutil.IsSetMarker(sf.Tag) {
			ret.presence = newPresencePlan(sf)
			continue
		}
		if isFlattened(sf) || sf.PkgPath != "" {
			continue
		}
		if resolved := tagutil.Resolve(sf); !resolved.Ignore {
			outer[c.memberName(resolved)] = true
		}
	}
	c.collectMembers(ret, rType, 0, outer, map[string]bool{}, true)
	if ret.presence != nil {
		flags := presenceFlags(ret.presence.holderType)
		for _, m := range ret.members {
			m.presence = flags[m.fieldName]
		}
	}
	return ret
}

// collectMembers appends members in declaration order. Members of embedded
// value structs are spliced in place unless an outer member owns the name.
func (c *Converter) collectMembers(rec *record, rType reflect.Type, offset uintptr, outer, seen map[string]bool, top bool) {
	for i := 0; i < rType.NumField(); i++ {
		sf := rType.Field(i)
		if tagutil.IsSetMarker(sf.Tag) {
			continue
		}
		if isFlattened(sf) {
			resolved := tagutil.Resolve(sf)
			if resolved.Ignore {
				continue
			}
			c.collectMembers(rec, sf.Type, offset+sf.Offset, outer, seen, false)
			continue
		}
		if sf.PkgPath != "" {
			continue
		}
		resolved := tagutil.Resolve(sf)
		if resolved.Ignore {
			continue
		}
		name := c.memberName(resolved)
		if seen[name] || (!top && outer[name]) {
			continue
		}
		seen[name] = true
		sf.Offset += offset
		rec.members = append(rec.members, &member{
			name:       name,
			fieldName:  sf.Name,
			field:      xunsafe.NewField(sf),
			rType:      sf.Type,
			fast:       fastKindOf(sf.Type),
			omitEmpty:  resolved.OmitEmpty || c.options.OmitEmpty,
			timeLayout: resolved.TimeLayout,
		})
	}
}

func (c *Converter) memberName(resolved tagutil.Field) string {
	if resolved.Explicit {
		return resolved.Name
	}
	return tagutil.FormatName(resolved.Name, c.options.CaseFormat)
}

// isFlattened reports an embedded value struct without an explicit json name.
func isFlattened(sf reflect.StructField) bool {
	if !sf.Anonymous || sf.Type.Kind() != reflect.Struct || sf.Type == timeType {
		return false
	}
	if implementsText(sf.Type) {
		return false
	}
	return !tagutil.Resolve(sf).Explicit
}

func newPresencePlan(sf reflect.StructField) *presencePlan {
	holderType := sf.Type
	elem := holderType
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil
	}
	return &presencePlan{holder: xunsafe.NewField(sf), holderType: holderType}
}

func presenceFlags(holderType reflect.Type) map[string]*xunsafe.Field {
	if holderType.Kind() == reflect.Ptr {
		holderType = holderType.Elem()
	}
	ret := make(map[string]*xunsafe.Field, holderType.NumField())
	for i := 0; i < holderType.NumField(); i++ {
		sf := holderType.Field(i)
		if sf.Type.Kind() == reflect.Bool {
			ret[sf.Name] = xunsafe.NewField(sf)
		}
	}
	return ret
}

// fastKindOf selects members read and written without reflect boxing.
func fastKindOf(t reflect.Type) fastKind {
	if implementsText(t) {
		return fastNone
	}
	switch t.Kind() {
	case reflect.Bool:
		return fastBool
	case reflect.Int:
		return fastInt
	case reflect.Float64:
		return fastFloat64
	case reflect.String:
		return fastString
	}
	return fastNone
}

func implementsText(t reflect.Type) bool {
	return t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType)
}
