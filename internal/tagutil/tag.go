// Package tagutil resolves the JSON member name and options of a struct field
// from its json tag and its tagly format tag.
package tagutil

import (
	"reflect"
	"strings"
	"sync"

	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	ftime "github.com/viant/tagly/format/time"
)

// Field captures the effective member attributes of a struct field.
type Field struct {
	Name       string
	Explicit   bool
	OmitEmpty  bool
	Ignore     bool
	Inline     bool
	TimeLayout string
}

type formatTag struct {
	name       string
	caseFormat string
	omitEmpty  bool
	ignore     bool
	inline     bool
	timeLayout string
}

var formatTags sync.Map // map[string]*formatTag

// Resolve applies the precedence json name, then format name or case, then
// field name. json:"-", internal:"true" and format ignore skip the field;
// omitempty comes from either tag.
func Resolve(sf reflect.StructField) Field {
	ret := Field{Name: sf.Name, Inline: sf.Anonymous}
	name, omitEmpty, explicit := parseJSON(sf.Tag.Get("json"))
	if explicit {
		if name == "-" {
			ret.Ignore = true
		} else if name != "" {
			ret.Name = name
			ret.Explicit = true
		}
	}
	ret.OmitEmpty = omitEmpty
	if sf.Tag.Get("internal") == "true" {
		ret.Ignore = true
	}
	fTag := loadFormatTag(string(sf.Tag))
	if fTag == nil {
		return ret
	}
	ret.OmitEmpty = ret.OmitEmpty || fTag.omitEmpty
	ret.Ignore = ret.Ignore || fTag.ignore
	ret.Inline = ret.Inline || fTag.inline
	ret.TimeLayout = fTag.timeLayout
	if ret.Explicit {
		return ret
	}
	switch {
	case fTag.name != "":
		ret.Name = fTag.name
		ret.Explicit = true
	case fTag.caseFormat != "":
		ret.Name = FormatName(ret.Name, text.NewCaseFormat(fTag.caseFormat))
		ret.Explicit = true
	}
	return ret
}

func parseJSON(raw string) (name string, omitEmpty bool, explicit bool) {
	if raw == "" {
		return "", false, false
	}
	parts := strings.Split(raw, ",")
	for _, option := range parts[1:] {
		if option == "omitempty" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty, true
}

func loadFormatTag(rawTag string) *formatTag {
	if v, ok := formatTags.Load(rawTag); ok {
		return v.(*formatTag)
	}
	tag, err := format.Parse(reflect.StructTag(rawTag))
	var ret *formatTag
	if err == nil && tag != nil {
		ret = &formatTag{
			name:       tag.Name,
			caseFormat: tag.CaseFormat,
			omitEmpty:  tag.Omitempty,
			ignore:     tag.Ignore,
			inline:     tag.Inline,
			timeLayout: tag.TimeLayout,
		}
		if ret.timeLayout == "" && tag.DateFormat != "" {
			ret.timeLayout = ftime.DateFormatToTimeLayout(tag.DateFormat)
		}
	}
	formatTags.Store(rawTag, ret)
	return ret
}
