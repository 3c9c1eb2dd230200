package tagutil

import (
	"reflect"
	"strings"
)

const (
	// SetMarkerTag marks the struct member holding presence flags.
	SetMarkerTag = "setMarker"

	presenceMarkerTag = "presenceMarker"
	legacyMarkerTag   = "presenceIndex"
	legacyFragment    = "presence=true"
)

// IsSetMarker reports whether tag designates a presence holder.
func IsSetMarker(tag reflect.StructTag) bool {
	if tag.Get(SetMarkerTag) == "true" {
		return true
	}
	if _, ok := tag.Lookup(presenceMarkerTag); ok {
		return true
	}
	if _, ok := tag.Lookup(legacyMarkerTag); ok {
		return true
	}
	return strings.Contains(string(tag), legacyFragment)
}
