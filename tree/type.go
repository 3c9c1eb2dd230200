package tree

// Type is the discriminant of a Value.
type Type uint8

const (
	TypeNull Type = iota
	TypeTrue
	TypeFalse
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

var typeNames = [...]string{
	TypeNull:   "Null",
	TypeTrue:   "True",
	TypeFalse:  "False",
	TypeNumber: "Number",
	TypeString: "String",
	TypeArray:  "Array",
	TypeObject: "Object",
}

// String returns the tag name used in error messages.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// IsContainer reports whether the tag carries an Array or Object payload.
func (t Type) IsContainer() bool {
	return t == TypeArray || t == TypeObject
}
