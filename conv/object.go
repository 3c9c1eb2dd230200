package conv

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is the ordered string map produced for JSON objects when the
// target is an empty interface.
type Object []Member

// Get returns the value of the first member named key.
func (o Object) Get(key string) (any, bool) {
	for i := range o {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Keys returns member keys in order.
func (o Object) Keys() []string {
	ret := make([]string, len(o))
	for i := range o {
		ret[i] = o[i].Key
	}
	return ret
}
