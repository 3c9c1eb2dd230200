package tree

// Get returns the member stored under key of an Object node.
func (v *Value) Get(key string) (*Value, bool) {
	if v.typ != TypeObject {
		return nil, false
	}
	p := v.dict.Lookup(key)
	return p, p != nil
}

// At returns the element at index of an Array node.
func (v *Value) At(index int) (*Value, bool) {
	if v.typ != TypeArray {
		return nil, false
	}
	return v.arr.At(index)
}

// Set assigns a member of an Object node.
func (v *Value) Set(key string, value Value) error {
	if v.typ != TypeObject {
		return &OperationError{Op: "set property", Type: v.typ}
	}
	v.dict.Set(key, value)
	return nil
}

// SetAt assigns an element of an Array node; see Array.Set.
func (v *Value) SetAt(index int, value Value) error {
	if v.typ != TypeArray {
		return &OperationError{Op: "set index", Type: v.typ}
	}
	return v.arr.Set(index, value)
}

// Delete removes a member; it returns false for absent keys and non-objects.
func (v *Value) Delete(key string) bool {
	if v.typ != TypeObject {
		return false
	}
	return v.dict.Remove(key)
}

// DeleteAt removes an element; it returns false when out of range or when v
// is not an array.
func (v *Value) DeleteAt(index int) bool {
	if v.typ != TypeArray {
		return false
	}
	return v.arr.Delete(index)
}

// Len returns the element count of an array or the member count of an object.
func (v *Value) Len() int {
	switch v.typ {
	case TypeArray:
		return v.arr.Len()
	case TypeObject:
		return v.dict.Len()
	}
	return 0
}

// IsDefined reports whether an Object node has key.
func (v *Value) IsDefined(key string) bool {
	return v.typ == TypeObject && v.dict.ContainsKey(key)
}

// IsDefinedAt reports whether an Array node has index.
func (v *Value) IsDefinedAt(index int) bool {
	return v.typ == TypeArray && v.arr.IsDefined(index)
}

// Lookup walks path from v. Each step is a string member name or an int
// index.
func (v *Value) Lookup(path ...any) (*Value, error) {
	node := v
	for _, step := range path {
		switch key := step.(type) {
		case string:
			if node.typ != TypeObject {
				return nil, &OperationError{Op: "get property", Type: node.typ}
			}
			next := node.dict.Lookup(key)
			if next == nil {
				return nil, &KeyNotFoundError{Key: key}
			}
			node = next
		case int:
			if node.typ != TypeArray {
				return nil, &OperationError{Op: "get index", Type: node.typ}
			}
			next, ok := node.arr.At(key)
			if !ok {
				return nil, &IndexError{Index: key, Len: node.arr.Len()}
			}
			node = next
		case nil:
			return nil, &ArgumentError{Name: "key", Message: "key cannot be nil"}
		default:
			return nil, &ArgumentError{Name: "key", Message: "key must be a string or an int"}
		}
	}
	return node, nil
}

// Put assigns value under a string key or an int index.
func (v *Value) Put(key any, value Value) error {
	switch k := key.(type) {
	case string:
		return v.Set(k, value)
	case int:
		return v.SetAt(k, value)
	case nil:
		return &ArgumentError{Name: "key", Message: "key cannot be nil"}
	}
	return &ArgumentError{Name: "key", Message: "key must be a string or an int"}
}

// Remove deletes a member or element addressed by a string key or int index.
func (v *Value) Remove(key any) (bool, error) {
	switch k := key.(type) {
	case string:
		return v.Delete(k), nil
	case int:
		return v.DeleteAt(k), nil
	case nil:
		return false, &ArgumentError{Name: "key", Message: "key cannot be nil"}
	}
	return false, &ArgumentError{Name: "key", Message: "key must be a string or an int"}
}
