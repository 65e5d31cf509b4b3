// Package manifest models a package.json document as a closed tagged
// variant that preserves object key order. Condition maps inside
// exports/imports are order-sensitive: consumers match conditions in
// declared order, so the decoder must not round-trip through Go maps.
package manifest

// Kind discriminates the variant held by a Value
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindNull
	KindArray
	KindObject
)

// String returns the JSON name of the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Member is one key/value pair of an object, in declared order
type Member struct {
	Key   string
	Value *Value
}

// Value is a JSON value with ordered object members
type Value struct {
	Kind    Kind
	Str     string
	Num     float64
	Bool    bool
	Arr     []*Value
	Members []Member
}

// Get returns the member value for a key, or nil when the receiver is
// not an object or the key is absent
func (v *Value) Get(key string) *Value {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Index returns the declared position of a key, or -1
func (v *Value) Index(key string) int {
	if v == nil || v.Kind != KindObject {
		return -1
	}
	for i, m := range v.Members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Keys returns the object keys in declared order
func (v *Value) Keys() []string {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.Members))
	for i, m := range v.Members {
		keys[i] = m.Key
	}
	return keys
}

// IsString reports whether the value is a string
func (v *Value) IsString() bool {
	return v != nil && v.Kind == KindString
}

// IsObject reports whether the value is an object
func (v *Value) IsObject() bool {
	return v != nil && v.Kind == KindObject
}

// IsNull reports whether the value is the explicit null exclusion marker
func (v *Value) IsNull() bool {
	return v != nil && v.Kind == KindNull
}
