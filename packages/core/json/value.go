package json

import "strconv"

// Kind identifies which variant of the JSON value union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Member is one key/value pair of an object. Objects are stored as an
// ordered member list so that serialization reproduces authoring order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a JSON document node: exactly one of null, bool, number,
// string, array or object. Numbers remember whether their source form
// was integral so re-serialization does not invent a decimal point.
type Value struct {
	kind    Kind
	boolVal bool
	intVal  int64
	numVal  float64
	integer bool
	strVal  string
	items   []*Value
	members []Member
	path    string
}

func NewNull() *Value {
	return &Value{kind: KindNull}
}

func NewBool(b bool) *Value {
	return &Value{kind: KindBool, boolVal: b}
}

func NewInt(i int64) *Value {
	return &Value{kind: KindNumber, integer: true, intVal: i, numVal: float64(i)}
}

func NewFloat(f float64) *Value {
	return &Value{kind: KindNumber, numVal: f}
}

func NewString(s string) *Value {
	return &Value{kind: KindString, strVal: s}
}

func NewArray(items ...*Value) *Value {
	v := &Value{kind: KindArray}
	for _, item := range items {
		v.items = append(v.items, item)
	}
	v.renumber()
	return v
}

func NewObject() *Value {
	return &Value{kind: KindObject}
}

func (v *Value) Kind() Kind {
	return v.kind
}

// Path describes where in a parsed document this value sits, in the
// form "requests[2].headers". Programmatically built roots have an
// empty path until attached to a parent.
func (v *Value) Path() string {
	return v.path
}

func (v *Value) IsNull() bool {
	return v.kind == KindNull
}

func (v *Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.boolVal, nil
}

func (v *Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.strVal, nil
}

func (v *Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, v.mismatch(KindNumber)
	}
	return v.numVal, nil
}

// AsInt returns the number as an int64, truncating a fractional value.
func (v *Value) AsInt() (int64, error) {
	if v.kind != KindNumber {
		return 0, v.mismatch(KindNumber)
	}
	if v.integer {
		return v.intVal, nil
	}
	return int64(v.numVal), nil
}

// IsInteger reports whether a number value came from an integral
// literal (no fractional part, no exponent).
func (v *Value) IsInteger() bool {
	return v.kind == KindNumber && v.integer
}

func (v *Value) AsObject() ([]Member, error) {
	if v.kind != KindObject {
		return nil, v.mismatch(KindObject)
	}
	return v.members, nil
}

func (v *Value) AsArray() ([]*Value, error) {
	if v.kind != KindArray {
		return nil, v.mismatch(KindArray)
	}
	return v.items, nil
}

// Get returns the member value for key, failing if the receiver is not
// an object or the key is absent.
func (v *Value) Get(key string) (*Value, error) {
	if v.kind != KindObject {
		return nil, v.mismatch(KindObject)
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, nil
		}
	}
	return nil, &NotFoundError{Path: v.path, Key: key}
}

// Lookup is the optional-field variant of Get: it reports absence with
// a bool instead of an error and never fails on a non-object receiver.
func (v *Value) Lookup(key string) (*Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// At returns the i-th array element.
func (v *Value) At(i int) (*Value, error) {
	if v.kind != KindArray {
		return nil, v.mismatch(KindArray)
	}
	if i < 0 || i >= len(v.items) {
		return nil, &NotFoundError{Path: v.path, Index: i}
	}
	return v.items[i], nil
}

// Len returns the element count for arrays and the member count for
// objects, zero for any other kind.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	}
	return 0
}

func (v *Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Set adds or replaces an object member. A replaced key moves to the
// end of the member list: last write wins, and key order reflects the
// surviving write.
func (v *Value) Set(key string, child *Value) error {
	if v.kind != KindObject {
		return v.mismatch(KindObject)
	}
	for i, m := range v.members {
		if m.Key == key {
			v.members = append(v.members[:i], v.members[i+1:]...)
			break
		}
	}
	child.path = childPath(v.path, key)
	v.members = append(v.members, Member{Key: key, Value: child})
	return nil
}

// Delete removes an object member, reporting whether it was present.
func (v *Value) Delete(key string) bool {
	if v.kind != KindObject {
		return false
	}
	for i, m := range v.members {
		if m.Key == key {
			v.members = append(v.members[:i], v.members[i+1:]...)
			return true
		}
	}
	return false
}

// Append adds an element to an array.
func (v *Value) Append(child *Value) error {
	if v.kind != KindArray {
		return v.mismatch(KindArray)
	}
	child.path = indexPath(v.path, len(v.items))
	v.items = append(v.items, child)
	return nil
}

// Equal reports structural equality: same kind, same object key order,
// same array order, and the same integral-vs-fractional numeric shape.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindNumber:
		if v.integer != o.integer {
			return false
		}
		if v.integer {
			return v.intVal == o.intVal
		}
		return v.numVal == o.numVal
	case KindString:
		return v.strVal == o.strVal
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key {
				return false
			}
			if !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func (v *Value) mismatch(expected Kind) *TypeMismatchError {
	return &TypeMismatchError{Expected: expected, Actual: v.kind, Path: v.path}
}

func (v *Value) renumber() {
	for i, item := range v.items {
		item.path = indexPath(v.path, i)
	}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
