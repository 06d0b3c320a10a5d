package schedule

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Absent Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "absent"
	}
}

// MaxDepth bounds how deep Parse and Find will descend into a document.
const MaxDepth = 128

// ErrTooDeep is returned by Parse for documents nested beyond MaxDepth.
var ErrTooDeep = errors.New("schedule: document nested too deeply")

// Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value of unknown shape. The zero Value is Absent.
// Accessors never panic; asking for the wrong variant reports ok=false.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	items   []Value
	members []Member
}

func NewNull() Value { return Value{kind: Null} }
func NewBool(b bool) Value { return Value{kind: Bool, boolean: b} }
func NewNumber(n float64) Value { return Value{kind: Number, num: n} }
func NewString(s string) Value { return Value{kind: String, str: s} }
func NewArray(items ...Value) Value {
	return Value{kind: Array, items: items}
}
func NewObject(members ...Member) Value {
	return Value{kind: Object, members: members}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == Absent }

// Get returns the value bound to key when v is an object. When a key is
// repeated the last binding wins, matching encoding/json.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Key == key {
			return v.members[i].Value, true
		}
	}
	return Value{}, false
}

// Members returns the object's entries in document order.
func (v Value) Members() ([]Member, bool) {
	if v.kind != Object {
		return nil, false
	}
	return v.members, true
}

// Items returns the array's elements in document order.
func (v Value) Items() ([]Value, bool) {
	if v.kind != Array {
		return nil, false
	}
	return v.items, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

func (v Value) AsBool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.boolean, true
}

// Parse decodes raw JSON into a Value, keeping object keys in the order they
// appear in the document. Blank input yields an Absent value and no error.
func Parse(raw []byte) (Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Value{}, nil
	}
	data, typ, _, err := jsonparser.Get(raw)
	if err != nil {
		return Value{}, fmt.Errorf("schedule: parse document: %w", err)
	}
	return decode(data, typ, 0)
}

func decode(data []byte, typ jsonparser.ValueType, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, ErrTooDeep
	}
	switch typ {
	case jsonparser.Object:
		v := Value{kind: Object}
		// ObjectEach hands over keys already unescaped.
		err := jsonparser.ObjectEach(data, func(key []byte, raw []byte, vt jsonparser.ValueType, _ int) error {
			child, err := decode(raw, vt, depth+1)
			if err != nil {
				return err
			}
			v.members = append(v.members, Member{Key: string(key), Value: child})
			return nil
		})
		if err != nil {
			return Value{}, err
		}
		return v, nil
	case jsonparser.Array:
		v := Value{kind: Array}
		var inner error
		_, err := jsonparser.ArrayEach(data, func(raw []byte, vt jsonparser.ValueType, _ int, err error) {
			if inner != nil {
				return
			}
			if err != nil {
				inner = err
				return
			}
			child, err := decode(raw, vt, depth+1)
			if err != nil {
				inner = err
				return
			}
			v.items = append(v.items, child)
		})
		if inner != nil {
			return Value{}, inner
		}
		if err != nil {
			return Value{}, fmt.Errorf("schedule: array: %w", err)
		}
		return v, nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return Value{}, fmt.Errorf("schedule: string: %w", err)
		}
		return NewString(s), nil
	case jsonparser.Number:
		n, err := jsonparser.ParseFloat(data)
		if err != nil {
			return Value{}, fmt.Errorf("schedule: number: %w", err)
		}
		return NewNumber(n), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return Value{}, fmt.Errorf("schedule: bool: %w", err)
		}
		return NewBool(b), nil
	case jsonparser.Null:
		return NewNull(), nil
	default:
		return Value{}, fmt.Errorf("schedule: unexpected value type %s", typ)
	}
}
