package lang

import "strconv"

// ValueType enumerates the runtime value categories. The universe is
// intentionally small: this interpreter has no functions, classes, or
// collections.
type ValueType int

const (
	TypeNil ValueType = iota
	TypeBool
	TypeNumber
	TypeText
)

// Value is any runtime value produced by evaluating an expression.
type Value struct {
	Type    ValueType
	boolean bool
	number  float64
	text    string
}

// Nil is the singleton nil value.
var Nil = Value{Type: TypeNil}

// BoolValue constructs a boolean Value.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, boolean: b}
}

// NumberValue constructs a numeric Value.
func NumberValue(n float64) Value {
	return Value{Type: TypeNumber, number: n}
}

// TextValue constructs a string Value.
func TextValue(s string) Value {
	return Value{Type: TypeText, text: s}
}

// Bool returns the boolean payload; zero value if Type != TypeBool.
func (v Value) Bool() bool { return v.boolean }

// Number returns the numeric payload; zero value if Type != TypeNumber.
func (v Value) Number() float64 { return v.number }

// Text returns the string payload; zero value if Type != TypeText.
func (v Value) Text() string { return v.text }

// Truthy implements the language's truthiness rule: nil and boolean false
// are falsy, everything else (including 0 and "") is truthy.
func (v Value) Truthy() bool {
	switch v.Type {
	case TypeNil:
		return false
	case TypeBool:
		return v.boolean
	default:
		return true
	}
}

// Equal implements structural equality: nil equals nil, values of
// different kinds are never equal, same-kind values compare by payload.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case TypeNil:
		return true
	case TypeBool:
		return v.boolean == other.boolean
	case TypeNumber:
		return v.number == other.number
	case TypeText:
		return v.text == other.text
	default:
		return false
	}
}

// String renders a Value the way a print statement would: nil -> "nil",
// booleans -> "true"/"false", text verbatim, and numbers in standard
// decimal form with a trailing ".0" trimmed off whole numbers.
func (v Value) String() string {
	switch v.Type {
	case TypeNil:
		return "nil"
	case TypeBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case TypeText:
		return v.text
	case TypeNumber:
		text := strconv.FormatFloat(v.number, 'f', -1, 64)
		if len(text) >= 2 && text[len(text)-2:] == ".0" {
			text = text[:len(text)-2]
		}
		return text
	default:
		return ""
	}
}
