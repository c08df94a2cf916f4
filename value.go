// value.go
//
// Runtime value model for the Luma interpreter.
//
// Value is a tagged union covering every kind a Luma program can reference:
// int, float, str, bool, list, function references, environment references,
// undefined (an unresolved binding) and null (explicit absence). The tag
// determines which Go type Value.Data holds (see ValueTag).
//
// Equality and ordering are defined only between compatible variants, with
// two deliberate cross-variant rules:
//   - Int and Float compare by numeric value.
//   - Lists compare element-wise; on unequal length, by length.
//
// Any other cross-variant comparison is incomparable: Equal reports false and
// Compare reports no ordering.
//
// Two textual forms exist and must not be confused:
//   - Render()    — human-readable, used by the CLI to print results.
//   - Serialize() — machine-parseable, used by the external-process protocol
//     (quoted strings, bracketed comma-joined lists, JSON for function refs).
package luma

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTUndefined ValueTag = iota // unresolved binding (no payload)
	VTNull                      // explicit absence (no payload)
	VTInt                       // int64
	VTFloat                     // float64
	VTStr                       // string
	VTBool                      // bool
	VTList                      // []Value
	VTFun                       // *Function
	VTEnv                       // *Env
)

// Value is the universal runtime carrier. Tag discriminates which case is
// active; Data holds the Go payload appropriate for Tag.
type Value struct {
	Tag  ValueTag
	Data any
}

// Undefined and Null are the payload-less singletons.
var (
	Undefined = Value{Tag: VTUndefined}
	Null      = Value{Tag: VTNull}
)

// Primitive constructors.
func Int(n int64) Value        { return Value{Tag: VTInt, Data: n} }
func Float(f float64) Value    { return Value{Tag: VTFloat, Data: f} }
func Str(s string) Value       { return Value{Tag: VTStr, Data: s} }
func Bool(b bool) Value        { return Value{Tag: VTBool, Data: b} }
func List(xs []Value) Value    { return Value{Tag: VTList, Data: xs} }
func FunVal(f *Function) Value { return Value{Tag: VTFun, Data: f} }
func EnvVal(e *Env) Value      { return Value{Tag: VTEnv, Data: e} }

// IsUndefined reports whether v is the unresolved sentinel.
func (v Value) IsUndefined() bool { return v.Tag == VTUndefined }

// Truthy reports whether v is exactly Bool(true). Branching statements treat
// everything else, including non-bool values, as not taken.
func (v Value) Truthy() bool { return v.Tag == VTBool && v.Data.(bool) }

func (v Value) asFloat() (float64, bool) {
	switch v.Tag {
	case VTInt:
		return float64(v.Data.(int64)), true
	case VTFloat:
		return v.Data.(float64), true
	}
	return 0, false
}

// Equal implements Luma equality: same-variant structural equality plus the
// numeric Int/Float crossover. Incompatible variants are never equal.
func (v Value) Equal(o Value) bool {
	if (v.Tag == VTInt || v.Tag == VTFloat) && (o.Tag == VTInt || o.Tag == VTFloat) {
		if v.Tag == VTInt && o.Tag == VTInt {
			return v.Data.(int64) == o.Data.(int64)
		}
		a, _ := v.asFloat()
		b, _ := o.asFloat()
		return a == b
	}
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case VTUndefined, VTNull:
		return true
	case VTStr:
		return v.Data.(string) == o.Data.(string)
	case VTBool:
		return v.Data.(bool) == o.Data.(bool)
	case VTList:
		a := v.Data.([]Value)
		b := o.Data.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case VTFun:
		return v.Data == o.Data
	case VTEnv:
		return v.Data == o.Data
	}
	return false
}

// Compare implements Luma ordering. The second result is false when the two
// values are incomparable (e.g. str vs int, functions, environments).
// Lists order element-wise; prefix-equal lists of unequal length order by
// length, shorter first.
func (v Value) Compare(o Value) (int, bool) {
	if (v.Tag == VTInt || v.Tag == VTFloat) && (o.Tag == VTInt || o.Tag == VTFloat) {
		a, _ := v.asFloat()
		b, _ := o.asFloat()
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	}
	if v.Tag != o.Tag {
		return 0, false
	}
	switch v.Tag {
	case VTStr:
		return strings.Compare(v.Data.(string), o.Data.(string)), true
	case VTBool:
		a := v.Data.(bool)
		b := o.Data.(bool)
		switch {
		case a == b:
			return 0, true
		case !a:
			return -1, true
		}
		return 1, true
	case VTList:
		a := v.Data.([]Value)
		b := o.Data.([]Value)
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1, true
			}
			return 1, true
		}
		for i := range a {
			if ord, ok := a[i].Compare(b[i]); ok && ord != 0 {
				return ord, true
			}
		}
		return 0, true
	}
	return 0, false
}

// TypeName returns the Luma-level type name of v, as printed by the CLI.
func (v Value) TypeName() string {
	switch v.Tag {
	case VTInt:
		return "int"
	case VTFloat:
		return "float"
	case VTStr:
		return "string"
	case VTBool:
		return "bool"
	case VTList:
		return "list"
	case VTFun:
		return "function"
	case VTEnv:
		return "environment"
	case VTNull:
		return "null"
	}
	return "undefined"
}

// Render produces the human-readable form of v.
func (v Value) Render() string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range v.Data.([]Value) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(item.Render())
		}
		sb.WriteByte(']')
		return sb.String()
	case VTFun:
		return "<function>"
	case VTEnv:
		return "<environment>"
	case VTNull:
		return "null"
	}
	return "undefined"
}

// Serialize produces the machine-parseable form used by the external-process
// protocol: quoted strings, bracketed comma-joined lists, function references
// as JSON, environments as null (never sent across the boundary).
func (v Value) Serialize() string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return "\"" + v.Data.(string) + "\""
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTList:
		items := v.Data.([]Value)
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.Serialize()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case VTFun:
		b, err := json.Marshal(v.Data.(*Function))
		if err != nil {
			return "null"
		}
		return string(b)
	case VTEnv, VTNull:
		return "null"
	}
	return "undefined"
}

// ParseLiteral parses text as a primitive literal of the declared type.
// Only int, float, str and bool are primitive; malformed text is a
// *TypeError rather than a silent default.
func ParseLiteral(text, declaredType string) (Value, error) {
	switch declaredType {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Undefined, &TypeError{Text: text, Want: "int"}
		}
		return Int(n), nil
	case "float":
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Undefined, &TypeError{Text: text, Want: "float"}
		}
		return Float(f), nil
	case "str":
		return Str(strings.TrimSpace(text)), nil
	case "bool":
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return Undefined, &TypeError{Text: text, Want: "bool"}
	}
	return Undefined, &TypeError{Text: text, Want: declaredType}
}
