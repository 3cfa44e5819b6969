// Package value is the interchange layer between typed Go values and the
// ltsv wire format.
//
// A Value is an immutable tagged union over scalars (bool, sized integers,
// floats, char, string, bytes) and containers (seq, map, newtype, option,
// unit). Flatten produces a Value from an arbitrary Go value and Materialize
// writes a Value into a typed Go target. Types can take over either direction
// by implementing Flattener or Materializer.
package value

import (
	"math"
	"strconv"
	"strings"
)

// Value is a kind-discriminated generic value. The zero Value is Invalid.
type Value struct {
	kind  Kind
	b     bool
	u     uint64
	i     int64
	f     float64
	r     rune
	s     string
	bytes []byte
	seq   []Value
	m     *Map
	inner *Value // newtype payload, or option payload when Some

	// src is the raw text a scalar was inferred from, if any.
	src    string
	hasSrc bool
}

func Bool(v bool) Value       { return Value{kind: KindBool, b: v} }
func Uint8(v uint8) Value     { return Value{kind: KindUint8, u: uint64(v)} }
func Uint16(v uint16) Value   { return Value{kind: KindUint16, u: uint64(v)} }
func Uint32(v uint32) Value   { return Value{kind: KindUint32, u: uint64(v)} }
func Uint64(v uint64) Value   { return Value{kind: KindUint64, u: v} }
func Int8(v int8) Value       { return Value{kind: KindInt8, i: int64(v)} }
func Int16(v int16) Value     { return Value{kind: KindInt16, i: int64(v)} }
func Int32(v int32) Value     { return Value{kind: KindInt32, i: int64(v)} }
func Int64(v int64) Value     { return Value{kind: KindInt64, i: v} }
func Float32(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }
func Float64(v float64) Value { return Value{kind: KindFloat64, f: v} }
func Char(v rune) Value       { return Value{kind: KindChar, r: v} }
func String(v string) Value   { return Value{kind: KindString, s: v} }

// Bytes wraps b without copying it.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Seq builds a sequence from elems in order.
func Seq(elems ...Value) Value { return Value{kind: KindSeq, seq: elems} }

// MapOf wraps m. A nil m is treated as an empty map.
func MapOf(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

// Newtype wraps a single inner value.
func Newtype(inner Value) Value { return Value{kind: KindNewtype, inner: &inner} }

// Some is a present option.
func Some(inner Value) Value { return Value{kind: KindOption, inner: &inner} }

// None is an absent option.
func None() Value { return Value{kind: KindOption} }

func Unit() Value { return Value{kind: KindUnit} }

// WithSource returns a copy of v that remembers raw as the text it was
// inferred from. Materializing into a string or TextUnmarshaler uses raw.
func (v Value) WithSource(raw string) Value {
	v.src = raw
	v.hasSrc = true
	return v
}

// FlattenValue lets a Value be embedded in a struct and flattened as is.
func (v Value) FlattenValue() (Value, error) { return v, nil }

// MaterializeValue captures x unchanged.
func (v *Value) MaterializeValue(x Value) error {
	*v = x
	return nil
}

// Source returns the raw text v was inferred from.
func (v Value) Source() (string, bool) { return v.src, v.hasSrc }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsValid() bool  { return v.kind != Invalid }
func (v Value) Bool() bool     { return v.b }
func (v Value) Uint() uint64   { return v.u }
func (v Value) Int() int64     { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Char() rune     { return v.r }
func (v Value) Str() string    { return v.s }
func (v Value) Bytes() []byte  { return v.bytes }
func (v Value) Elems() []Value { return v.seq }

// Map returns the map payload, or nil when v is not a map.
func (v Value) Map() *Map { return v.m }

// Inner returns the payload of a newtype or a present option.
func (v Value) Inner() (Value, bool) {
	if v.inner == nil {
		return Value{}, false
	}
	return *v.inner, true
}

// Text returns the natural text form of a scalar: decimal numbers, the
// string or char itself, true/false. Bytes are returned as-is without UTF-8
// validation. ok is false for containers.
func (v Value) Text() (s string, ok bool) {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b), true
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.u, 10), true
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10), true
	case KindFloat32:
		return formatFloat(v.f, 32), true
	case KindFloat64:
		return formatFloat(v.f, 64), true
	case KindChar:
		return string(v.r), true
	case KindString:
		return v.s, true
	case KindBytes:
		return string(v.bytes), true
	}
	return "", false
}

// formatFloat renders f as the shortest decimal that round-trips, never
// using an exponent.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// String renders v for diagnostics. The format is stable:
//
//	u64(42) string("x") char('c') bytes(3) seq(len=2) map(len=1)
//	newtype(<inner>) option(none) option(<inner>) unit
func (v Value) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.kind {
	case Invalid:
		sb.WriteString("invalid")
	case KindUnit:
		sb.WriteString("unit")
	case KindString:
		sb.WriteString("string(")
		sb.WriteString(strconv.Quote(v.s))
		sb.WriteByte(')')
	case KindChar:
		sb.WriteString("char(")
		sb.WriteString(strconv.QuoteRune(v.r))
		sb.WriteByte(')')
	case KindBytes:
		sb.WriteString("bytes(")
		sb.WriteString(strconv.Itoa(len(v.bytes)))
		sb.WriteByte(')')
	case KindSeq:
		sb.WriteString("seq(len=")
		sb.WriteString(strconv.Itoa(len(v.seq)))
		sb.WriteByte(')')
	case KindMap:
		sb.WriteString("map(len=")
		sb.WriteString(strconv.Itoa(v.m.Len()))
		sb.WriteByte(')')
	case KindNewtype, KindOption:
		sb.WriteString(v.kind.String())
		sb.WriteByte('(')
		if v.inner == nil {
			sb.WriteString("none")
		} else {
			v.inner.render(sb)
		}
		sb.WriteByte(')')
	default:
		t, _ := v.Text()
		sb.WriteString(v.kind.String())
		sb.WriteByte('(')
		sb.WriteString(t)
		sb.WriteByte(')')
	}
}
