package value

import (
	"encoding"
	"errors"
	"math"
	"reflect"
	"unicode/utf8"
)

// Materializer is implemented by pointer types that populate themselves
// from a Value.
type Materializer interface {
	MaterializeValue(Value) error
}

// Materialize stores v into the value pointed to by target.
//
// Integers convert between widths when the number fits, floats accept any
// number and strings accept text only: a string target receives the source
// text of an inferred scalar, never a number formatted back to text. Struct
// targets require every field that is not a pointer and not tagged omitempty.
func Materialize(v Value, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &Error{Op: "materialize", Msg: "target must be a non-nil pointer"}
	}
	return materialize(v, rv.Elem(), "")
}

func isAbsent(v Value) bool {
	return v.kind == KindUnit || (v.kind == KindOption && v.inner == nil)
}

func materialize(v Value, dst reflect.Value, path string) error {
	if dst.Kind() == reflect.Pointer {
		if isAbsent(v) {
			dst.SetZero()
			return nil
		}
		if v.kind == KindOption {
			v = *v.inner
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return materialize(v, dst.Elem(), path)
	}

	if ok, err := materializeHooks(v, dst, path); ok {
		return err
	}

	if v.kind == KindOption && v.inner != nil {
		v = *v.inner
	}
	if v.kind == KindNewtype && dst.Kind() != reflect.Interface {
		v = *v.inner
	}

	switch dst.Kind() {
	case reflect.Bool:
		if v.kind != KindBool {
			return mismatch(path, dst, v)
		}
		dst.SetBool(v.b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := toInt64(v)
		if !ok {
			if v.kind.IsUnsigned() {
				return outOfRange(path, dst, v)
			}
			return mismatch(path, dst, v)
		}
		if dst.OverflowInt(n) {
			return outOfRange(path, dst, v)
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok := toUint64(v)
		if !ok {
			if v.kind.IsSigned() {
				return outOfRange(path, dst, v)
			}
			return mismatch(path, dst, v)
		}
		if dst.OverflowUint(n) {
			return outOfRange(path, dst, v)
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, ok := toFloat64(v)
		if !ok {
			return mismatch(path, dst, v)
		}
		dst.SetFloat(f)
	case reflect.String:
		s, ok := stringOf(v)
		if !ok {
			return mismatch(path, dst, v)
		}
		dst.SetString(s)
	case reflect.Slice:
		if dst.Type().Elem().Kind() == reflect.Uint8 {
			b, ok := bytesOf(v)
			if !ok {
				return mismatch(path, dst, v)
			}
			dst.SetBytes(b)
			return nil
		}
		if v.kind != KindSeq {
			return mismatch(path, dst, v)
		}
		out := reflect.MakeSlice(dst.Type(), len(v.seq), len(v.seq))
		for i, e := range v.seq {
			if err := materialize(e, out.Index(i), joinIndex(path, i)); err != nil {
				return err
			}
		}
		dst.Set(out)
	case reflect.Array:
		if v.kind != KindSeq {
			return mismatch(path, dst, v)
		}
		if len(v.seq) != dst.Len() {
			return materializeErr(path, "invalid length %d, expected %s", len(v.seq), dst.Type())
		}
		for i, e := range v.seq {
			if err := materialize(e, dst.Index(i), joinIndex(path, i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		if v.kind != KindMap {
			return mismatch(path, dst, v)
		}
		return materializeMap(v.m, dst, path)
	case reflect.Struct:
		if dst.NumField() == 0 && v.kind == KindUnit {
			return nil
		}
		if v.kind != KindMap {
			return mismatch(path, dst, v)
		}
		return materializeStruct(v.m, dst, path)
	case reflect.Interface:
		if dst.NumMethod() != 0 {
			return materializeErr(path, "cannot materialize into non-empty interface %s", dst.Type())
		}
		n := Natural(v)
		if n == nil {
			dst.SetZero()
			return nil
		}
		dst.Set(reflect.ValueOf(n))
	default:
		return materializeErr(path, "unsupported type %s", dst.Type())
	}
	return nil
}

func materializeHooks(v Value, dst reflect.Value, path string) (bool, error) {
	if !dst.CanAddr() || !dst.CanSet() {
		return false, nil
	}
	p := dst.Addr().Interface()
	if m, ok := p.(Materializer); ok {
		if err := m.MaterializeValue(v); err != nil {
			var ve *Error
			if errors.As(err, &ve) {
				return true, err
			}
			return true, materializeErr(path, "%v", err)
		}
		return true, nil
	}
	if u, ok := p.(encoding.TextUnmarshaler); ok {
		text, ok := textOf(v)
		if !ok {
			return true, mismatch(path, dst, v)
		}
		if err := u.UnmarshalText([]byte(text)); err != nil {
			return true, materializeErr(path, "%v", err)
		}
		return true, nil
	}
	return false, nil
}

func materializeMap(m *Map, dst reflect.Value, path string) error {
	t := dst.Type()
	if dst.IsNil() {
		dst.Set(reflect.MakeMapWithSize(t, m.Len()))
	}
	for _, e := range m.Entries() {
		kp := joinKey(path, e.Key)
		k := reflect.New(t.Key()).Elem()
		if err := materialize(e.Key, k, kp); err != nil {
			return err
		}
		val := reflect.New(t.Elem()).Elem()
		if err := materialize(e.Value, val, kp); err != nil {
			return err
		}
		dst.SetMapIndex(k, val)
	}
	return nil
}

func materializeStruct(m *Map, dst reflect.Value, path string) error {
	fields := structFields(dst.Type())
	seen := make([]bool, len(fields))
	for _, e := range m.Entries() {
		label, ok := e.Key.Text()
		if !ok {
			continue
		}
		i, ok := lookupField(fields, label)
		if !ok {
			continue
		}
		f := fields[i]
		fv, err := fieldByIndexAlloc(dst, f.index, joinField(path, f.name))
		if err != nil {
			return err
		}
		if !fv.CanSet() {
			continue
		}
		if err := materialize(e.Value, fv, joinField(path, f.name)); err != nil {
			return err
		}
		seen[i] = true
	}
	for i, f := range fields {
		if !seen[i] && !f.optional() {
			return materializeErr(path, "missing field %q", f.name)
		}
	}
	return nil
}

func mismatch(path string, dst reflect.Value, v Value) error {
	return materializeErr(path, "invalid type: expected %s, got %s", dst.Type(), v)
}

func outOfRange(path string, dst reflect.Value, v Value) error {
	return materializeErr(path, "invalid value: %s out of range for %s", v, dst.Type())
}

func toInt64(v Value) (int64, bool) {
	switch {
	case v.kind.IsSigned():
		return v.i, true
	case v.kind.IsUnsigned() && v.u <= math.MaxInt64:
		return int64(v.u), true
	}
	return 0, false
}

func toUint64(v Value) (uint64, bool) {
	switch {
	case v.kind.IsUnsigned():
		return v.u, true
	case v.kind.IsSigned() && v.i >= 0:
		return uint64(v.i), true
	}
	return 0, false
}

func toFloat64(v Value) (float64, bool) {
	switch {
	case v.kind.IsFloat():
		return v.f, true
	case v.kind.IsUnsigned():
		return float64(v.u), true
	case v.kind.IsSigned():
		return float64(v.i), true
	}
	return 0, false
}

// stringOf returns the text a string target receives from v.
func stringOf(v Value) (string, bool) {
	if v.hasSrc {
		return v.src, true
	}
	switch v.kind {
	case KindString:
		return v.s, true
	case KindChar:
		return string(v.r), true
	case KindBytes:
		if utf8.Valid(v.bytes) {
			return string(v.bytes), true
		}
	}
	return "", false
}

func bytesOf(v Value) ([]byte, bool) {
	if v.hasSrc {
		return []byte(v.src), true
	}
	switch v.kind {
	case KindBytes:
		return append([]byte(nil), v.bytes...), true
	case KindString:
		return []byte(v.s), true
	}
	return nil, false
}

// textOf returns the text handed to an encoding.TextUnmarshaler.
func textOf(v Value) (string, bool) {
	if v.hasSrc {
		return v.src, true
	}
	if v.kind == KindOption && v.inner != nil {
		return textOf(*v.inner)
	}
	return v.Text()
}

// Natural converts v into plain Go values: bool, sized ints and floats,
// rune, string, []byte, []any and map[string]any. Options and unit become
// nil and newtypes are unwrapped. Map keys use their text form.
func Natural(v Value) any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindUint8:
		return uint8(v.u)
	case KindUint16:
		return uint16(v.u)
	case KindUint32:
		return uint32(v.u)
	case KindUint64:
		return v.u
	case KindInt8:
		return int8(v.i)
	case KindInt16:
		return int16(v.i)
	case KindInt32:
		return int32(v.i)
	case KindInt64:
		return v.i
	case KindFloat32:
		return float32(v.f)
	case KindFloat64:
		return v.f
	case KindChar:
		return v.r
	case KindString:
		return v.s
	case KindBytes:
		return v.bytes
	case KindSeq:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = Natural(e)
		}
		return out
	case KindMap:
		out := make(map[string]any, v.m.Len())
		for _, e := range v.m.Entries() {
			k, ok := e.Key.Text()
			if !ok {
				k = e.Key.String()
			}
			out[k] = Natural(e.Value)
		}
		return out
	case KindNewtype, KindOption:
		if v.inner == nil {
			return nil
		}
		return Natural(*v.inner)
	}
	return nil
}
