package value

import (
	"encoding"
	"reflect"
)

// Flattener is implemented by types that build their own Value.
type Flattener interface {
	FlattenValue() (Value, error)
}

var (
	flattenerType     = reflect.TypeOf((*Flattener)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Flatten converts v into a Value.
//
// Pointers become options and interfaces are flattened through their dynamic
// value; an untyped nil is unit. Structs become maps keyed by field name
// (overridable with an `ltsv:"name,omitempty"` tag, `ltsv:"-"` skips the
// field). Types implementing Flattener or encoding.TextMarshaler take
// precedence over reflection.
func Flatten(v any) (Value, error) {
	if v == nil {
		return Unit(), nil
	}
	var f flattener
	return f.flatten(reflect.ValueOf(v), "")
}

// cycleDepth is how deep flatten goes through pointers, maps and slices
// before it starts tracking visited references.
const cycleDepth = 64

// ref identifies a pointer, map or slice currently being flattened.
type ref struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// flattener carries the state of one Flatten call.
type flattener struct {
	depth int
	seen  map[ref]struct{}
}

// enter records rv as being flattened. It reports a cycle when rv is already
// on the current path; the returned func must be called on the way out.
func (f *flattener) enter(rv reflect.Value, path string) (func(), error) {
	f.depth++
	if f.depth <= cycleDepth {
		return f.leave, nil
	}
	r := ref{typ: rv.Type(), ptr: rv.Pointer()}
	if rv.Kind() == reflect.Slice {
		r.len = rv.Len()
	}
	if _, ok := f.seen[r]; ok {
		f.depth--
		return nil, flattenErr(path, "encountered a cycle via %s", rv.Type())
	}
	if f.seen == nil {
		f.seen = make(map[ref]struct{})
	}
	f.seen[r] = struct{}{}
	return func() {
		delete(f.seen, r)
		f.leave()
	}, nil
}

func (f *flattener) leave() { f.depth-- }

func (f *flattener) flatten(rv reflect.Value, path string) (Value, error) {
	if !rv.IsValid() {
		return Unit(), nil
	}
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return None(), nil
		}
		leave, err := f.enter(rv, path)
		if err != nil {
			return Value{}, err
		}
		defer leave()
		inner, err := f.flatten(rv.Elem(), path)
		if err != nil {
			return Value{}, err
		}
		return Some(inner), nil
	case reflect.Interface:
		if rv.IsNil() {
			return Unit(), nil
		}
		return f.flatten(rv.Elem(), path)
	}

	if v, ok, err := flattenHooks(rv, path); ok {
		return v, err
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int64:
		return Int64(rv.Int()), nil
	case reflect.Int8:
		return Int8(int8(rv.Int())), nil
	case reflect.Int16:
		return Int16(int16(rv.Int())), nil
	case reflect.Int32:
		return Int32(int32(rv.Int())), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return Uint64(rv.Uint()), nil
	case reflect.Uint8:
		return Uint8(uint8(rv.Uint())), nil
	case reflect.Uint16:
		return Uint16(uint16(rv.Uint())), nil
	case reflect.Uint32:
		return Uint32(uint32(rv.Uint())), nil
	case reflect.Float32:
		return Float32(float32(rv.Float())), nil
	case reflect.Float64:
		return Float64(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}
		leave, err := f.enter(rv, path)
		if err != nil {
			return Value{}, err
		}
		defer leave()
		return f.flattenSeq(rv, path)
	case reflect.Array:
		return f.flattenSeq(rv, path)
	case reflect.Map:
		leave, err := f.enter(rv, path)
		if err != nil {
			return Value{}, err
		}
		defer leave()
		return f.flattenMap(rv, path)
	case reflect.Struct:
		if rv.NumField() == 0 {
			return Unit(), nil
		}
		return f.flattenStruct(rv, path)
	}
	return Value{}, flattenErr(path, "unsupported type %s", rv.Type())
}

func flattenHooks(rv reflect.Value, path string) (Value, bool, error) {
	if !rv.CanInterface() {
		return Value{}, false, nil
	}
	var target any
	t := rv.Type()
	switch {
	case t.Implements(flattenerType) || t.Implements(textMarshalerType):
		target = rv.Interface()
	case rv.CanAddr() && (reflect.PointerTo(t).Implements(flattenerType) ||
		reflect.PointerTo(t).Implements(textMarshalerType)):
		target = rv.Addr().Interface()
	default:
		return Value{}, false, nil
	}

	if f, ok := target.(Flattener); ok {
		v, err := f.FlattenValue()
		if err != nil {
			return Value{}, true, flattenErr(path, "%v", err)
		}
		return v, true, nil
	}
	text, err := target.(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return Value{}, true, flattenErr(path, "%v", err)
	}
	return String(string(text)), true, nil
}

func (f *flattener) flattenSeq(rv reflect.Value, path string) (Value, error) {
	elems := make([]Value, rv.Len())
	for i := range elems {
		v, err := f.flatten(rv.Index(i), joinIndex(path, i))
		if err != nil {
			return Value{}, err
		}
		elems[i] = v
	}
	return Seq(elems...), nil
}

func (f *flattener) flattenMap(rv reflect.Value, path string) (Value, error) {
	m := NewMap()
	iter := rv.MapRange()
	for iter.Next() {
		k, err := f.flatten(iter.Key(), path)
		if err != nil {
			return Value{}, err
		}
		v, err := f.flatten(iter.Value(), joinKey(path, k))
		if err != nil {
			return Value{}, err
		}
		m.Set(k, v)
	}
	return MapOf(m), nil
}

func (f *flattener) flattenStruct(rv reflect.Value, path string) (Value, error) {
	m := NewMap()
	for _, fd := range structFields(rv.Type()) {
		fv, ok := fieldByIndex(rv, fd.index)
		if !ok || (fd.omitEmpty && fv.IsZero()) {
			continue
		}
		v, err := f.flatten(fv, joinField(path, fd.name))
		if err != nil {
			return Value{}, err
		}
		m.Set(String(fd.name), v)
	}
	return MapOf(m), nil
}
