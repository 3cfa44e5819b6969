package ltsv

import (
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/unkn0wn-root/ltsv/value"
)

// Marshal renders v as one LTSV line without a trailing newline.
//
// v must flatten to a map (struct, map), a sequence (labels become element
// indexes) or a newtype around a map. Keys and values must be scalars;
// booleans are allowed as values only. Labels come out in ascending order.
// A non-nil pointer is rendered as the value it points to.
func Marshal(v any) (string, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		v = rv.Elem().Interface()
	}
	flat, err := value.Flatten(v)
	if err != nil {
		return "", materialization(err)
	}
	return Render(flat)
}

// Render writes a value of the generic model as one LTSV line.
func Render(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindMap:
		return renderMap(v.Map())
	case value.KindSeq:
		return renderSeq(v.Elems())
	case value.KindNewtype:
		inner, _ := v.Inner()
		if inner.Kind() != value.KindMap {
			return "", invalidInput("invalid object: newtype must wrap a map, got %s", inner)
		}
		return renderMap(inner.Map())
	}
	return "", invalidInput("invalid value: must be a map, an object or a sequence, got %s", v.Kind())
}

func renderMap(m *value.Map) (string, error) {
	var sb strings.Builder
	for i, e := range m.Entries() {
		if err := writePair(&sb, i, e.Key, e.Value); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func renderSeq(elems []value.Value) (string, error) {
	var sb strings.Builder
	for i, e := range elems {
		if err := writePair(&sb, i, value.Uint64(uint64(i)), e); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func writePair(sb *strings.Builder, i int, k, v value.Value) error {
	ks, err := keyString(k)
	if err != nil {
		return err
	}
	vs, err := valueString(v)
	if err != nil {
		return err
	}
	if i > 0 {
		sb.WriteByte('\t')
	}
	sb.WriteString(ks)
	sb.WriteByte(':')
	sb.WriteString(vs)
	return nil
}

func keyString(k value.Value) (string, error) {
	if k.Kind() == value.KindBool || !k.Kind().IsScalar() {
		return "", invalidInput("key %s cannot be %s", k, noun(k.Kind()))
	}
	return scalarString(k)
}

func valueString(v value.Value) (string, error) {
	if !v.Kind().IsScalar() {
		return "", invalidInput("value cannot be %s (%s)", noun(v.Kind()), v)
	}
	return scalarString(v)
}

func scalarString(v value.Value) (string, error) {
	if v.Kind() == value.KindBytes && !utf8.Valid(v.Bytes()) {
		return "", textDecoding(v.Bytes())
	}
	s, _ := v.Text()
	return s, nil
}

// noun names k with its article for error messages.
func noun(k value.Kind) string {
	switch k {
	case value.KindSeq:
		return "a sequence"
	case value.KindNewtype:
		return "an object"
	case value.KindBool:
		return "a boolean"
	case value.KindMap:
		return "a map"
	case value.KindOption:
		return "an option"
	case value.KindUnit:
		return "a unit"
	}
	return "a " + strconv.Quote(k.String())
}
