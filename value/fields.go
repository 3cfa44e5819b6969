package value

import (
	"reflect"
	"strings"
)

// field describes one struct field as seen by Flatten and Materialize.
type field struct {
	name      string
	index     []int
	typ       reflect.Type
	omitEmpty bool
}

// optional reports whether the field may be absent when materializing.
func (f field) optional() bool {
	return f.omitEmpty || f.typ.Kind() == reflect.Pointer
}

func parseTag(tag string) (name string, omitEmpty bool) {
	name, opts, _ := strings.Cut(tag, ",")
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

// structFields lists the fields of t, inlining untagged anonymous struct
// fields. Fields closer to the root shadow deeper fields of the same name.
func structFields(t reflect.Type) []field {
	var (
		out  []field
		seen = map[string]bool{}
	)
	var walk func(t reflect.Type, index []int)
	walk = func(t reflect.Type, index []int) {
		var embedded []reflect.StructField
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			tag := sf.Tag.Get("ltsv")
			if tag == "-" {
				continue
			}
			name, omitEmpty := parseTag(tag)
			if sf.Anonymous && name == "" {
				ft := sf.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					embedded = append(embedded, sf)
					continue
				}
			}
			if !sf.IsExported() {
				continue
			}
			if name == "" {
				name = sf.Name
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, field{
				name:      name,
				index:     append(append([]int(nil), index...), i),
				typ:       sf.Type,
				omitEmpty: omitEmpty,
			})
		}
		for _, sf := range embedded {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			walk(ft, append(append([]int(nil), index...), sf.Index[0]))
		}
	}
	walk(t, nil)
	return out
}

// lookupField finds the field for label, preferring an exact match and
// falling back to a case-insensitive one.
func lookupField(fields []field, label string) (int, bool) {
	for i := range fields {
		if fields[i].name == label {
			return i, true
		}
	}
	for i := range fields {
		if strings.EqualFold(fields[i].name, label) {
			return i, true
		}
	}
	return -1, false
}

// fieldByIndex walks index from v. ok is false when an embedded pointer on
// the way is nil.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

// fieldByIndexAlloc is fieldByIndex that allocates nil embedded pointers. A
// nil pointer to an unexported embedded struct cannot be set and is an error.
func fieldByIndexAlloc(v reflect.Value, index []int, path string) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, materializeErr(path, "cannot set embedded pointer to unexported struct %s", v.Type().Elem())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, nil
}
