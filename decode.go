package ltsv

import (
	"strings"

	"github.com/unkn0wn-root/ltsv/value"
)

// Parse splits one LTSV line into a map value of label to inferred scalar.
// Labels are string keys; a repeated label keeps its last value.
func Parse(line string) (value.Value, error) {
	m := value.NewMap()
	for _, chunk := range strings.Split(line, "\t") {
		if chunk == "" {
			return value.Value{}, invalidInput("missing name and value for a LTSV record")
		}
		label, raw, ok := strings.Cut(chunk, ":")
		if !ok {
			return value.Value{}, invalidInput("invalid input: [%q]", line)
		}
		m.Set(value.String(label), Infer(raw))
	}
	return value.MapOf(m), nil
}

// Unmarshal parses line and stores the result in the value pointed to by v.
//
//	type Access struct {
//		Host   string `ltsv:"host"`
//		Status int    `ltsv:"status"`
//	}
//	var a Access
//	err := ltsv.Unmarshal("host:127.0.0.1\tstatus:200", &a)
func Unmarshal(line string, v any) error {
	rec, err := Parse(line)
	if err != nil {
		return err
	}
	if err := value.Materialize(rec, v); err != nil {
		return materialization(err)
	}
	return nil
}

// Decode is Unmarshal returning a new T.
func Decode[T any](line string) (T, error) {
	var out T
	if err := Unmarshal(line, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
