package ltsv

import (
	"errors"
	"strconv"
	"strings"

	"github.com/unkn0wn-root/ltsv/value"
)

// Infer guesses the scalar type of raw. It tries, in order, the literals
// true/false, an unsigned 64-bit decimal, a signed 64-bit decimal and a
// float, and falls back to raw as a string. The result remembers raw as its
// source text.
func Infer(raw string) value.Value {
	return inferScalar(raw).WithSource(raw)
}

func inferScalar(raw string) value.Value {
	switch raw {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	}
	if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return value.Uint64(u)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return value.Int64(i)
	}
	if f, ok := parseFloat(raw); ok {
		return value.Float64(f)
	}
	return value.String(raw)
}

// parseFloat accepts decimal and exponent notation plus inf, infinity and
// nan. Hex floats and digit separators are rejected; overflow yields ±Inf.
func parseFloat(raw string) (float64, bool) {
	if strings.ContainsAny(raw, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
