package value

import "fmt"

// Error reports a failure to flatten a Go value or to materialize a Value
// into a Go target. Path locates the offending field, e.g. `b`, `items[2]`
// or `tags["x"]`; it is empty at the top level.
type Error struct {
	Op   string // "flatten" or "materialize"
	Path string
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Msg)
}

func flattenErr(path, format string, args ...any) error {
	return &Error{Op: "flatten", Path: path, Msg: fmt.Sprintf(format, args...)}
}

func materializeErr(path, format string, args ...any) error {
	return &Error{Op: "materialize", Path: path, Msg: fmt.Sprintf(format, args...)}
}

func joinField(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func joinIndex(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func joinKey(path string, k Value) string {
	if t, ok := k.Text(); ok {
		return fmt.Sprintf("%s[%q]", path, t)
	}
	return fmt.Sprintf("%s[%s]", path, k)
}
