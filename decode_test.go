package ltsv

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/unkn0wn-root/ltsv/value"
)

type foo struct {
	A string `ltsv:"a"`
	B int8   `ltsv:"b"`
	C bool   `ltsv:"c"`
}

type access struct {
	Time    string   `ltsv:"time"`
	Host    string   `ltsv:"host"`
	Status  uint16   `ltsv:"status"`
	Size    int64    `ltsv:"size"`
	ReqTime float64  `ltsv:"reqtime"`
	Ref     *string  `ltsv:"referer"`
	UA      string   `ltsv:"ua,omitempty"`
	Ignored struct{} `ltsv:"-"`
}

func mustUnmarshal[T any](t *testing.T, line string) T {
	t.Helper()
	v, err := Decode[T](line)
	if err != nil {
		t.Fatalf("Decode(%q): %v", line, err)
	}
	return v
}

func TestDecodeConcreteScenario(t *testing.T) {
	got := mustUnmarshal[foo](t, "a:Test\tb:8\tc:false")
	want := foo{A: "Test", B: 8, C: false}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestDecodeAccessLog(t *testing.T) {
	line := "time:[10/Oct/2000:13:55:36 -0700]\thost:127.0.0.1\tstatus:200\tsize:-1\treqtime:0.25\tunknown:x"
	got := mustUnmarshal[access](t, line)
	if got.Time != "[10/Oct/2000:13:55:36 -0700]" {
		t.Fatalf("time: %q", got.Time)
	}
	if got.Host != "127.0.0.1" || got.Status != 200 || got.Size != -1 || got.ReqTime != 0.25 {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.Ref != nil || got.UA != "" {
		t.Fatalf("optional fields should stay empty: %+v", got)
	}
}

func TestDecodeOptionalPresent(t *testing.T) {
	got := mustUnmarshal[access](t, "time:t\thost:h\tstatus:1\tsize:2\treqtime:3\treferer:-\tua:curl")
	if got.Ref == nil || *got.Ref != "-" || got.UA != "curl" {
		t.Fatalf("unexpected record %+v", got)
	}
	// reqtime:3 is inferred as u64 and widened into the float field.
	if got.ReqTime != 3 {
		t.Fatalf("reqtime: %v", got.ReqTime)
	}
}

func TestDecodeStringFieldKeepsSourceText(t *testing.T) {
	type rec struct {
		Zip   string `ltsv:"zip"`
		Flag  string `ltsv:"flag"`
		Ratio string `ltsv:"ratio"`
	}
	got := mustUnmarshal[rec](t, "zip:00501\tflag:true\tratio:1e3")
	if got.Zip != "00501" || got.Flag != "true" || got.Ratio != "1e3" {
		t.Fatalf("got %+v", got)
	}
}

func TestDecodeTextUnmarshaler(t *testing.T) {
	type rec struct {
		At time.Time `ltsv:"at"`
	}
	got := mustUnmarshal[rec](t, "at:2024-05-01T10:00:00Z")
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if !got.At.Equal(want) {
		t.Fatalf("got %v want %v", got.At, want)
	}
}

func TestDecodeIntoMap(t *testing.T) {
	got := mustUnmarshal[map[string]any](t, "a:1\tb:-2\tc:x\td:true\te:1.5")
	want := map[string]any{"a": uint64(1), "b": int64(-2), "c": "x", "d": true, "e": 1.5}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: got %#v want %#v", k, got[k], v)
		}
	}
}

func TestDecodeEmptyLabelAndValue(t *testing.T) {
	got := mustUnmarshal[map[string]string](t, ":x\ty:")
	if got[""] != "x" || got["y"] != "" {
		t.Fatalf("got %v", got)
	}
}

func TestDecodeColonInValue(t *testing.T) {
	got := mustUnmarshal[map[string]string](t, "url:http://example.com:8080/")
	if got["url"] != "http://example.com:8080/" {
		t.Fatalf("got %v", got)
	}
}

// Duplicate labels overwrite: the last occurrence wins. A stricter decoder
// could reject the line with InvalidInput instead; this one does not.
func TestDecodeDuplicateLabelLastWins(t *testing.T) {
	type rec struct {
		A int `ltsv:"a"`
	}
	got := mustUnmarshal[rec](t, "a:1\ta:2")
	if got.A != 2 {
		t.Fatalf("got %d want 2", got.A)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		line string
		msg  string
	}{
		{"", "missing name and value for a LTSV record"},
		{"a", `invalid input: ["a"]`},
		{"a:1\tb", `invalid input: ["a:1\tb"]`},
		{"a:1\t", "missing name and value for a LTSV record"},
		{"a:1\t\tb:2", "missing name and value for a LTSV record"},
	}
	for _, tc := range cases {
		_, err := Parse(tc.line)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Parse(%q): expected InvalidInput, got %v", tc.line, err)
		}
		if !strings.Contains(err.Error(), tc.msg) {
			t.Fatalf("Parse(%q): message %q does not contain %q", tc.line, err.Error(), tc.msg)
		}
	}
}

func TestDecodeMaterializationErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
		want string
	}{
		{"string into int", "a:Test\tb:x\tc:false", "b: invalid type"},
		{"missing field", "a:Test\tb:8", `missing field "c"`},
		{"overflow", "a:Test\tb:300\tc:true", "out of range"},
		{"number into bool", "a:Test\tb:-1\tc:1", "c: invalid type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode[foo](tc.line)
			if !errors.Is(err, ErrMaterialization) {
				t.Fatalf("expected Materialization, got %v", err)
			}
			var ve *value.Error
			if !errors.As(err, &ve) {
				t.Fatalf("expected wrapped *value.Error, got %T", errors.Unwrap(err))
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestUnmarshalRequiresPointer(t *testing.T) {
	var f foo
	if err := Unmarshal("a:x", f); !errors.Is(err, ErrMaterialization) {
		t.Fatalf("expected Materialization for non-pointer target, got %v", err)
	}
}

func TestParseReturnsSortedMap(t *testing.T) {
	v, err := Parse("b:2\ta:1\tc:3")
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != value.KindMap {
		t.Fatalf("kind %s", v.Kind())
	}
	var labels []string
	for _, e := range v.Map().Entries() {
		labels = append(labels, e.Key.Str())
	}
	if strings.Join(labels, ",") != "a,b,c" {
		t.Fatalf("labels %v", labels)
	}
}

type embeddedInner struct {
	X int `ltsv:"x"`
}

type embeddedOuter struct {
	*embeddedInner
	Y string `ltsv:"y"`
}

func TestDecodeUnexportedEmbeddedPointer(t *testing.T) {
	var o embeddedOuter
	err := Unmarshal("x:1\ty:a", &o)
	if !errors.Is(err, ErrMaterialization) {
		t.Fatalf("expected Materialization, got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot set embedded pointer to unexported struct ltsv.embeddedInner") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	// an allocated embedded pointer is filled in place
	o = embeddedOuter{embeddedInner: &embeddedInner{}}
	if err := Unmarshal("x:1\ty:a", &o); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if o.X != 1 || o.Y != "a" {
		t.Fatalf("got %+v / %+v", o, *o.embeddedInner)
	}
}
