package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/unkn0wn-root/ltsv"
)

type access struct {
	Host   string  `ltsv:"host" json:"host" msgpack:"host" cbor:"host"`
	Status int     `ltsv:"status" json:"status" msgpack:"status" cbor:"status"`
	Took   float64 `ltsv:"took" json:"took" msgpack:"took" cbor:"took"`
}

func roundTrip[V comparable](t *testing.T, c Codec[V], in V) []byte {
	t.Helper()
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
	return b
}

func TestCodecsRoundTrip(t *testing.T) {
	in := access{Host: "example.org", Status: 404, Took: 0.5}

	if b := roundTrip[access](t, LTSV[access]{}, in); string(b) != "host:example.org\tstatus:404\ttook:0.5" {
		t.Fatalf("unexpected ltsv bytes %q", b)
	}
	roundTrip[access](t, JSON[access]{}, in)
	roundTrip[access](t, Msgpack[access]{}, in)
	roundTrip[access](t, MustCBOR[access](false), in)
	roundTrip[access](t, MustCBOR[access](true), in)
}

func TestCBORDeterministic(t *testing.T) {
	c := MustCBOR[map[string]any](true)
	a, err := c.Encode(map[string]any{"b": 1, "a": 2, "c": 3})
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Encode(map[string]any{"c": 3, "a": 2, "b": 1})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("deterministic encoding differs: %x vs %x", a, b)
	}
}

func TestLTSVCodecErrors(t *testing.T) {
	c := LTSV[access]{}
	if _, err := c.Decode([]byte("host")); !errors.Is(err, ltsv.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
	if _, err := c.Decode([]byte("host:x\tstatus:x\ttook:1")); !errors.Is(err, ltsv.ErrMaterialization) {
		t.Fatalf("expected Materialization, got %v", err)
	}
	if _, err := (LTSV[[]map[string]int]{}).Encode([]map[string]int{{"a": 1}}); !errors.Is(err, ltsv.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput on nested value, got %v", err)
	}
}

func TestStructPB(t *testing.T) {
	c := NewStructPB()
	in := map[string]any{"host": "h", "status": uint64(200), "ok": true}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out["host"] != "h" || out["status"] != float64(200) || out["ok"] != true {
		t.Fatalf("unexpected struct %v", out)
	}

	if _, err := c.Encode(map[string]any{"bad": make(chan int)}); err == nil {
		t.Fatalf("expected error for unsupported value")
	}
}

func TestLimitCodec(t *testing.T) {
	c := LimitCodec[map[string]any]{Inner: LTSV[map[string]any]{}, MaxDecode: 8}

	if _, err := c.Decode([]byte("a:1\tb:2")); err != nil {
		t.Fatalf("within limit: %v", err)
	}
	_, err := c.Decode([]byte("a:1\tb:2\tc:3"))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if !strings.Contains(err.Error(), "11 > 8") {
		t.Fatalf("unexpected message %q", err)
	}

	// Encode is not limited.
	if _, err := c.Encode(map[string]any{"long": strings.Repeat("x", 64)}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	unlimited := LimitCodec[map[string]any]{Inner: LTSV[map[string]any]{}}
	if _, err := unlimited.Decode([]byte("a:" + strings.Repeat("x", 1024))); err != nil {
		t.Fatalf("MaxDecode 0 disables the limit: %v", err)
	}
}
