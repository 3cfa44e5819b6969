package ltsv

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := invalidInput("bad %s", "line")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected InvalidInput match")
	}
	if errors.Is(err, ErrMaterialization) || errors.Is(err, ErrTextDecoding) {
		t.Fatalf("matched the wrong kind")
	}
	wrapped := fmt.Errorf("line 3: %w", err)
	if !errors.Is(wrapped, ErrInvalidInput) {
		t.Fatalf("expected match through wrapping")
	}
	// A non-sentinel *Error never matches by kind alone.
	if errors.Is(err, &Error{Kind: InvalidInput, Msg: "bad line"}) {
		t.Fatalf("non-sentinel target must not match")
	}
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: InvalidInput, Msg: "bad"}, "ltsv: bad"},
		{&Error{Kind: Materialization, Err: cause}, "ltsv: boom"},
		{&Error{Kind: Materialization, Msg: "ctx", Err: cause}, "ltsv: ctx: boom"},
		{&Error{Kind: TextDecoding}, "ltsv: text decoding"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("got %q want %q", got, tc.want)
		}
	}
	if !errors.Is(&Error{Kind: Materialization, Err: cause}, cause) {
		t.Fatalf("expected Unwrap to expose the cause")
	}
}

func TestTextDecodingOffset(t *testing.T) {
	cases := []struct {
		in   []byte
		want string
	}{
		{[]byte{0xff}, "ltsv: invalid utf-8 sequence at byte offset 0"},
		{[]byte("héllo\xe2\x82"), "ltsv: invalid utf-8 sequence at byte offset 6"},
	}
	for _, tc := range cases {
		if got := textDecoding(tc.in).Error(); got != tc.want {
			t.Fatalf("got %q want %q", got, tc.want)
		}
	}
}
