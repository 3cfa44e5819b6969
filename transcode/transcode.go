// Package transcode moves single records between LTSV and structured
// encodings. Every format is a codec.Codec[map[string]any]; a record is
// decoded with one codec and re-encoded with another.
package transcode

import (
	"errors"
	"fmt"
	"sort"

	"github.com/unkn0wn-root/ltsv"
	"github.com/unkn0wn-root/ltsv/codec"
)

// Record is the interchange shape shared by every format.
type Record = map[string]any

// Format names a supported encoding.
type Format string

const (
	LTSV    Format = "ltsv"
	JSON    Format = "json"
	Msgpack Format = "msgpack"
	CBOR    Format = "cbor"
	Proto   Format = "proto"
)

var ErrUnknownFormat = errors.New("transcode: unknown format")

// Formats lists the supported format names in sorted order.
func Formats() []string {
	out := []string{string(LTSV), string(JSON), string(Msgpack), string(CBOR), string(Proto)}
	sort.Strings(out)
	return out
}

// Binary reports whether f produces non-text output.
func (f Format) Binary() bool {
	return f == Msgpack || f == CBOR || f == Proto
}

// CodecFor returns the record codec for f. CBOR output is deterministic
// (RFC 8949 core encoding) so equal records give equal bytes.
func CodecFor(f Format) (codec.Codec[Record], error) {
	switch f {
	case LTSV:
		return codec.LTSV[Record]{}, nil
	case JSON:
		return codec.JSON[Record]{}, nil
	case Msgpack:
		return codec.Msgpack[Record]{}, nil
	case CBOR:
		return codec.NewCBOR[Record](true)
	case Proto:
		return codec.NewStructPB(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Transcoder converts one record from one codec to another.
type Transcoder struct {
	From codec.Codec[Record]
	To   codec.Codec[Record]
	// Logger receives debug events for failed conversions; nil disables.
	Logger ltsv.Logger
}

// New builds a Transcoder between two named formats. maxDecode > 0 bounds the
// size of an input record.
func New(from, to Format, maxDecode int) (*Transcoder, error) {
	src, err := CodecFor(from)
	if err != nil {
		return nil, err
	}
	dst, err := CodecFor(to)
	if err != nil {
		return nil, err
	}
	if maxDecode > 0 {
		src = codec.LimitCodec[Record]{Inner: src, MaxDecode: maxDecode}
	}
	return &Transcoder{From: src, To: dst}, nil
}

func (t *Transcoder) log() ltsv.Logger {
	if t.Logger == nil {
		return ltsv.NopLogger{}
	}
	return t.Logger
}

// Convert decodes b with From and encodes the record with To.
func (t *Transcoder) Convert(b []byte) ([]byte, error) {
	rec, err := t.From.Decode(b)
	if err != nil {
		t.log().Debug("transcode decode failed", ltsv.Fields{"bytes": len(b), "err": err})
		return nil, fmt.Errorf("decode: %w", err)
	}
	out, err := t.To.Encode(rec)
	if err != nil {
		t.log().Debug("transcode encode failed", ltsv.Fields{"fields": len(rec), "err": err})
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out, nil
}
