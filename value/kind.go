package value

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	Invalid Kind = iota
	KindBool
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindChar
	KindString
	KindBytes
	KindUnit
	KindOption
	KindNewtype
	KindSeq
	KindMap
)

var kindNames = [...]string{
	Invalid:     "invalid",
	KindBool:    "bool",
	KindUint8:   "u8",
	KindUint16:  "u16",
	KindUint32:  "u32",
	KindUint64:  "u64",
	KindInt8:    "i8",
	KindInt16:   "i16",
	KindInt32:   "i32",
	KindInt64:   "i64",
	KindFloat32: "f32",
	KindFloat64: "f64",
	KindChar:    "char",
	KindString:  "string",
	KindBytes:   "bytes",
	KindUnit:    "unit",
	KindOption:  "option",
	KindNewtype: "newtype",
	KindSeq:     "seq",
	KindMap:     "map",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsUnsigned reports whether k is one of the unsigned integer kinds.
func (k Kind) IsUnsigned() bool { return k >= KindUint8 && k <= KindUint64 }

// IsSigned reports whether k is one of the signed integer kinds.
func (k Kind) IsSigned() bool { return k >= KindInt8 && k <= KindInt64 }

// IsFloat reports whether k is f32 or f64.
func (k Kind) IsFloat() bool { return k == KindFloat32 || k == KindFloat64 }

// IsNumber reports whether k is any integer or float kind.
func (k Kind) IsNumber() bool { return k.IsUnsigned() || k.IsSigned() || k.IsFloat() }

// IsScalar reports whether k carries a single non-container payload.
func (k Kind) IsScalar() bool {
	return k == KindBool || k.IsNumber() || k == KindChar || k == KindString || k == KindBytes
}
