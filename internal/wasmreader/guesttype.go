package wasmreader

// GuestType is the closed tag set for raw guest-bytecode signature types:
// signed/unsigned integers at 32/64/128/256 bits, both float widths, the
// 128-bit vector type, the two reference kinds, and an Unknown fallback
// for tags this reader does not recognise.
type GuestType uint8

const (
	TypeI32 GuestType = iota
	TypeU32
	TypeI64
	TypeU64
	TypeI128
	TypeU128
	TypeI256
	TypeU256
	TypeF32
	TypeF64
	TypeV128
	TypeFuncRef
	TypeExternRef
	TypeUnknown
)

// String renders the canonical lowercase display form used throughout
// signature diffs and error messages.
func (t GuestType) String() string {
	switch t {
	case TypeI32:
		return "i32"
	case TypeU32:
		return "u32"
	case TypeI64:
		return "i64"
	case TypeU64:
		return "u64"
	case TypeI128:
		return "i128"
	case TypeU128:
		return "u128"
	case TypeI256:
		return "i256"
	case TypeU256:
		return "u256"
	case TypeF32:
		return "f32"
	case TypeF64:
		return "f64"
	case TypeV128:
		return "v128"
	case TypeFuncRef:
		return "funcref"
	case TypeExternRef:
		return "externref"
	default:
		return "?"
	}
}

func guestTypeFromByte(b byte) GuestType {
	switch b {
	case 0x01:
		return TypeI32
	case 0x02:
		return TypeU32
	case 0x03:
		return TypeI64
	case 0x04:
		return TypeU64
	case 0x05:
		return TypeI128
	case 0x06:
		return TypeU128
	case 0x07:
		return TypeI256
	case 0x08:
		return TypeU256
	case 0x09:
		return TypeF32
	case 0x0a:
		return TypeF64
	case 0x0b:
		return TypeV128
	case 0x0c:
		return TypeFuncRef
	case 0x0d:
		return TypeExternRef
	default:
		return TypeUnknown
	}
}

func guestTypeToByte(t GuestType) byte {
	switch t {
	case TypeI32:
		return 0x01
	case TypeU32:
		return 0x02
	case TypeI64:
		return 0x03
	case TypeU64:
		return 0x04
	case TypeI128:
		return 0x05
	case TypeU128:
		return 0x06
	case TypeI256:
		return 0x07
	case TypeU256:
		return 0x08
	case TypeF32:
		return 0x09
	case TypeF64:
		return 0x0a
	case TypeV128:
		return 0x0b
	case TypeFuncRef:
		return 0x0c
	case TypeExternRef:
		return 0x0d
	default:
		return 0xff
	}
}
