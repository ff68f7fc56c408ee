package txtenc

import (
	"math"
	"strconv"
	"unicode/utf8"

	"google.golang.org/protobuf/reflect/protoreflect"
)

func (e *encoder) scalar(fd protoreflect.FieldDescriptor, v protoreflect.Value) {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		if v.Bool() {
			e.putString("true")
		} else {
			e.putString("false")
		}
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		e.putInt(v.Int())
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		e.putUint(v.Uint())
	case protoreflect.FloatKind:
		e.putFloat(v.Float(), 32)
	case protoreflect.DoubleKind:
		e.putFloat(v.Float(), 64)
	case protoreflect.StringKind:
		e.putQuotedString(v.String())
	case protoreflect.BytesKind:
		e.putQuotedBytes(v.Bytes())
	case protoreflect.EnumKind:
		e.putEnum(fd, v.Enum())
	default:
		panic(NewErrUnsupportedKind(fd))
	}
}

// isScalar returns true for the kinds written as a colon-value line.
func isScalar(k protoreflect.Kind) bool {
	switch k {
	case protoreflect.BoolKind,
		protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind,
		protoreflect.FloatKind, protoreflect.DoubleKind,
		protoreflect.StringKind, protoreflect.BytesKind, protoreflect.EnumKind:
		return true
	default:
		return false
	}
}

// putFloat writes the shortest decimal that parses back to the same value.
func (e *encoder) putFloat(f float64, bitSize int) {
	switch {
	case math.IsInf(f, 1):
		e.putString("inf")
	case math.IsInf(f, -1):
		e.putString("-inf")
	case math.IsNaN(f):
		e.putString("nan")
	default:
		e.putBytes(strconv.AppendFloat(e.scratch[:0], f, 'g', -1, bitSize))
	}
}

func (e *encoder) putEnum(fd protoreflect.FieldDescriptor, n protoreflect.EnumNumber) {
	if e.opts.SymbolicEnums() && fd.Enum() != nil {
		ev := fd.Enum().Values().ByNumber(n)
		if ev != nil {
			e.putString(string(ev.Name()))
			return
		}
	}

	e.putInt(int64(n))
}

// putHex writes the value in hexadecimal, padded with zeros to the width.
func (e *encoder) putHex(v uint64, width int) {
	e.putString("0x")

	digits := strconv.AppendUint(e.scratch[:0], v, 16)
	for i := len(digits); i < width; i++ {
		e.putByte('0')
	}

	e.putBytes(digits)
}

// putQuotedString writes a string field. Valid UTF-8 sequences are kept as is
// so that the output stays readable and valid UTF-8.
func (e *encoder) putQuotedString(s string) {
	e.putByte('"')

	for i := 0; i < len(s); {
		c := s[i]

		if c < utf8.RuneSelf {
			e.putEscaped(c)
			i++
			continue
		}

		_, size := utf8.DecodeRuneInString(s[i:])
		if size > 1 {
			e.putString(s[i : i+size])
		} else {
			e.putOctal(c)
		}

		i += size
	}

	e.putByte('"')
}

// putQuotedBytes writes a bytes field where anything outside of printable
// ASCII is escaped.
func (e *encoder) putQuotedBytes(b []byte) {
	e.putByte('"')

	for _, c := range b {
		e.putEscaped(c)
	}

	e.putByte('"')
}

func (e *encoder) putEscaped(c byte) {
	switch c {
	case '\n':
		e.putString(`\n`)
	case '\r':
		e.putString(`\r`)
	case '\t':
		e.putString(`\t`)
	case '"':
		e.putString(`\"`)
	case '\'':
		e.putString(`\'`)
	case '\\':
		e.putString(`\\`)
	default:
		if isPrint(c) {
			e.putByte(c)
		} else {
			e.putOctal(c)
		}
	}
}

func (e *encoder) putOctal(c byte) {
	e.putBytes(append(e.scratch[:0], '\\', '0'+c>>6, '0'+(c>>3)&7, '0'+c&7))
}

// isPrint is the equivalent of C's isprint in the default locale.
func isPrint(c byte) bool {
	return c >= 0x20 && c < 0x7f
}
