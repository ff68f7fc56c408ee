package txtenc

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/reflect/protoreflect"
)

const unparsable = " bytes of unparsable unknown data"

// unknown writes the fields kept in storage without a declaration in the
// schema, in the order they were stored.
func (e *encoder) unknown(raw protoreflect.RawFields) {
	if len(raw) == 0 {
		return
	}

	if !wellFormed(raw) {
		e.indent()
		e.putString("# ")
		e.putInt(int64(len(raw)))
		e.putString(unparsable)
		e.endField()

		return
	}

	e.unknownFields(raw)
}

// unknownFields writes the fields of a well-formed wire buffer.
func (e *encoder) unknownFields(b []byte) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		b = b[n:]

		l := label{num: num}

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			b = b[n:]

			e.unknownPrefix(l)
			e.putUint(v)
			e.endField()
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			b = b[n:]

			e.unknownPrefix(l)
			e.putHex(uint64(v), 8)
			e.endField()
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			b = b[n:]

			e.unknownPrefix(l)
			e.putHex(v, 16)
			e.endField()
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			b = b[n:]

			// A payload that reads as wire fields is most likely a message.
			if len(v) > 0 && e.level < MaxDepth && wellFormed(v) {
				e.openBlock(l)
				e.unknownFields(v)
				e.closeBlock()
			} else {
				e.unknownPrefix(l)
				e.putQuotedBytes(v)
				e.endField()
			}
		case protowire.StartGroupType:
			v, n := protowire.ConsumeGroup(num, b)
			b = b[n:]

			e.openBlock(l)
			e.unknownFields(v)
			e.closeBlock()
		}
	}
}

func (e *encoder) unknownPrefix(l label) {
	e.indent()
	e.putLabel(l)
	e.putString(": ")
}

// wellFormed returns true if the buffer is a sequence of complete wire fields
// with valid field numbers.
func wellFormed(b []byte) bool {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return false
		}
		b = b[n:]

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return false
		}
		b = b[n:]
	}

	return true
}
