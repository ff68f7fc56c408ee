// Package txtenc implements a text encoder for protobuf messages where every
// value is labelled by its field number.
//
// The encoder follows a two-call protocol so that the caller controls the
// allocation. The first call, without a buffer, returns the number of bytes of
// the rendering. The second call fills a buffer of that size:
//
//	n := txtenc.Encode(msg, nil, opts, nil)
//	buf := make([]byte, n)
//	w := txtenc.Encode(msg, nil, opts, buf)
//	text := string(buf[:w])
//
// A buffer smaller than the size is filled with a prefix of the rendering.
//
// A message renders one field per line, in ascending field number order, then
// the unknown fields in storage order:
//
//	1: 42
//	14: "Hello World"
//	18 {
//	  1: 100
//	}
//	12 {
//	  key: "boo"
//	  value: 5
//	}
//
// The encoder never mutates the message and keeps no state between calls. It
// panics when the rendering size overflows an int, when the descriptor does
// not describe the message, or when the schema declares an unknown kind.
package txtenc

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// MaxDepth is the maximum nesting of messages, map entries and unknown groups
// the encoder accepts.
const MaxDepth = 10000

// Encode renders the message described by md according to the options. When
// the buffer is empty, it returns the number of bytes of the full rendering.
// Otherwise it writes the rendering in the buffer, up to its length, and
// returns the number of bytes written. A nil descriptor is the message's own.
func Encode(msg protoreflect.Message, md protoreflect.MessageDescriptor, opts Options, buf []byte) int {
	n, total := Fill(msg, md, opts, buf)
	if len(buf) == 0 {
		return total
	}

	return n
}

// Fill writes the rendering in the buffer, up to its length, and returns both
// the number of bytes written and the length of the full rendering. The
// output is truncated when the two differ.
func Fill(msg protoreflect.Message, md protoreflect.MessageDescriptor, opts Options, buf []byte) (int, int) {
	if msg == nil {
		return 0, 0
	}

	if md == nil {
		md = msg.Descriptor()
	}

	if len(buf) == 0 {
		buf = nil
	}

	e := encoder{
		buf:  buf,
		opts: opts,
	}

	e.message(msg, md)

	return e.n, e.total
}

// Size returns the number of bytes of the rendering of the message.
func Size(msg protoreflect.Message, md protoreflect.MessageDescriptor, opts Options) int {
	return Encode(msg, md, opts, nil)
}
