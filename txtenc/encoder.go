package txtenc

import (
	"math"
	"sort"
	"strconv"

	"google.golang.org/protobuf/reflect/protoreflect"
)

const indentation = "  "

// label is the name printed in front of a value. Regular fields use their
// number while map entries use the key and value words.
type label struct {
	num  protoreflect.FieldNumber
	name string
}

var (
	keyLabel   = label{name: "key"}
	valueLabel = label{name: "value"}
)

// encoder holds the state of a single rendering. Every write goes through
// reserve so that the total is the same with or without a buffer, and only
// the bytes that fit are copied.
type encoder struct {
	buf   []byte
	n     int
	total int
	level int
	opts  Options

	scratch [32]byte
}

func (e *encoder) reserve(n int) {
	if n > math.MaxInt-e.total {
		panic(ErrCapacityOverflow)
	}

	e.total += n
}

func (e *encoder) putByte(c byte) {
	e.reserve(1)

	if e.n < len(e.buf) {
		e.buf[e.n] = c
		e.n++
	}
}

func (e *encoder) putString(s string) {
	e.reserve(len(s))

	if e.n < len(e.buf) {
		e.n += copy(e.buf[e.n:], s)
	}
}

func (e *encoder) putBytes(b []byte) {
	e.reserve(len(b))

	if e.n < len(e.buf) {
		e.n += copy(e.buf[e.n:], b)
	}
}

func (e *encoder) putInt(v int64) {
	e.putBytes(strconv.AppendInt(e.scratch[:0], v, 10))
}

func (e *encoder) putUint(v uint64) {
	e.putBytes(strconv.AppendUint(e.scratch[:0], v, 10))
}

func (e *encoder) putLabel(l label) {
	if l.name != "" {
		e.putString(l.name)
	} else {
		e.putInt(int64(l.num))
	}
}

func (e *encoder) indent() {
	if e.opts.SingleLine() {
		return
	}

	for i := 0; i < e.level; i++ {
		e.putString(indentation)
	}
}

func (e *encoder) endField() {
	if e.opts.SingleLine() {
		e.putByte(' ')
	} else {
		e.putByte('\n')
	}
}

func (e *encoder) enter() {
	e.checkDepth(1)
	e.level++
}

// checkDepth panics if the given number of levels cannot be opened below the
// current one.
func (e *encoder) checkDepth(levels int) {
	if e.level > MaxDepth-levels {
		panic(ErrDepthExceeded)
	}
}

func (e *encoder) leave() {
	e.level--
}

// openBlock writes the opening line of a brace block and moves one level
// deeper. The depth is checked before anything is written.
func (e *encoder) openBlock(l label) {
	e.checkDepth(1)

	e.indent()
	e.putLabel(l)
	e.putString(" {")
	e.endField()
	e.enter()
}

func (e *encoder) closeBlock() {
	e.leave()
	e.indent()
	e.putByte('}')
	e.endField()
}

func (e *encoder) message(m protoreflect.Message, md protoreflect.MessageDescriptor) {
	checkSchema(m, md)

	for _, fd := range populatedFields(m) {
		e.field(m, fd)
	}

	if !e.opts.SkipUnknown() {
		e.unknown(m.GetUnknown())
	}
}

// populatedFields returns the fields set in the message, extensions included,
// by ascending field number.
func populatedFields(m protoreflect.Message) []protoreflect.FieldDescriptor {
	var fields []protoreflect.FieldDescriptor

	m.Range(func(fd protoreflect.FieldDescriptor, _ protoreflect.Value) bool {
		fields = append(fields, fd)
		return true
	})

	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Number() < fields[j].Number()
	})

	return fields
}

func (e *encoder) field(m protoreflect.Message, fd protoreflect.FieldDescriptor) {
	v := m.Get(fd)
	l := label{num: fd.Number()}

	switch {
	case fd.IsMap():
		e.mapEntries(l, fd, v.Map())
	case fd.IsList():
		list := v.List()
		for i := 0; i < list.Len(); i++ {
			e.value(l, fd, list.Get(i))
		}
	default:
		e.value(l, fd, v)
	}
}

// value writes a single value, either as a colon-value line or as a brace
// block for messages and groups.
func (e *encoder) value(l label, fd protoreflect.FieldDescriptor, v protoreflect.Value) {
	e.checkValue(fd, v, 0)

	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		e.openBlock(l)
		e.message(v.Message(), fd.Message())
		e.closeBlock()
	default:
		e.indent()
		e.putLabel(l)
		e.putString(": ")
		e.scalar(fd, v)
		e.endField()
	}
}

func (e *encoder) mapEntries(l label, fd protoreflect.FieldDescriptor, m protoreflect.Map) {
	keyFd := fd.MapKey()
	valueFd := fd.MapValue()

	e.rangeMap(keyFd, m, func(k protoreflect.MapKey, v protoreflect.Value) {
		e.checkDepth(1)
		e.checkValue(keyFd, k.Value(), 1)
		e.checkValue(valueFd, v, 1)

		e.openBlock(l)
		e.value(keyLabel, keyFd, k.Value())
		e.value(valueLabel, valueFd, v)
		e.closeBlock()
	})
}

// checkValue panics if the value, written the given number of levels below
// the current one, would fail. A failing field leaves no byte in the buffer.
func (e *encoder) checkValue(fd protoreflect.FieldDescriptor, v protoreflect.Value, levels int) {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		e.checkDepth(levels + 1)
		checkSchema(v.Message(), fd.Message())
	default:
		if !isScalar(fd.Kind()) {
			panic(NewErrUnsupportedKind(fd))
		}
	}
}

func checkSchema(m protoreflect.Message, md protoreflect.MessageDescriptor) {
	actual := m.Descriptor()
	if actual.FullName() != md.FullName() {
		panic(NewErrSchemaMismatch(md.FullName(), actual.FullName()))
	}
}
