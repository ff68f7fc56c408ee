package fake

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// OrderedMessage is a message whose map fields iterate in a fixed order, the
// way an insertion-ordered storage would.
//
// - implements protoreflect.Message
type OrderedMessage struct {
	protoreflect.Message

	orders map[protoreflect.FieldNumber][]protoreflect.MapKey
}

// NewOrderedMessage wraps the message. Maps iterate in the storage order
// until an order is given with WithOrder.
func NewOrderedMessage(m protoreflect.Message) OrderedMessage {
	return OrderedMessage{
		Message: m,
		orders:  make(map[protoreflect.FieldNumber][]protoreflect.MapKey),
	}
}

// WithOrder sets the iteration order of the map field with the given number.
func (m OrderedMessage) WithOrder(num protoreflect.FieldNumber, keys ...protoreflect.MapKey) OrderedMessage {
	m.orders[num] = keys
	return m
}

// Get implements protoreflect.Message. It returns the map with the iteration
// order when one is set for the field.
func (m OrderedMessage) Get(fd protoreflect.FieldDescriptor) protoreflect.Value {
	v := m.Message.Get(fd)

	keys, found := m.orders[fd.Number()]
	if !found || !fd.IsMap() {
		return v
	}

	return protoreflect.ValueOfMap(orderedMap{Map: v.Map(), keys: keys})
}

// orderedMap iterates over the keys in the given order.
//
// - implements protoreflect.Map
type orderedMap struct {
	protoreflect.Map

	keys []protoreflect.MapKey
}

// Range implements protoreflect.Map.
func (m orderedMap) Range(fn func(protoreflect.MapKey, protoreflect.Value) bool) {
	for _, k := range m.keys {
		if !m.Map.Has(k) {
			continue
		}

		if !fn(k, m.Map.Get(k)) {
			return
		}
	}
}

// BadKindMessage is a message that reports a single populated field with a
// kind that does not exist.
//
// - implements protoreflect.Message
type BadKindMessage struct {
	protoreflect.Message

	field BadKindField
}

// NewBadKindMessage wraps the message and replaces its content by the field
// with the given number, using an invalid kind.
func NewBadKindMessage(m protoreflect.Message, num protoreflect.FieldNumber) BadKindMessage {
	return BadKindMessage{
		Message: m,
		field: BadKindField{
			FieldDescriptor: m.Descriptor().Fields().ByNumber(num),
		},
	}
}

// Range implements protoreflect.Message.
func (m BadKindMessage) Range(fn func(protoreflect.FieldDescriptor, protoreflect.Value) bool) {
	fn(m.field, protoreflect.ValueOfInt32(1))
}

// Get implements protoreflect.Message.
func (m BadKindMessage) Get(protoreflect.FieldDescriptor) protoreflect.Value {
	return protoreflect.ValueOfInt32(1)
}

// GetUnknown implements protoreflect.Message.
func (m BadKindMessage) GetUnknown() protoreflect.RawFields {
	return nil
}

// BadKindField is a singular field with an invalid kind.
//
// - implements protoreflect.FieldDescriptor
type BadKindField struct {
	protoreflect.FieldDescriptor
}

// Kind implements protoreflect.FieldDescriptor.
func (BadKindField) Kind() protoreflect.Kind {
	return protoreflect.Kind(99)
}

// IsList implements protoreflect.FieldDescriptor.
func (BadKindField) IsList() bool {
	return false
}

// IsMap implements protoreflect.FieldDescriptor.
func (BadKindField) IsMap() bool {
	return false
}

// ReplacedMessage is a message that returns a given value for one of its
// fields.
//
// - implements protoreflect.Message
type ReplacedMessage struct {
	protoreflect.Message

	num   protoreflect.FieldNumber
	value protoreflect.Value
}

// NewReplacedMessage wraps the message so that the field with the given
// number, when populated, holds the value.
func NewReplacedMessage(m protoreflect.Message, num protoreflect.FieldNumber,
	value protoreflect.Value) ReplacedMessage {

	return ReplacedMessage{
		Message: m,
		num:     num,
		value:   value,
	}
}

// Get implements protoreflect.Message.
func (m ReplacedMessage) Get(fd protoreflect.FieldDescriptor) protoreflect.Value {
	if fd.Number() == m.num {
		return m.value
	}

	return m.Message.Get(fd)
}
