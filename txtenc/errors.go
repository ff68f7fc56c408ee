package txtenc

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// ErrCapacityOverflow is the panic value raised when the size of a rendering
// cannot be represented by an int.
var ErrCapacityOverflow = capacityError{}

type capacityError struct{}

func (capacityError) Error() string {
	return "rendering size overflows the buffer size type"
}

// ErrUnsupportedKind is the panic value raised when a field declares a kind
// the encoder does not know.
type ErrUnsupportedKind struct {
	Field protoreflect.FullName
	Kind  protoreflect.Kind
}

// NewErrUnsupportedKind returns an error for the field and its kind.
func NewErrUnsupportedKind(fd protoreflect.FieldDescriptor) ErrUnsupportedKind {
	return ErrUnsupportedKind{
		Field: fd.FullName(),
		Kind:  fd.Kind(),
	}
}

func (e ErrUnsupportedKind) Error() string {
	return fmt.Sprintf("field %s has unsupported kind %d", e.Field, int(e.Kind))
}

// Is returns true when the other error is also an unsupported kind, whatever
// the field.
func (e ErrUnsupportedKind) Is(err error) bool {
	_, ok := err.(ErrUnsupportedKind)
	return ok
}

// ErrSchemaMismatch is the panic value raised when the descriptor given to the
// encoder does not describe the message.
type ErrSchemaMismatch struct {
	Expected protoreflect.FullName
	Actual   protoreflect.FullName
}

// NewErrSchemaMismatch returns an error for the two descriptor names.
func NewErrSchemaMismatch(expected, actual protoreflect.FullName) ErrSchemaMismatch {
	return ErrSchemaMismatch{
		Expected: expected,
		Actual:   actual,
	}
}

func (e ErrSchemaMismatch) Error() string {
	return fmt.Sprintf("descriptor %s does not describe message %s", e.Expected, e.Actual)
}

// Is returns true when the other error is also a schema mismatch.
func (e ErrSchemaMismatch) Is(err error) bool {
	_, ok := err.(ErrSchemaMismatch)
	return ok
}

// ErrDepthExceeded is the panic value raised when a message nests deeper than
// MaxDepth.
var ErrDepthExceeded = depthError{}

type depthError struct{}

func (depthError) Error() string {
	return fmt.Sprintf("message nesting exceeds %d levels", MaxDepth)
}
