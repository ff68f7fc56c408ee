// Package testing provides helpers shared by the tests of the module.
package testing

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// RequireStableRendering checks that the message renders the same after it
// went through the wire format and was decoded as a dynamic message. The
// rendering only depends on the field numbers and the values, not on the
// concrete type holding them.
func RequireStableRendering(t *testing.T, message proto.Message,
	render func(protoreflect.Message) string) {

	buffer, err := proto.MarshalOptions{Deterministic: true}.Marshal(message)
	require.NoError(t, err)

	decoded := dynamicpb.NewMessage(message.ProtoReflect().Descriptor())

	err = proto.Unmarshal(buffer, decoded)
	require.NoError(t, err)

	require.Equal(t, render(message.ProtoReflect()), render(decoded))
}
