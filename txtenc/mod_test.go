package txtenc

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	internal "go.dedis.ch/protodebug/internal/testing"
	"go.dedis.ch/protodebug/internal/testing/fake"
	"go.dedis.ch/protodebug/internal/testing/testproto"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

const exampleEntry = `12 {
  key: "%s"
  value {
    1: 42
    14: "Hello World"
    18 {
      1: 100
    }
    21: 2
    44: "Hello World"
    44: "Hello World"
    44: "Hello World"
    111: 452235
  }
}
`

func TestEncode_Example(t *testing.T) {
	out := render(t, testproto.Example(), NewOptions())

	expected := entries("boo", "fizz", "hello")
	require.Empty(t, cmp.Diff(expected, out))
}

func TestEncode_ExampleNoSort(t *testing.T) {
	msg := fake.NewOrderedMessage(testproto.Example()).
		WithOrder(12, stringKeys(testproto.ExampleKeys...)...)

	out := render(t, msg, NewOptions(NoSort))
	require.Empty(t, cmp.Diff(entries("hello", "fizz", "boo"), out))

	msg = fake.NewOrderedMessage(testproto.Example()).
		WithOrder(12, stringKeys("fizz", "hello", "boo")...)

	out = render(t, msg, NewOptions(NoSort))
	require.Empty(t, cmp.Diff(entries("fizz", "hello", "boo"), out))

	// Sorting ignores the storage order.
	out = render(t, msg, NewOptions())
	require.Empty(t, cmp.Diff(entries("boo", "fizz", "hello"), out))
}

func TestEncode_NoSortStorageOrder(t *testing.T) {
	msg := testproto.NewMap()
	strs := msg.Mutable(testproto.Field(msg, 2)).Map()

	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		strs.Set(protoreflect.ValueOfString(k).MapKey(), protoreflect.ValueOfString(k))
	}

	opts := NewOptions(NoSort, SingleLine)
	size := Size(msg, nil, opts)
	sorted := render(t, msg, NewOptions(SingleLine))

	// The order may change from one call to the other, but neither the
	// length nor the set of entries does.
	for i := 0; i < 20; i++ {
		out := render(t, msg, opts)
		require.Len(t, out, size)
		require.ElementsMatch(t, strings.SplitAfter(sorted, "} "), strings.SplitAfter(out, "} "))
	}
}

func TestEncode_SizeIsIdempotent(t *testing.T) {
	msg := testproto.Example()

	size := Size(msg, nil, NewOptions())
	require.Equal(t, len(entries("boo", "fizz", "hello")), size)

	for i := 0; i < 5; i++ {
		require.Equal(t, size, Size(msg, nil, NewOptions()))
		require.Equal(t, size, Encode(msg, nil, NewOptions(), []byte{}))
	}
}

func TestEncode_ExactBuffer(t *testing.T) {
	msg := testproto.Example()

	for _, opts := range allOptions() {
		size := Size(msg, nil, opts)
		buf := make([]byte, size)

		n := Encode(msg, nil, opts, buf)
		require.Equal(t, size, n, opts.String())
	}
}

func TestEncode_LargerBuffer(t *testing.T) {
	msg := testproto.Example()

	size := Size(msg, nil, NewOptions())
	buf := make([]byte, size+10)

	n := Encode(msg, nil, NewOptions(), buf)
	require.Equal(t, size, n)
	require.Equal(t, make([]byte, 10), buf[size:])
}

func TestFill(t *testing.T) {
	msg := testproto.Example()
	size := Size(msg, nil, NewOptions())

	n, total := Fill(msg, nil, NewOptions(), make([]byte, 20))
	require.Equal(t, 20, n)
	require.Equal(t, size, total)

	n, total = Fill(msg, nil, NewOptions(), nil)
	require.Equal(t, 0, n)
	require.Equal(t, size, total)

	n, total = Fill(nil, nil, NewOptions(), make([]byte, 20))
	require.Equal(t, 0, n)
	require.Equal(t, 0, total)
}

func TestEncode_PrefixTruncation(t *testing.T) {
	msg := testproto.Example()

	for _, opts := range allOptions() {
		if opts.NoSort() {
			// storage order of a dynamic map is not stable between calls
			continue
		}

		full := render(t, msg, opts)

		for c := 1; c < len(full); c++ {
			buf := make([]byte, c)

			n := Encode(msg, nil, opts, buf)
			require.Equal(t, c, n)
			require.Equal(t, full[:c], string(buf))
		}
	}
}

func TestEncode_Empty(t *testing.T) {
	require.Equal(t, 0, Size(testproto.NewMapWithMessages(), nil, NewOptions()))
	require.Equal(t, 0, Size(testproto.NewAllTypes(), nil, NewOptions(SingleLine)))
	require.Equal(t, 0, Size(nil, nil, NewOptions()))

	buf := []byte("untouched")
	require.Equal(t, 0, Encode(testproto.NewAllTypes(), nil, NewOptions(), buf))
	require.Equal(t, "untouched", string(buf))
}

func TestEncode_SingleLine(t *testing.T) {
	msg := testproto.NewAllTypes()
	testproto.Populate(msg)

	out := render(t, msg, NewOptions(SingleLine))
	require.Equal(t, `1: 42 14: "Hello World" 18 { 1: 100 } 21: 2 44: "Hello World" `+
		`44: "Hello World" 44: "Hello World" 111: 452235 `, out)

	example := testproto.Example()
	multi := render(t, example, NewOptions())
	single := render(t, example, NewOptions(SingleLine))

	require.NotContains(t, single, "\n")
	require.Equal(t, strings.Fields(multi), strings.Fields(single))
}

func TestEncode_Repeated(t *testing.T) {
	msg := testproto.NewAllTypes()

	list := msg.Mutable(testproto.Field(msg, 44)).List()
	list.Append(protoreflect.ValueOfString("b"))
	list.Append(protoreflect.ValueOfString("a"))
	list.Append(protoreflect.ValueOfString("b"))

	ints := msg.Mutable(testproto.Field(msg, 31)).List()
	ints.Append(protoreflect.ValueOfInt32(3))
	ints.Append(protoreflect.ValueOfInt32(-3))

	nested := msg.Mutable(testproto.Field(msg, 48)).List()
	for i := int32(1); i <= 2; i++ {
		v := nested.NewElement()
		v.Message().Set(testproto.Field(v.Message(), 1), protoreflect.ValueOfInt32(i))
		nested.Append(v)
	}

	out := render(t, msg, NewOptions())
	require.Equal(t, "31: 3\n31: -3\n44: \"b\"\n44: \"a\"\n44: \"b\"\n"+
		"48 {\n  1: 1\n}\n48 {\n  1: 2\n}\n", out)
}

func TestEncode_Nested(t *testing.T) {
	msg := testproto.NewAllTypes()

	child := msg.Mutable(testproto.Field(msg, 200)).Message()
	child.Set(testproto.Field(child, 14), protoreflect.ValueOfString("child"))

	grandchild := child.Mutable(testproto.Field(child, 200)).Message()
	grandchild.Mutable(testproto.Field(grandchild, 18))

	msg.Set(testproto.Field(msg, 1), protoreflect.ValueOfInt32(1))

	out := render(t, msg, NewOptions())
	require.Equal(t, "1: 1\n200 {\n  14: \"child\"\n  200 {\n    18 {\n    }\n  }\n}\n", out)
}

func TestEncode_Oneof(t *testing.T) {
	msg := testproto.NewAllTypes()
	msg.Set(testproto.Field(msg, 111), protoreflect.ValueOfUint32(1))
	msg.Set(testproto.Field(msg, 113), protoreflect.ValueOfString("last"))

	require.Equal(t, "113: \"last\"\n", render(t, msg, NewOptions()))
}

func TestEncode_Scalars(t *testing.T) {
	msg := testproto.NewAllTypes()

	values := map[protoreflect.FieldNumber]protoreflect.Value{
		1:  protoreflect.ValueOfInt32(-42),
		2:  protoreflect.ValueOfInt64(-9000000000),
		3:  protoreflect.ValueOfUint32(math.MaxUint32),
		4:  protoreflect.ValueOfUint64(math.MaxUint64),
		5:  protoreflect.ValueOfInt32(-1),
		6:  protoreflect.ValueOfInt64(math.MinInt64),
		7:  protoreflect.ValueOfUint32(7),
		8:  protoreflect.ValueOfUint64(8),
		9:  protoreflect.ValueOfInt32(-9),
		10: protoreflect.ValueOfInt64(-10),
		11: protoreflect.ValueOfFloat32(0.1),
		12: protoreflect.ValueOfFloat64(1e21),
		13: protoreflect.ValueOfBool(true),
		14: protoreflect.ValueOfString("x"),
		15: protoreflect.ValueOfBytes([]byte{0, 0xff}),
	}

	for num, v := range values {
		msg.Set(testproto.Field(msg, num), v)
	}

	expected := `1: -42
2: -9000000000
3: 4294967295
4: 18446744073709551615
5: -1
6: -9223372036854775808
7: 7
8: 8
9: -9
10: -10
11: 0.1
12: 1e+21
13: true
14: "x"
15: "\000\377"
`

	require.Empty(t, cmp.Diff(expected, render(t, msg, NewOptions())))
}

func TestEncode_Floats(t *testing.T) {
	testCases := []struct {
		value    float64
		expected string
	}{
		{1.5, "1.5"},
		{100, "100"},
		{1e6, "1e+06"},
		{123456789, "1.23456789e+08"},
		{0.000001, "1e-06"},
		{math.Copysign(0, -1), "-0"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}

	for _, tc := range testCases {
		msg := testproto.NewAllTypes()
		msg.Set(testproto.Field(msg, 12), protoreflect.ValueOfFloat64(tc.value))

		require.Equal(t, "12: "+tc.expected+"\n", render(t, msg, NewOptions()))
	}

	msg := testproto.NewAllTypes()
	msg.Set(testproto.Field(msg, 11), protoreflect.ValueOfFloat32(float32(math.Inf(-1))))
	require.Equal(t, "11: -inf\n", render(t, msg, NewOptions()))
}

func TestEncode_Bool(t *testing.T) {
	msg := testproto.NewAllTypes()
	msg.Set(testproto.Field(msg, 13), protoreflect.ValueOfBool(false))

	require.Equal(t, "13: false\n", render(t, msg, NewOptions()))
}

func TestEncode_Escaping(t *testing.T) {
	msg := testproto.NewAllTypes()
	msg.Set(testproto.Field(msg, 14), protoreflect.ValueOfString("a\"b'c\\d\n\r\t\x01\x7fé\xffz"))
	msg.Set(testproto.Field(msg, 15), protoreflect.ValueOfBytes([]byte("é'\n")))

	out := render(t, msg, NewOptions())
	require.Equal(t, `14: "a\"b\'c\\d\n\r\t\001\177é\377z"`+"\n"+
		`15: "\303\251\'\n"`+"\n", out)
}

func TestEncode_Enum(t *testing.T) {
	msg := testproto.NewAllTypes()
	msg.Set(testproto.Field(msg, 21), protoreflect.ValueOfEnum(-1))

	require.Equal(t, "21: -1\n", render(t, msg, NewOptions()))
	require.Equal(t, "21: NEG\n", render(t, msg, NewOptions(SymbolicEnums)))

	// Unknown numbers fall back to the numeric form.
	msg.Set(testproto.Field(msg, 21), protoreflect.ValueOfEnum(7))
	require.Equal(t, "21: 7\n", render(t, msg, NewOptions(SymbolicEnums)))
}

func TestEncode_ScalarMaps(t *testing.T) {
	msg := testproto.NewMap()

	ints := msg.Mutable(testproto.Field(msg, 1)).Map()
	for _, k := range []int32{10, -5, 2} {
		ints.Set(protoreflect.ValueOfInt32(k).MapKey(), protoreflect.ValueOfInt32(k*2))
	}

	strs := msg.Mutable(testproto.Field(msg, 2)).Map()
	for _, k := range []string{"b", "B", "a", "ab"} {
		strs.Set(protoreflect.ValueOfString(k).MapKey(), protoreflect.ValueOfString(k))
	}

	bools := msg.Mutable(testproto.Field(msg, 3)).Map()
	bools.Set(protoreflect.ValueOfBool(true).MapKey(), protoreflect.ValueOfInt32(1))
	bools.Set(protoreflect.ValueOfBool(false).MapKey(), protoreflect.ValueOfInt32(0))

	uints := msg.Mutable(testproto.Field(msg, 4)).Map()
	uints.Set(protoreflect.ValueOfUint64(math.MaxUint64).MapKey(), protoreflect.ValueOfBytes([]byte("z")))
	uints.Set(protoreflect.ValueOfUint64(1).MapKey(), protoreflect.ValueOfBytes(nil))

	enums := msg.Mutable(testproto.Field(msg, 5)).Map()
	enums.Set(protoreflect.ValueOfInt64(-1).MapKey(), protoreflect.ValueOfEnum(2))

	expected := `1 { key: -5 value: -10 } 1 { key: 2 value: 4 } 1 { key: 10 value: 20 } ` +
		`2 { key: "B" value: "B" } 2 { key: "a" value: "a" } 2 { key: "ab" value: "ab" } ` +
		`2 { key: "b" value: "b" } ` +
		`3 { key: false value: 0 } 3 { key: true value: 1 } ` +
		`4 { key: 1 value: "" } 4 { key: 18446744073709551615 value: "z" } ` +
		`5 { key: -1 value: BAR } `

	out := render(t, msg, NewOptions(SingleLine, SymbolicEnums))
	require.Empty(t, cmp.Diff(expected, out))

	out = render(t, msg, NewOptions())
	require.True(t, strings.HasPrefix(out, "1 {\n  key: -5\n  value: -10\n}\n"))
}

func TestEncode_GeneratedMessage(t *testing.T) {
	msg := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String("a"),
		Number: proto.Int32(1),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum(),
	}

	out := render(t, msg.ProtoReflect(), NewOptions())
	require.Equal(t, "1: \"a\"\n3: 1\n4: 1\n5: 5\n", out)

	out = render(t, msg.ProtoReflect(), NewOptions(SymbolicEnums, SingleLine))
	require.Equal(t, "1: \"a\" 3: 1 4: LABEL_OPTIONAL 5: TYPE_INT32 ", out)

	internal.RequireStableRendering(t, msg, func(m protoreflect.Message) string {
		return render(t, m, NewOptions(SymbolicEnums))
	})
}

func TestEncode_GeneratedMap(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"b": "x",
		"a": 1.5,
	})
	require.NoError(t, err)

	expected := `1 {
  key: "a"
  value {
    2: 1.5
  }
}
1 {
  key: "b"
  value {
    3: "x"
  }
}
`

	require.Empty(t, cmp.Diff(expected, render(t, msg.ProtoReflect(), NewOptions())))

	internal.RequireStableRendering(t, msg, func(m protoreflect.Message) string {
		return render(t, m, NewOptions())
	})
}

func TestEncode_SchemaMismatch(t *testing.T) {
	msg := testproto.NewAllTypes()

	require.PanicsWithError(t, "descriptor protodebug.test.TestMap does not "+
		"describe message protodebug.test.TestAllTypes", func() {
		Encode(msg, testproto.Map(), NewOptions(), nil)
	})

	// The right descriptor is accepted.
	require.Equal(t, 0, Encode(msg, testproto.AllTypes(), NewOptions(), nil))
}

func TestEncode_UnsupportedKind(t *testing.T) {
	msg := fake.NewBadKindMessage(testproto.NewAllTypes(), 1)

	require.PanicsWithError(t, "field protodebug.test.TestAllTypes.optional_int32 "+
		"has unsupported kind 99", func() {
		Size(msg, nil, NewOptions())
	})
}

func TestEncode_DepthExceeded(t *testing.T) {
	msg := chain(MaxDepth)
	require.NotPanics(t, func() {
		Size(msg, nil, NewOptions(SingleLine))
	})

	msg = chain(MaxDepth + 1)
	require.PanicsWithError(t, ErrDepthExceeded.Error(), func() {
		Size(msg, nil, NewOptions(SingleLine))
	})
}

func TestEncode_NoPartialFieldOnFailure(t *testing.T) {
	buf := make([]byte, 16)

	require.Panics(t, func() {
		Encode(fake.NewBadKindMessage(testproto.NewAllTypes(), 1), nil, NewOptions(), buf)
	})
	require.Equal(t, make([]byte, 16), buf)

	// The nested message is checked before its block is opened.
	msg := testproto.NewAllTypes()
	msg.Set(testproto.Field(msg, 1), protoreflect.ValueOfInt32(5))
	msg.Mutable(testproto.Field(msg, 18))

	replaced := fake.NewReplacedMessage(msg, 18, protoreflect.ValueOfMessage(testproto.NewMap()))

	buf = make([]byte, 16)
	require.PanicsWithError(t, "descriptor protodebug.test.TestAllTypes.NestedMessage "+
		"does not describe message protodebug.test.TestMap", func() {
		Encode(replaced, nil, NewOptions(), buf)
	})
	require.Equal(t, "1: 5\n", strings.TrimRight(string(buf), "\x00"))
}

func TestEncode_NoPartialBlockOnDepthExceeded(t *testing.T) {
	opening := "200 { "
	buf := make([]byte, len(opening)*(MaxDepth+2))

	require.PanicsWithError(t, ErrDepthExceeded.Error(), func() {
		Encode(chain(MaxDepth+1), nil, NewOptions(SingleLine), buf)
	})

	out := strings.TrimRight(string(buf), "\x00")
	require.Equal(t, strings.Repeat(opening, MaxDepth), out)
}

func TestEncoder_CapacityOverflow(t *testing.T) {
	e := encoder{total: math.MaxInt - 1}

	e.putByte('a')
	require.Equal(t, math.MaxInt, e.total)

	require.PanicsWithError(t, ErrCapacityOverflow.Error(), func() {
		e.putString("b")
	})
	require.Equal(t, math.MaxInt, e.total)
}

func TestEncode_Concurrent(t *testing.T) {
	msg := testproto.Example()
	expected := render(t, msg, NewOptions())

	var wg sync.WaitGroup
	results := make([]string, 8)

	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			buf := make([]byte, Size(msg, nil, NewOptions()))
			n := Encode(msg, nil, NewOptions(), buf)
			results[i] = string(buf[:n])
		}(i)
	}

	wg.Wait()

	for _, res := range results {
		require.Equal(t, expected, res)
	}
}

// -----------------------------------------------------------------------------
// Utility functions

func render(t *testing.T, msg protoreflect.Message, opts Options) string {
	size := Encode(msg, nil, opts, nil)
	buf := make([]byte, size)

	n := Encode(msg, nil, opts, buf)
	require.Equal(t, size, n)

	return string(buf[:n])
}

func entries(keys ...string) string {
	out := new(strings.Builder)
	for _, key := range keys {
		out.WriteString(strings.Replace(exampleEntry, "%s", key, 1))
	}

	return out.String()
}

func stringKeys(keys ...string) []protoreflect.MapKey {
	res := make([]protoreflect.MapKey, len(keys))
	for i, k := range keys {
		res[i] = protoreflect.ValueOfString(k).MapKey()
	}

	return res
}

func allOptions() []Options {
	res := []Options{}
	for flags := Flag(0); flags < 16; flags++ {
		res = append(res, NewOptions(flags))
	}

	return res
}

// chain returns a message with the given number of nested children.
func chain(depth int) protoreflect.Message {
	msg := testproto.NewAllTypes()

	var cur protoreflect.Message = msg
	for i := 0; i < depth; i++ {
		cur = cur.Mutable(testproto.Field(cur, 200)).Message()
	}

	return msg
}
