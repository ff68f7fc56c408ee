// Package testproto provides a schema for the tests, built from descriptor
// protos so that no generated code is needed. Messages are instantiated with
// dynamicpb.
//
// The file is the equivalent of:
//
//	syntax = "proto2";
//	package protodebug.test;
//
//	message TestAllTypes {
//	  message NestedMessage {
//	    optional int32 bb = 1;
//	  }
//	  enum NestedEnum { ZERO = 0; FOO = 1; BAR = 2; BAZ = 3; NEG = -1; }
//
//	  optional int32 optional_int32 = 1;
//	  ...
//	  optional bytes optional_bytes = 15;
//	  optional NestedMessage optional_nested_message = 18;
//	  optional NestedEnum optional_nested_enum = 21;
//	  repeated int32 repeated_int32 = 31;
//	  repeated string repeated_string = 44;
//	  repeated NestedMessage repeated_nested_message = 48;
//	  oneof oneof_field {
//	    uint32 oneof_uint32 = 111;
//	    NestedMessage oneof_nested_message = 112;
//	    string oneof_string = 113;
//	  }
//	  optional TestAllTypes child = 200;
//	}
//
//	message TestMapWithMessages {
//	  map<string, TestAllTypes> map_string_all_types = 12;
//	}
//
//	message TestMap {
//	  map<int32, int32> map_int32_int32 = 1;
//	  map<string, string> map_string_string = 2;
//	  map<bool, int32> map_bool_int32 = 3;
//	  map<uint64, bytes> map_uint64_bytes = 4;
//	  map<sint64, TestAllTypes.NestedEnum> map_sint64_enum = 5;
//	}
package testproto

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

const pkg = "protodebug.test"

// Names of the messages of the test file.
const (
	AllTypesName         protoreflect.FullName = pkg + ".TestAllTypes"
	MapWithMessagesName  protoreflect.FullName = pkg + ".TestMapWithMessages"
	MapName              protoreflect.FullName = pkg + ".TestMap"
	NestedMessageName    protoreflect.FullName = AllTypesName + ".NestedMessage"
	nestedEnumTypeName                         = "." + string(AllTypesName) + ".NestedEnum"
	nestedMessageTypeName                      = "." + string(NestedMessageName)
)

// File is the descriptor of the test file.
var File protoreflect.FileDescriptor

func init() {
	fd, err := NewFile()
	if err != nil {
		panic("test schema is invalid: " + err.Error())
	}

	File = fd
}

// NewFile resolves the descriptor proto of the test file.
func NewFile() (protoreflect.FileDescriptor, error) {
	return protodesc.NewFile(FileProto(), new(protoregistry.Files))
}

// AllTypes returns the descriptor of TestAllTypes.
func AllTypes() protoreflect.MessageDescriptor {
	return File.Messages().ByName(AllTypesName.Name())
}

// MapWithMessages returns the descriptor of TestMapWithMessages.
func MapWithMessages() protoreflect.MessageDescriptor {
	return File.Messages().ByName(MapWithMessagesName.Name())
}

// Map returns the descriptor of TestMap.
func Map() protoreflect.MessageDescriptor {
	return File.Messages().ByName(MapName.Name())
}

// NewAllTypes returns an empty TestAllTypes.
func NewAllTypes() *dynamicpb.Message {
	return dynamicpb.NewMessage(AllTypes())
}

// NewMapWithMessages returns an empty TestMapWithMessages.
func NewMapWithMessages() *dynamicpb.Message {
	return dynamicpb.NewMessage(MapWithMessages())
}

// NewMap returns an empty TestMap.
func NewMap() *dynamicpb.Message {
	return dynamicpb.NewMessage(Map())
}

// Field returns the field of the message with the given number.
func Field(m protoreflect.Message, num protoreflect.FieldNumber) protoreflect.FieldDescriptor {
	fd := m.Descriptor().Fields().ByNumber(num)
	if fd == nil {
		panic("unknown field number")
	}

	return fd
}

// Populate fills a TestAllTypes with the values of the reference rendering:
// 1, 14, 18 { 1 }, 21, 44 three times and 111.
func Populate(m protoreflect.Message) {
	m.Set(Field(m, 1), protoreflect.ValueOfInt32(42))
	m.Set(Field(m, 14), protoreflect.ValueOfString("Hello World"))

	nested := m.Mutable(Field(m, 18)).Message()
	nested.Set(Field(nested, 1), protoreflect.ValueOfInt32(100))

	m.Set(Field(m, 21), protoreflect.ValueOfEnum(2))

	list := m.Mutable(Field(m, 44)).List()
	for i := 0; i < 3; i++ {
		list.Append(protoreflect.ValueOfString("Hello World"))
	}

	m.Set(Field(m, 111), protoreflect.ValueOfUint32(452235))
}

// Example returns a TestMapWithMessages holding three populated TestAllTypes
// inserted under the keys hello, fizz and boo, in that order.
func Example() *dynamicpb.Message {
	m := NewMapWithMessages()
	entries := m.Mutable(Field(m, 12)).Map()

	for _, key := range ExampleKeys {
		value := entries.NewValue()
		Populate(value.Message())

		entries.Set(protoreflect.ValueOfString(key).MapKey(), value)
	}

	return m
}

// ExampleKeys are the keys of the example map in insertion order.
var ExampleKeys = []string{"hello", "fizz", "boo"}

// DescriptorSet returns a file descriptor set holding the test file.
func DescriptorSet() *descriptorpb.FileDescriptorSet {
	return &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{FileProto()},
	}
}

// FileProto returns the descriptor proto of the test file.
func FileProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("protodebug/test/unittest.proto"),
		Package: proto.String(pkg),
		Syntax:  proto.String("proto2"),
		MessageType: []*descriptorpb.DescriptorProto{
			allTypesProto(),
			mapWithMessagesProto(),
			mapProto(),
		},
	}
}

func allTypesProto() *descriptorpb.DescriptorProto {
	oneof := func(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
		f.OneofIndex = proto.Int32(0)
		return f
	}

	return &descriptorpb.DescriptorProto{
		Name: proto.String(string(AllTypesName.Name())),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalar("optional_int32", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			scalar("optional_int64", 2, descriptorpb.FieldDescriptorProto_TYPE_INT64),
			scalar("optional_uint32", 3, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
			scalar("optional_uint64", 4, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
			scalar("optional_sint32", 5, descriptorpb.FieldDescriptorProto_TYPE_SINT32),
			scalar("optional_sint64", 6, descriptorpb.FieldDescriptorProto_TYPE_SINT64),
			scalar("optional_fixed32", 7, descriptorpb.FieldDescriptorProto_TYPE_FIXED32),
			scalar("optional_fixed64", 8, descriptorpb.FieldDescriptorProto_TYPE_FIXED64),
			scalar("optional_sfixed32", 9, descriptorpb.FieldDescriptorProto_TYPE_SFIXED32),
			scalar("optional_sfixed64", 10, descriptorpb.FieldDescriptorProto_TYPE_SFIXED64),
			scalar("optional_float", 11, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("optional_double", 12, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
			scalar("optional_bool", 13, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
			scalar("optional_string", 14, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalar("optional_bytes", 15, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
			typed("optional_nested_message", 18, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, nestedMessageTypeName),
			typed("optional_nested_enum", 21, descriptorpb.FieldDescriptorProto_TYPE_ENUM, nestedEnumTypeName),
			repeated(scalar("repeated_int32", 31, descriptorpb.FieldDescriptorProto_TYPE_INT32)),
			repeated(scalar("repeated_string", 44, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
			repeated(typed("repeated_nested_message", 48, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, nestedMessageTypeName)),
			oneof(scalar("oneof_uint32", 111, descriptorpb.FieldDescriptorProto_TYPE_UINT32)),
			oneof(typed("oneof_nested_message", 112, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, nestedMessageTypeName)),
			oneof(scalar("oneof_string", 113, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
			typed("child", 200, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, "."+string(AllTypesName)),
		},
		NestedType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String(string(NestedMessageName.Name())),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("bb", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				},
			},
		},
		EnumType: []*descriptorpb.EnumDescriptorProto{
			{
				Name: proto.String("NestedEnum"),
				Value: []*descriptorpb.EnumValueDescriptorProto{
					{Name: proto.String("ZERO"), Number: proto.Int32(0)},
					{Name: proto.String("FOO"), Number: proto.Int32(1)},
					{Name: proto.String("BAR"), Number: proto.Int32(2)},
					{Name: proto.String("BAZ"), Number: proto.Int32(3)},
					{Name: proto.String("NEG"), Number: proto.Int32(-1)},
				},
			},
		},
		OneofDecl: []*descriptorpb.OneofDescriptorProto{
			{Name: proto.String("oneof_field")},
		},
	}
}

func mapWithMessagesProto() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String(string(MapWithMessagesName.Name())),
		Field: []*descriptorpb.FieldDescriptorProto{
			mapField("map_string_all_types", 12, MapWithMessagesName, "MapStringAllTypesEntry"),
		},
		NestedType: []*descriptorpb.DescriptorProto{
			mapEntry("MapStringAllTypesEntry",
				scalar("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				typed("value", 2, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, "."+string(AllTypesName))),
		},
	}
}

func mapProto() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String(string(MapName.Name())),
		Field: []*descriptorpb.FieldDescriptorProto{
			mapField("map_int32_int32", 1, MapName, "MapInt32Int32Entry"),
			mapField("map_string_string", 2, MapName, "MapStringStringEntry"),
			mapField("map_bool_int32", 3, MapName, "MapBoolInt32Entry"),
			mapField("map_uint64_bytes", 4, MapName, "MapUint64BytesEntry"),
			mapField("map_sint64_enum", 5, MapName, "MapSint64EnumEntry"),
		},
		NestedType: []*descriptorpb.DescriptorProto{
			mapEntry("MapInt32Int32Entry",
				scalar("key", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				scalar("value", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32)),
			mapEntry("MapStringStringEntry",
				scalar("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("value", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
			mapEntry("MapBoolInt32Entry",
				scalar("key", 1, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
				scalar("value", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32)),
			mapEntry("MapUint64BytesEntry",
				scalar("key", 1, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
				scalar("value", 2, descriptorpb.FieldDescriptorProto_TYPE_BYTES)),
			mapEntry("MapSint64EnumEntry",
				scalar("key", 1, descriptorpb.FieldDescriptorProto_TYPE_SINT64),
				typed("value", 2, descriptorpb.FieldDescriptorProto_TYPE_ENUM, nestedEnumTypeName)),
		},
	}
}

func scalar(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func typed(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type,
	typeName string) *descriptorpb.FieldDescriptorProto {

	f := scalar(name, num, typ)
	f.TypeName = proto.String(typeName)

	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func mapField(name string, num int32, parent protoreflect.FullName,
	entry string) *descriptorpb.FieldDescriptorProto {

	return repeated(typed(name, num, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE,
		"."+string(parent)+"."+entry))
}

func mapEntry(name string, key, value *descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:    proto.String(name),
		Field:   []*descriptorpb.FieldDescriptorProto{key, value},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}
}
