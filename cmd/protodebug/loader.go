package main

import (
	"io"
	"io/ioutil"
	"os"

	"go.dedis.ch/protodebug/cli"
	"golang.org/x/xerrors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
	"gopkg.in/yaml.v2"
)

// Input formats of the message.
const (
	formatBinary = "binary"
	formatJSON   = "json"
	formatText   = "text"
)

// loadDescriptors reads a serialized FileDescriptorSet, as produced by protoc
// with --include_imports, and resolves its files.
func loadDescriptors(path string) (*protoregistry.Files, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("couldn't read descriptors: %v", err)
	}

	set := new(descriptorpb.FileDescriptorSet)

	err = proto.Unmarshal(data, set)
	if err != nil {
		return nil, xerrors.Errorf("couldn't unmarshal descriptors: %v", err)
	}

	files, err := protodesc.NewFiles(set)
	if err != nil {
		return nil, xerrors.Errorf("couldn't resolve descriptors: %v", err)
	}

	return files, nil
}

// findMessage returns the message descriptor with the full name.
func findMessage(files *protoregistry.Files, name string) (protoreflect.MessageDescriptor, error) {
	desc, err := files.FindDescriptorByName(protoreflect.FullName(name))
	if err != nil {
		return nil, xerrors.Errorf("couldn't find type '%s': %v", name, err)
	}

	md, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, xerrors.Errorf("type '%s' is not a message", name)
	}

	return md, nil
}

// decode instantiates a message of the descriptor and fills it with the data
// in the given format. Unknown fields of the binary format are kept.
func decode(md protoreflect.MessageDescriptor, data []byte, format string) (protoreflect.Message, error) {
	msg := dynamicpb.NewMessage(md)

	var err error

	switch format {
	case formatBinary, "":
		err = proto.Unmarshal(data, msg)
	case formatJSON:
		err = protojson.Unmarshal(data, msg)
	case formatText:
		err = prototext.Unmarshal(data, msg)
	default:
		return nil, xerrors.Errorf("unknown format '%s'", format)
	}

	if err != nil {
		return nil, xerrors.Errorf("couldn't decode %s input: %v", format, err)
	}

	return msg, nil
}

// readInput reads the whole file, or the reader when the path is empty or a
// dash.
func readInput(path string, in io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := ioutil.ReadAll(in)
		if err != nil {
			return nil, xerrors.Errorf("couldn't read input: %v", err)
		}

		return data, nil
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("couldn't read input: %v", err)
	}

	return data, nil
}

// loadConfig reads the YAML file of default flag values. The keys are the
// flag names.
func loadConfig(path string) (cli.FlagSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("couldn't open config: %v", err)
	}

	defer f.Close()

	fset := make(cli.FlagSet)

	err = yaml.NewDecoder(f).Decode(&fset)
	if err != nil && err != io.EOF {
		return nil, xerrors.Errorf("couldn't decode config: %v", err)
	}

	return fset, nil
}
