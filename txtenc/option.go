package txtenc

import (
	"strings"

	"golang.org/x/xerrors"
)

// Flag is a single rendering option. Flags can be combined with a bitwise or
// but are usually given to NewOptions.
type Flag uint8

const (
	// SingleLine prints everything on a single line.
	SingleLine Flag = 1 << iota

	// SkipUnknown omits the fields present in storage but absent from the
	// schema.
	SkipUnknown

	// NoSort prints map entries in storage order instead of the key order,
	// which avoids allocating the sorted keys. The storage order is the one of
	// protoreflect.Map.Range, which is randomized for generated and dynamic
	// messages: two renderings of the same message can differ, so the fill
	// call may not produce the bytes counted by the sizing call. The length
	// is the same.
	NoSort

	// SymbolicEnums prints the declared name of an enum value instead of its
	// number when the number is known.
	SymbolicEnums
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{SingleLine, "singleline"},
	{SkipUnknown, "skipunknown"},
	{NoSort, "nosort"},
	{SymbolicEnums, "enumnames"},
}

// ParseFlag returns the flag matching the name, case insensitive.
func ParseFlag(name string) (Flag, error) {
	for _, f := range flagNames {
		if strings.EqualFold(f.name, strings.TrimSpace(name)) {
			return f.flag, nil
		}
	}

	return 0, xerrors.Errorf("unknown option '%s'", name)
}

// Options is an immutable set of flags threaded through a rendering. The zero
// value prints on multiple lines, sorts the maps, shows the unknown fields and
// prints enums as numbers.
type Options struct {
	flags Flag
}

// NewOptions returns the options with the given flags set.
func NewOptions(flags ...Flag) Options {
	return Options{}.With(flags...)
}

// ParseOptions returns the options from a list of flag names.
func ParseOptions(names []string) (Options, error) {
	flags := make([]Flag, 0, len(names))

	for _, name := range names {
		f, err := ParseFlag(name)
		if err != nil {
			return Options{}, xerrors.Errorf("couldn't parse options: %v", err)
		}

		flags = append(flags, f)
	}

	return NewOptions(flags...), nil
}

// With returns a copy of the options with the additional flags set.
func (o Options) With(flags ...Flag) Options {
	for _, f := range flags {
		o.flags |= f
	}

	return o
}

// Flags returns the raw flag set.
func (o Options) Flags() Flag {
	return o.flags
}

// SingleLine returns true if the output must fit on one line.
func (o Options) SingleLine() bool {
	return o.flags&SingleLine != 0
}

// SkipUnknown returns true if unknown fields must be omitted.
func (o Options) SkipUnknown() bool {
	return o.flags&SkipUnknown != 0
}

// NoSort returns true if map entries keep the storage order.
func (o Options) NoSort() bool {
	return o.flags&NoSort != 0
}

// SymbolicEnums returns true if enum values are printed by name.
func (o Options) SymbolicEnums() bool {
	return o.flags&SymbolicEnums != 0
}

// String returns the names of the flags set, separated by a pipe.
func (o Options) String() string {
	names := []string{}

	for _, f := range flagNames {
		if o.flags&f.flag != 0 {
			names = append(names, f.name)
		}
	}

	if len(names) == 0 {
		return "default"
	}

	return strings.Join(names, "|")
}
