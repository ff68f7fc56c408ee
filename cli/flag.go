package cli

import "time"

// Definition holds the properties shared by every flag.
type Definition struct {
	Name     string
	Aliases  []string
	Usage    string
	Required bool
}

// StringFlag is a definition of a command flag expected to be parsed as a
// string.
//
// - implements cli.Flag
type StringFlag struct {
	Definition
	Value string
}

// Flag implements cli.Flag.
func (flag StringFlag) Flag() {}

// StringSliceFlag is a definition of a command flag that can be given several
// times, or as a comma separated list.
//
// - implements cli.Flag
type StringSliceFlag struct {
	Definition
	Value []string
}

// Flag implements cli.Flag.
func (flag StringSliceFlag) Flag() {}

// DurationFlag is a definition of a command flag expected to be parsed as a
// duration.
//
// - implements cli.Flag
type DurationFlag struct {
	Definition
	Value time.Duration
}

// Flag implements cli.Flag.
func (flag DurationFlag) Flag() {}

// IntFlag is a definition of a command flag expected to be parsed as a integer.
//
// - implements cli.Flag
type IntFlag struct {
	Definition
	Value int
}

// Flag implements cli.Flag.
func (flag IntFlag) Flag() {}

// BoolFlag is a definition of a command flag without value, true when given.
//
// - implements cli.Flag
type BoolFlag struct {
	Definition
	Value bool
}

// Flag implements cli.Flag.
func (flag BoolFlag) Flag() {}
