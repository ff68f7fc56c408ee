package cli

import (
	"time"
)

// FlagSet is a map-backed flag set. It holds the values read from a
// configuration file and serves as flags in the tests. Values have the types
// produced by a YAML or JSON decoder.
//
// - implements cli.Flags
type FlagSet map[string]interface{}

// String implements cli.Flags. It returns the string associated with the flag
// name if it is set, otherwise it returns an empty string.
func (fset FlagSet) String(name string) string {
	switch v := fset[name].(type) {
	case string:
		return v
	default:
		return ""
	}
}

// StringSlice implements cli.Flags. It returns the slice of strings associated
// with the flag name if it is set, otherwise it returns nil. A single string
// is a slice of one element.
func (fset FlagSet) StringSlice(name string) []string {
	switch v := fset[name].(type) {
	case []interface{}:
		values := make([]string, 0, len(v))
		for _, elem := range v {
			str, ok := elem.(string)
			if ok {
				values = append(values, str)
			}
		}

		return values
	case []string:
		return v
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Duration implements cli.Flags. It returns the duration associated with the
// flag name if it is set, otherwise it returns zero. Strings are parsed with
// the time package syntax.
func (fset FlagSet) Duration(name string) time.Duration {
	switch v := fset[name].(type) {
	case time.Duration:
		return v
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0
		}

		return d
	default:
		return 0
	}
}

// Path implements cli.Flags. It returns the path associated with the flag name
// if it is set, otherwise it returns an empty string.
func (fset FlagSet) Path(name string) string {
	return fset.String(name)
}

// Int implements cli.Flags. It returns the integer associated with the flag if
// it is set, otherwise it returns zero.
func (fset FlagSet) Int(name string) int {
	switch v := fset[name].(type) {
	case int:
		return v
	case float64:
		if v != float64(int(v)) {
			return 0
		}

		return int(v)
	default:
		return 0
	}
}

// Bool implements cli.Flags. It returns the boolean associated with the flag
// if it is set, otherwise it returns false.
func (fset FlagSet) Bool(name string) bool {
	switch v := fset[name].(type) {
	case bool:
		return v
	default:
		return false
	}
}

// IsSet implements cli.Flags. It returns true if the flag has a value.
func (fset FlagSet) IsSet(name string) bool {
	_, found := fset[name]
	return found
}

// Overlay reads the flags from the command line first, and falls back to the
// defaults for the flags not given explicitly.
//
// - implements cli.Flags
type Overlay struct {
	Flags
	Defaults Flags
}

// NewOverlay returns flags where the explicit values of the primary flags take
// precedence over the defaults.
func NewOverlay(primary, defaults Flags) Overlay {
	return Overlay{
		Flags:    primary,
		Defaults: defaults,
	}
}

func (o Overlay) pick(name string) Flags {
	if o.Defaults == nil || o.Flags.IsSet(name) || !o.Defaults.IsSet(name) {
		return o.Flags
	}

	return o.Defaults
}

// String implements cli.Flags.
func (o Overlay) String(name string) string {
	return o.pick(name).String(name)
}

// StringSlice implements cli.Flags.
func (o Overlay) StringSlice(name string) []string {
	return o.pick(name).StringSlice(name)
}

// Duration implements cli.Flags.
func (o Overlay) Duration(name string) time.Duration {
	return o.pick(name).Duration(name)
}

// Path implements cli.Flags.
func (o Overlay) Path(name string) string {
	return o.pick(name).Path(name)
}

// Int implements cli.Flags.
func (o Overlay) Int(name string) int {
	return o.pick(name).Int(name)
}

// Bool implements cli.Flags.
func (o Overlay) Bool(name string) bool {
	return o.pick(name).Bool(name)
}

// IsSet implements cli.Flags. It returns true if either layer has the flag.
func (o Overlay) IsSet(name string) bool {
	return o.Flags.IsSet(name) || (o.Defaults != nil && o.Defaults.IsSet(name))
}
