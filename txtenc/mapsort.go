package txtenc

import (
	"sort"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// rangeMap calls fn for every entry of the map, by ascending key unless the
// options ask for the storage order.
func (e *encoder) rangeMap(keyFd protoreflect.FieldDescriptor, m protoreflect.Map,
	fn func(protoreflect.MapKey, protoreflect.Value)) {

	if e.opts.NoSort() {
		m.Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
			fn(k, v)
			return true
		})

		return
	}

	for _, k := range sortedKeys(keyFd, m) {
		fn(k, m.Get(k))
	}
}

func sortedKeys(keyFd protoreflect.FieldDescriptor, m protoreflect.Map) []protoreflect.MapKey {
	keys := make([]protoreflect.MapKey, 0, m.Len())

	m.Range(func(k protoreflect.MapKey, _ protoreflect.Value) bool {
		keys = append(keys, k)
		return true
	})

	var less func(a, b protoreflect.MapKey) bool

	switch keyFd.Kind() {
	case protoreflect.BoolKind:
		less = func(a, b protoreflect.MapKey) bool { return !a.Bool() && b.Bool() }
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		less = func(a, b protoreflect.MapKey) bool { return a.Int() < b.Int() }
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		less = func(a, b protoreflect.MapKey) bool { return a.Uint() < b.Uint() }
	case protoreflect.StringKind:
		// byte-wise comparison, not collation
		less = func(a, b protoreflect.MapKey) bool { return a.String() < b.String() }
	default:
		panic(NewErrUnsupportedKind(keyFd))
	}

	sort.Slice(keys, func(i, j int) bool {
		return less(keys[i], keys[j])
	})

	return keys
}
