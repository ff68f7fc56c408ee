// Package fake provides fake implementations for interfaces commonly used in
// the repository.
// The implementations let the unit tests shape what the encoder reads, like
// the iteration order of a map or an invalid field kind, which real storages
// cannot produce on demand.
package fake
