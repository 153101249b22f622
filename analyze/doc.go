// Package analyze describes Go types for the mapping builders.
//
// Type descriptors come from two places:
//   - Reflector walks reflect.Type values; the fluent builders use it so a
//     ClassMap for T can resolve members of T at the call site.
//   - Analyzer uses golang.org/x/tools/go/packages with AST and go/types
//     to load whole packages from source; the CLI automaps these.
//
// Both produce the same canonical in-memory model, so member resolution and
// automapping work identically for either source.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/map/external)
//   - FieldInfo: describes field name, type, tags, and embedding
package analyze
