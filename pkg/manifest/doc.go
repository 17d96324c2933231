// Package manifest reads Cargo.toml descriptors for facade generation.
//
// A manifest is genuinely schema-light: apart from the package name and the
// dependency table, everything packforge cares about lives under the
// optional [package.metadata.pack] table and may be absent at any level.
// The package therefore exposes two views:
//
//   - Value, an untyped tagged-union view (string | array | table) over the
//     parsed TOML tree with none-returning path lookups
//   - Meta, a typed projection of the pack metadata the generator understands
//
// Absent paths are valid everywhere and mean "no configuration". Manifests
// are read-only after parsing.
package manifest
