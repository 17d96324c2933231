package crates

import "strings"

// Suffix is the naming convention for published packs. User-facing
// commands accept the short name and resolve it with these helpers.
const Suffix = "-pack"

// FullName converts "cli" to "cli-pack". Names already carrying the
// suffix pass through unchanged.
func FullName(name string) string {
	if strings.HasSuffix(name, Suffix) {
		return name
	}
	return name + Suffix
}

// ShortName converts "cli-pack" to "cli" for display.
func ShortName(name string) string {
	return strings.TrimSuffix(name, Suffix)
}

// IsPackName reports whether a crate name follows the pack convention.
func IsPackName(name string) bool {
	return strings.HasSuffix(name, Suffix) && len(name) > len(Suffix)
}
