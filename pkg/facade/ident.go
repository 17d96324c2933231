package facade

import "strings"

// CrateIdent converts a crate name to the identifier Rust source refers to
// it by: hyphens become underscores ("tracing-subscriber" imports as
// "tracing_subscriber").
func CrateIdent(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// ModuleIdent converts a configured module name to a legal Rust module
// identifier: hyphens become underscores, and names that collide with a
// Rust keyword get the raw-identifier prefix ("async" becomes "r#async").
func ModuleIdent(name string) string {
	ident := strings.ReplaceAll(name, "-", "_")
	if IsRustKeyword(ident) {
		return "r#" + ident
	}
	return ident
}

// IsRustKeyword reports whether s is a Rust keyword that cannot be used as
// a bare identifier.
func IsRustKeyword(s string) bool {
	switch s {
	case "as", "async", "await", "break", "const", "continue", "crate",
		"dyn", "else", "enum", "extern", "false", "fn", "for", "if",
		"impl", "in", "let", "loop", "match", "mod", "move", "mut",
		"pub", "ref", "return", "self", "Self", "static", "struct",
		"super", "trait", "true", "type", "unsafe", "use", "where",
		"while":
		return true
	}
	return false
}
