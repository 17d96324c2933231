// Package facade generates the re-export source for pack crates.
//
// A pack is a Rust crate that exists to curate other crates: its Cargo.toml
// declares the curated set under [dependencies] and optionally shapes the
// exported surface under [package.metadata.pack]. Generate turns that
// configuration into the pub-use statements the pack includes as its
// facade module.
//
// Generation is a pure function of the descriptor and a Resolver; it never
// fails. Malformed configuration degrades to the most permissive behavior
// (export everything, or skip just the malformed entry) because failing a
// consumer's build over a generator hiccup is worse than emitting an
// uncurated facade. Output is deterministic: identical input produces
// byte-identical output, which lets build orchestration skip downstream
// recompilation when nothing changed.
package facade
