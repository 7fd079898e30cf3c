// Package env provides a namespace of flag-bearing types against which
// invocations are resolved.
//
// A [Table] maps each type path, e.g. "ponydom::Flags", to its ordered flag
// names and their integer values. Tables are populated from definition files
// in YAML, JSON, or HCL:
//
//	# YAML (JSON is accepted by the same loader)
//	ponydom:
//	  Flags:
//	    Winged: 1
//	    Horned: 2
//	    Both: bitor(Winged, Horned)
//
//	# HCL
//	type "ponydom::Flags" {
//	  Winged = 1
//	  Horned = 2
//	  Both   = "bitor(Winged, Horned)"
//	}
//
// A flag value is either an integer or a string holding an expr-lang
// expression. Expressions may refer to flags declared earlier in the same
// type and to the process environment through env(name). The expr-lang bit
// builtins (bitor, bitand, bitshl, ...) are available. An expression that
// does not produce a non-negative integer is rejected with
// [pkg.ErrIncompatibleType].
//
// Definition files are located by [SearchPath], which merges explicitly named
// files with the FLAGSET_PATH environment variable.
package env
