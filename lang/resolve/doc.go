// Package resolve builds the lexical environment of a canonical program.
//
// Every gate, block, function parameter list, and match arm gets one
// [Context], held in an arena and linked to its parent by [ContextID]. Each
// context moves through the states [Unresolved], [Collected],
// [CrossReferenced], and [Resolved]:
//
//   - Collection creates every context top-down and binds the names each one
//     introduces, reporting duplicate names and malformed patterns.
//   - Importing binds the names that exposing and open bindings bring into
//     their block. The names an exposing mask can select are those the value
//     exposes; closed names stay private. Imports of a simultaneous or
//     parallel block may depend on one another, so they are bound in repeated
//     passes until no pass binds a new name, and the result does not depend
//     on the order of the bindings.
//   - Cross-referencing resolves every reference against its own context,
//     subject to the composition of the block, and then against each
//     enclosing context, nearest first. Projections resolve against the
//     exposed set of the context their target denotes.
//   - Exposure computes what each block makes visible through the masks of
//     its bindings. Exposed sets are computed on demand and memoized, so the
//     exposure of an inner block is always finished before an open binding
//     copies it.
//
// Diagnostics are accumulated per run. A run always completes, so one run
// reports every error in the program.
package resolve
