// Package lang carries nana programs through the middle of the compiler:
// decoding, flattening, and resolution.
//
// # Pipeline
//
// A program enters as a surface document (YAML, or JSON which is a subset of
// YAML) and leaves as a [Unit]:
//
//	document ─Decode→ surface.Program ─flatten.Program→ canon.Program ─resolve.Resolve→ resolve.Result
//
// The subpackages hold each stage:
//
//   - ast: binders, literals, patterns, masks, and block kinds
//   - surface: the tree as written, with gated blocks and trace lists
//   - canon: the flattened tree, with single-trace gate chains
//   - flatten: the rewrite from surface to canonical form and back
//   - pattern: binder enumeration, validation, and export selection
//   - resolve: contexts, references, exposure, and diagnostics
//
// # Document
//
// The root of a document is a block:
//
//	kind: sequential        # or simultaneous, parallel
//	traces: [self]
//	bindings:
//	  - bind: n
//	    body: 1
//	  - bind: lib
//	    mask: exposed
//	    body:
//	      block:
//	        bindings:
//	          - {bind: inc, args: x, mask: exposed, body: {apply: {func: "+", arg: x}}}
//	  - pattern: {list: [head, ..tail]}
//	    body: input
//	values:
//	  - {project: {from: lib, name: inc}}
//
// Bare numbers are literals and bare strings are references. Every other
// expression is a mapping with one key naming its kind: int, float, str,
// raw, ref, anon, block, apply, project, or match. Patterns are written "x",
// "_", "..", "..xs", or a mapping with one of bind, anon, rest, lit, list,
// tuple, append, map, expose, or alias. A mask is closed, exposed, open, or
// {exposing: <pattern>}.
//
// # Errors
//
// Pipeline failures are [*Error] values derived from the sentinels
// [ErrReadInput], [ErrDecode], [ErrInvalidNode], [ErrMaxDepthExceeded],
// [ErrResolve], and [ErrInvalidFormat], and match them with [errors.Is].
// A program with diagnostics still yields its [Unit]; the error wraps
// [ErrResolve] and joins every [resolve.Diagnostic].
package lang
