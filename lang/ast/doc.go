// Package ast defines the leaf vocabulary shared by every stage of the nana
// front end: binders, literals, patterns, masks, and the block composition
// and shape tags.
//
// These types carry no behavior beyond construction, comparison, and
// printing. The surface tree (package surface) and the canonical tree
// (package canon) are both built from them, which lets the flattener rebuild
// patterns without converting between two pattern representations.
//
// # Binders
//
// A [Binder] is one of three shapes:
//
//   - [Identity] binders are ordinary names (x, pi, double).
//   - [Anonymous] binders are system-generated names with a numeric suffix
//     that keeps them distinct from every identity binder (x#1).
//   - The [Arbitrary] binder (_) matches anything and introduces no name.
//
// # Patterns
//
// A [Pattern] is a tagged variant; exactly the fields documented for its
// [PatternKind] are set. Patterns appear as binding targets, function
// parameter lists, exposing masks, and match arms.
package ast
