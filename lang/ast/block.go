package ast

// Composition indicates how the bindings of a block see one another.
type Composition uint8

const (
	// Sequential bindings see only the bindings textually before them.
	Sequential Composition = iota // sequential

	// Simultaneous bindings all see one another, including themselves.
	Simultaneous // simultaneous

	// Parallel bindings are independent and may not reference one another.
	Parallel // parallel
)

// Shape indicates which kind of value a block builds from its entries.
type Shape uint8

const (
	ShapeTuple Shape = iota // tuple
	ShapeList               // list
	ShapeSet                // set
	ShapeMap                // map
)
