// Package setcat is an executable model of the category of sets.
//
// Objects are carriers: finite materialized sets or lazy, possibly infinite
// ones defined by a semantics bundle. Morphisms are total functions whose
// image is checked against the codomain when they are built. On top of these
// the package constructs products, coproducts, the terminal and initial
// objects, exponentials with evaluation, currying and uncurrying, and the
// power object of a carrier together with the correspondence between subsets
// and characteristic functions.
//
// Every construction is owned by a Universe. Building the same construction
// twice in one Universe returns the identical object, and compound elements
// (pairs, tagged values, finite functions) are canonical, so identity
// comparison is sound throughout.
//
//	u := setcat.NewUniverse()
//	a := setcat.MakeCarrier(u, 0, 1)
//	b := setcat.MakeCarrier(u, "x", "y", "z")
//	p := setcat.Product(u, a, b)
//	p.Object.Cardinality() // 6
package setcat
