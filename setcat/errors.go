package setcat

import "errors"

var (
	// ErrContainment reports a value outside the carrier it was declared in:
	// a morphism image escaping its codomain, or a pairing leg outside its factor.
	ErrContainment = errors.New("containment violation")

	// ErrShapeMismatch reports morphisms whose domains and codomains do not line up.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrReadOnly reports an attempt to mutate a lazy carrier.
	ErrReadOnly = errors.New("read-only carrier")

	// ErrRegistryConflict reports a second, different semantics bundle attached to one carrier.
	ErrRegistryConflict = errors.New("registry conflict")

	// ErrUnregisteredAnchor reports a lookup for a power object that was never built.
	ErrUnregisteredAnchor = errors.New("unregistered anchor")
)
