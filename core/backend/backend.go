// Package backend declares the external interfaces the rule-expression
// engine compiles against: the node-interning context handle and the
// semiring-style content accumulator. Both are owned and implemented by
// the downstream aces backend; this package only states the contract.
package backend

import "github.com/cerexlang/cerex/core/ces"

// NodeID is a backend-assigned stable identifier for an interned node name.
type NodeID uint64

// Context is the shared, mutable collaborator that interns node names and
// holds previously compiled content. Implementations must serialize
// concurrent access internally; the engine never assumes exclusive access.
type Context interface {
	// HasContent reports whether name already has compiled content bound
	// to it (used by the dependency pre-check).
	HasContent(name ces.Name) bool

	// GetContent fetches the compiled content bound to name, if any.
	GetContent(name ces.Name) (PartialContent, bool)

	// ShareNodeName interns name, returning its stable id.
	ShareNodeName(name ces.Name) NodeID

	// NewContent returns a fresh, empty PartialContent tied to this context.
	NewContent() PartialContent
}

// Monomial is a compiled polynomial term: a set of interned node ids.
type Monomial []NodeID

// PartialContent is the backend's accumulator of causes and effects keyed
// by node id. Add combines two contents additively; Mul combines them
// multiplicatively, per the Sum/Product semantics of a Rex.
type PartialContent interface {
	AddToCauses(id NodeID, cause []Monomial)
	AddToEffects(id NodeID, effect []Monomial)

	Add(other PartialContent)
	Mul(other PartialContent)
}
