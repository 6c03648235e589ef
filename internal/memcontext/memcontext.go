// Package memcontext is a minimal in-memory stand-in for the aces
// backend's context handle, used by the demonstration CLI and by tests
// that need a concrete backend.Context without depending on the real
// downstream engine. It is not part of the compiler's specification; it
// exists only so the compiler has something to compile against.
//
// The locking discipline mirrors the teacher's decorator registry: a
// single sync.RWMutex guards the name table and content map, held only
// across the short existence/fetch/intern operation, never across
// polynomial or content arithmetic.
package memcontext

import (
	"sync"

	"github.com/cerexlang/cerex/core/backend"
	"github.com/cerexlang/cerex/core/ces"
)

// Context is a concrete, mutex-guarded backend.Context.
type Context struct {
	mu      sync.RWMutex
	ids     map[ces.Name]backend.NodeID
	nextID  backend.NodeID
	content map[ces.Name]*Content
}

// New returns an empty Context.
func New() *Context {
	return &Context{
		ids:     make(map[ces.Name]backend.NodeID),
		content: make(map[ces.Name]*Content),
	}
}

// HasContent reports whether name has previously compiled content bound.
func (c *Context) HasContent(name ces.Name) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.content[name]
	return ok
}

// GetContent fetches the content bound to name, if any.
func (c *Context) GetContent(name ces.Name) (backend.PartialContent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	content, ok := c.content[name]
	if !ok {
		return nil, false
	}
	return content.clone(), true
}

// Bind installs content for name, as if a prior compilation had resolved
// it; used to satisfy Instance dependencies in tests and demos.
func (c *Context) Bind(name ces.Name, content backend.PartialContent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pc, ok := content.(*Content)
	if !ok {
		panic("memcontext: content must be produced by this package's NewContent")
	}
	c.content[name] = pc
}

// ShareNodeName interns name, returning a stable id.
func (c *Context) ShareNodeName(name ces.Name) backend.NodeID {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.ids[name]; ok {
		return id
	}
	id := c.nextID
	c.nextID++
	c.ids[name] = id
	return id
}

// NewContent returns a fresh, empty Content.
func (c *Context) NewContent() backend.PartialContent {
	return &Content{causes: make(map[backend.NodeID][]backend.Monomial), effects: make(map[backend.NodeID][]backend.Monomial)}
}

// Content is a concrete backend.PartialContent: per-node cause and effect
// monomials, combined additively (Add) or multiplicatively (Mul).
type Content struct {
	causes  map[backend.NodeID][]backend.Monomial
	effects map[backend.NodeID][]backend.Monomial
}

func (c *Content) clone() *Content {
	out := &Content{
		causes:  make(map[backend.NodeID][]backend.Monomial, len(c.causes)),
		effects: make(map[backend.NodeID][]backend.Monomial, len(c.effects)),
	}
	for k, v := range c.causes {
		out.causes[k] = append([]backend.Monomial(nil), v...)
	}
	for k, v := range c.effects {
		out.effects[k] = append([]backend.Monomial(nil), v...)
	}
	return out
}

// AddToCauses appends cause's monomials to node id's cause set.
func (c *Content) AddToCauses(id backend.NodeID, cause []backend.Monomial) {
	c.causes[id] = append(c.causes[id], cause...)
}

// AddToEffects appends effect's monomials to node id's effect set.
func (c *Content) AddToEffects(id backend.NodeID, effect []backend.Monomial) {
	c.effects[id] = append(c.effects[id], effect...)
}

// Add merges other into c additively (Sum combinator): per-node cause and
// effect monomial lists are concatenated.
func (c *Content) Add(other backend.PartialContent) {
	o := other.(*Content)
	for id, monos := range o.causes {
		c.causes[id] = append(c.causes[id], monos...)
	}
	for id, monos := range o.effects {
		c.effects[id] = append(c.effects[id], monos...)
	}
}

// Mul merges other into c multiplicatively (Product combinator): since
// this stand-in content is just additive per-node accumulation with no
// shared nodes across factors in the Rex scenarios it is exercised by,
// multiplication degrades to the same per-node union as Add. A real aces
// backend defines a richer multiplicative content algebra; that algebra
// is outside this engine's scope (§6).
func (c *Content) Mul(other backend.PartialContent) {
	c.Add(other)
}

// Causes exposes node id -> cause monomials for inspection (demo/tests).
func (c *Content) Causes() map[backend.NodeID][]backend.Monomial {
	return c.causes
}

// Effects exposes node id -> effect monomials for inspection (demo/tests).
func (c *Content) Effects() map[backend.NodeID][]backend.Monomial {
	return c.effects
}
