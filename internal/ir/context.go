// SPDX-License-Identifier: Apache-2.0
package ir

import "fmt"

// Context is the session object a frontend or tool holds for the lifetime
// of one compilation: it owns the Registry of contracts under construction
// plus the small amount of cross-contract state (event-signature interning,
// anonymous-block naming) that would otherwise need threading through every
// Builder call.
type Context struct {
	Registry *Registry

	// eventSigs interns canonical event signature strings ("Transfer(address,address,uint256)")
	// to a stable hash value, computed once per distinct signature rather
	// than once per emit site.
	eventSigs map[string]Value

	anonCounter int
}

// NewContext creates an empty session with a fresh, empty Registry.
func NewContext() *Context {
	return &Context{
		Registry:  NewRegistry(),
		eventSigs: make(map[string]Value),
	}
}

// FreshName returns a unique, human-readable label for an anonymous
// construct (e.g. a compiler-generated revert block), the way an SSA
// builder's variable stack names temporaries it introduces itself.
func (c *Context) FreshName(prefix string) string {
	c.anonCounter++
	return fmt.Sprintf("%s%d", prefix, c.anonCounter)
}

// InternEventSignature records the Value produced by hashing sig the first
// time it is seen and returns the same Value on every later call, so two
// OpEmit sites for the same event share one OpEventSignatureHash result.
func (c *Context) InternEventSignature(sig string, compute func() Value) Value {
	if v, ok := c.eventSigs[sig]; ok {
		return v
	}
	v := compute()
	c.eventSigs[sig] = v
	return v
}
