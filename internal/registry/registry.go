// Package registry keeps the per-translation table of tuple-function
// signatures and the "which function body are we inside" context that
// return directives validate against. A Registry is owned by a single
// Translator; it is not safe for concurrent use and does not need to be.
package registry

import (
	"github.com/iley/tuplec/internal/types"
)

type Registry struct {
	funcs map[string]*types.FuncSig

	// active is the function most recently defined. In scoped mode it
	// only answers return directives while its body is open (between
	// the definition and the matching end directive). Relaxed mode
	// reproduces the legacy behavior where the slot persists until the
	// next definition.
	active  *types.FuncSig
	open    bool
	relaxed bool
}

func New() *Registry {
	return &Registry{funcs: make(map[string]*types.FuncSig)}
}

// NewRelaxed returns a registry with legacy unscoped active-function
// tracking, for sources written without end directives.
func NewRelaxed() *Registry {
	r := New()
	r.relaxed = true
	return r
}

// Define records sig and opens its body. If the name already has a full
// definition the registry is left untouched and the previous signature
// is returned with ok=false.
func (r *Registry) Define(sig *types.FuncSig) (prev *types.FuncSig, ok bool) {
	if existing, found := r.funcs[sig.Name]; found && existing.Defined {
		return existing, false
	}
	r.funcs[sig.Name] = sig
	r.active = sig
	r.open = true
	return nil, true
}

// Lookup returns the recorded signature for name.
func (r *Registry) Lookup(name string) (*types.FuncSig, bool) {
	sig, found := r.funcs[name]
	return sig, found
}

// Active returns the function whose body encloses the current line, if
// any.
func (r *Registry) Active() (*types.FuncSig, bool) {
	if r.active == nil {
		return nil, false
	}
	if !r.open && !r.relaxed {
		return nil, false
	}
	return r.active, true
}

// CloseBody marks the current function body as finished. It reports
// false when no body is open.
func (r *Registry) CloseBody() bool {
	if !r.open {
		return false
	}
	r.open = false
	return true
}
