// env.go
//
// Lexical environment frames. Each frame owns its own name→Value table and
// holds at most one parent link; lookups walk parent-ward and bottom out at
// Undefined rather than an error, because callers use a miss to decide
// whether to fall back to literal parsing. A child only ever reads through
// the parent link; it never mutates an ancestor's table.
//
// Imports live in a separate alias→path table. Resolution walks the parent
// chain the same way variable lookup does, so a top-level import is usable
// from inside any function frame.
package luma

// Env is one scope frame. Frames form a singly-linked acyclic chain; a child
// is always created after, and points only at, an existing parent.
type Env struct {
	parent  *Env
	vars    map[string]Value
	imports map[string]string
}

// NewEnv creates a fresh frame with the given parent (nil for the root).
func NewEnv(parent *Env) *Env {
	return &Env{
		parent:  parent,
		vars:    make(map[string]Value),
		imports: make(map[string]string),
	}
}

// Lookup returns the nearest visible binding for name, or Undefined when the
// chain is exhausted. Absence is a normal outcome, not a failure.
func (e *Env) Lookup(name string) Value {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v
		}
	}
	return Undefined
}

// Bind inserts or overwrites name in this frame only, shadowing any outer
// binding of the same name.
func (e *Env) Bind(name string, v Value) {
	e.vars[name] = v
}

// BindImport records alias→path in this frame's import table.
func (e *Env) BindImport(alias, path string) {
	e.imports[alias] = path
}

// ResolveImport returns the nearest visible import path for alias.
func (e *Env) ResolveImport(alias string) (string, bool) {
	for f := e; f != nil; f = f.parent {
		if p, ok := f.imports[alias]; ok {
			return p, true
		}
	}
	return "", false
}
