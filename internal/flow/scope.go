package flow

// Scope pairs a shared globals map with a per-call locals map. Globals
// shadow locals on read. A write updates globals only if the name is
// already present there; otherwise it writes locals. This means a local
// can never shadow an existing global of the same name — see DESIGN.md
// open question #2.
type Scope struct {
	globals map[string]Literal
	locals  map[string]Literal
}

// NewScope creates the top-level scope for the entrypoint, sharing the
// program's globals map directly.
func NewScope(globals map[string]Literal) *Scope {
	return &Scope{globals: globals, locals: map[string]Literal{}}
}

// Nested creates the scope for a function call: a fresh, empty locals
// map sharing the same globals reference as the caller.
func (s *Scope) Nested() *Scope {
	return &Scope{globals: s.globals, locals: map[string]Literal{}}
}

func (s *Scope) Get(name string) (Literal, bool) {
	if v, ok := s.globals[name]; ok {
		return v, true
	}
	v, ok := s.locals[name]
	return v, ok
}

func (s *Scope) Set(name string, value Literal) {
	if _, ok := s.globals[name]; ok {
		s.globals[name] = value
		return
	}
	s.locals[name] = value
}

// ToMap flattens the scope for inspection/testing: globals first, then
// locals (locals never collide with an existing global name by
// construction, since Set above routes such writes to globals).
func (s *Scope) ToMap() map[string]Literal {
	out := make(map[string]Literal, len(s.globals)+len(s.locals))
	for k, v := range s.globals {
		out[k] = v
	}
	for k, v := range s.locals {
		out[k] = v
	}
	return out
}
