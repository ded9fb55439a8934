package flow

import "testing"

func TestScopeWriteDisciplineGlobalsWinOnceDeclared(t *testing.T) {
	globals := map[string]Literal{"x": Int(1)}
	s := NewScope(globals)

	// x is already global: writing it must update globals, not locals.
	s.Set("x", Int(2))
	if globals["x"].rawInt() != 2 {
		t.Fatalf("expected global x updated to 2, got %v", globals["x"])
	}
	if _, ok := s.locals["x"]; ok {
		t.Fatalf("x should not have been written to locals")
	}

	// y is not global: writing it goes to locals.
	s.Set("y", Int(5))
	if _, ok := globals["y"]; ok {
		t.Fatalf("y should not have leaked into globals")
	}
	if s.locals["y"].rawInt() != 5 {
		t.Fatalf("expected local y == 5")
	}
}

func TestScopeNestedSharesGlobals(t *testing.T) {
	globals := map[string]Literal{"g": Int(1)}
	parent := NewScope(globals)
	parent.Set("local-only", Int(9))

	child := parent.Nested()
	if _, ok := child.Get("local-only"); ok {
		t.Fatalf("nested scope should not see parent's locals")
	}
	v, ok := child.Get("g")
	if !ok || v.rawInt() != 1 {
		t.Fatalf("nested scope should see shared globals")
	}

	child.Set("g", Int(42))
	if globals["g"].rawInt() != 42 {
		t.Fatalf("write through nested scope should affect shared globals")
	}
}

func TestScopeGlobalsShadowLocalsOnRead(t *testing.T) {
	globals := map[string]Literal{"n": Int(1)}
	s := &Scope{globals: globals, locals: map[string]Literal{"n": Int(99)}}
	v, ok := s.Get("n")
	if !ok || v.rawInt() != 1 {
		t.Fatalf("global should shadow local of the same name on read, got %v", v)
	}
}
