package feature

import (
	"errors"
	"testing"
)

func TestStableGate(t *testing.T) {
	for name, g := range map[string]Gate{"Stable()": Stable(), "zero value": {}} {
		if g.IsExperimental() {
			t.Errorf("%s.IsExperimental() = true, want false", name)
		}
		if !g.IsEnabled() {
			t.Errorf("%s.IsEnabled() = false, want true", name)
		}
		if _, ok := g.Flag(); ok {
			t.Errorf("%s.Flag() present, want absent", name)
		}
	}
}

func TestExperimentalGateTracksFlag(t *testing.T) {
	s := NewSet()
	f := s.Register("roof", "straight skeleton roofs")
	g := Experimental(f)

	if !g.IsExperimental() {
		t.Error("IsExperimental() = false, want true")
	}
	if g.IsEnabled() {
		t.Error("IsEnabled() = true before enabling, want false")
	}

	f.SetEnabled(true)
	if !g.IsEnabled() {
		t.Error("IsEnabled() = false after enabling, want true")
	}

	f.SetEnabled(false)
	if g.IsEnabled() {
		t.Error("IsEnabled() = true after disabling, want false")
	}
	if !g.IsExperimental() {
		t.Error("IsExperimental() changed with flag state")
	}
}

func TestExperimentalNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Experimental(nil) did not panic")
		}
	}()
	Experimental(nil)
}

func TestSetRegisterIsIdempotent(t *testing.T) {
	s := NewSet()
	a := s.Register("fill", "first")
	b := s.Register("fill", "second")
	if a != b {
		t.Error("Register() twice returned different features")
	}
	if a.Description() != "first" {
		t.Errorf("Description() = %q, want %q", a.Description(), "first")
	}
}

func TestSetEnable(t *testing.T) {
	s := NewSet()
	s.Register("b", "")
	s.Register("a", "")

	if err := s.Enable("a"); err != nil {
		t.Fatalf("Enable(a) error = %v", err)
	}
	if !s.Enabled("a") || s.Enabled("b") {
		t.Errorf("Enabled(a), Enabled(b) = %v, %v; want true, false", s.Enabled("a"), s.Enabled("b"))
	}
	if err := s.Enable("nope"); !errors.Is(err, ErrUnknownFeature) {
		t.Errorf("Enable(nope) error = %v, want ErrUnknownFeature", err)
	}
	if s.Enabled("nope") {
		t.Error("Enabled(nope) = true, want false")
	}

	s.EnableAll()
	if !s.Enabled("b") {
		t.Error("Enabled(b) after EnableAll() = false, want true")
	}

	fs := s.Features()
	if len(fs) != 2 || fs[0].Name() != "a" || fs[1].Name() != "b" {
		t.Errorf("Features() = %v, want [a b]", fs)
	}
}
