package saver

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestRegistry_BuiltinListing(t *testing.T) {
	reg := NewBuiltinRegistry()
	want := []string{"blank", "matrix", "starfield", "plasmula", "plasmula-alt"}
	if got := reg.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	reg := NewBuiltinRegistry()
	for _, name := range []string{"matrix", "MATRIX", "Matrix", "  mAtRiX ", "PLASMULA-ALT"} {
		if _, err := reg.Get(name); err != nil {
			t.Errorf("Get(%q) = %v, want found", name, err)
		}
	}
}

func TestRegistry_NotFound(t *testing.T) {
	reg := NewBuiltinRegistry()
	e, err := reg.Get("aurora")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(\"aurora\") error = %v, want ErrNotFound", err)
	}
	if e != nil {
		t.Errorf("Get(\"aurora\") returned effect %v, want nil", e)
	}
	if _, ok := reg.Lookup(""); ok {
		t.Error("Lookup(\"\") should fail")
	}
}

func TestRegistry_OverrideKeepsPosition(t *testing.T) {
	reg := NewBuiltinRegistry()
	custom := NewBlank(White)
	if err := reg.Register(Entry{Name: "Starfield", Description: "custom", Effect: custom, Source: "starfield.toml"}); err != nil {
		t.Fatalf("Register() = %v", err)
	}

	names := reg.List()
	if len(names) != 5 || names[2] != "Starfield" {
		t.Errorf("List() = %v, want override in slot 2 under its new name", names)
	}

	got, err := reg.Get("starfield")
	if err != nil {
		t.Fatalf("Get() = %v", err)
	}
	if got != Effect(custom) {
		t.Error("Get() did not return the overriding effect")
	}
	entry, _ := reg.Lookup("STARFIELD")
	if entry.Source != "starfield.toml" || entry.Description != "custom" {
		t.Errorf("Lookup() = %+v, want the custom entry", entry)
	}
}

func TestRegistry_AppendsNewNames(t *testing.T) {
	reg := NewBuiltinRegistry()
	if err := reg.Register(Entry{Name: "aurora", Effect: NewBlank(Black)}); err != nil {
		t.Fatalf("Register() = %v", err)
	}
	names := reg.List()
	if names[len(names)-1] != "aurora" {
		t.Errorf("List() = %v, want aurora last", names)
	}
}

func TestRegistry_RegisterErrors(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(Entry{Name: "   ", Effect: NewBlank(Black)}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Register(blank name) = %v, want ErrInvalidName", err)
	}
	if err := reg.Register(Entry{Name: "nothing"}); !errors.Is(err, ErrNilEffect) {
		t.Errorf("Register(nil effect) = %v, want ErrNilEffect", err)
	}

	reg.Freeze()
	if !reg.Frozen() {
		t.Error("Frozen() = false after Freeze()")
	}
	if err := reg.Register(Entry{Name: "late", Effect: NewBlank(Black)}); !errors.Is(err, ErrFrozen) {
		t.Errorf("Register() after Freeze = %v, want ErrFrozen", err)
	}
	if len(reg.List()) != 0 {
		t.Errorf("List() = %v, want empty", reg.List())
	}
}

func TestRegistry_ZeroValueUsable(t *testing.T) {
	var reg Registry
	if err := reg.Register(Entry{Name: "blank", Effect: NewBlank(Black)}); err != nil {
		t.Fatalf("Register() on zero Registry = %v", err)
	}
	if _, err := reg.Get("BLANK"); err != nil {
		t.Errorf("Get() = %v", err)
	}
}

func TestRegistry_EntriesAreCopies(t *testing.T) {
	reg := NewBuiltinRegistry()
	entries := reg.Entries()
	entries[0].Name = "changed"
	if reg.List()[0] != "blank" {
		t.Error("mutating Entries() result changed the registry")
	}
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	reg := NewBuiltinRegistry()
	reg.Freeze()
	ctx := NewFrameContext(1, 64, 64)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := reg.List()[i%5]
			e, err := reg.Get(name)
			if err != nil {
				t.Errorf("Get(%q) = %v", name, err)
				return
			}
			_ = Sample(e, ctx, V2(0.5, 0.5))
		}()
	}
	wg.Wait()
}
