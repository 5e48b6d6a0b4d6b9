package directives

import (
	"reflect"
	"testing"
)

func TestBuiltinsClassSets(t *testing.T) {
	reg := Builtins()

	want := map[string][]string{
		"typealong":  {ClassToggleShown, ClassDropdown},
		"parameters": {ClassDropdown},
		"demo":       {ClassToggleShown, ClassDropdown},
	}
	for name, classes := range want {
		d, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("builtin %q not registered", name)
		}
		if len(d.ExtraClasses) == 0 {
			t.Errorf("%s: class set must be non-empty", name)
		}
		if !reflect.DeepEqual(d.ExtraClasses, classes) {
			t.Errorf("%s: classes = %v, want %v", name, d.ExtraClasses, classes)
		}
	}

	// The trio must not be uniform: parameters differs from the other two.
	ta, _ := reg.Lookup("typealong")
	pa, _ := reg.Lookup("parameters")
	de, _ := reg.Lookup("demo")
	if reflect.DeepEqual(ta.ExtraClasses, pa.ExtraClasses) && reflect.DeepEqual(pa.ExtraClasses, de.ExtraClasses) {
		t.Error("all three builtin class sets are identical")
	}
}

func TestBuiltinsStableAcrossCalls(t *testing.T) {
	first := Builtins().All()
	second := Builtins().All()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("builtin descriptors differ across calls:\n%v\n%v", first, second)
	}
}

func TestRegister(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Descriptor{Name: "Exercise", ExtraClasses: []string{ClassDropdown}}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := reg.Lookup("exercise"); !ok {
		t.Error("lookup should be case-insensitive")
	}
	if err := reg.Register(Descriptor{Name: "exercise", ExtraClasses: []string{ClassDropdown}}); err == nil {
		t.Error("duplicate registration should fail")
	}
	if err := reg.Register(Descriptor{Name: "", ExtraClasses: []string{ClassDropdown}}); err == nil {
		t.Error("empty name should fail")
	}
	if err := reg.Register(Descriptor{Name: "bare"}); err == nil {
		t.Error("empty class set should fail")
	}
}

func TestAllReturnsCopies(t *testing.T) {
	reg := Builtins()
	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 builtins, got %d", len(all))
	}
	all[0].ExtraClasses[0] = "mutated"
	fresh, _ := reg.Lookup(all[0].Name)
	if fresh.ExtraClasses[0] == "mutated" {
		t.Error("All must not expose internal class slices")
	}
}

func TestCSSName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"typealong", "typealong"},
		{"Type Along", "type-along"},
		{"instructor-note", "instructor-note"},
		{"a__b!!c", "a-b-c"},
	}
	for _, c := range cases {
		if got := (Descriptor{Name: c.in}).CSSName(); got != c.want {
			t.Errorf("CSSName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSummaryTitle(t *testing.T) {
	if got := (Descriptor{Name: "demo"}).SummaryTitle(); got != "Demo" {
		t.Errorf("derived title = %q, want Demo", got)
	}
	if got := (Descriptor{Name: "typealong", Title: "Type-along"}).SummaryTitle(); got != "Type-along" {
		t.Errorf("explicit title = %q", got)
	}
}
