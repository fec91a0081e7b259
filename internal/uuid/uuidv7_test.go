package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	t.Run("generates_version_7", func(t *testing.T) {
		id := New()
		parsed, err := googleuuid.Parse(id)
		if err != nil {
			t.Fatalf("expected valid uuid, got %q: %v", id, err)
		}
		if parsed.Version() != 7 {
			t.Errorf("expected version 7, got %d", parsed.Version())
		}
	})

	t.Run("ids_are_unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := New()
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
		}
	})
}

func TestIsValid(t *testing.T) {
	cases := map[string]bool{
		"0190a8c4-5c8e-7d2a-9b1c-3f4e5d6c7b8a": true,
		"not-a-uuid":                           false,
		"":                                     false,
		"{0190a8c4-5c8e-7d2a-9b1c-3f4e5d6c7b8a}": false,
	}
	for in, want := range cases {
		if got := IsValid(in); got != want {
			t.Errorf("IsValid(%q) = %v, want %v", in, got, want)
		}
	}
}
