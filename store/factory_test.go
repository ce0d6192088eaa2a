package store

import "testing"

func TestNewStore(t *testing.T) {
	for _, kind := range []string{"", "memory"} {
		s, err := NewStore(kind, "")
		if err != nil {
			t.Fatalf("%q: %v", kind, err)
		}
		if _, ok := s.(*MemoryStore); !ok {
			t.Fatalf("%q: expected memory store, got %T", kind, s)
		}
		if err := CloseIfSupported(s); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	if _, err := NewStore("postgres", ""); err == nil {
		t.Fatal("expected unsupported backend error")
	}
}
