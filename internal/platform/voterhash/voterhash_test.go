package voterhash

import "testing"

func TestHash(t *testing.T) {
	h := New("salt-a")

	first := h.Hash("1234567890123", "01HE1")
	second := h.Hash("1234567890123", "01HE1")
	if first != second {
		t.Fatalf("same inputs must produce the same hash, got %s and %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}

	otherElection := h.Hash("1234567890123", "01HE2")
	if otherElection == first {
		t.Fatal("different elections must produce different hashes")
	}

	otherSalt := New("salt-b").Hash("1234567890123", "01HE1")
	if otherSalt == first {
		t.Fatal("different salts must produce different hashes")
	}
}
