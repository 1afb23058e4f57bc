package cpu_test

import (
	"testing"

	"github.com/utkarsh5026/bearpool/internal/cpu"
)

func TestAvailableAtLeastOne(t *testing.T) {
	if n := cpu.Available(); n < 1 {
		t.Fatalf("expected at least one available CPU, got %d", n)
	}
}

func TestAvailableStable(t *testing.T) {
	first := cpu.Available()
	for range 10 {
		if n := cpu.Available(); n != first {
			t.Fatalf("available CPU count changed between calls: %d then %d", first, n)
		}
	}
}
