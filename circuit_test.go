package qtermsim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCircuitOrder(t *testing.T) {
	c := NewQuantumCircuit(H(0), CX(0, 1))
	c.AddGate(X(1))
	c.AddCircuit(NewQuantumCircuit(Z(0), SWAP(0, 1)))

	want := []string{"H q[0]", "CX q[0], q[1]", "X q[1]", "Z q[0]", "SWAP q[0], q[1]"}
	if diff := cmp.Diff(want, c.Terms()); diff != "" {
		t.Errorf("Terms() mismatch (-want +got):\n%s", diff)
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}
	if got := c.String(); got != "H q[0]\nCX q[0], q[1]\nX q[1]\nZ q[0]\nSWAP q[0], q[1]" {
		t.Errorf("String() = %q", got)
	}
}

func TestCircuitSlice(t *testing.T) {
	c := NewQuantumCircuit(H(0), X(0), Z(0))

	tests := []struct {
		n    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{2, 2},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		if got := c.Slice(tt.n).Len(); got != tt.want {
			t.Errorf("Slice(%d).Len() = %d, want %d", tt.n, got, tt.want)
		}
	}

	// appending to a prefix must not clobber the full circuit
	prefix := c.Slice(1)
	prefix.AddGate(Y(0))
	if got := c.Gates()[1].String(); got != "X q[0]" {
		t.Errorf("gate 1 = %q after appending to a slice", got)
	}
}

func TestCircuitAppliesInOrder(t *testing.T) {
	// X then H gives |->, H then X gives |+>
	qc := newRegister(t, 1)
	if err := qc.ApplyCircuit(NewQuantumCircuit(X(0), H(0))); err != nil {
		t.Fatal(err)
	}
	if real(qc.Coeff(1)) >= 0 {
		t.Errorf("X then H: amplitude of |1> = %v, want negative", qc.Coeff(1))
	}
}
