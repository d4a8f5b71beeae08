package qtermsim

import (
	"math"
	"math/cmplx"
	"testing"
)

func libraryGates() []Gate {
	return []Gate{
		H(0), X(0), Y(0), Z(0), S(0), Sdg(0), T(0), Tdg(0), SX(0),
		RX(0, 0.3), RY(0, 1.1), RZ(0, -2.4), P(0, math.Pi/3), U3(0, 0.4, 1.2, -0.7),
		CX(0, 1), CY(0, 1), CZ(0, 1), CH(0, 1), SWAP(0, 1),
		CRX(0, 1, 0.9), CRY(0, 1, -0.2), CRZ(0, 1, 2.2), CP(0, 1, math.Pi/4),
	}
}

func isUnitary(m [][]complex128) bool {
	n := len(m)
	for i := range n {
		for j := range n {
			var sum complex128
			for k := range n {
				sum += cmplx.Conj(m[k][i]) * m[k][j]
			}
			want := complex(0, 0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(sum-want) > tolerance {
				return false
			}
		}
	}
	return true
}

func TestLibraryGatesAreUnitary(t *testing.T) {
	for _, g := range libraryGates() {
		dim := 1 << g.NQubits()
		if len(g.Matrix()) != dim {
			t.Errorf("%s: %d rows, want %d", g, len(g.Matrix()), dim)
			continue
		}
		if !isUnitary(g.Matrix()) {
			t.Errorf("%s is not unitary", g)
		}
	}
}

func TestAdjointIsInverse(t *testing.T) {
	for _, g := range libraryGates() {
		adj := g.Adjoint()
		n := len(g.Matrix())
		for i := range n {
			for j := range n {
				var sum complex128
				for k := range n {
					sum += adj.Matrix()[i][k] * g.Matrix()[k][j]
				}
				want := complex(0, 0)
				if i == j {
					want = 1
				}
				if cmplx.Abs(sum-want) > tolerance {
					t.Fatalf("%s: adjoint*gate [%d][%d] = %v", g, i, j, sum)
				}
			}
		}
	}
}

func TestAdjointNames(t *testing.T) {
	tests := []struct {
		g    Gate
		want string
	}{
		{H(0), "H q[0]"},
		{S(1), "SDG q[1]"},
		{Sdg(1), "S q[1]"},
		{T(0), "TDG q[0]"},
		{SX(2), "SXDG q[2]"},
		{RX(0, math.Pi/2), "RX(-pi/2) q[0]"},
		{CP(0, 1, math.Pi), "CP(-pi) q[0], q[1]"},
		{U3(0, 1, 2, 3), "U3(-1, -3, -2) q[0]"},
		{NewGate("M", 0, -1, [][]complex128{{1, 0}, {0, 1}}), "MDG q[0]"},
	}
	for _, tt := range tests {
		if got := tt.g.Adjoint().String(); got != tt.want {
			t.Errorf("%s adjoint = %q, want %q", tt.g, got, tt.want)
		}
	}
}

func TestU3AdjointMatrix(t *testing.T) {
	g := U3(0, 1, 2, 3)
	named := U3(0, -1, -3, -2)
	adj := g.Adjoint()
	for i := range 2 {
		for j := range 2 {
			if cmplx.Abs(adj.Matrix()[i][j]-named.Matrix()[i][j]) > tolerance {
				t.Fatalf("U3 adjoint [%d][%d] = %v, named form gives %v", i, j, adj.Matrix()[i][j], named.Matrix()[i][j])
			}
		}
	}
}

func TestGateArityAndString(t *testing.T) {
	tests := []struct {
		g       Gate
		nqubits int
		str     string
	}{
		{H(3), 1, "H q[3]"},
		{RZ(1, math.Pi/4), 1, "RZ(pi/4) q[1]"},
		{U3(0, math.Pi, 0, 0.5), 1, "U3(pi, 0, 0.5) q[0]"},
		{CX(0, 2), 2, "CX q[0], q[2]"},
		{CRY(2, 1, 0.25), 2, "CRY(0.25) q[2], q[1]"},
		{NewGate("CUSTOM", 1, -5, nil), 1, "CUSTOM q[1]"},
	}
	for _, tt := range tests {
		if got := tt.g.NQubits(); got != tt.nqubits {
			t.Errorf("%s: NQubits() = %d, want %d", tt.str, got, tt.nqubits)
		}
		if got := tt.g.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}

func TestTwoQubitBasisOrdering(t *testing.T) {
	for i, pair := range TwoQubitBasis {
		if got := pair[0]<<1 | pair[1]; got != i {
			t.Errorf("TwoQubitBasis[%d] = %v encodes %d", i, pair, got)
		}
	}
}
