package qtermsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Operator is the view of a quantum gate the simulator consumes: its arity,
// the qubits it acts on and its matrix. For a 1-qubit operator Control is
// ignored.
type Operator interface {
	NQubits() int
	Target() int
	Control() int
	Matrix() [][]complex128
	String() string
}

// TwoQubitBasis is the canonical ordering of 2-qubit matrix rows and
// columns, as (control bit, target bit) pairs with control as the higher-order
// bit.
var TwoQubitBasis = [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// Gate is a named gate with a fixed matrix. Build library gates with the
// constructors below, or a custom one with NewGate.
type Gate struct {
	Name   string
	Params []float64

	target  int
	control int // -1 for 1-qubit gates
	matrix  [][]complex128
	library bool // built by a constructor below; Name and Params describe matrix
}

// NewGate returns a 1-qubit gate when control is negative, otherwise a
// 2-qubit gate. The matrix is used as given; shape problems surface when the
// gate is applied.
func NewGate(name string, target, control int, matrix [][]complex128) Gate {
	if control < 0 {
		control = -1
	}
	return Gate{Name: name, target: target, control: control, matrix: matrix}
}

// NQubits returns 1 or 2.
func (g Gate) NQubits() int {
	if g.control < 0 {
		return 1
	}
	return 2
}

// Target returns the qubit the gate acts on.
func (g Gate) Target() int { return g.target }

// Control returns the control qubit, or -1 for a 1-qubit gate.
func (g Gate) Control() int { return g.control }

// Matrix returns the gate matrix. It must not be modified.
func (g Gate) Matrix() [][]complex128 { return g.matrix }

// String renders the gate as NAME(params) q[control], q[target].
func (g Gate) String() string {
	var sb strings.Builder
	sb.WriteString(g.Name)
	if len(g.Params) > 0 {
		parts := make([]string, len(g.Params))
		for i, p := range g.Params {
			parts[i] = formatParam(p)
		}
		fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ", "))
	}
	if g.control >= 0 {
		fmt.Fprintf(&sb, " q[%d], q[%d]", g.control, g.target)
	} else {
		fmt.Fprintf(&sb, " q[%d]", g.target)
	}
	return sb.String()
}

// Adjoint returns the conjugate transpose of g on the same qubits.
func (g Gate) Adjoint() Gate {
	n := len(g.matrix)
	adj := make([][]complex128, n)
	for i := range n {
		adj[i] = make([]complex128, len(g.matrix))
		for j := range n {
			if i < len(g.matrix[j]) {
				adj[i][j] = cmplx.Conj(g.matrix[j][i])
			}
		}
	}
	return Gate{
		Name:    adjointName(g.Name),
		Params:  adjointParams(g.Name, g.Params),
		target:  g.target,
		control: g.control,
		matrix:  adj,
		library: g.library,
	}
}

// adjointName keeps library names valid: rotations negate their angle and
// self-inverse gates keep their name.
func adjointName(name string) string {
	switch name {
	case "H", "X", "Y", "Z", "CX", "CY", "CZ", "CH", "SWAP",
		"RX", "RY", "RZ", "P", "U3", "CRX", "CRY", "CRZ", "CP":
		return name
	case "SDG", "TDG", "SXDG":
		return strings.TrimSuffix(name, "DG")
	}
	return name + "DG"
}

func adjointParams(name string, params []float64) []float64 {
	if len(params) == 0 {
		return nil
	}
	if name == "U3" && len(params) == 3 {
		// U(θ, φ, λ)† = U(-θ, -λ, -φ)
		return []float64{-params[0], -params[2], -params[1]}
	}
	out := make([]float64, len(params))
	for i, p := range params {
		out[i] = -p
	}
	return out
}

// ──────────────────────────── 1-qubit gates ────────────────────────────

func single(name string, target int, params []float64, m [2][2]complex128) Gate {
	return Gate{
		Name:    name,
		Params:  params,
		target:  target,
		control: -1,
		matrix:  [][]complex128{{m[0][0], m[0][1]}, {m[1][0], m[1][1]}},
		library: true,
	}
}

// H is the Hadamard gate.
func H(target int) Gate {
	h := complex(1.0/math.Sqrt2, 0)
	return single("H", target, nil, [2][2]complex128{{h, h}, {h, -h}})
}

// X is the Pauli-X (NOT) gate.
func X(target int) Gate {
	return single("X", target, nil, [2][2]complex128{{0, 1}, {1, 0}})
}

// Y is the Pauli-Y gate.
func Y(target int) Gate {
	return single("Y", target, nil, [2][2]complex128{{0, -1i}, {1i, 0}})
}

// Z is the Pauli-Z gate.
func Z(target int) Gate {
	return single("Z", target, nil, [2][2]complex128{{1, 0}, {0, -1}})
}

// S is the phase gate diag(1, i).
func S(target int) Gate {
	return single("S", target, nil, [2][2]complex128{{1, 0}, {0, 1i}})
}

// Sdg is the adjoint of S.
func Sdg(target int) Gate {
	return single("SDG", target, nil, [2][2]complex128{{1, 0}, {0, -1i}})
}

// T is the π/8 gate diag(1, e^{iπ/4}).
func T(target int) Gate {
	return single("T", target, nil, [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}})
}

// Tdg is the adjoint of T.
func Tdg(target int) Gate {
	return single("TDG", target, nil, [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}})
}

// SX is the square root of X.
func SX(target int) Gate {
	a := complex(0.5, 0.5)
	b := complex(0.5, -0.5)
	return single("SX", target, nil, [2][2]complex128{{a, b}, {b, a}})
}

func rxMatrix(theta float64) [2][2]complex128 {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return [2][2]complex128{{c, js}, {js, c}}
}

func ryMatrix(theta float64) [2][2]complex128 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return [2][2]complex128{{c, -s}, {s, c}}
}

func rzMatrix(theta float64) [2][2]complex128 {
	phase := cmplx.Exp(complex(0, theta/2))
	return [2][2]complex128{{cmplx.Conj(phase), 0}, {0, phase}}
}

func pMatrix(theta float64) [2][2]complex128 {
	return [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, theta))}}
}

// RX rotates by theta about the X axis.
func RX(target int, theta float64) Gate {
	return single("RX", target, []float64{theta}, rxMatrix(theta))
}

// RY rotates by theta about the Y axis.
func RY(target int, theta float64) Gate {
	return single("RY", target, []float64{theta}, ryMatrix(theta))
}

// RZ rotates by theta about the Z axis.
func RZ(target int, theta float64) Gate {
	return single("RZ", target, []float64{theta}, rzMatrix(theta))
}

// P is the phase gate diag(1, e^{iθ}).
func P(target int, theta float64) Gate {
	return single("P", target, []float64{theta}, pMatrix(theta))
}

// U3 is the generic single-qubit rotation U(θ, φ, λ).
func U3(target int, theta, phi, lambda float64) Gate {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	m := [2][2]complex128{
		{complex(c, 0), -cmplx.Exp(complex(0, lambda)) * complex(s, 0)},
		{cmplx.Exp(complex(0, phi)) * complex(s, 0), cmplx.Exp(complex(0, phi+lambda)) * complex(c, 0)},
	}
	return single("U3", target, []float64{theta, phi, lambda}, m)
}

// ──────────────────────────── 2-qubit gates ────────────────────────────

// controlled lifts a 1-qubit matrix into the 4×4 controlled form in
// TwoQubitBasis ordering.
func controlled(name string, control, target int, params []float64, u [2][2]complex128) Gate {
	return Gate{
		Name:    name,
		Params:  params,
		target:  target,
		control: control,
		matrix: [][]complex128{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, u[0][0], u[0][1]},
			{0, 0, u[1][0], u[1][1]},
		},
		library: true,
	}
}

// CX flips target when control is set.
func CX(control, target int) Gate {
	return controlled("CX", control, target, nil, [2][2]complex128{{0, 1}, {1, 0}})
}

// CY applies Y to target when control is set.
func CY(control, target int) Gate {
	return controlled("CY", control, target, nil, [2][2]complex128{{0, -1i}, {1i, 0}})
}

// CZ applies a phase of -1 when both qubits are set.
func CZ(control, target int) Gate {
	return controlled("CZ", control, target, nil, [2][2]complex128{{1, 0}, {0, -1}})
}

// CH applies H to target when control is set.
func CH(control, target int) Gate {
	h := complex(1.0/math.Sqrt2, 0)
	return controlled("CH", control, target, nil, [2][2]complex128{{h, h}, {h, -h}})
}

// CRX applies RX(theta) to target when control is set.
func CRX(control, target int, theta float64) Gate {
	return controlled("CRX", control, target, []float64{theta}, rxMatrix(theta))
}

// CRY applies RY(theta) to target when control is set.
func CRY(control, target int, theta float64) Gate {
	return controlled("CRY", control, target, []float64{theta}, ryMatrix(theta))
}

// CRZ applies RZ(theta) to target when control is set.
func CRZ(control, target int, theta float64) Gate {
	return controlled("CRZ", control, target, []float64{theta}, rzMatrix(theta))
}

// CP applies P(theta) to target when control is set.
func CP(control, target int, theta float64) Gate {
	return controlled("CP", control, target, []float64{theta}, pMatrix(theta))
}

// SWAP exchanges two qubits. The first argument plays the control role in
// TwoQubitBasis ordering; the matrix is symmetric in the pair.
func SWAP(a, b int) Gate {
	return Gate{
		Name:    "SWAP",
		target:  b,
		control: a,
		matrix: [][]complex128{
			{1, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
		},
		library: true,
	}
}
