package qtermsim

import "strings"

// QuantumCircuit is an ordered list of gates. Gates run in the order they
// were added; nothing is checked against a register size until the circuit
// is applied.
type QuantumCircuit struct {
	gates []Operator
}

// NewQuantumCircuit returns a circuit holding gates in order.
func NewQuantumCircuit(gates ...Operator) *QuantumCircuit {
	c := &QuantumCircuit{}
	c.AddGate(gates...)
	return c
}

// AddGate appends gates to the circuit.
func (c *QuantumCircuit) AddGate(gates ...Operator) {
	c.gates = append(c.gates, gates...)
}

// AddCircuit appends every gate of other.
func (c *QuantumCircuit) AddCircuit(other *QuantumCircuit) {
	c.gates = append(c.gates, other.gates...)
}

// Gates returns the gates in execution order. The slice must not be
// modified.
func (c *QuantumCircuit) Gates() []Operator {
	return c.gates
}

// Len returns the number of gates.
func (c *QuantumCircuit) Len() int {
	return len(c.gates)
}

// Slice returns a circuit holding the first n gates.
func (c *QuantumCircuit) Slice(n int) *QuantumCircuit {
	n = max(0, min(n, len(c.gates)))
	return &QuantumCircuit{gates: c.gates[:n:n]}
}

// Terms returns one line per gate, in circuit order.
func (c *QuantumCircuit) Terms() []string {
	lines := make([]string, len(c.gates))
	for i, g := range c.gates {
		lines[i] = g.String()
	}
	return lines
}

func (c *QuantumCircuit) String() string {
	return strings.Join(c.Terms(), "\n")
}
