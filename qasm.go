package qtermsim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]\s*;?$`)
	operandRegex = regexp.MustCompile(`^(\w+)\s*\[\s*(\d+)\s*\]$`)
	gateRegex    = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*(?:\(([^)]*)\))?\s+([^;]+?)\s*;?$`)
)

// qasmGate describes how a QASM gate name maps onto the gate library.
type qasmGate struct {
	qubits int
	params int
	build  func(q []int, p []float64) Gate
}

var qasmGates = map[string]qasmGate{
	"h":    {1, 0, func(q []int, _ []float64) Gate { return H(q[0]) }},
	"x":    {1, 0, func(q []int, _ []float64) Gate { return X(q[0]) }},
	"y":    {1, 0, func(q []int, _ []float64) Gate { return Y(q[0]) }},
	"z":    {1, 0, func(q []int, _ []float64) Gate { return Z(q[0]) }},
	"s":    {1, 0, func(q []int, _ []float64) Gate { return S(q[0]) }},
	"sdg":  {1, 0, func(q []int, _ []float64) Gate { return Sdg(q[0]) }},
	"t":    {1, 0, func(q []int, _ []float64) Gate { return T(q[0]) }},
	"tdg":  {1, 0, func(q []int, _ []float64) Gate { return Tdg(q[0]) }},
	"sx":   {1, 0, func(q []int, _ []float64) Gate { return SX(q[0]) }},
	"sxdg": {1, 0, func(q []int, _ []float64) Gate { return SX(q[0]).Adjoint() }},
	"rx":   {1, 1, func(q []int, p []float64) Gate { return RX(q[0], p[0]) }},
	"ry":   {1, 1, func(q []int, p []float64) Gate { return RY(q[0], p[0]) }},
	"rz":   {1, 1, func(q []int, p []float64) Gate { return RZ(q[0], p[0]) }},
	"p":    {1, 1, func(q []int, p []float64) Gate { return P(q[0], p[0]) }},
	"u1":   {1, 1, func(q []int, p []float64) Gate { return P(q[0], p[0]) }},
	"u3":   {1, 3, func(q []int, p []float64) Gate { return U3(q[0], p[0], p[1], p[2]) }},
	"u":    {1, 3, func(q []int, p []float64) Gate { return U3(q[0], p[0], p[1], p[2]) }},
	"cx":   {2, 0, func(q []int, _ []float64) Gate { return CX(q[0], q[1]) }},
	"cy":   {2, 0, func(q []int, _ []float64) Gate { return CY(q[0], q[1]) }},
	"cz":   {2, 0, func(q []int, _ []float64) Gate { return CZ(q[0], q[1]) }},
	"ch":   {2, 0, func(q []int, _ []float64) Gate { return CH(q[0], q[1]) }},
	"swap": {2, 0, func(q []int, _ []float64) Gate { return SWAP(q[0], q[1]) }},
	"crx":  {2, 1, func(q []int, p []float64) Gate { return CRX(q[0], q[1], p[0]) }},
	"cry":  {2, 1, func(q []int, p []float64) Gate { return CRY(q[0], q[1], p[0]) }},
	"crz":  {2, 1, func(q []int, p []float64) Gate { return CRZ(q[0], q[1], p[0]) }},
	"cp":   {2, 1, func(q []int, p []float64) Gate { return CP(q[0], q[1], p[0]) }},
	"cu1":  {2, 1, func(q []int, p []float64) Gate { return CP(q[0], q[1], p[0]) }},
}

// unsupportedKeywords are valid QASM statements outside a pure state-vector
// simulation.
var unsupportedKeywords = []string{"measure", "reset", "if", "gate", "opaque", "ccx", "cswap"}

// ParseQASM reads an OpenQASM 2.0 program made of standard gates and returns
// the circuit together with the size of its quantum register.
func ParseQASM(src string) (*QuantumCircuit, int, error) {
	circuit := NewQuantumCircuit()
	regName := ""
	nqubit := 0

	for n, raw := range strings.Split(src, "\n") {
		lineNo := n + 1
		line := raw
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "OPENQASM"), strings.HasPrefix(line, "include"):
			continue
		case strings.HasPrefix(line, "creg"), strings.HasPrefix(line, "barrier"):
			continue
		case strings.HasPrefix(line, "qreg"):
			m := qregRegex.FindStringSubmatch(line)
			if m == nil {
				return nil, 0, errors.Errorf("line %d: malformed qreg %q", lineNo, line)
			}
			if regName != "" {
				return nil, 0, errors.Wrapf(ErrUnsupportedInstruction, "line %d: second quantum register %s", lineNo, m[1])
			}
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, 0, errors.Wrapf(err, "line %d: qreg size %q", lineNo, m[2])
			}
			regName = m[1]
			nqubit = n
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '(' || r == '\t'
		})
		if len(fields) == 0 {
			return nil, 0, errors.Errorf("line %d: cannot parse %q", lineNo, line)
		}
		keyword := strings.ToLower(fields[0])
		for _, kw := range unsupportedKeywords {
			if keyword == kw {
				return nil, 0, errors.Wrapf(ErrUnsupportedInstruction, "line %d: %s", lineNo, line)
			}
		}

		g, err := parseGateLine(line, regName)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "line %d", lineNo)
		}
		circuit.AddGate(g)
	}

	if regName == "" {
		return nil, 0, errors.New("program declares no qreg")
	}
	return circuit, nqubit, nil
}

func parseGateLine(line, regName string) (Gate, error) {
	m := gateRegex.FindStringSubmatch(line)
	if m == nil {
		return Gate{}, errors.Errorf("cannot parse %q", line)
	}
	name := strings.ToLower(m[1])
	def, ok := qasmGates[name]
	if !ok {
		return Gate{}, errors.Wrapf(ErrUnsupportedInstruction, "unknown gate %q", m[1])
	}

	var params []float64
	if strings.TrimSpace(m[2]) != "" {
		var err error
		if params, err = parseAngles(m[2]); err != nil {
			return Gate{}, err
		}
	}
	if len(params) != def.params {
		return Gate{}, errors.Errorf("%s takes %d parameters, got %d", name, def.params, len(params))
	}

	operands := strings.Split(m[3], ",")
	if len(operands) != def.qubits {
		return Gate{}, errors.Errorf("%s takes %d qubits, got %d", name, def.qubits, len(operands))
	}
	qubits := make([]int, len(operands))
	for i, op := range operands {
		om := operandRegex.FindStringSubmatch(strings.TrimSpace(op))
		if om == nil {
			return Gate{}, errors.Errorf("bad operand %q", op)
		}
		if regName != "" && om[1] != regName {
			return Gate{}, errors.Errorf("unknown register %q", om[1])
		}
		q, err := strconv.Atoi(om[2])
		if err != nil {
			return Gate{}, errors.Wrapf(err, "qubit index %q", om[2])
		}
		qubits[i] = q
	}
	return def.build(qubits, params), nil
}

// ToQASM writes the circuit as an OpenQASM 2.0 program over an nqubit
// register. Only gates built by the gate library constructors can be
// written; a custom matrix has no QASM form whatever its name.
func (c *QuantumCircuit) ToQASM(nqubit int) (string, error) {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", nqubit)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", nqubit)

	for i, op := range c.gates {
		g, ok := op.(Gate)
		name := ""
		if ok && g.library {
			name = strings.ToLower(g.Name)
		}
		if _, known := qasmGates[name]; !known {
			return "", errors.Wrapf(ErrUnsupportedInstruction, "gate %d (%s) has no QASM form", i, op.String())
		}

		sb.WriteString(name)
		if len(g.Params) > 0 {
			parts := make([]string, len(g.Params))
			for k, p := range g.Params {
				parts[k] = formatParam(p)
			}
			fmt.Fprintf(&sb, "(%s)", strings.Join(parts, ", "))
		}
		if g.NQubits() == 2 {
			fmt.Fprintf(&sb, " q[%d], q[%d];\n", g.Control(), g.Target())
		} else {
			fmt.Fprintf(&sb, " q[%d];\n", g.Target())
		}
	}
	return sb.String(), nil
}
