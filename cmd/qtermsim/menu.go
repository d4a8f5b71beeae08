package main

import (
	"fmt"
	"strings"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name   string
	symbol string
	qasm   string // statement appended to the program
}

func (it menuItem) qubits() int {
	return strings.Count(it.qasm, "q[")
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", symbol: "H", qasm: "h q[0];"},
			{name: "Pauli-X (NOT)", symbol: "X", qasm: "x q[0];"},
			{name: "Pauli-Y", symbol: "Y", qasm: "y q[0];"},
			{name: "Pauli-Z", symbol: "Z", qasm: "z q[0];"},
			{name: "Phase (S)", symbol: "S", qasm: "s q[0];"},
			{name: "Phase Dagger (S†)", symbol: "S†", qasm: "sdg q[0];"},
			{name: "T Gate", symbol: "T", qasm: "t q[0];"},
			{name: "T Dagger (T†)", symbol: "T†", qasm: "tdg q[0];"},
			{name: "√X (SX)", symbol: "√X", qasm: "sx q[0];"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", symbol: "RX", qasm: "rx(pi/2) q[0];"},
			{name: "Rotate Y", symbol: "RY", qasm: "ry(pi/2) q[0];"},
			{name: "Rotate Z", symbol: "RZ", qasm: "rz(pi/2) q[0];"},
			{name: "Phase Shift", symbol: "P", qasm: "p(pi/4) q[0];"},
			{name: "Universal U3", symbol: "U3", qasm: "u3(pi/2, 0, pi) q[0];"},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", symbol: "●─⊕", qasm: "cx q[0], q[1];"},
			{name: "Controlled-Y", symbol: "●─Y", qasm: "cy q[0], q[1];"},
			{name: "Controlled-Z", symbol: "●─●", qasm: "cz q[0], q[1];"},
			{name: "Controlled-H", symbol: "●─H", qasm: "ch q[0], q[1];"},
			{name: "SWAP", symbol: "×─×", qasm: "swap q[0], q[1];"},
			{name: "C-Rotate X", symbol: "●─RX", qasm: "crx(pi/2) q[0], q[1];"},
			{name: "C-Rotate Y", symbol: "●─RY", qasm: "cry(pi/2) q[0], q[1];"},
			{name: "C-Rotate Z", symbol: "●─RZ", qasm: "crz(pi/2) q[0], q[1];"},
			{name: "C-Phase", symbol: "●─P", qasm: "cp(pi/4) q[0], q[1];"},
		},
	},
}

// addMenuGate appends the selected gate to the program.
func (m *Model) addMenuGate() {
	item := gateMenu[m.menuCat].items[m.menuItem]
	if item.qubits() > m.nqubit {
		m.statusMsg = fmt.Sprintf("%s needs %d qubits", item.name, item.qubits())
		return
	}
	src := m.qasmEditor.Value()
	if src != "" && !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	src += item.qasm + "\n"
	m.qasmEditor.SetValue(src)
	m.load(src)
	m.statusMsg = "Added " + item.qasm
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(fmt.Sprintf("%-5s", item.symbol)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(fmt.Sprintf("%-5s", item.symbol)))
		}
		sb.WriteString(dimStyle.Render(" " + item.qasm))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
