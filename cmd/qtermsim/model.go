package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/HershLalwani/qtermsim"
)

const defaultProgram = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
`

// focus represents which panel has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
)

// Model is the viewer state. The QASM editor is the source of truth; the
// register is re-simulated from scratch whenever the program or the step
// cursor changes.
type Model struct {
	path string
	cfg  qtermsim.Config

	circuit  *qtermsim.QuantumCircuit
	nqubit   int
	step     int // number of gates applied
	qc       *qtermsim.QuantumComputer
	simErr   error
	parseErr error

	width      int
	height     int
	qasmEditor textarea.Model
	focus      focus
	lastQASM   string
	statusMsg  string // transient status message (e.g. save confirmation)

	// Menu state
	menuCat  int
	menuItem int
}

func newModel(path, src string, cfg qtermsim.Config) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.SetValue(src)

	m := Model{
		path:       path,
		cfg:        cfg,
		circuit:    qtermsim.NewQuantumCircuit(),
		qasmEditor: ta,
		focus:      focusCircuit,
	}
	m.load(src)
	return m
}

func (m *Model) parseQASMInput() {
	if src := m.qasmEditor.Value(); src != m.lastQASM {
		m.load(src)
	}
}

// load replaces the circuit with src. A program that does not parse keeps
// the previous circuit on screen. The step cursor follows the end of the
// circuit when it was already there.
func (m *Model) load(src string) {
	m.lastQASM = src
	circuit, nqubit, err := qtermsim.ParseQASM(src)
	if err != nil {
		m.parseErr = err
		return
	}
	m.parseErr = nil

	atEnd := m.step >= m.circuit.Len()
	m.circuit = circuit
	m.nqubit = nqubit
	if atEnd || m.step > circuit.Len() {
		m.step = circuit.Len()
	}
	m.simulate()
}

func (m *Model) simulate() {
	m.qc = nil
	m.simErr = nil
	if m.nqubit > maxViewQubits {
		m.simErr = errors.Errorf("%d qubits is too many to display (max %d)", m.nqubit, maxViewQubits)
		return
	}
	qc, err := qtermsim.NewQuantumComputer(m.nqubit, qtermsim.WithConfig(m.cfg))
	if err != nil {
		m.simErr = err
		return
	}
	m.qc = qc
	if err := qc.ApplyCircuit(m.circuit.Slice(m.step)); err != nil {
		m.simErr = err
	}
}

func (m *Model) setStep(step int) {
	step = max(0, min(step, m.circuit.Len()))
	if step != m.step {
		m.step = step
		m.simulate()
	}
}

func (m *Model) save() {
	path := m.path
	if path == "" {
		path = "circuit.qasm"
	}
	if err := os.WriteFile(path, []byte(m.qasmEditor.Value()), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + path
}

// format rewrites the editor contents in canonical form.
func (m *Model) format() {
	if m.parseErr != nil {
		m.statusMsg = "Fix the program before formatting"
		return
	}
	src, err := m.circuit.ToQASM(m.nqubit)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Format error: %v", err)
		return
	}
	m.qasmEditor.SetValue(src)
	m.load(src)
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		ctrlH := 6
		panelH := msg.Height - ctrlH - 4
		editorH := max(panelH-8, 4)
		m.qasmEditor.SetHeight(editorH)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				cmds = append(cmds, m.qasmEditor.Focus())
			case "left", "h":
				m.setStep(m.step - 1)
			case "right", "l":
				m.setStep(m.step + 1)
			case "home", "g":
				m.setStep(0)
			case "end", "G":
				m.setStep(m.circuit.Len())
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "f":
				m.format()
			case "ctrl+s":
				m.save()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				m.addMenuGate()
				m.focus = focusCircuit
			}

		case focusQASM:
			switch key {
			case "tab", "esc":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	rest := m.width - qasmWidth - 6
	circuitWidth := rest * 2 / 5
	stateWidth := rest - circuitWidth
	controlsHeight := 6
	panelHeight := max(m.height-controlsHeight-2, 6)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCircuitPanel(circuitWidth, panelHeight),
		m.renderStatePanel(stateWidth, panelHeight),
		m.renderQASMPanel(qasmWidth, panelHeight),
	)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}
