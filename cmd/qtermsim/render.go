package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/HershLalwani/qtermsim"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// probBar draws p (0..1) as a bar of barW cells.
func probBar(p float64) string {
	n := int(math.Round(p * barW))
	n = max(0, min(n, barW))
	return barStyle.Render(strings.Repeat("█", n)) + dimStyle.Render(strings.Repeat("░", barW-n))
}

// window returns the [start, end) range of at most size rows that keeps
// cursor in view.
func window(cursor, total, size int) (int, int) {
	if size <= 0 || total <= size {
		return 0, total
	}
	start := max(0, cursor-min(gateListPad, size-1))
	start = min(start, total-size)
	return start, start + size
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel lists the gates with the step cursor between the
// applied and the pending ones.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Circuit"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s  step %d/%d\n\n",
		qubitLabelStyle.Render(fmt.Sprintf("q[%d]", m.nqubit)), m.step, m.circuit.Len())

	gates := m.circuit.Gates()
	// one extra row for the end-of-circuit marker
	start, end := window(m.step, len(gates)+1, height-8)
	for i := start; i < end; i++ {
		marker := "  "
		if i == m.step {
			marker = cursorStyle.Render("▸ ")
		}
		if i == len(gates) {
			sb.WriteString(marker + dimStyle.Render("end") + "\n")
			continue
		}
		line := fmt.Sprintf("%3d  %s", i, gates[i].String())
		if i < m.step {
			line = gateStyle.Render(line)
		} else {
			line = dimStyle.Render(line)
		}
		sb.WriteString(marker + line + "\n")
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderStatePanel shows the amplitudes above the print threshold and the
// marginal probability of each qubit.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("State"))
	sb.WriteString("\n\n")

	if m.simErr != nil {
		sb.WriteString(errorStyle.Render(m.simErr.Error()))
		sb.WriteString("\n\n")
	}
	if m.qc == nil {
		return stateStyle.Width(width).Height(height).Render(sb.String())
	}

	rows := max(height-m.nqubit-10, 1)
	coeffs := m.qc.Coeffs()
	threshold := m.qc.Config().PrintThreshold
	shown, hidden := 0, 0
	for i, c := range coeffs {
		if cmplx.Abs(c) < threshold {
			continue
		}
		if shown == rows {
			hidden++
			continue
		}
		shown++
		p := real(c * cmplx.Conj(c))
		ket := qtermsim.Basis(i).Ket(m.nqubit)
		fmt.Fprintf(&sb, "%s %s %s %.3f\n",
			qubitLabelStyle.Render(ket), fmt.Sprintf("(%+.4f %+.4fi)", real(c), imag(c)), probBar(p), p)
	}
	if hidden > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", hidden)) + "\n")
	}

	sb.WriteString("\n")
	for q, prob := range m.qc.QubitProbabilities() {
		fmt.Fprintf(&sb, "%s P(1) %s %.3f\n",
			qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q))), probBar(prob.Prob1), prob.Prob1)
	}

	return stateStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())
	if m.parseErr != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.parseErr.Error()))
	}

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("←→/hl Step  Home/g First  End/G Last")
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}
	sb.WriteString("\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("a Add gate  Tab Switch focus  f Format  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine starting at x with
// overlay. ANSI escape sequences in the background are copied, not counted.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix, suffix strings.Builder
	col, i := 0, 0

	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			n := escapeLen(runes[i:])
			prefix.WriteString(string(runes[i : i+n]))
			i += n
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}
	for ; col < x; col++ {
		prefix.WriteRune(' ')
	}

	for skipped := 0; i < len(runes) && skipped < ovWidth; {
		if runes[i] == '\x1b' {
			i += escapeLen(runes[i:])
			continue
		}
		skipped++
		i++
	}
	suffix.WriteString(string(runes[i:]))

	return prefix.String() + overlay + suffix.String()
}

// escapeLen returns the length of the escape sequence at the start of rs,
// which runs up to and including the first letter.
func escapeLen(rs []rune) int {
	for n := 1; n < len(rs); n++ {
		if isLetter(rs[n]) {
			return n + 1
		}
	}
	return len(rs)
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isLetter(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
