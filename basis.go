package qtermsim

import "strings"

// Basis is one computational-basis state of a register. Bit i holds the value
// of qubit i. It is a plain value: every method returns a new Basis.
type Basis uint64

// GetBit returns the value (0 or 1) of qubit pos.
func (b Basis) GetBit(pos int) int {
	return int(b>>uint(pos)) & 1
}

// SetBit returns b with qubit pos forced to value. Any non-zero value sets
// the bit.
func (b Basis) SetBit(pos, value int) Basis {
	mask := Basis(1) << uint(pos)
	if value != 0 {
		return b | mask
	}
	return b &^ mask
}

// Index returns the position of this state in an amplitude vector.
func (b Basis) Index() int {
	return int(b)
}

// Insert opens a zero bit at pos. Bits at or above pos move up by one and
// bits below pos keep their place, so iterating b over the 2^(N-1) states of
// a sub-register visits every N-qubit state with qubit pos cleared.
func (b Basis) Insert(pos int) Basis {
	bit := Basis(1) << uint(pos)
	shifted := b << 1
	mask := bit - 1
	return (shifted ^ ((shifted ^ b) & mask)) &^ bit
}

// Ket renders the state as |b_{n-1}...b_0>, most significant qubit first.
func (b Basis) Ket(nqubit int) string {
	var sb strings.Builder
	sb.Grow(nqubit + 2)
	sb.WriteByte('|')
	for q := nqubit - 1; q >= 0; q-- {
		if b.GetBit(q) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte('>')
	return sb.String()
}
