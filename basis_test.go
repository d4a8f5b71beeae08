package qtermsim

import "testing"

func TestBasisIndexRoundTrip(t *testing.T) {
	for i := range 1 << 10 {
		if got := Basis(i).Index(); got != i {
			t.Fatalf("Basis(%d).Index() = %d", i, got)
		}
	}
}

func TestBasisSetBitToCurrentValue(t *testing.T) {
	for i := range 1 << 8 {
		b := Basis(i)
		for pos := range 10 {
			if got := b.SetBit(pos, b.GetBit(pos)); got != b {
				t.Fatalf("Basis(%d).SetBit(%d, current) = %d", i, pos, got)
			}
		}
	}
}

func TestBasisGetSetBit(t *testing.T) {
	b := Basis(0)
	b = b.SetBit(3, 1)
	if b != 8 {
		t.Fatalf("expected 8 after setting bit 3, got %d", b)
	}
	if b.GetBit(3) != 1 || b.GetBit(2) != 0 {
		t.Errorf("unexpected bits of %b", b)
	}
	b = b.SetBit(0, 1).SetBit(3, 0)
	if b != 1 {
		t.Errorf("expected 1, got %d", b)
	}
}

func TestBasisInsert(t *testing.T) {
	tests := []struct {
		in   Basis
		pos  int
		want Basis
	}{
		{0b101, 0, 0b1010},
		{0b101, 1, 0b1001},
		{0b101, 2, 0b1001},
		{0b101, 3, 0b0101},
		{0b111, 1, 0b1101},
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := tt.in.Insert(tt.pos); got != tt.want {
			t.Errorf("Basis(%b).Insert(%d) = %b, want %b", tt.in, tt.pos, got, tt.want)
		}
	}
}

func TestBasisInsertEnumeratesSpectators(t *testing.T) {
	const nqubit = 5
	for target := range nqubit {
		seen := make(map[Basis]bool)
		for k := range 1 << (nqubit - 1) {
			b := Basis(k).Insert(target)
			if b.GetBit(target) != 0 {
				t.Fatalf("target %d: Insert left bit set in %b", target, b)
			}
			if int(b) >= 1<<nqubit {
				t.Fatalf("target %d: %b exceeds register", target, b)
			}
			seen[b] = true
		}
		if len(seen) != 1<<(nqubit-1) {
			t.Errorf("target %d: %d distinct states, want %d", target, len(seen), 1<<(nqubit-1))
		}
	}
}

func TestBasisKet(t *testing.T) {
	tests := []struct {
		b      Basis
		nqubit int
		want   string
	}{
		{0, 1, "|0>"},
		{1, 3, "|001>"},
		{0b110, 3, "|110>"},
		{0b1011, 4, "|1011>"},
	}
	for _, tt := range tests {
		if got := tt.b.Ket(tt.nqubit); got != tt.want {
			t.Errorf("Basis(%d).Ket(%d) = %q, want %q", tt.b, tt.nqubit, got, tt.want)
		}
	}
}
