package qtermsim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// apply1QubitGate is the dense scan: for every matrix entry op[i][j] it visits
// all 2^N basis states and moves amplitude from states whose target bit is j
// to the same state with the target bit set to i.
func (qc *QuantumComputer) apply1QubitGate(ctx context.Context, op Operator) error {
	target := op.Target()
	gate := op.Matrix()

	return qc.runBlocks(ctx, qc.nbasis, 1<<(target+1), func(lo, hi int) {
		for i := range 2 {
			for j := range 2 {
				opIJ := gate[i][j]
				for _, basisJ := range qc.basis[lo:hi] {
					if basisJ.GetBit(target) == j {
						basisI := basisJ.SetBit(target, i)
						qc.newCoeff[basisI.Index()] += opIJ * qc.coeff[basisJ.Index()]
					}
				}
			}
		}
	})
}

// apply1QubitGateInsertion produces the same result as apply1QubitGate while
// only enumerating the 2^(N-1) configurations of the other qubits.
func (qc *QuantumComputer) apply1QubitGateInsertion(ctx context.Context, op Operator) error {
	target := op.Target()
	gate := op.Matrix()

	return qc.runBlocks(ctx, qc.nbasis>>1, 1, func(lo, hi int) {
		for i := range 2 {
			for j := range 2 {
				opIJ := gate[i][j]
				for k := lo; k < hi; k++ {
					basisK := Basis(k).Insert(target)
					basisI := basisK.SetBit(target, i)
					basisJ := basisK.SetBit(target, j)
					qc.newCoeff[basisI.Index()] += opIJ * qc.coeff[basisJ.Index()]
				}
			}
		}
	})
}

// apply2QubitGate is the dense scan for a 4×4 operator whose rows and
// columns follow TwoQubitBasis.
func (qc *QuantumComputer) apply2QubitGate(ctx context.Context, op Operator) error {
	target := op.Target()
	control := op.Control()
	gate := op.Matrix()

	return qc.runBlocks(ctx, qc.nbasis, 1<<(max(target, control)+1), func(lo, hi int) {
		for i := range 4 {
			iC, iT := TwoQubitBasis[i][0], TwoQubitBasis[i][1]
			for j := range 4 {
				jC, jT := TwoQubitBasis[j][0], TwoQubitBasis[j][1]
				opIJ := gate[i][j]
				for _, basisJ := range qc.basis[lo:hi] {
					if basisJ.GetBit(control) == jC && basisJ.GetBit(target) == jT {
						basisI := basisJ.SetBit(control, iC).SetBit(target, iT)
						qc.newCoeff[basisI.Index()] += opIJ * qc.coeff[basisJ.Index()]
					}
				}
			}
		}
	})
}

// runBlocks calls fn over [0, total) either once or, for large registers, on
// disjoint blocks in parallel. Block sizes are multiples of span, which must
// be large enough that every index read while producing an output lies in
// the same block as that output. Each block replays the full (i, j) pass
// order, so the parallel result equals the sequential one exactly.
func (qc *QuantumComputer) runBlocks(ctx context.Context, total, span int, fn func(lo, hi int)) error {
	workers := qc.cfg.Workers
	if workers <= 1 || qc.nqubit < qc.cfg.ParallelQubits || total <= span {
		fn(0, total)
		return nil
	}

	block := (total + workers - 1) / workers
	block = (block + span - 1) / span * span

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < total; lo += block {
		hi := min(lo+block, total)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}
	return g.Wait()
}
