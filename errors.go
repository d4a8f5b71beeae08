package qtermsim

import "github.com/pkg/errors"

// Error kinds returned by the simulator. Callers match them with errors.Is;
// the returned errors carry the offending indices as context.
var (
	ErrInvalidQubitCount      = errors.New("invalid qubit count")
	ErrQubitOutOfRange        = errors.New("qubit index out of range")
	ErrBasisOutOfRange        = errors.New("basis index out of range")
	ErrMatrixShape            = errors.New("gate matrix does not match arity")
	ErrUnsupportedArity       = errors.New("unsupported gate arity")
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
)

// errorKind maps an error onto a short label for the error counter.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrQubitOutOfRange):
		return "qubit_out_of_range"
	case errors.Is(err, ErrBasisOutOfRange):
		return "basis_out_of_range"
	case errors.Is(err, ErrMatrixShape):
		return "matrix_shape"
	case errors.Is(err, ErrUnsupportedArity):
		return "unsupported_arity"
	default:
		return "other"
	}
}
