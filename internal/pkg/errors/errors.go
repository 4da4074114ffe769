package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalid      = errors.New("invalid")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal")

	// Predictive pricing taxonomy. Each of these marks a missing setup step
	// or genuine data insufficiency; callers report them, never retry.
	ErrMissingArtifact   = errors.New("model artifacts missing")
	ErrInsufficientData  = errors.New("insufficient training data")
	ErrNoUsableDocuments = errors.New("no usable documents")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidPrice      = errors.New("invalid base price")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
