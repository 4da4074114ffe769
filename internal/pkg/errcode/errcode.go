package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrUnauthorized
	ErrNotFound
	ErrInvalid
	ErrConflict
	ErrTooMany
	ErrInternal
	ErrMissingArtifact
	ErrInsufficientData
	ErrNoUsableDocuments
	ErrProductNotFound
	ErrInvalidPrice
)
