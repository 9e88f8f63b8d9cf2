package dataset

import "errors"

var (
	// ErrDataUnavailable means the source file exists at none of the
	// configured candidate paths. Fatal for the session view.
	ErrDataUnavailable = errors.New("dataset unavailable")

	// ErrSchema means a required column is absent after normalization.
	ErrSchema = errors.New("dataset schema invalid")

	// ErrInsufficientData means an aggregate was requested on too few rows
	// (e.g. correlation on fewer than two). Recovered at the call site.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUnknownColumn means a caller named a column outside the declared
	// numeric schema. Raised at query construction, never mid-computation.
	ErrUnknownColumn = errors.New("unknown column")
)
