package jsondiff

import "errors"

var (
	// ErrInvalidRoot is returned when a document or patch that must be an
	// object is not one
	ErrInvalidRoot = errors.New("invalid root: not a json object")
	// ErrMalformedInstruction is returned for patch keys that can't be parsed,
	// like a non-numeric array index or a merge combined with an insert
	ErrMalformedInstruction = errors.New("malformed instruction")
	// ErrDuplicateInstruction is returned when two patch keys resolve to the
	// same instruction, making the patch ambiguous
	ErrDuplicateInstruction = errors.New("duplicate instruction")
	// ErrIndexOutOfBounds is returned when an instruction addresses an array
	// element that doesn't exist
	ErrIndexOutOfBounds = errors.New("array index out of bounds")
	// ErrStructuralConflict is returned when changes can't be aligned against
	// the shape of a document
	ErrStructuralConflict = errors.New("structural conflict")
)
