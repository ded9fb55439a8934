package wasm

import "fmt"

// signatureError reports that an exported "animate" function exists but
// does not take zero parameters and return zero results, or that it is
// missing entirely.
type signatureError struct {
	reason string
}

func (e *signatureError) Error() string { return e.reason }

func errMissingAnimate() error {
	return &signatureError{reason: "module does not export a function named \"animate\""}
}

func errWrongSignature(params, results int) error {
	return &signatureError{reason: fmt.Sprintf("\"animate\" must take no parameters and return no results, got %d params and %d results", params, results)}
}
