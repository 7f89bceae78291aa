// Package errs provides the typed errors shared by the domain, application and
// adapter layers.
//
// Every error type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired) with a struct carrying the offending
// parameter and an optional cause. Unwrap returns the sentinel, so callers branch
// with errors.Is and extract details with errors.As.
//
// The HTTP adapter maps IsValidationError to a client-side rejection and
// ErrObjectNotFound to a not-found response; everything else is an internal failure.
package errs
