// Package errors provides the structured error type shared by the adapter
// and the platform implementation, plus the machine-readable codes that
// travel on normalized request errors.
package errors
