package gitcash

import "errors"

// ErrHeadMoved reports that the head reference changed between reading it
// and advancing it. The append had no effect; reload the ledger and retry.
var ErrHeadMoved = errors.New("head reference moved concurrently")

// RepoError reports that the underlying repository storage could not be
// opened, read or written, or that the repository configuration is
// missing or invalid.
type RepoError struct {
	Msg string
	Err error
}

func (e *RepoError) Error() string {
	if e.Err != nil {
		return "repo error: " + e.Msg + ": " + e.Err.Error()
	}
	return "repo error: " + e.Msg
}

func (e *RepoError) Unwrap() error { return e.Err }

// TransactionParseError reports a ledger commit whose payload is
// structurally or semantically invalid. A single parse error aborts the
// whole load: a corrupt ledger must not silently produce a wrong balance.
type TransactionParseError struct {
	Msg string
	Err error
}

func (e *TransactionParseError) Error() string {
	if e.Err != nil {
		return "could not parse transaction: " + e.Msg + ": " + e.Err.Error()
	}
	return "could not parse transaction: " + e.Msg
}

func (e *TransactionParseError) Unwrap() error { return e.Err }

// ValidationError reports a user-supplied value that violates a model
// invariant. It is always raised before any storage mutation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "validation error: " + e.Msg }
