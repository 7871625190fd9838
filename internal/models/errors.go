package models

import (
	"errors"
	"fmt"
)

// SourceNotFoundError reports that the ranking file path did not resolve.
// It is the only terminal failure of the pipeline; everything else
// degrades into smaller result sets.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("ranking source not found: %s", e.Path)
}

// IsSourceNotFound reports whether err wraps a SourceNotFoundError.
func IsSourceNotFound(err error) bool {
	var snf *SourceNotFoundError
	return errors.As(err, &snf)
}

// LookupError wraps a per-identifier provider failure. It never crosses
// the fetcher boundary as a batch failure; fetchers recover it locally.
type LookupError struct {
	Ticker string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup failed for %s: %v", e.Ticker, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ErrEmptyDataset marks the "nothing to show" state after reconciliation
// or filtering left zero rows. Callers surface it as a state, not a crash.
var ErrEmptyDataset = errors.New("dataset is empty")
