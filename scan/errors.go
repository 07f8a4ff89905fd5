package scan

import "errors"

var (
	// ErrNotSynced indicates the full node is not caught up; discovery
	// aborts before any derivation work.
	ErrNotSynced = errors.New("scan: full node is not synced")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("scan: required parameter is nil")
)
