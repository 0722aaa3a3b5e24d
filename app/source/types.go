package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/syeehyn/ai-daily/app/snapshot"
)

// Source produces the two normalized post streams consumed by the snapshot
// pipeline. Live and mock sources share this contract so the pipeline never
// knows which one fed it.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*snapshot.Fetched, error)
}

// ErrMissingCredential aborts a live run requested without a bearer token.
var ErrMissingCredential = errors.New("bearer token is required for live mode")

// SourceUnavailableError marks one handle or query as unreachable. It is
// recoverable: the item contributes zero posts and the run continues.
type SourceUnavailableError struct {
	Item string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source unavailable for %s: %v", e.Item, e.Err)
	}
	return fmt.Sprintf("source unavailable for %s", e.Item)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
