package snapshot

import "fmt"

// MalformedTimestampError reports a created_at value the scorer could not
// parse. The pipeline aborts the whole batch on the first occurrence so a
// run never emits partially scored output.
type MalformedTimestampError struct {
	Value string
	Err   error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q: %v", e.Value, e.Err)
}

func (e *MalformedTimestampError) Unwrap() error {
	return e.Err
}
