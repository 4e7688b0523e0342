package syncclient

import "fmt"

// SyncError describes a failed remote operation.
type SyncError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
