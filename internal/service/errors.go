package service

import (
	"errors"
	"fmt"
)

// Phase names a step of a publish run
type Phase string

const (
	PhaseValidate  Phase = "validate"
	PhaseDirectory Phase = "ensure-directory"
	PhaseOpen      Phase = "open-store"
	PhaseSchema    Phase = "ensure-schema"
	PhaseUpsert    Phase = "upsert"
	PhaseExport    Phase = "export"
)

// Error kinds. A *PublishError matches exactly one of them with errors.Is.
var (
	// ErrValidation: an input record is malformed; nothing was written
	ErrValidation = errors.New("validation failed")
	// ErrStorageUnavailable: the store could not be created, opened or migrated
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageWrite: the upsert batch failed and was rolled back
	ErrStorageWrite = errors.New("storage write failed")
	// ErrExportWrite: the snapshot could not be written; the store is committed
	ErrExportWrite = errors.New("export write failed")
)

// PublishError reports the failing phase, the error kind and the cause
type PublishError struct {
	Phase Phase
	Kind  error
	Err   error
}

func newPublishError(phase Phase, kind, err error) *PublishError {
	return &PublishError{Phase: phase, Kind: kind, Err: err}
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Phase, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As
func (e *PublishError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
