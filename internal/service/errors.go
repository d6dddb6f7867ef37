package service

import (
	"errors"

	"github.com/google/uuid"
)

// Domain rejections shared across services. Handlers map these to HTTP
// statuses; everything else surfaces as a generic 400.
var (
	// ErrDayFinalized guards every write path once a day's handover is done.
	ErrDayFinalized = errors.New("shift day is finalized, records are locked")
	// ErrNotCreator — only the record's creator may edit or delete it.
	ErrNotCreator = errors.New("only the creator may modify this record")
	// ErrSystemGenerated — slips created by the handover flow are immutable.
	ErrSystemGenerated = errors.New("system-generated slip cannot be modified")
	// ErrReasonRequired — a non-zero discrepancy or non-default float needs a reason.
	ErrReasonRequired = errors.New("a reason is required for this change")
	ErrNotFound       = errors.New("record not found")
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role string
}
