package domain

import (
	"context"
	"errors"
)

// Entry is the caller-facing shape of an audit record. Actor and request
// metadata are filled in from the request context.
type Entry struct {
	Action     string
	EntityType string
	EntityID   string
	Detail     string
}

type Service interface {
	// Record appends one audit entry. Failures are logged and swallowed so an
	// audit problem never fails the operation being audited.
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, action string, limit int) ([]*AuditLog, error)
}

var ErrInvalidAction = errors.New("invalid_action")
