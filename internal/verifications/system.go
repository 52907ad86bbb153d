package verifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/celestina-app/celestina/pkg/pagination"
)

// System defines the public contract for verification domain operations.
type System interface {
	Handler() *Handler

	// VerifyBeforeSend classifies the message and records the decision.
	// It never fails: classification errors degrade to the conservative
	// fallback analysis and persistence errors yield an unpersisted
	// record, so a storage outage never drops a consent decision from
	// the response path.
	VerifyBeforeSend(ctx context.Context, cmd VerifyCommand) *Verification

	// VerifyBatch verifies each command independently with bounded
	// concurrency. Result order matches command order.
	VerifyBatch(ctx context.Context, cmds []VerifyCommand) []*Verification

	// History returns the most recent verification records for a user,
	// newest first. It returns an empty slice, never an error, when the
	// store is unreachable or no rows exist.
	History(ctx context.Context, userID string, limit int) []Verification

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Verification], error)

	Find(ctx context.Context, id uuid.UUID) (*Verification, error)
}
