package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/aggregation"
)

// DataIssue describes a stored transaction that could not be aggregated.
type DataIssue struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Reason        string    `json:"reason"`
}

// SummarySnapshot is the full aggregation result of one user at one version.
type SummarySnapshot struct {
	Version   int64                 `json:"version"`
	Summaries aggregation.Summaries `json:"summaries"`
	Issues    []DataIssue           `json:"issues,omitempty"`
}

// SummaryCache keeps computed snapshots keyed by user and version.
// Bumping the version makes every older snapshot unreachable.
type SummaryCache interface {
	// Version returns the current version of a user, 0 when none was recorded.
	Version(ctx context.Context, userID uuid.UUID) (int64, error)

	// BumpVersion increments and returns the version of a user.
	BumpVersion(ctx context.Context, userID uuid.UUID) (int64, error)

	// Get returns the snapshot stored for (userID, version), or nil on a miss.
	Get(ctx context.Context, userID uuid.UUID, version int64) (*SummarySnapshot, error)

	// Set stores snapshot under (userID, snapshot.Version).
	Set(ctx context.Context, userID uuid.UUID, snapshot *SummarySnapshot) error
}
