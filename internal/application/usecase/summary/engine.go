// Package summary contains the use cases that aggregate a user's transactions
// into period summaries and act on them.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// Engine recomputes snapshots from the full transaction history of a user and
// keeps them in the summary cache under the user's current version.
type Engine struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.SummaryCache
	location        *time.Location
	thresholds      aggregation.ThresholdTable
}

// NewEngine creates a new Engine. cache may be nil, in which case every call recomputes.
func NewEngine(
	transactionRepo adapter.TransactionRepository,
	cache adapter.SummaryCache,
	location *time.Location,
	thresholds aggregation.ThresholdTable,
) *Engine {
	if location == nil {
		location = time.UTC
	}
	return &Engine{
		transactionRepo: transactionRepo,
		cache:           cache,
		location:        location,
		thresholds:      thresholds,
	}
}

// Location returns the location period keys are derived in.
func (e *Engine) Location() *time.Location {
	return e.location
}

// Thresholds returns the threshold tables used for warnings.
func (e *Engine) Thresholds() aggregation.ThresholdTable {
	return e.thresholds
}

// Snapshot returns the snapshot of the user's current version, computing it on a miss.
func (e *Engine) Snapshot(ctx context.Context, userID uuid.UUID) (*adapter.SummarySnapshot, error) {
	if e.cache == nil {
		return e.compute(ctx, userID, 0)
	}

	version, err := e.cache.Version(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "summary cache unavailable, recomputing", "user_id", userID, "error", err)
		return e.compute(ctx, userID, 0)
	}

	cached, err := e.cache.Get(ctx, userID, version)
	if err != nil {
		slog.WarnContext(ctx, "failed to read cached summaries", "user_id", userID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	snapshot, err := e.compute(ctx, userID, version)
	if err != nil {
		return nil, err
	}
	e.store(ctx, userID, snapshot)

	return snapshot, nil
}

// Rebuild moves the user to a new version and computes its snapshot.
// Snapshots of older versions are never served again.
func (e *Engine) Rebuild(ctx context.Context, userID uuid.UUID) (*adapter.SummarySnapshot, error) {
	version := time.Now().UnixNano()
	if e.cache != nil {
		bumped, err := e.cache.BumpVersion(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to bump summary version: %w", err)
		}
		version = bumped
	}

	snapshot, err := e.compute(ctx, userID, version)
	if err != nil {
		return nil, err
	}
	e.store(ctx, userID, snapshot)

	return snapshot, nil
}

func (e *Engine) store(ctx context.Context, userID uuid.UUID, snapshot *adapter.SummarySnapshot) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Set(ctx, userID, snapshot); err != nil {
		slog.WarnContext(ctx, "failed to cache summaries", "user_id", userID, "version", snapshot.Version, "error", err)
	}
}

func (e *Engine) compute(ctx context.Context, userID uuid.UUID, version int64) (*adapter.SummarySnapshot, error) {
	stored, err := e.transactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	txs := make([]entity.Transaction, 0, len(stored))
	for _, tx := range stored {
		if tx != nil {
			txs = append(txs, *tx)
		}
	}

	valid, rejected := aggregation.Partition(aggregation.Localize(txs, e.location))

	issues := make([]adapter.DataIssue, 0, len(rejected))
	for _, r := range rejected {
		slog.WarnContext(ctx, "transaction excluded from summaries",
			"user_id", userID,
			"transaction_id", r.TransactionID,
			"reason", r.Reason.Error(),
		)
		issues = append(issues, adapter.DataIssue{TransactionID: r.TransactionID, Reason: r.Reason.Error()})
	}

	return &adapter.SummarySnapshot{
		Version:   version,
		Summaries: aggregation.AggregateAll(valid).Sorted(),
		Issues:    issues,
	}, nil
}
