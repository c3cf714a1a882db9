// Package realtime pushes summary snapshots to connected WebSocket clients.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/olahol/melody"

	"github.com/budget-tracker/backend/internal/application/usecase/summary"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	sessionUserKey = "user_id"

	// MessageTypeSummaries tags the frames carrying a snapshot.
	MessageTypeSummaries = "summaries"
)

// SummaryMessage is the frame sent to clients after their summaries change.
// Apart from Type it has the body of GET /summaries?granularity=all.
type SummaryMessage struct {
	Type string `json:"type"`
	dto.SummariesResponse
}

// Hub tracks WebSocket sessions per user.
type Hub struct {
	m *melody.Melody
}

var _ summary.Publisher = (*Hub)(nil)

// NewHub creates a new Hub.
func NewHub() *Hub {
	m := melody.New()
	m.Config.MaxMessageSize = 4096
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get(sessionUserKey)
		slog.Info("Summary stream connected", "user_id", userID)
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get(sessionUserKey)
		slog.Info("Summary stream disconnected", "user_id", userID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		userID, _ := s.Get(sessionUserKey)
		slog.Warn("Summary stream error", "user_id", userID, "error", err)
	})

	return &Hub{m: m}
}

// Serve upgrades the request and attaches the session to userID.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	return h.m.HandleRequestWithKeys(w, r, map[string]any{sessionUserKey: userID.String()})
}

// Publish sends output to every session of userID.
func (h *Hub) Publish(_ context.Context, userID uuid.UUID, output *summary.GetSummariesOutput) error {
	if output == nil {
		return nil
	}

	payload, err := json.Marshal(SummaryMessage{
		Type:              MessageTypeSummaries,
		SummariesResponse: dto.ToSummariesResponse(output),
	})
	if err != nil {
		return fmt.Errorf("failed to encode summary message: %w", err)
	}

	target := userID.String()
	return h.m.BroadcastFilter(payload, func(s *melody.Session) bool {
		id, ok := s.Get(sessionUserKey)
		return ok && id == target
	})
}

// Len returns the number of open sessions.
func (h *Hub) Len() int {
	return h.m.Len()
}

// Close disconnects every session.
func (h *Hub) Close() error {
	return h.m.Close()
}
