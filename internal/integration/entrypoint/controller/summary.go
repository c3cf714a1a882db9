package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/summary"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/backend/internal/integration/realtime"
)

// SummaryController handles summary, insight and alert endpoints.
type SummaryController struct {
	getSummariesUseCase    *summary.GetSummariesUseCase
	getInsightsUseCase     *summary.GetInsightsUseCase
	sendBudgetAlertUseCase *summary.SendBudgetAlertUseCase
	hub                    *realtime.Hub
	now                    func() time.Time
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(
	getSummariesUseCase *summary.GetSummariesUseCase,
	getInsightsUseCase *summary.GetInsightsUseCase,
	sendBudgetAlertUseCase *summary.SendBudgetAlertUseCase,
	hub *realtime.Hub,
) *SummaryController {
	return &SummaryController{
		getSummariesUseCase:    getSummariesUseCase,
		getInsightsUseCase:     getInsightsUseCase,
		sendBudgetAlertUseCase: sendBudgetAlertUseCase,
		hub:                    hub,
		now:                    time.Now,
	}
}

// SetClock replaces the clock used to pick the current period.
func (c *SummaryController) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}

// Get handles GET /summaries requests.
func (c *SummaryController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getSummariesUseCase.Execute(ctx.Request.Context(), summary.GetSummariesInput{
		UserID:      userID,
		Granularity: ctx.DefaultQuery("granularity", summary.GranularityAll),
	})
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummariesResponse(output))
}

// Insights handles GET /summaries/insights requests.
func (c *SummaryController) Insights(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getInsightsUseCase.Execute(ctx.Request.Context(), summary.GetInsightsInput{
		UserID: userID,
		Now:    c.now(),
	})
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightsResponse(output))
}

// SendAlert handles POST /summaries/alerts requests.
// It mails the current month's warnings, if any, to the user.
func (c *SummaryController) SendAlert(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.sendBudgetAlertUseCase.Execute(ctx.Request.Context(), summary.SendBudgetAlertInput{
		UserID: userID,
		Now:    c.now(),
	})
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetAlertResponse(output))
}

// Stream handles GET /summaries/ws requests.
// The connection receives a fresh snapshot after every change to the user's transactions.
func (c *SummaryController) Stream(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	if c.hub == nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Live updates are not available",
			Code:  string(domainerror.ErrCodeSummaryInternalError),
		})
		return
	}

	if err := c.hub.Serve(ctx.Writer, ctx.Request, userID); err != nil {
		slog.Warn("websocket upgrade failed", "user_id", userID, "error", err)
	}
}

// handleSummaryError handles summary errors and returns appropriate HTTP responses.
func handleSummaryError(ctx *gin.Context, err error) {
	var sumErr *domainerror.SummaryError
	if errors.As(err, &sumErr) {
		ctx.JSON(statusForSummaryError(sumErr.Code), dto.ErrorResponse{
			Error: sumErr.Message,
			Code:  string(sumErr.Code),
		})
		return
	}

	internalError(ctx, err)
}

// statusForSummaryError maps summary error codes to HTTP status codes.
func statusForSummaryError(code domainerror.SummaryErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidGranularity:
		return http.StatusBadRequest
	case domainerror.ErrCodeNoAlertRecipient:
		return http.StatusNotFound
	case domainerror.ErrCodeMailerUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeAlertNotSent:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
