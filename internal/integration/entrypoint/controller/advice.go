package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/advice"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// AdviceController handles the budget advice endpoint.
type AdviceController struct {
	getAdviceUseCase *advice.GetAdviceUseCase
}

// NewAdviceController creates a new advice controller instance.
func NewAdviceController(getAdviceUseCase *advice.GetAdviceUseCase) *AdviceController {
	return &AdviceController{
		getAdviceUseCase: getAdviceUseCase,
	}
}

// Ask handles POST /advice requests. The body is optional.
func (c *AdviceController) Ask(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.AdviceRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body: " + err.Error(),
				Code:  string(domainerror.ErrCodeAdviceFailed),
			})
			return
		}
	}

	output, err := c.getAdviceUseCase.Execute(ctx.Request.Context(), advice.GetAdviceInput{
		UserID:   userID,
		Question: req.Question,
	})
	if err != nil {
		handleAdviceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAdviceResponse(output))
}

// handleAdviceError handles advice errors and returns appropriate HTTP responses.
func handleAdviceError(ctx *gin.Context, err error) {
	var advErr *domainerror.AdviceError
	if errors.As(err, &advErr) {
		ctx.JSON(statusForAdviceError(advErr.Code), dto.ErrorResponse{
			Error: advErr.Message,
			Code:  string(advErr.Code),
		})
		return
	}

	internalError(ctx, err)
}

// statusForAdviceError maps advice error codes to HTTP status codes.
func statusForAdviceError(code domainerror.AdviceErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingProfile:
		return http.StatusNotFound
	case domainerror.ErrCodeAdviceRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeAdviceUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeAdviceFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
