package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/application/usecase/financial"
	"github.com/budget-tracker/backend/internal/application/usecase/household"
	"github.com/budget-tracker/backend/internal/application/usecase/savings"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/dto"
)

// HouseholdController handles household, financial profile and savings target endpoints.
type HouseholdController struct {
	setHouseholdUseCase            *household.SetHouseholdUseCase
	getHouseholdUseCase            *household.GetHouseholdUseCase
	setFinancialProfileUseCase     *financial.SetFinancialProfileUseCase
	getFinancialProfileUseCase     *financial.GetFinancialProfileUseCase
	evaluateFinancialHealthUseCase *financial.EvaluateFinancialHealthUseCase
	setSavingsTargetUseCase        *savings.SetSavingsTargetUseCase
	getSavingsProgressUseCase      *savings.GetSavingsProgressUseCase
	now                            func() time.Time
}

// NewHouseholdController creates a new household controller instance.
func NewHouseholdController(
	setHouseholdUseCase *household.SetHouseholdUseCase,
	getHouseholdUseCase *household.GetHouseholdUseCase,
	setFinancialProfileUseCase *financial.SetFinancialProfileUseCase,
	getFinancialProfileUseCase *financial.GetFinancialProfileUseCase,
	evaluateFinancialHealthUseCase *financial.EvaluateFinancialHealthUseCase,
	setSavingsTargetUseCase *savings.SetSavingsTargetUseCase,
	getSavingsProgressUseCase *savings.GetSavingsProgressUseCase,
) *HouseholdController {
	return &HouseholdController{
		setHouseholdUseCase:            setHouseholdUseCase,
		getHouseholdUseCase:            getHouseholdUseCase,
		setFinancialProfileUseCase:     setFinancialProfileUseCase,
		getFinancialProfileUseCase:     getFinancialProfileUseCase,
		evaluateFinancialHealthUseCase: evaluateFinancialHealthUseCase,
		setSavingsTargetUseCase:        setSavingsTargetUseCase,
		getSavingsProgressUseCase:      getSavingsProgressUseCase,
		now:                            time.Now,
	}
}

// SetClock replaces the clock used for savings progress.
func (c *HouseholdController) SetClock(now func() time.Time) {
	if now != nil {
		c.now = now
	}
}

// GetHousehold handles GET /household requests.
func (c *HouseholdController) GetHousehold(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getHouseholdUseCase.Execute(ctx.Request.Context(), household.GetHouseholdInput{UserID: userID})
	if err != nil {
		handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHouseholdResponse(*output.Household))
}

// SetHousehold handles PUT /household requests.
func (c *HouseholdController) SetHousehold(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.HouseholdRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badHouseholdRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeInvalidHouseholdSize)
		return
	}

	output, err := c.setHouseholdUseCase.Execute(ctx.Request.Context(), household.SetHouseholdInput{
		UserID:      userID,
		NumAdults:   *req.NumAdults,
		NumChildren: *req.NumChildren,
	})
	if err != nil {
		handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHouseholdResponse(*output.Household))
}

// GetFinancialProfile handles GET /financial-profile requests.
func (c *HouseholdController) GetFinancialProfile(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getFinancialProfileUseCase.Execute(ctx.Request.Context(), financial.GetFinancialProfileInput{UserID: userID})
	if err != nil {
		handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancialProfileResponse(output.Profile))
}

// SetFinancialProfile handles PUT /financial-profile requests.
func (c *HouseholdController) SetFinancialProfile(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.FinancialProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badHouseholdRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeInvalidIncome)
		return
	}

	output, err := c.setFinancialProfileUseCase.Execute(ctx.Request.Context(), financial.SetFinancialProfileInput{
		UserID:               userID,
		HousingCost:          req.HousingCost,
		FoodCost:             req.FoodCost,
		TransportationCost:   req.TransportationCost,
		HealthcareCost:       req.HealthcareCost,
		OtherNecessitiesCost: req.OtherNecessitiesCost,
		ChildcareCost:        req.ChildcareCost,
		Taxes:                req.Taxes,
		TotalExpenses:        req.TotalExpenses,
		MedianFamilyIncome:   *req.MedianFamilyIncome,
	})
	if err != nil {
		handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancialProfileResponse(output.Profile))
}

// EvaluateHealth handles GET /financial-profile/health requests.
func (c *HouseholdController) EvaluateHealth(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.evaluateFinancialHealthUseCase.Execute(ctx.Request.Context(), financial.EvaluateFinancialHealthInput{UserID: userID})
	if err != nil {
		handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHealthEvaluationResponse(output))
}

// GetSavingsProgress handles GET /savings-targets/:year requests.
func (c *HouseholdController) GetSavingsProgress(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	year, ok := yearParam(ctx)
	if !ok {
		return
	}

	output, err := c.getSavingsProgressUseCase.Execute(ctx.Request.Context(), savings.GetSavingsProgressInput{
		UserID: userID,
		Year:   year,
		Now:    c.now(),
	})
	if err != nil {
		handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSavingsProgressResponse(output.Plan))
}

// SetSavingsTarget handles PUT /savings-targets/:year requests.
func (c *HouseholdController) SetSavingsTarget(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	year, ok := yearParam(ctx)
	if !ok {
		return
	}

	var req dto.SavingsTargetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badHouseholdRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeInvalidSavingsTarget)
		return
	}

	output, err := c.setSavingsTargetUseCase.Execute(ctx.Request.Context(), savings.SetSavingsTargetInput{
		UserID:       userID,
		Year:         year,
		TargetAmount: *req.TargetAmount,
	})
	if err != nil {
		handleHouseholdError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSavingsTargetResponse(output.Target))
}

func yearParam(ctx *gin.Context) (int, bool) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		badHouseholdRequest(ctx, "year must be a number", domainerror.ErrCodeInvalidYear)
		return 0, false
	}
	return year, true
}

func badHouseholdRequest(ctx *gin.Context, msg string, code domainerror.HouseholdErrorCode) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: msg,
		Code:  string(code),
	})
}

// handleHouseholdError handles household errors and returns appropriate HTTP responses.
func handleHouseholdError(ctx *gin.Context, err error) {
	var hhErr *domainerror.HouseholdError
	if errors.As(err, &hhErr) {
		ctx.JSON(statusForHouseholdError(hhErr.Code), dto.ErrorResponse{
			Error: hhErr.Message,
			Code:  string(hhErr.Code),
		})
		return
	}

	internalError(ctx, err)
}

// statusForHouseholdError maps household error codes to HTTP status codes.
func statusForHouseholdError(code domainerror.HouseholdErrorCode) int {
	switch code {
	case domainerror.ErrCodeHouseholdNotFound,
		domainerror.ErrCodeFinancialProfileNotFound,
		domainerror.ErrCodeSavingsTargetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidHouseholdSize,
		domainerror.ErrCodeNegativeCost,
		domainerror.ErrCodeInvalidIncome,
		domainerror.ErrCodeInvalidSavingsTarget,
		domainerror.ErrCodeInvalidYear:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
