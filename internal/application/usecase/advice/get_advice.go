package advice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/financial"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// NoAdvice is returned when the service answers with nothing.
const NoAdvice = "No advice available at this moment."

// GetAdviceInput represents the input for an advice request.
type GetAdviceInput struct {
	UserID uuid.UUID
	// Question is appended to the generated prompt when set.
	Question string
}

// GetAdviceOutput represents the answer to an advice request.
type GetAdviceOutput struct {
	Advice string
	Health valueobject.FinancialHealth
}

// GetAdviceUseCase asks the advice service how a household can improve its budget.
type GetAdviceUseCase struct {
	profileRepo   adapter.FinancialProfileRepository
	householdRepo adapter.HouseholdRepository
	adviceService adapter.AdviceService
}

// NewGetAdviceUseCase creates a new GetAdviceUseCase instance.
func NewGetAdviceUseCase(
	profileRepo adapter.FinancialProfileRepository,
	householdRepo adapter.HouseholdRepository,
	adviceService adapter.AdviceService,
) *GetAdviceUseCase {
	return &GetAdviceUseCase{
		profileRepo:   profileRepo,
		householdRepo: householdRepo,
		adviceService: adviceService,
	}
}

// Execute builds the prompt from the stored profile and household and asks for advice.
func (uc *GetAdviceUseCase) Execute(ctx context.Context, input GetAdviceInput) (*GetAdviceOutput, error) {
	if uc.adviceService == nil || !uc.adviceService.IsAvailable() {
		return nil, domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceUnavailable,
			"advice service is not configured",
			domainerror.ErrAdviceServiceUnavailable,
		)
	}

	var (
		profile   *entity.FinancialProfile
		household entity.Household
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = uc.profileRepo.FindByUser(gctx, input.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		household, err = financial.LoadHousehold(gctx, uc.householdRepo, input.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load advice context: %w", err)
	}

	if profile == nil {
		return nil, domainerror.NewAdviceError(
			domainerror.ErrCodeMissingProfile,
			"a financial profile is required before asking for advice",
			domainerror.ErrFinancialProfileNotFound,
		)
	}

	health := valueobject.AssessFinancialHealth(*profile, household)
	prompt := BuildPrompt(*profile, household, health.Rating, input.Question)

	answer, err := uc.adviceService.GenerateAdvice(ctx, prompt)
	if err != nil {
		classified := classifyError(err)
		slog.ErrorContext(ctx, "advice request failed",
			"user_id", input.UserID,
			"code", classified.Code,
			"error", err,
		)
		return nil, classified
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = NoAdvice
	}

	return &GetAdviceOutput{Advice: answer, Health: health}, nil
}

// BuildPrompt renders the advice question for a household.
func BuildPrompt(profile entity.FinancialProfile, household entity.Household, rating valueobject.HealthRating, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Given our household's financial details: %d adults and %d children, ", household.NumAdults, household.NumChildren)
	fmt.Fprintf(&b, "with a housing cost of $%.2f, food cost of $%.2f, ", profile.HousingCost, profile.FoodCost)
	fmt.Fprintf(&b, "transportation cost of $%.2f, healthcare cost of $%.2f, ", profile.TransportationCost, profile.HealthcareCost)
	fmt.Fprintf(&b, "costs for other necessities at $%.2f, childcare expenses of $%.2f, ", profile.OtherNecessitiesCost, profile.ChildcareCost)
	fmt.Fprintf(&b, "and taxes of $%.2f, totaling $%.2f in expenses ", profile.Taxes, profile.Total())
	fmt.Fprintf(&b, "against a median family income of $%.2f. ", profile.MedianFamilyIncome)
	fmt.Fprintf(&b, "How can we optimize our budget to improve our financial health status from '%s'? ", rating)
	b.WriteString("What specific strategies would you recommend for reducing expenses and enhancing savings, ")
	b.WriteString("particularly in areas where we are overspending? ")
	b.WriteString("Additionally, are there adjustments we should consider in our investment strategy ")
	b.WriteString("to secure our long-term financial stability?")

	if q := strings.TrimSpace(question); q != "" {
		b.WriteString("\n\n")
		b.WriteString(q)
	}

	return b.String()
}
