package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput represents the output of token refresh.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenUseCase rotates a refresh token into a new token pair.
//
// A refresh token works once. Presenting a signed, unexpired token that was
// already rotated or logged out means a copy of it is in someone else's hands,
// so every session of the user is ended.
type RefreshTokenUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute consumes the refresh token and issues a new pair for the account
// it belongs to.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid or expired refresh token",
			domainerror.ErrInvalidToken,
		)
	}

	consumed, err := uc.tokenService.ConsumeRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if !consumed {
		if err := uc.tokenService.RevokeAllRefreshTokens(ctx, claims.UserID); err != nil {
			slog.ErrorContext(ctx, "failed to revoke sessions after refresh token reuse", "user_id", claims.UserID, "error", err)
		}
		slog.WarnContext(ctx, "Refresh token reused, all sessions revoked", "user_id", claims.UserID)
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeTokenReused,
			"refresh token was already used; sign in again",
			domainerror.ErrRefreshTokenReused,
		)
	}

	// The account may have been removed since the token was issued.
	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidToken,
				"account no longer exists",
				domainerror.ErrInvalidToken,
			)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	slog.InfoContext(ctx, "Refresh token rotated", "user_id", user.ID)

	return &RefreshTokenOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
	}, nil
}
