package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// UserRepository stores the accounts that own transactions, households and
// savings targets. Emails are stored lower-cased and looked up the same way.
type UserRepository interface {
	// Create stores a new account. It returns domainerror.ErrEmailAlreadyExists
	// when another account took the email first.
	Create(ctx context.Context, user *entity.User) error

	// FindByID returns domainerror.ErrUserNotFound on a miss.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail returns domainerror.ErrUserNotFound on a miss.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PasswordService hashes and checks account passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns an error when password does not match hashedPassword.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength returns an error for passwords the hash cannot honour.
	ValidatePasswordStrength(password string) error
}

// TokenPair is the access and refresh token handed to a signed-in client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims are the claims of a token whose signature and expiry were checked.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and checks session tokens. Refresh tokens are single use:
// each one is stored when issued and consumed when rotated.
type TokenService interface {
	// GenerateTokenPair issues a new pair and stores its refresh token.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*TokenPair, error)

	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken checks the signature and expiry only. Use
	// ConsumeRefreshToken to find out whether the token is still live.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// ConsumeRefreshToken revokes a live refresh token in one step. It reports
	// false when the token is unknown, expired or already revoked, so two
	// concurrent rotations of the same token cannot both succeed.
	ConsumeRefreshToken(ctx context.Context, token string) (bool, error)

	// InvalidateRefreshToken revokes a refresh token. Revoking twice is not an error.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// RevokeAllRefreshTokens ends every session of a user.
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error
}
