package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/members-api/go-api-server/internal/shared/logger"
	"github.com/members-api/go-api-server/internal/shared/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db             *gorm.DB
	userRepository *UserRepository
	tokenManager   token.Manager
}

func NewAuthService(db *gorm.DB, userRepository *UserRepository, tokenManager token.Manager) *AuthService {
	return &AuthService{
		db:             db,
		userRepository: userRepository,
		tokenManager:   tokenManager,
	}
}

// Token validates the credential pair and issues a bearer token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (a *AuthService) Token(ctx context.Context, username, password string) (*TokenResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Find user by username
	user, err := a.userRepository.FindByUsername(ctx, a.db, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("token request failed - unknown username", "username", username)
			return nil, fmt.Errorf("error %w", ErrInvalidCredentials)
		}
		log.Error("token request failed - unexpected error", "error", err)
		return nil, fmt.Errorf("credential lookup failed: %w", err)
	}

	// 2. Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Warn("token request failed - invalid password", "username", username)
		return nil, fmt.Errorf("error %w", ErrInvalidCredentials)
	}

	// 3. Generate JWT
	userID := strconv.FormatUint(uint64(user.ID), 10)
	jwt, err := a.tokenManager.GenerateToken(userID, user.Username)
	if err != nil {
		log.Error("failed to generate token", "error", err)
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &TokenResponse{JWT: jwt}, nil
}
