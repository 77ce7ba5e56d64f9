package testutil

import (
	"testing"

	"github.com/members-api/go-api-server/internal/config"
	"github.com/members-api/go-api-server/internal/shared/token"
)

// MockTokenManager is a mock implementation of token.Manager for testing
type MockTokenManager struct {
	GenerateTokenFunc func(userID, username string) (string, error)
	ValidateTokenFunc func(tokenString string) (*token.Claims, error)
}

func (m *MockTokenManager) GenerateToken(userID, username string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, username)
	}
	return "mock-token", nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return nil, nil
}

// Ensure MockTokenManager implements token.Manager
var _ token.Manager = (*MockTokenManager)(nil)

// NewMockTokenManager creates a new mock token manager with default behavior
func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

// IssueTestToken signs a real bearer token with the test config's secret,
// valid against routes guarded by middleware.JWT(cfg).
func IssueTestToken(t *testing.T, cfg *config.Config) string {
	t.Helper()

	jwt, err := token.NewJWTManager(cfg).GenerateToken("1", "tester")
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return jwt
}
