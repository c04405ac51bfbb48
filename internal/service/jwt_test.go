package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret = "test-secret-key-at-least-32-chars-long"
	testExpiry = time.Hour
)

func newTestJWTService(t *testing.T) JWTService {
	t.Helper()
	service, err := NewJWTService(testSecret, testExpiry)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return service
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewJWTService(t *testing.T) {
	service := newTestJWTService(t)

	if got := service.GetExpiry(); got != testExpiry {
		t.Errorf("GetExpiry() = %v, want %v", got, testExpiry)
	}
}

func TestNewJWTService_WeakSecret(t *testing.T) {
	for _, secret := range []string{"", "short", strings.Repeat("x", MinSecretLength-1)} {
		if _, err := NewJWTService(secret, testExpiry); !errors.Is(err, ErrWeakSecret) {
			t.Errorf("NewJWTService(%d bytes) error = %v, want ErrWeakSecret", len(secret), err)
		}
	}
}

// =============================================================================
// GenerateToken / ValidateToken Tests
// =============================================================================

func TestGenerateToken_RoundTrip(t *testing.T) {
	service := newTestJWTService(t)

	tests := []struct {
		name string
		user *models.User
	}{
		{"regular user", &models.User{ID: 1, Email: "ana@example.com", Role: models.RoleUser}},
		{"admin", &models.User{ID: 42, Email: "admin@example.com", Role: models.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.GenerateToken(tt.user)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if token == "" {
				t.Fatal("Generated token is empty")
			}

			claims, err := service.ValidateToken(token)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if claims.UserID != tt.user.ID {
				t.Errorf("Claims.UserID = %v, want %v", claims.UserID, tt.user.ID)
			}
			if claims.Email != tt.user.Email {
				t.Errorf("Claims.Email = %v, want %v", claims.Email, tt.user.Email)
			}
			if claims.Role != tt.user.Role {
				t.Errorf("Claims.Role = %v, want %v", claims.Role, tt.user.Role)
			}
			if claims.IsAdmin() != (tt.user.Role == models.RoleAdmin) {
				t.Errorf("IsAdmin() = %v", claims.IsAdmin())
			}

			expiresIn := time.Until(claims.ExpiresAt.Time)
			if expiresIn <= 0 || expiresIn > testExpiry {
				t.Errorf("token expires in %v, want within %v", expiresIn, testExpiry)
			}
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	service, err := NewJWTService(testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	token, err := service.GenerateToken(&models.User{ID: 1, Email: "a@b.com", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = service.ValidateToken(token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service := newTestJWTService(t)
	other, err := NewJWTService(strings.Repeat("z", MinSecretLength), testExpiry)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	token, err := other.GenerateToken(&models.User{ID: 1, Email: "a@b.com"})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("ValidateToken() should reject tokens signed with another secret")
	}
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	service := newTestJWTService(t)

	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("ValidateToken() should reject HS512 tokens")
	}
}

func TestValidateToken_MissingExpiry(t *testing.T) {
	service := newTestJWTService(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("ValidateToken() should reject tokens without exp")
	}
}

func TestValidateToken_MissingUserID(t *testing.T) {
	service := newTestJWTService(t)

	token, err := service.GenerateToken(&models.User{ID: 0, Email: "ghost@example.com"})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := service.ValidateToken(token); err == nil {
		t.Error("ValidateToken() should reject tokens without a user id")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	service := newTestJWTService(t)

	for _, token := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := service.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) should fail", token)
		}
	}
}
