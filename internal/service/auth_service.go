package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"aiready/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles portal authentication. The assessment engine only
// consumes the resulting identity as an opaque user ID.
type AuthService struct {
	adminEmail     string
	adminPassword  string
	portalPassword string
	jwtSecret      []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@company.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	portalPassword := os.Getenv("PORTAL_PASSWORD")
	if portalPassword == "" {
		portalPassword = "portal123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		adminEmail:     adminEmail,
		adminPassword:  adminPassword,
		portalPassword: portalPassword,
		jwtSecret:      []byte(secret),
	}
}

// Login validates credentials and returns a signed token. The email is
// the stable user ID used for session ownership and history.
func (s *AuthService) Login(email, password string) (*model.LoginResponse, error) {
	if email == "" {
		return nil, ErrInvalidCredentials
	}

	role := model.RoleEmployee
	switch {
	case email == s.adminEmail && password == s.adminPassword:
		role = model.RoleAdmin
	case password == s.portalPassword:
		// shared portal password, identity from the directory upstream
	default:
		return nil, ErrInvalidCredentials
	}

	claims := &model.EmployeeClaims{
		UserID: email,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:  tokenString,
		UserID: email,
		Role:   role,
	}, nil
}

// ValidateToken validates a portal JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.EmployeeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.EmployeeClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.EmployeeClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
