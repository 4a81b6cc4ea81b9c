package services

import (
	"context"
	"fmt"

	"github.com/kwame-ansah/gameday/internal/helpers"
	"github.com/kwame-ansah/gameday/internal/models"
	"github.com/supabase-community/auth-go/types"
)

type AuthService struct {
	authRepo models.AuthRepo
}

func NewAuthService(authRepo models.AuthRepo) *AuthService {
	return &AuthService{
		authRepo: authRepo,
	}
}

func (as *AuthService) SignUpWithEmail(ctx context.Context, email, password string) (*types.SignupResponse, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, fmt.Errorf("password is not strong enough")
	}
	return as.authRepo.SignUpWithEmail(ctx, email, password)
}

func (as *AuthService) SignInWithEmail(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("invalid password format: %v", err)
	}
	response, err := as.authRepo.SignInWithEmail(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %v", err)
	}
	return response, nil
}

func (as *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	response, err := as.authRepo.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %v", err)
	}
	return response, nil
}

func (as *AuthService) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return as.authRepo.SignOut(ctx, accessToken)
}

func (as *AuthService) GoogleAuthURL(ctx context.Context, redirectTo string) (string, string, error) {
	if redirectTo == "" {
		return "", "", fmt.Errorf("redirect target is required")
	}
	return as.authRepo.GoogleAuthURL(ctx, redirectTo)
}

func (as *AuthService) ExchangeCode(ctx context.Context, code, verifier string) (*types.TokenResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is required")
	}
	return as.authRepo.ExchangeCode(ctx, code, verifier)
}
