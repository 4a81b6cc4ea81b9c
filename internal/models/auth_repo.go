package models

import (
	"context"
	"fmt"

	"github.com/supabase-community/auth-go/types"
)

type AuthRepo interface {
	SignUpWithEmail(ctx context.Context, email, password string) (*types.SignupResponse, error)
	SignInWithEmail(ctx context.Context, email, password string) (*types.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
	SignOut(ctx context.Context, accessToken string) error
	GoogleAuthURL(ctx context.Context, redirectTo string) (authURL, verifier string, err error)
	ExchangeCode(ctx context.Context, code, verifier string) (*types.TokenResponse, error)
}

func (su *SupabaseRepo) SignUpWithEmail(ctx context.Context, email, password string) (*types.SignupResponse, error) {
	res, err := su.supabaseClient.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %v", err)
	}
	return res, nil
}

func (su *SupabaseRepo) SignInWithEmail(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %v", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %v", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) SignOut(ctx context.Context, accessToken string) error {
	if err := su.supabaseClient.Auth.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("failed to sign out: %v", err)
	}
	return nil
}

// GoogleAuthURL builds the provider authorize URL for the PKCE flow. The
// returned verifier has to come back on ExchangeCode, so callers stash it in
// a cookie across the provider round-trip.
func (su *SupabaseRepo) GoogleAuthURL(ctx context.Context, redirectTo string) (string, string, error) {
	resp, err := su.supabaseClient.Auth.Authorize(types.AuthorizeRequest{
		Provider:   types.ProviderGoogle,
		RedirectTo: redirectTo,
		FlowType:   types.FlowPKCE,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to build authorize URL: %v", err)
	}
	return resp.AuthorizationURL, resp.Verifier, nil
}

func (su *SupabaseRepo) ExchangeCode(ctx context.Context, code, verifier string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.Token(types.TokenRequest{
		GrantType:    "pkce",
		Code:         code,
		CodeVerifier: verifier,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %v", err)
	}
	return resp, nil
}
