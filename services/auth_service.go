package services

import (
	"context"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/models"
)

type AuthService struct {
	api *apiclient.Client
}

func NewAuthService(api *apiclient.Client) *AuthService {
	return &AuthService{api: api}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// AuthResponse is the payload of auth/login and auth/register.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var resp AuthResponse
	err := s.api.Post(ctx, "auth/login", req, &resp)
	return resp, err
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var resp AuthResponse
	err := s.api.Post(ctx, "auth/register", req, &resp)
	return resp, err
}

// Logout revokes the current token server side. Clearing the local
// session store is the caller's job.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.api.Post(ctx, "auth/logout", nil, nil)
}

// Session builds the client session persisted after a successful login.
func (r AuthResponse) Session() models.Session {
	return models.Session{
		Token:         r.Token,
		Role:          r.User.Role,
		UserID:        r.User.ID,
		Email:         r.User.Email,
		Name:          r.User.Name,
		PartnerActive: r.User.PartnerActive,
	}
}
