// api/service/auth_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/model"
	"github.com/spop-ops/commander/api/util"
)

// RegisterRequest carries the self-registration payload. The validate tags
// are enforced again at the service layer so the rules hold for every
// caller, not just the HTTP binding.
type RegisterRequest struct {
	Username       string     `json:"username" binding:"required" validate:"required,min=3,max=150"`
	Password       string     `json:"password" binding:"required,min=8" validate:"required,min=8"`
	FirstName      string     `json:"first_name" validate:"max=150"`
	LastName       string     `json:"last_name" validate:"max=150"`
	Email          string     `json:"email" validate:"omitempty,email"`
	PhoneNumber    string     `json:"phone_number" validate:"max=15"`
	Rank           model.Rank `json:"rank"`
	MilitaryNumber string     `json:"military_number" validate:"max=50"`
	NationalID     string     `json:"national_id" validate:"max=50"`
}

// ProfileUpdate is the editable subset of the account.
type ProfileUpdate struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, *util.TokenPair, error)
	Login(ctx context.Context, username, password string) (*model.User, *util.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error)
	GetUser(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error)
}

type AuthService struct {
	userDAO    *dao.UserDAO
	validation *util.ValidationUtil
}

var _ IAuthService = &AuthService{}

func NewAuthService(userDAO *dao.UserDAO, validation *util.ValidationUtil) *AuthService {
	return &AuthService{userDAO: userDAO, validation: validation}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, *util.TokenPair, error) {
	if err := s.validation.ValidateStruct(&req); err != nil {
		logger.Warn("Registration rejected", zap.Error(err))
		return nil, nil, api_errors.ErrInvalidUserData
	}
	if req.Rank != "" && !req.Rank.Valid() {
		return nil, nil, api_errors.ErrInvalidUserData
	}
	user := &model.User{
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Rank:           req.Rank,
		MilitaryNumber: req.MilitaryNumber,
		NationalID:     req.NationalID,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, nil, err
	}

	if err := s.userDAO.Create(ctx, user); err != nil {
		return nil, nil, err
	}
	logger.Info("User registered", zap.Uint("userID", user.ID), zap.String("username", user.Username))

	tokens, err := util.IssueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, *util.TokenPair, error) {
	user, err := s.userDAO.GetByUsername(ctx, username)
	if err != nil {
		// Same error for unknown user and bad password.
		return nil, nil, api_errors.ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, nil, api_errors.ErrInvalidCredentials
	}

	tokens, err := util.IssueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The user is
// reloaded so revoked accounts and changed ranks take effect immediately.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != util.RefreshToken {
		return nil, api_errors.ErrInvalidToken
	}

	user, err := s.userDAO.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, api_errors.ErrInvalidToken
	}
	return util.IssueTokenPair(user)
}

func (s *AuthService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.userDAO.GetByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.userDAO.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = *update.PhoneNumber
	}

	if err := s.userDAO.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
