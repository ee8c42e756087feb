package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mellah-kais/cnam-server/internal/models"
	pgrepo "github.com/mellah-kais/cnam-server/internal/repositories/postgres"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password, cnamIdentifier string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

type authService struct {
	users    pgrepo.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users pgrepo.UserRepository, secret string) AuthService {
	return &authService{users: users, secret: []byte(secret), tokenTTL: 7 * 24 * time.Hour}
}

type authClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

func (s *authService) Signup(ctx context.Context, name, email, password, cnamIdentifier string) (*models.User, string, error) {
	const op = "AuthService.Signup"

	if email == "" || password == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", utils.E(utils.CodeConflict, op, "user already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		Password:       hash,
		CNAMIdentifier: cnamIdentifier,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "AuthService.Login"

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeInvalidArgument, op, "invalid credentials", nil)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	if err := utils.CheckPassword(user.Password, password); err != nil {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "invalid credentials", nil)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return user, token, nil
}

func (s *authService) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
