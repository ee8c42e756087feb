package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/mellah-kais/cnam-server/internal/models"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

type memUserRepo struct {
	byEmail map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*models.User)}
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, utils.ErrNotFound
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func TestSignupIssuesToken(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), "test-secret")

	user, token, err := svc.Signup(context.Background(), "Dr. Mellah", "dr@cabinet.tn", "s3cret", "CNAM-001")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "s3cret", user.Password, "password must be stored hashed")

	claims := parseClaims(t, token, "test-secret")
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.ID, claims.Subject)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), "test-secret")

	_, _, err := svc.Signup(context.Background(), "A", "dr@cabinet.tn", "one", "")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), "B", "dr@cabinet.tn", "two", "")
	require.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestSignupRequiresCredentials(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), "test-secret")

	_, _, err := svc.Signup(context.Background(), "A", "", "pw", "")
	require.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, _, err = svc.Signup(context.Background(), "A", "dr@cabinet.tn", "", "")
	require.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, "test-secret")

	created, _, err := svc.Signup(context.Background(), "Dr. Mellah", "dr@cabinet.tn", "s3cret", "")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "dr@cabinet.tn", "s3cret")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.Equal(t, user.ID, parseClaims(t, token, "test-secret").UserID)

	// wrong password and unknown email report the same code
	_, _, err = svc.Login(context.Background(), "dr@cabinet.tn", "wrong")
	require.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	_, _, err = svc.Login(context.Background(), "nobody@cabinet.tn", "s3cret")
	require.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func parseClaims(t *testing.T, token, secret string) *authClaims {
	t.Helper()
	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return claims
}
