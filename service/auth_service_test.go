// api/service/auth_service_test.go
package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spop-ops/commander/api/config"
	"github.com/spop-ops/commander/api/dao"
	api_errors "github.com/spop-ops/commander/api/errors"
	logger "github.com/spop-ops/commander/api/logging"
	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
)

// Registration is validated before the store is touched, so the rejection
// paths run without a database.
func setupAuthTest(t *testing.T) *service.AuthService {
	t.Helper()
	require.NoError(t, config.InitConfig())
	logger.InitLogger(t.TempDir())
	return service.NewAuthService(dao.NewUserDAO(nil), util.NewValidationUtil())
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := setupAuthTest(t)

	_, _, err := svc.Register(context.Background(), service.RegisterRequest{
		Username: "sgt-hassan",
		Password: "short",
	})
	assert.ErrorIs(t, err, api_errors.ErrInvalidUserData)
}

func TestRegisterRejectsMissingUsername(t *testing.T) {
	svc := setupAuthTest(t)

	_, _, err := svc.Register(context.Background(), service.RegisterRequest{
		Password: "long-enough-secret",
	})
	assert.ErrorIs(t, err, api_errors.ErrInvalidUserData)
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	svc := setupAuthTest(t)

	_, _, err := svc.Register(context.Background(), service.RegisterRequest{
		Username: "sgt-hassan",
		Password: "long-enough-secret",
		Email:    "not-an-address",
	})
	assert.ErrorIs(t, err, api_errors.ErrInvalidUserData)
}

func TestRegisterRejectsUnknownRank(t *testing.T) {
	svc := setupAuthTest(t)

	_, _, err := svc.Register(context.Background(), service.RegisterRequest{
		Username: "sgt-hassan",
		Password: "long-enough-secret",
		Rank:     "private",
	})
	assert.ErrorIs(t, err, api_errors.ErrInvalidUserData)
}
