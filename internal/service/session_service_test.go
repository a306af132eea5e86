package service

import (
	"context"
	"testing"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Mint(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSessionService(env.identityRepo, env.logger)
	ctx := context.Background()

	first, err := svc.Mint(ctx)
	require.NoError(t, err)
	second, err := svc.Mint(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, first.SessionToken)
	assert.NotEmpty(t, second.SessionToken)
	assert.NotEqual(t, first.SessionToken, second.SessionToken)
}

func TestSessionService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSessionService(env.identityRepo, env.logger)
	ctx := context.Background()

	anon, err := env.identityRepo.Create(ctx, &domain.UserIdentity{
		Kind:       domain.UserKindAnon,
		Identifier: "tok-1",
	})
	require.NoError(t, err)

	auth, err := env.identityRepo.Create(ctx, &domain.UserIdentity{
		Kind:       domain.UserKindAuth,
		Identifier: "user-42",
	})
	require.NoError(t, err)

	t.Run("仅会话 Token 解析到匿名身份", func(t *testing.T) {
		got, err := svc.Resolve(ctx, "tok-1", "")
		require.NoError(t, err)
		assert.Equal(t, anon.ID, got.ID)
		assert.Equal(t, domain.UserKindAnon, got.Kind)
	})

	t.Run("认证主体优先于匿名会话", func(t *testing.T) {
		got, err := svc.Resolve(ctx, "tok-1", "user-42")
		require.NoError(t, err)
		assert.Equal(t, auth.ID, got.ID)
		assert.Equal(t, domain.UserKindAuth, got.Kind)
	})

	t.Run("认证身份未落库时回退到匿名身份", func(t *testing.T) {
		got, err := svc.Resolve(ctx, "tok-1", "user-not-upgraded")
		require.NoError(t, err)
		assert.Equal(t, anon.ID, got.ID)
	})

	t.Run("两种凭据都解析不到", func(t *testing.T) {
		_, err := svc.Resolve(ctx, "tok-unknown", "user-unknown")
		assert.ErrorIs(t, err, code.ErrorUserNotFound)
	})

	t.Run("没有任何凭据", func(t *testing.T) {
		_, err := svc.Resolve(ctx, "", "")
		assert.ErrorIs(t, err, code.ErrorUserNotFound)
	})
}
