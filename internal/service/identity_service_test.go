package service

import (
	"context"
	"testing"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/dto"
	"github.com/jamwt/anon-notes-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityService_UpgradeAnonUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIdentityService(env.identityRepo, env.noteRepo, env.logger)
	ctx := context.Background()

	anon, err := env.identityRepo.Create(ctx, &domain.UserIdentity{
		Kind:       domain.UserKindAnon,
		Identifier: "tok-1",
	})
	require.NoError(t, err)

	for _, text := range []string{"buy milk", "walk the dog"} {
		_, err := env.noteRepo.Create(ctx, &domain.Note{Owner: anon.ID, Note: text})
		require.NoError(t, err)
	}

	got, err := svc.UpgradeAnonUser(ctx, "tok-1", "user-42")
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ReparentedNote)

	// 笔记全部归到认证身份名下，匿名身份名下清空
	authNotes, err := env.noteRepo.ListByOwner(ctx, got.UserID)
	require.NoError(t, err)
	require.Len(t, authNotes, 2)
	assert.Equal(t, "buy milk", authNotes[0].Note)
	assert.Equal(t, "walk the dog", authNotes[1].Note)

	anonCount, err := env.noteRepo.CountByOwner(ctx, anon.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, anonCount)

	// 匿名身份记录保留
	kept, err := env.identityRepo.GetByKindIdentifier(ctx, domain.UserKindAnon, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, anon.ID, kept.ID)
}

func TestIdentityService_UpgradeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIdentityService(env.identityRepo, env.noteRepo, env.logger)
	ctx := context.Background()

	anon, err := env.identityRepo.Create(ctx, &domain.UserIdentity{
		Kind:       domain.UserKindAnon,
		Identifier: "tok-1",
	})
	require.NoError(t, err)
	_, err = env.noteRepo.Create(ctx, &domain.Note{Owner: anon.ID, Note: "buy milk"})
	require.NoError(t, err)

	first, err := svc.UpgradeAnonUser(ctx, "tok-1", "user-42")
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.ReparentedNote)

	second, err := svc.UpgradeAnonUser(ctx, "tok-1", "user-42")
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)
	assert.EqualValues(t, 0, second.ReparentedNote)

	count, err := env.noteRepo.CountByOwner(ctx, first.UserID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestIdentityService_ManySessionsMergeToOnePrincipal(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIdentityService(env.identityRepo, env.noteRepo, env.logger)
	ctx := context.Background()

	sessions := map[string][]string{
		"tok-phone":  {"phone note"},
		"tok-laptop": {"laptop note a", "laptop note b"},
		"tok-empty":  nil,
	}

	var total int64
	var userID int64
	for token, texts := range sessions {
		anon, err := env.identityRepo.Create(ctx, &domain.UserIdentity{
			Kind:       domain.UserKindAnon,
			Identifier: token,
		})
		require.NoError(t, err)
		for _, text := range texts {
			_, err := env.noteRepo.Create(ctx, &domain.Note{Owner: anon.ID, Note: text})
			require.NoError(t, err)
		}

		got, err := svc.UpgradeAnonUser(ctx, token, "user-42")
		require.NoError(t, err)
		if userID == 0 {
			userID = got.UserID
		}
		assert.Equal(t, userID, got.UserID)
		total += got.ReparentedNote
	}

	assert.EqualValues(t, 3, total)
	count, err := env.noteRepo.CountByOwner(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// 始终只有一条认证身份
	authCount, err := env.identityRepo.CountByKind(ctx, domain.UserKindAuth)
	require.NoError(t, err)
	assert.EqualValues(t, 1, authCount)
}

func TestIdentityService_UpgradeWithoutAnonSession(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIdentityService(env.identityRepo, env.noteRepo, env.logger)
	ctx := context.Background()

	got, err := svc.UpgradeAnonUser(ctx, "tok-never-verified", "user-42")
	require.NoError(t, err)
	assert.EqualValues(t, 0, got.ReparentedNote)

	auth, err := env.identityRepo.GetByKindIdentifier(ctx, domain.UserKindAuth, "user-42")
	require.NoError(t, err)
	assert.Equal(t, auth.ID, got.UserID)
}

func TestIdentityService_UpgradeRequiresPrincipal(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIdentityService(env.identityRepo, env.noteRepo, env.logger)

	_, err := svc.UpgradeAnonUser(context.Background(), "tok-1", "")
	assert.ErrorIs(t, err, code.ErrorNotAuthenticated)
}

// TestAnonToAuthFlow 走完整的匿名到认证链路：
// 验证准入、匿名记笔记、登录升级、认证身份继续读写
func TestAnonToAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	session := NewSessionService(env.identityRepo, env.logger)
	captchaSvc := NewCaptchaService(env.identityRepo, &fakeVerifier{ok: true}, env.logger)
	identitySvc := NewIdentityService(env.identityRepo, env.noteRepo, env.logger)
	noteSvc := NewNoteService(env.noteRepo, env.logger, &ServiceConfig{})
	ctx := context.Background()

	// 匿名阶段：通过人机验证并记一条笔记
	_, err := captchaSvc.LoginAnonWithCaptcha(ctx, "tok-1", &dto.CaptchaVerifyRequest{CaptchaResponse: "resp"})
	require.NoError(t, err)

	anon, err := session.Resolve(ctx, "tok-1", "")
	require.NoError(t, err)
	_, err = noteSvc.Create(ctx, anon.ID, &dto.NoteCreateRequest{Note: "buy milk"})
	require.NoError(t, err)

	// 登录升级
	upgraded, err := identitySvc.UpgradeAnonUser(ctx, "tok-1", "user-42")
	require.NoError(t, err)
	assert.EqualValues(t, 1, upgraded.ReparentedNote)

	// 升级后解析到认证身份，笔记跟着走
	resolved, err := session.Resolve(ctx, "tok-1", "user-42")
	require.NoError(t, err)
	assert.Equal(t, upgraded.UserID, resolved.ID)
	assert.Equal(t, domain.UserKindAuth, resolved.Kind)

	list, count, err := noteSvc.List(ctx, resolved.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "buy milk", list[0].Note)

	// 认证身份继续写入
	_, err = noteSvc.Create(ctx, resolved.ID, &dto.NoteCreateRequest{Note: "walk the dog"})
	require.NoError(t, err)
	list, count, err = noteSvc.List(ctx, resolved.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "buy milk", list[0].Note)
	assert.Equal(t, "walk the dog", list[1].Note)
}
