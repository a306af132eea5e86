package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/dto"
	"github.com/jamwt/anon-notes-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNoteService(env.noteRepo, env.logger, &ServiceConfig{})
	ctx := context.Background()

	owner, err := env.identityRepo.Create(ctx, &domain.UserIdentity{
		Kind:       domain.UserKindAnon,
		Identifier: "tok-1",
	})
	require.NoError(t, err)

	other, err := env.identityRepo.Create(ctx, &domain.UserIdentity{
		Kind:       domain.UserKindAnon,
		Identifier: "tok-2",
	})
	require.NoError(t, err)

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, owner.ID, &dto.NoteCreateRequest{Note: text})
		require.NoError(t, err)
	}
	_, err = svc.Create(ctx, other.ID, &dto.NoteCreateRequest{Note: "not yours"})
	require.NoError(t, err)

	list, count, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// 只看到自己的笔记，且保持写入顺序
	texts := make([]string, 0, len(list))
	for _, n := range list {
		texts = append(texts, n.Note)
	}
	assert.Equal(t, []string{"first", "second", "third"}, texts)
}

func TestNoteService_ListEmptyOwner(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNoteService(env.noteRepo, env.logger, &ServiceConfig{})

	list, count, err := svc.List(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, list)
}

func TestNoteService_MaxLength(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNoteService(env.noteRepo, env.logger, &ServiceConfig{
		Note: NoteServiceConfig{MaxLength: 16},
	})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Note: strings.Repeat("x", 17)})
	require.Error(t, err)
	var e *code.Code
	require.ErrorAs(t, err, &e)
	assert.Equal(t, code.ErrorInvalidParams.Code(), e.Code())

	_, err = svc.Create(ctx, 1, &dto.NoteCreateRequest{Note: strings.Repeat("x", 16)})
	assert.NoError(t, err)
}
