package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// newTestDB 创建内存 sqlite 测试库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := model.AutoMigrate(db, ""); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestUserIdentityRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserIdentityRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.UserIdentity{
		Kind:       domain.UserKindAnon,
		Identifier: "tok-1",
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.UserKindAnon, created.Kind)

	got, err := repo.GetByKindIdentifier(ctx, domain.UserKindAnon, "tok-1")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", byID.Identifier)
}

func TestUserIdentityRepository_GetNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserIdentityRepository(db)

	_, err := repo.GetByKindIdentifier(context.Background(), domain.UserKindAnon, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

// 唯一索引兜底：重复创建返回先落库的记录，不报错
func TestUserIdentityRepository_CreateDuplicateReturnsExisting(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserIdentityRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.UserIdentity{
		Kind:       domain.UserKindAuth,
		Identifier: "google|user-42",
	})
	assert.NoError(t, err)

	second, err := repo.Create(ctx, &domain.UserIdentity{
		Kind:       domain.UserKindAuth,
		Identifier: "google|user-42",
	})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := repo.CountByKind(ctx, domain.UserKindAuth)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// 同一 identifier 在不同 kind 下允许各存在一条记录
func TestUserIdentityRepository_SameIdentifierDifferentKind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserIdentityRepository(db)
	ctx := context.Background()

	anon, err := repo.Create(ctx, &domain.UserIdentity{Kind: domain.UserKindAnon, Identifier: "same"})
	assert.NoError(t, err)

	auth, err := repo.Create(ctx, &domain.UserIdentity{Kind: domain.UserKindAuth, Identifier: "same"})
	assert.NoError(t, err)

	assert.NotEqual(t, anon.ID, auth.ID)
}

func TestNoteRepository_CreateAndListOrder(t *testing.T) {
	db := newTestDB(t)
	identityRepo := NewUserIdentityRepository(db)
	noteRepo := NewNoteRepository(db)
	ctx := context.Background()

	owner, err := identityRepo.Create(ctx, &domain.UserIdentity{Kind: domain.UserKindAnon, Identifier: "tok-1"})
	assert.NoError(t, err)

	for _, text := range []string{"first", "second", "third"} {
		_, err := noteRepo.Create(ctx, &domain.Note{Owner: owner.ID, Note: text})
		assert.NoError(t, err)
	}

	notes, err := noteRepo.ListByOwner(ctx, owner.ID)
	assert.NoError(t, err)
	assert.Len(t, notes, 3)
	assert.Equal(t, "first", notes[0].Note)
	assert.Equal(t, "second", notes[1].Note)
	assert.Equal(t, "third", notes[2].Note)
}

func TestNoteRepository_ReparentAll(t *testing.T) {
	db := newTestDB(t)
	identityRepo := NewUserIdentityRepository(db)
	noteRepo := NewNoteRepository(db)
	ctx := context.Background()

	anon, err := identityRepo.Create(ctx, &domain.UserIdentity{Kind: domain.UserKindAnon, Identifier: "tok-1"})
	assert.NoError(t, err)
	auth, err := identityRepo.Create(ctx, &domain.UserIdentity{Kind: domain.UserKindAuth, Identifier: "google|user-42"})
	assert.NoError(t, err)

	_, err = noteRepo.Create(ctx, &domain.Note{Owner: anon.ID, Note: "buy milk"})
	assert.NoError(t, err)
	_, err = noteRepo.Create(ctx, &domain.Note{Owner: anon.ID, Note: "call home"})
	assert.NoError(t, err)

	moved, err := noteRepo.ReparentAll(ctx, anon.ID, auth.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), moved)

	anonCount, err := noteRepo.CountByOwner(ctx, anon.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), anonCount)

	authNotes, err := noteRepo.ListByOwner(ctx, auth.ID)
	assert.NoError(t, err)
	assert.Len(t, authNotes, 2)
	assert.Equal(t, "buy milk", authNotes[0].Note)

	// 再次转移是一个空操作
	moved, err = noteRepo.ReparentAll(ctx, anon.ID, auth.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), moved)
}

func TestUserIdentityRepository_CountDrained(t *testing.T) {
	db := newTestDB(t)
	identityRepo := NewUserIdentityRepository(db)
	noteRepo := NewNoteRepository(db)
	ctx := context.Background()

	// 两个匿名身份，一个有笔记一个没有
	withNotes, err := identityRepo.Create(ctx, &domain.UserIdentity{Kind: domain.UserKindAnon, Identifier: "tok-a"})
	assert.NoError(t, err)
	_, err = identityRepo.Create(ctx, &domain.UserIdentity{Kind: domain.UserKindAnon, Identifier: "tok-b"})
	assert.NoError(t, err)

	_, err = noteRepo.Create(ctx, &domain.Note{Owner: withNotes.ID, Note: "kept"})
	assert.NoError(t, err)

	drained, err := identityRepo.CountDrained(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), drained)
}
