package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/jamwt/anon-notes-service/internal/dao"
	"github.com/jamwt/anon-notes-service/internal/domain"
	"github.com/jamwt/anon-notes-service/internal/model"

	"go.uber.org/zap"
)

// testEnv 服务层测试环境：内存 sqlite 之上的真实仓储
type testEnv struct {
	identityRepo domain.UserIdentityRepository
	noteRepo     domain.NoteRepository
	logger       *zap.Logger
}

// newTestEnv 创建服务层测试环境
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
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

	return &testEnv{
		identityRepo: dao.NewUserIdentityRepository(db),
		noteRepo:     dao.NewNoteRepository(db),
		logger:       zap.NewNop(),
	}
}

// fakeVerifier 可控的人机验证桩
type fakeVerifier struct {
	ok    bool
	err   error
	calls int32
	gate  chan struct{} // 非 nil 时 Verify 阻塞到 gate 关闭
}

func (f *fakeVerifier) Verify(ctx context.Context, responseToken string) (bool, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		<-f.gate
	}
	return f.ok, f.err
}

func (f *fakeVerifier) callCount() int32 {
	return atomic.LoadInt32(&f.calls)
}
