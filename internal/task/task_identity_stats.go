package task

import (
	"context"
	"time"

	"github.com/jamwt/anon-notes-service/internal/app"
	"github.com/jamwt/anon-notes-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// 身份统计指标，由统计任务周期性刷新，经私有监听的 /metrics 导出
var (
	anonIdentityGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "anon_notes_identities_anon_total",
		Help: "Number of anonymous identities.",
	})
	authIdentityGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "anon_notes_identities_auth_total",
		Help: "Number of authenticated identities.",
	})
	drainedIdentityGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "anon_notes_identities_drained_total",
		Help: "Number of anonymous identities with no notes left.",
	})
)

// IdentityStatsTask 身份统计任务
// 周期性统计身份数量并记录日志、刷新指标。
// 升级后被掏空的匿名身份只统计不删除，身份记录永远保留。
type IdentityStatsTask struct {
	interval time.Duration
	app      *app.App
}

// NewIdentityStatsTask 创建身份统计任务，间隔未配置时返回 nil
func NewIdentityStatsTask(appContainer *app.App) Task {
	interval := appContainer.Config().GetIdentityStatsInterval()
	if interval <= 0 {
		return nil
	}

	return &IdentityStatsTask{
		interval: interval,
		app:      appContainer,
	}
}

// Name 返回任务名称
func (t *IdentityStatsTask) Name() string {
	return "IdentityStatsTask"
}

// Run 执行统计任务
func (t *IdentityStatsTask) Run(ctx context.Context) error {
	repo := t.app.UserIdentityRepo

	anonCount, err := repo.CountByKind(ctx, domain.UserKindAnon)
	if err != nil {
		return err
	}
	authCount, err := repo.CountByKind(ctx, domain.UserKindAuth)
	if err != nil {
		return err
	}
	drainedCount, err := repo.CountDrained(ctx)
	if err != nil {
		return err
	}

	anonIdentityGauge.Set(float64(anonCount))
	authIdentityGauge.Set(float64(authCount))
	drainedIdentityGauge.Set(float64(drainedCount))

	t.app.Logger().Info("identity stats",
		zap.Int64("anon", anonCount),
		zap.Int64("auth", authCount),
		zap.Int64("drained", drainedCount),
	)

	return nil
}

// LoopInterval 返回执行间隔
func (t *IdentityStatsTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *IdentityStatsTask) IsStartupRun() bool {
	return true
}
