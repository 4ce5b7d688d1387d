package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/decker502/arithmetron/pkg/stats"

// Summary 统计弹窗显示的数据
type Summary struct {
	HighestStage int // 到达过的最高关卡（1-based）
	Annihilated  int // 累计击毁的敌人
}

// Tracker 进程内统计
// 实现 session.StatsReporter；同时导出 OpenTelemetry 指标
// （没有安装 MeterProvider 时为 no-op，见 InstallMetrics）。不做持久化。
type Tracker struct {
	mu    sync.RWMutex
	stats Summary

	destroyed    metric.Int64Counter
	stageReports metric.Int64Counter
	highest      metric.Int64ObservableGauge

	logger zerolog.Logger
}

// NewTracker 使用全局 MeterProvider 创建统计
func NewTracker() (*Tracker, error) {
	return NewTrackerWithMeter(otel.Meter(instrumentationName))
}

// NewTrackerWithMeter 创建统计并在 m 上注册指标
func NewTrackerWithMeter(m metric.Meter) (*Tracker, error) {
	st := &Tracker{logger: logging.For("Stats")}

	var err error
	st.destroyed, err = m.Int64Counter(
		"arithmetron.enemies.destroyed",
		metric.WithDescription("Total enemies destroyed by projectiles"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating destroyed counter: %w", err)
	}

	st.stageReports, err = m.Int64Counter(
		"arithmetron.stages.cleared",
		metric.WithDescription("Total stage clears"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stage counter: %w", err)
	}

	st.highest, err = m.Int64ObservableGauge(
		"arithmetron.stage.highest",
		metric.WithDescription("Highest stage reached in this process"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating highest stage gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			st.mu.RLock()
			defer st.mu.RUnlock()
			o.ObserveInt64(st.highest, int64(st.stats.HighestStage))
			return nil
		},
		st.highest,
	)
	if err != nil {
		return nil, fmt.Errorf("registering highest stage callback: %w", err)
	}

	return st, nil
}

// ReportProgress 记录进度
//
// 参数:
//   - highestStageReached: 当前到达的关卡（1-based），只增不减
//   - enemiesDestroyedDelta: 本次击毁数量；为 0 表示一次过关上报
func (st *Tracker) ReportProgress(highestStageReached, enemiesDestroyedDelta int) {
	st.mu.Lock()
	if highestStageReached > st.stats.HighestStage {
		st.stats.HighestStage = highestStageReached
	}
	if enemiesDestroyedDelta > 0 {
		st.stats.Annihilated += enemiesDestroyedDelta
	}
	st.mu.Unlock()

	ctx := context.Background()
	stageAttr := metric.WithAttributes(attribute.Int("stage", highestStageReached))
	if enemiesDestroyedDelta > 0 {
		st.destroyed.Add(ctx, int64(enemiesDestroyedDelta), stageAttr)
		return
	}
	st.stageReports.Add(ctx, 1, stageAttr)
	st.logger.Info().Int("stage", highestStageReached).Msg("stage cleared")
}

// Snapshot 返回当前统计
func (st *Tracker) Snapshot() Summary {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.stats
}
