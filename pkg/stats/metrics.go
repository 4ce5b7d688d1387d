package stats

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultExportInterval 指标导出周期
const DefaultExportInterval = 10 * time.Second

// NewMeterProvider 创建周期性把指标以 JSON 写入 w 的 MeterProvider
//
// 参数:
//   - w: 导出目标（通常是日志文件）
//   - interval: 导出周期，<= 0 时使用 DefaultExportInterval
func NewMeterProvider(w io.Writer, interval time.Duration) (*sdkmetric.MeterProvider, error) {
	if interval <= 0 {
		interval = DefaultExportInterval
	}
	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), nil
}

// InstallMetrics 安装全局 MeterProvider
// 返回的关闭函数会导出最后一批数据，应在退出前调用
func InstallMetrics(w io.Writer, interval time.Duration) (func(context.Context) error, error) {
	mp, err := NewMeterProvider(w, interval)
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}
