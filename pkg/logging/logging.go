// Package logging 提供全局 zerolog 日志配置
//
// 各个组件通过 For() 获取带 component 字段的子日志器，
// 输出格式类似 "[Session] message"。
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Setup 配置全局日志器
//
// 参数:
//   - verbose: 为 true 时输出 Debug 级别日志，否则只输出 Info 及以上
//   - w: 日志输出目标，为 nil 时丢弃全部日志
func Setup(verbose bool, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		base = zerolog.Nop()
		return
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    w != os.Stderr && w != os.Stdout,
	}
	base = zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// For 返回指定组件的子日志器
func For(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", component).Logger()
}

// Base 返回当前全局日志器
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}
