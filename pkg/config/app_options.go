package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AppOptions 应用启动选项
//
// 优先级（从高到低）：命令行参数 > 环境变量 ARITHMETRON_* > arithmetron.yaml > 默认值
type AppOptions struct {
	Verbose        bool    `mapstructure:"verbose"`     // 输出 Debug 日志
	Seed           int64   `mapstructure:"seed"`        // 随机种子，0 表示使用当前时间
	GameConfigPath string  `mapstructure:"gameConfig"`  // 游戏配置文件路径，为空使用内置配置
	StagesPath     string  `mapstructure:"stages"`      // 关卡表路径，为空使用内置关卡表
	WindowScale    float64 `mapstructure:"windowScale"` // 窗口缩放
	Muted          bool    `mapstructure:"muted"`       // 禁用所有音频
	LogFile        string  `mapstructure:"logFile"`     // 日志文件，为空时输出到 stderr
	Metrics        bool    `mapstructure:"metrics"`     // 周期性把 OpenTelemetry 指标写入日志输出
}

// EnvPrefix 环境变量前缀
const EnvPrefix = "ARITHMETRON"

// NewOptionsViper 创建带默认值的 viper 实例
func NewOptionsViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("verbose", false)
	v.SetDefault("seed", int64(0))
	v.SetDefault("gameConfig", "")
	v.SetDefault("stages", "")
	v.SetDefault("windowScale", 1.0)
	v.SetDefault("muted", false)
	v.SetDefault("logFile", "")
	v.SetDefault("metrics", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadAppOptions 读取 arithmetron.yaml（可选）并解析启动选项
//
// 参数:
//   - v: NewOptionsViper 创建的实例（可能已通过 ApplyFlags 写入命令行参数）
//   - configDir: 搜索 arithmetron.yaml 的目录，为空则跳过配置文件
func LoadAppOptions(v *viper.Viper, configDir string) (AppOptions, error) {
	if configDir != "" {
		v.SetConfigName("arithmetron")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return AppOptions{}, fmt.Errorf("error reading options file: %w", err)
			}
		}
	}

	var opts AppOptions
	if err := v.Unmarshal(&opts); err != nil {
		return AppOptions{}, fmt.Errorf("failed to decode options: %w", err)
	}
	if opts.WindowScale <= 0 {
		return AppOptions{}, fmt.Errorf("windowScale must be positive, got %v", opts.WindowScale)
	}
	return opts, nil
}

// ApplyFlags 将命令行中显式设置的参数写入 viper
// flag 名与选项键相同（如 -seed、-gameConfig）
func ApplyFlags(v *viper.Viper, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		v.Set(f.Name, f.Value.String())
	})
}

// RegisterFlags 在 FlagSet 上注册全部启动参数
func RegisterFlags(fs *flag.FlagSet) {
	fs.Bool("verbose", false, "启用详细日志输出")
	fs.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	fs.String("gameConfig", "", "游戏配置 YAML 路径")
	fs.String("stages", "", "关卡表 YAML 路径")
	fs.Float64("windowScale", 1.0, "窗口缩放")
	fs.Bool("muted", false, "禁用音频")
	fs.String("logFile", "", "日志文件路径")
	fs.Bool("metrics", false, "把统计指标周期性写入日志输出")
}
