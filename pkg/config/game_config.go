package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig 游戏的不可变配置
//
// 启动时构造一次，以指针形式传入会话状态机和各协作者。
// 构造完成后任何代码都不应修改其字段。
type GameConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Rules      RulesConfig      `yaml:"rules"`
	Layout     LayoutConfig     `yaml:"layout"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Animation  AnimationConfig  `yaml:"animation"`
	Sprites    SpriteSet        `yaml:"sprites"`
	Problems   []ProblemTier    `yaml:"problemTiers"`
}

// ScreenConfig 逻辑屏幕尺寸与目标帧率
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	FPS    int     `yaml:"fps"`
}

// RulesConfig 计分与生命规则
type RulesConfig struct {
	MaxLives             int     `yaml:"maxLives"`
	PointsPerHit         int     `yaml:"pointsPerHit"`
	StageClearDebounceMs float64 `yaml:"stageClearDebounceMs"` // 关卡完成后忽略 advance 意图的时长
	MaxInputLength       int     `yaml:"maxInputLength"`
	CursorBlinkMs        float64 `yaml:"cursorBlinkMs"`
}

// LayoutConfig 实体布局参数（像素）
type LayoutConfig struct {
	BoundaryOffset   float64 `yaml:"boundaryOffset"`   // 边界线距屏幕底部的距离
	PlayerOffsetY    float64 `yaml:"playerOffsetY"`    // 玩家中心距屏幕底部的距离
	MenuShipYRatio   float64 `yaml:"menuShipYRatio"`   // 菜单飞船中心 Y 相对屏幕高度的比例
	LaunchSpeed      float64 `yaml:"launchSpeed"`      // 起飞动画速度（像素/帧）
	SpawnMarginLeft  float64 `yaml:"spawnMarginLeft"`  // 敌人生成 X 的左侧边距
	SpawnMarginRight float64 `yaml:"spawnMarginRight"` // 敌人生成 X 的右侧边距
	SpawnY           float64 `yaml:"spawnY"`           // 敌人生成的中心 Y（屏幕上方）
}

// ProjectileConfig 激光参数
type ProjectileConfig struct {
	Speed float64 `yaml:"speed"` // 像素/帧
}

// AnimationConfig 各类实体的动画帧间隔（毫秒）
type AnimationConfig struct {
	DefaultFrameMs    float64 `yaml:"defaultFrameMs"`
	ProjectileFrameMs float64 `yaml:"projectileFrameMs"`
	ExplosionFrameMs  float64 `yaml:"explosionFrameMs"`
	PlaceholderSize   float64 `yaml:"placeholderSize"` // 无帧实体的占位尺寸
}

// FrameConfig 单个动画帧：图像资源ID及其基础尺寸
type FrameConfig struct {
	ID     string  `yaml:"id"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpriteConfig 一类实体的帧序列
type SpriteConfig struct {
	Frames []FrameConfig `yaml:"frames"`
}

// SpriteSet 四类实体的帧序列
type SpriteSet struct {
	Player     SpriteConfig `yaml:"player"`
	Enemy      SpriteConfig `yaml:"enemy"`
	Projectile SpriteConfig `yaml:"projectile"`
	Explosion  SpriteConfig `yaml:"explosion"`
}

// ProblemTier 一个难度档位
//
// 档位按顺序匹配：第一个 score <= MaxScore 的档位生效；
// 最后一个档位没有上限，其 MaxScore 被忽略。
type ProblemTier struct {
	MaxScore   int      `yaml:"maxScore"`
	Operators  []string `yaml:"operators"`
	MinOperand int      `yaml:"minOperand"`
	MaxOperand int      `yaml:"maxOperand"`
}

// ErrInvalidGameConfig 游戏配置校验失败
var ErrInvalidGameConfig = errors.New("invalid game config")

// FrameDurationMs 返回一帧的标准时长（毫秒）
// 用于把"像素/帧"的速度换算到可变 dt 上
func (c *GameConfig) FrameDurationMs() float64 {
	return 1000.0 / float64(c.Screen.FPS)
}

// BoundaryY 返回玩家边界线的 Y 坐标
func (c *GameConfig) BoundaryY() float64 {
	return c.Screen.Height - c.Layout.BoundaryOffset
}

// PlayerPosition 返回玩家飞船的中心坐标
func (c *GameConfig) PlayerPosition() (float64, float64) {
	return c.Screen.Width / 2, c.Screen.Height - c.Layout.PlayerOffsetY
}

// MenuShipPosition 返回菜单飞船的中心坐标
func (c *GameConfig) MenuShipPosition() (float64, float64) {
	return c.Screen.Width / 2, c.Screen.Height * c.Layout.MenuShipYRatio
}

// SpawnRangeX 返回敌人生成 X 坐标的闭区间
func (c *GameConfig) SpawnRangeX() (float64, float64) {
	return c.Layout.SpawnMarginLeft, c.Screen.Width - c.Layout.SpawnMarginRight
}

// DefaultGameConfig 返回内置默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Screen: ScreenConfig{Width: 800, Height: 850, FPS: 60},
		Rules: RulesConfig{
			MaxLives:             3,
			PointsPerHit:         10,
			StageClearDebounceMs: 300,
			MaxInputLength:       6,
			CursorBlinkMs:        500,
		},
		Layout: LayoutConfig{
			BoundaryOffset:   60,
			PlayerOffsetY:    120,
			MenuShipYRatio:   0.25,
			LaunchSpeed:      9,
			SpawnMarginLeft:  40,
			SpawnMarginRight: 140,
			SpawnY:           -100,
		},
		Projectile: ProjectileConfig{Speed: 15},
		Animation: AnimationConfig{
			DefaultFrameMs:    100,
			ProjectileFrameMs: 30,
			ExplosionFrameMs:  50,
			PlaceholderSize:   100,
		},
		Sprites: SpriteSet{
			Player:     spriteFrames("IMAGE_PLAYER", 2),
			Enemy:      spriteFrames("IMAGE_ENEMY", 2),
			Projectile: spriteFrames("IMAGE_LASER", 4),
			Explosion:  spriteFrames("IMAGE_EXPLOSION", 7),
		},
		Problems: []ProblemTier{
			{MaxScore: 100, Operators: []string{"+"}, MinOperand: 1, MaxOperand: 10},
			{MaxScore: 200, Operators: []string{"+", "-"}, MinOperand: 1, MaxOperand: 20},
			{Operators: []string{"+", "-", "*"}, MinOperand: 2, MaxOperand: 12},
		},
	}
}

// spriteFrames 生成 prefix_1..prefix_n 的 100x100 帧序列
func spriteFrames(prefix string, n int) SpriteConfig {
	frames := make([]FrameConfig, 0, n)
	for i := 1; i <= n; i++ {
		frames = append(frames, FrameConfig{
			ID:     fmt.Sprintf("%s_%d", prefix, i),
			Width:  100,
			Height: 100,
		})
	}
	return SpriteConfig{Frames: frames}
}

// LoadGameConfig 从 YAML 文件加载游戏配置
// 文件中缺省的字段使用 DefaultGameConfig 的值
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 数据并校验
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置的有效性
func (c *GameConfig) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen size must be positive, got %vx%v", ErrInvalidGameConfig, c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidGameConfig, c.Screen.FPS)
	}
	if c.Rules.MaxLives <= 0 {
		return fmt.Errorf("%w: rules.maxLives must be positive, got %d", ErrInvalidGameConfig, c.Rules.MaxLives)
	}
	if c.Rules.PointsPerHit < 0 {
		return fmt.Errorf("%w: rules.pointsPerHit must be >= 0, got %d", ErrInvalidGameConfig, c.Rules.PointsPerHit)
	}
	if c.Rules.MaxInputLength <= 0 {
		return fmt.Errorf("%w: rules.maxInputLength must be positive, got %d", ErrInvalidGameConfig, c.Rules.MaxInputLength)
	}
	left, right := c.SpawnRangeX()
	if left > right {
		return fmt.Errorf("%w: spawn margins leave no room (%v > %v)", ErrInvalidGameConfig, left, right)
	}
	if c.Layout.LaunchSpeed <= 0 {
		return fmt.Errorf("%w: layout.launchSpeed must be positive, got %v", ErrInvalidGameConfig, c.Layout.LaunchSpeed)
	}
	if c.Projectile.Speed <= 0 {
		return fmt.Errorf("%w: projectile.speed must be positive, got %v", ErrInvalidGameConfig, c.Projectile.Speed)
	}
	if c.Animation.DefaultFrameMs <= 0 || c.Animation.ProjectileFrameMs <= 0 || c.Animation.ExplosionFrameMs <= 0 {
		return fmt.Errorf("%w: animation frame intervals must be positive", ErrInvalidGameConfig)
	}
	return validateProblemTiers(c.Problems)
}

// validateProblemTiers 校验难度档位
func validateProblemTiers(tiers []ProblemTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: problemTiers cannot be empty", ErrInvalidGameConfig)
	}
	for i, tier := range tiers {
		if len(tier.Operators) == 0 {
			return fmt.Errorf("%w: problemTiers[%d]: operators cannot be empty", ErrInvalidGameConfig, i)
		}
		for _, op := range tier.Operators {
			switch op {
			case "+", "-", "*", "×":
			default:
				return fmt.Errorf("%w: problemTiers[%d]: unknown operator %q", ErrInvalidGameConfig, i, op)
			}
		}
		if tier.MinOperand > tier.MaxOperand {
			return fmt.Errorf("%w: problemTiers[%d]: minOperand %d > maxOperand %d", ErrInvalidGameConfig, i, tier.MinOperand, tier.MaxOperand)
		}
		if tier.MinOperand < 0 {
			return fmt.Errorf("%w: problemTiers[%d]: minOperand must be >= 0, got %d", ErrInvalidGameConfig, i, tier.MinOperand)
		}
		if i > 0 && i < len(tiers)-1 && tier.MaxScore <= tiers[i-1].MaxScore {
			return fmt.Errorf("%w: problemTiers[%d]: maxScore must be > previous (%d), got %d", ErrInvalidGameConfig, i, tiers[i-1].MaxScore, tier.MaxScore)
		}
	}
	return nil
}
