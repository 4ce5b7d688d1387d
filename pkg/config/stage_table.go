package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Stage 单个关卡的难度描述
type Stage struct {
	SpawnIntervalMs float64 `yaml:"spawnIntervalMs"` // 敌人生成间隔（毫秒）
	EnemySpeed      float64 `yaml:"enemySpeed"`      // 敌人下落速度（像素/帧）
	EnemiesToClear  int     `yaml:"enemiesToClear"`  // 过关需要击毁的敌人数量
}

// StageTable 固定的关卡难度表
// 构造后不可修改；零值表示空表
type StageTable struct {
	stages []Stage
}

// stageTableFile stages.yaml 的文件结构
type stageTableFile struct {
	Stages []Stage `yaml:"stages"`
}

var (
	// ErrEmptyStageTable 关卡表为空
	ErrEmptyStageTable = errors.New("stage table cannot be empty")
	// ErrNonMonotonicQuota 关卡配额出现下降
	ErrNonMonotonicQuota = errors.New("stage quota must be non-decreasing")
)

// defaultQuotas 内置关卡配额，所有关卡间隔 1000ms、速度 2
var defaultQuotas = []int{3, 4, 5, 6, 7, 8, 10, 10, 10, 10, 12, 14, 16, 18, 20}

// NewStageTable 复制并校验关卡列表
func NewStageTable(stages []Stage) (StageTable, error) {
	if err := validateStages(stages); err != nil {
		return StageTable{}, err
	}
	copied := make([]Stage, len(stages))
	copy(copied, stages)
	return StageTable{stages: copied}, nil
}

// DefaultStageTable 返回内置的 15 关难度表
func DefaultStageTable() StageTable {
	stages := make([]Stage, 0, len(defaultQuotas))
	for _, quota := range defaultQuotas {
		stages = append(stages, Stage{
			SpawnIntervalMs: 1000,
			EnemySpeed:      2,
			EnemiesToClear:  quota,
		})
	}
	return StageTable{stages: stages}
}

// LoadStageTable 从 YAML 文件加载关卡表
func LoadStageTable(filePath string) (StageTable, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return StageTable{}, fmt.Errorf("failed to read stage table file: %w", err)
	}
	return ParseStageTable(data)
}

// ParseStageTable 解析 YAML 数据为关卡表
func ParseStageTable(data []byte) (StageTable, error) {
	var file stageTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return StageTable{}, fmt.Errorf("failed to parse stage table YAML: %w", err)
	}
	table, err := NewStageTable(file.Stages)
	if err != nil {
		return StageTable{}, fmt.Errorf("invalid stage table: %w", err)
	}
	return table, nil
}

// Len 返回关卡数量
func (t StageTable) Len() int {
	return len(t.stages)
}

// Stage 返回指定索引的关卡
// 索引越界（包括 index == Len()，即通关信号）时返回 false
func (t StageTable) Stage(index int) (Stage, bool) {
	if index < 0 || index >= len(t.stages) {
		return Stage{}, false
	}
	return t.stages[index], true
}

// IsFinal 判断索引是否为最后一关
func (t StageTable) IsFinal(index int) bool {
	return index == len(t.stages)-1
}

// Stages 返回关卡列表的副本
func (t StageTable) Stages() []Stage {
	copied := make([]Stage, len(t.stages))
	copy(copied, t.stages)
	return copied
}

// validateStages 校验关卡列表
func validateStages(stages []Stage) error {
	if len(stages) == 0 {
		return ErrEmptyStageTable
	}
	for i, s := range stages {
		if s.SpawnIntervalMs <= 0 {
			return fmt.Errorf("stages[%d]: spawnIntervalMs must be positive, got %v", i, s.SpawnIntervalMs)
		}
		if s.EnemySpeed <= 0 {
			return fmt.Errorf("stages[%d]: enemySpeed must be positive, got %v", i, s.EnemySpeed)
		}
		if s.EnemiesToClear <= 0 {
			return fmt.Errorf("stages[%d]: enemiesToClear must be positive, got %d", i, s.EnemiesToClear)
		}
		if i > 0 && s.EnemiesToClear < stages[i-1].EnemiesToClear {
			return fmt.Errorf("stages[%d]: %w: enemiesToClear must be >= previous (%d), got %d",
				i, ErrNonMonotonicQuota, stages[i-1].EnemiesToClear, s.EnemiesToClear)
		}
	}
	return nil
}
