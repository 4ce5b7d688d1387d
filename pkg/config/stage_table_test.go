package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultStageTable 测试内置关卡表
func TestDefaultStageTable(t *testing.T) {
	table := DefaultStageTable()

	if table.Len() != 15 {
		t.Fatalf("Expected 15 stages, got %d", table.Len())
	}

	wantQuotas := []int{3, 4, 5, 6, 7, 8, 10, 10, 10, 10, 12, 14, 16, 18, 20}
	for i, want := range wantQuotas {
		stage, ok := table.Stage(i)
		if !ok {
			t.Fatalf("Stage(%d) not found", i)
		}
		if stage.EnemiesToClear != want {
			t.Errorf("stage %d quota: got %d, want %d", i, stage.EnemiesToClear, want)
		}
		if stage.SpawnIntervalMs != 1000 {
			t.Errorf("stage %d interval: got %v, want 1000", i, stage.SpawnIntervalMs)
		}
		if stage.EnemySpeed != 2 {
			t.Errorf("stage %d speed: got %v, want 2", i, stage.EnemySpeed)
		}
	}

	if err := validateStages(table.Stages()); err != nil {
		t.Errorf("Default table should be valid: %v", err)
	}
}

// TestStageTableBounds 测试索引越界与最终关判断
func TestStageTableBounds(t *testing.T) {
	table := DefaultStageTable()

	// index == Len() 是通关信号，不能返回关卡
	if _, ok := table.Stage(table.Len()); ok {
		t.Error("Stage(Len()) should report false")
	}
	if _, ok := table.Stage(-1); ok {
		t.Error("Stage(-1) should report false")
	}
	if !table.IsFinal(table.Len() - 1) {
		t.Error("Last index should be final")
	}
	if table.IsFinal(0) {
		t.Error("First index should not be final")
	}
}

// TestStageTableImmutable 测试修改输入切片或 Stages() 结果不影响关卡表
func TestStageTableImmutable(t *testing.T) {
	input := []Stage{
		{SpawnIntervalMs: 500, EnemySpeed: 1, EnemiesToClear: 2},
		{SpawnIntervalMs: 500, EnemySpeed: 1, EnemiesToClear: 3},
	}
	table, err := NewStageTable(input)
	if err != nil {
		t.Fatalf("NewStageTable() error: %v", err)
	}

	input[0].EnemiesToClear = 99
	out := table.Stages()
	out[1].EnemiesToClear = 99

	stage0, _ := table.Stage(0)
	stage1, _ := table.Stage(1)
	if stage0.EnemiesToClear != 2 || stage1.EnemiesToClear != 3 {
		t.Errorf("Stage table was mutated: %+v %+v", stage0, stage1)
	}
}

func TestParseStageTable(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     error
		errContains string
		wantLen     int
	}{
		{
			name: "valid table",
			yamlContent: `
stages:
  - spawnIntervalMs: 1000
    enemySpeed: 2
    enemiesToClear: 3
  - spawnIntervalMs: 800
    enemySpeed: 3
    enemiesToClear: 3
`,
			wantLen: 2,
		},
		{
			name:        "empty table",
			yamlContent: "stages: []\n",
			wantErr:     ErrEmptyStageTable,
		},
		{
			name: "decreasing quota",
			yamlContent: `
stages:
  - spawnIntervalMs: 1000
    enemySpeed: 2
    enemiesToClear: 5
  - spawnIntervalMs: 1000
    enemySpeed: 2
    enemiesToClear: 4
`,
			wantErr:     ErrNonMonotonicQuota,
			errContains: "stages[1]",
		},
		{
			name: "zero interval",
			yamlContent: `
stages:
  - spawnIntervalMs: 0
    enemySpeed: 2
    enemiesToClear: 3
`,
			errContains: "spawnIntervalMs must be positive",
		},
		{
			name:        "malformed yaml",
			yamlContent: "stages: [unclosed",
			errContains: "failed to parse stage table YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseStageTable([]byte(tt.yamlContent))

			if tt.wantErr == nil && tt.errContains == "" {
				if err != nil {
					t.Fatalf("ParseStageTable() unexpected error: %v", err)
				}
				if table.Len() != tt.wantLen {
					t.Errorf("Len() = %d, want %d", table.Len(), tt.wantLen)
				}
				return
			}

			if err == nil {
				t.Fatal("ParseStageTable() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

// TestLoadStageTableFile 测试从文件加载关卡表
func TestLoadStageTableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stages.yaml")
	content := `
stages:
  - spawnIntervalMs: 1200
    enemySpeed: 1.5
    enemiesToClear: 4
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	table, err := LoadStageTable(path)
	if err != nil {
		t.Fatalf("LoadStageTable() error: %v", err)
	}
	stage, _ := table.Stage(0)
	if stage.EnemySpeed != 1.5 || stage.EnemiesToClear != 4 {
		t.Errorf("Unexpected stage: %+v", stage)
	}

	if _, err := LoadStageTable(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// TestBundledStagesFile 测试仓库自带的 data/stages.yaml 与内置关卡表一致
func TestBundledStagesFile(t *testing.T) {
	table, err := LoadStageTable(filepath.Join("..", "..", "data", "stages.yaml"))
	if err != nil {
		t.Fatalf("LoadStageTable(data/stages.yaml) error: %v", err)
	}

	want := DefaultStageTable().Stages()
	got := table.Stages()
	if len(got) != len(want) {
		t.Fatalf("Bundled table has %d stages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
