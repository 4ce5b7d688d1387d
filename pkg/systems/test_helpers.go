package systems

import (
	"testing"

	"github.com/decker502/arithmetron/pkg/components"
	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
	"github.com/decker502/arithmetron/pkg/entities"
	"github.com/decker502/arithmetron/pkg/problem"
)

// newTestWorld 创建使用默认配置的实体管理器
func newTestWorld() (*ecs.EntityManager, *config.GameConfig) {
	return ecs.NewEntityManager(), config.DefaultGameConfig()
}

// spawnTestEnemy 在指定位置创建携带 a+b 题目的静止敌人
func spawnTestEnemy(t *testing.T, em *ecs.EntityManager, cfg *config.GameConfig, x, y float64, a, b int) ecs.EntityID {
	t.Helper()
	p := problem.Problem{Op: problem.Add, A: a, B: b, Answer: a + b}
	id, err := entities.NewEnemy(em, cfg, x, y, 0, p)
	if err != nil {
		t.Fatalf("NewEnemy() error: %v", err)
	}
	return id
}

// positionOf 返回实体位置
func positionOf(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no position", id)
	}
	return pos
}
