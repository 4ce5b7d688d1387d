package components

// BehaviorType 定义实体的行为类型
// 各系统根据该标签决定如何处理实体
type BehaviorType int

const (
	// BehaviorPlayer 玩家飞船：菜单中待机，起飞动画中上升，游戏中朝目标旋转
	BehaviorPlayer BehaviorType = iota
	// BehaviorEnemy 敌人：携带算术题，以关卡速度向下移动
	BehaviorEnemy
	// BehaviorProjectile 激光：发射时锁定目标，沿固定方向飞行，离开屏幕后删除
	BehaviorProjectile
	// BehaviorExplosion 爆炸效果：单次播放动画，播放完毕后删除
	BehaviorExplosion
)

// String 返回行为类型名称
func (b BehaviorType) String() string {
	switch b {
	case BehaviorPlayer:
		return "player"
	case BehaviorEnemy:
		return "enemy"
	case BehaviorProjectile:
		return "projectile"
	case BehaviorExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// BehaviorComponent 实体行为标签
type BehaviorComponent struct {
	Type BehaviorType
}
