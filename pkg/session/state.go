package session

// State 会话状态
type State int

const (
	// StateMenu 主菜单，飞船待机
	StateMenu State = iota
	// StateLaunchAnimation 起飞动画，不接受输入
	StateLaunchAnimation
	// StatePlay 游戏进行中
	StatePlay
	// StatePaused 暂停，冻结全部模拟
	StatePaused
	// StateStageCleared 过关，等待进入下一关
	StateStageCleared
	// StateGameCleared 全部关卡完成
	StateGameCleared
	// StateGameOver 生命耗尽
	StateGameOver
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StateLaunchAnimation:
		return "LaunchAnimation"
	case StatePlay:
		return "Play"
	case StatePaused:
		return "Paused"
	case StateStageCleared:
		return "StageCleared"
	case StateGameCleared:
		return "GameCleared"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
