package scenes

import (
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/hajimehoshi/ebiten/v2"
)

// ActionKind 场景层动作类型
type ActionKind int

const (
	// ActionIntent 转交给会话的意图
	ActionIntent ActionKind = iota
	// ActionToggleStats 切换统计弹窗（仅菜单）
	ActionToggleStats
	// ActionVolumeUp 增大音量
	ActionVolumeUp
	// ActionVolumeDown 减小音量
	ActionVolumeDown
)

// Action 一次按键映射出的动作
type Action struct {
	Kind   ActionKind
	Intent session.Intent
}

func intentAction(kind session.IntentKind) Action {
	return Action{Kind: ActionIntent, Intent: session.Intent{Kind: kind}}
}

// digitKeys 主键盘与小键盘的数字键
var digitKeys = map[ebiten.Key]rune{
	ebiten.Key0: '0', ebiten.Key1: '1', ebiten.Key2: '2', ebiten.Key3: '3', ebiten.Key4: '4',
	ebiten.Key5: '5', ebiten.Key6: '6', ebiten.Key7: '7', ebiten.Key8: '8', ebiten.Key9: '9',
	ebiten.KeyNumpad0: '0', ebiten.KeyNumpad1: '1', ebiten.KeyNumpad2: '2', ebiten.KeyNumpad3: '3', ebiten.KeyNumpad4: '4',
	ebiten.KeyNumpad5: '5', ebiten.KeyNumpad6: '6', ebiten.KeyNumpad7: '7', ebiten.KeyNumpad8: '8', ebiten.KeyNumpad9: '9',
}

// MapKey 将刚按下的键映射为动作
//
// 回车的含义随状态变化：菜单中开始游戏，游戏中提交答案，过关后进入下一关。
// 无意义的按键返回 false；会话仍会忽略当前状态下不接受的意图。
func MapKey(key ebiten.Key, state session.State) (Action, bool) {
	if digit, ok := digitKeys[key]; ok {
		return Action{Kind: ActionIntent, Intent: session.Intent{Kind: session.IntentInputDigit, Digit: digit}}, true
	}

	switch key {
	case ebiten.KeyBackspace:
		return intentAction(session.IntentInputBackspace), true
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		switch state {
		case session.StateMenu:
			return intentAction(session.IntentStartGame), true
		case session.StatePlay:
			return intentAction(session.IntentSubmitAnswer), true
		case session.StateStageCleared:
			return intentAction(session.IntentAdvanceStage), true
		}
	case ebiten.KeySpace:
		if state == session.StateMenu {
			return intentAction(session.IntentStartGame), true
		}
	case ebiten.KeyP:
		return intentAction(session.IntentTogglePause), true
	case ebiten.KeyR:
		return intentAction(session.IntentRestartToMenu), true
	case ebiten.KeyEscape, ebiten.KeyQ:
		return intentAction(session.IntentQuit), true
	case ebiten.KeyS:
		if state == session.StateMenu {
			return Action{Kind: ActionToggleStats}, true
		}
	case ebiten.KeyEqual, ebiten.KeyNumpadAdd:
		return Action{Kind: ActionVolumeUp}, true
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		return Action{Kind: ActionVolumeDown}, true
	}
	return Action{}, false
}
