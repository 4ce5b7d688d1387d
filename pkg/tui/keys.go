package tui

import (
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/gdamore/tcell/v2"
)

// ActionKind 终端层动作类型
type ActionKind int

const (
	// ActionIntent 转交给会话的意图
	ActionIntent ActionKind = iota
	// ActionToggleStats 切换统计弹窗（仅菜单）
	ActionToggleStats
	// ActionToggleMute 切换提示音
	ActionToggleMute
)

// Action 一次按键映射出的动作
type Action struct {
	Kind   ActionKind
	Intent session.Intent
}

func intentAction(kind session.IntentKind) Action {
	return Action{Kind: ActionIntent, Intent: session.Intent{Kind: kind}}
}

// MapKey 将终端按键事件映射为动作
// 键位与桌面版一致；Ctrl+C 等同于退出，M 切换静音
func MapKey(key tcell.Key, r rune, state session.State) (Action, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return intentAction(session.IntentQuit), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return intentAction(session.IntentInputBackspace), true
	case tcell.KeyEnter:
		switch state {
		case session.StateMenu:
			return intentAction(session.IntentStartGame), true
		case session.StatePlay:
			return intentAction(session.IntentSubmitAnswer), true
		case session.StateStageCleared:
			return intentAction(session.IntentAdvanceStage), true
		}
		return Action{}, false
	case tcell.KeyRune:
	default:
		return Action{}, false
	}

	if r >= '0' && r <= '9' {
		return Action{Kind: ActionIntent, Intent: session.Intent{Kind: session.IntentInputDigit, Digit: r}}, true
	}
	switch r {
	case ' ':
		if state == session.StateMenu {
			return intentAction(session.IntentStartGame), true
		}
	case 'p', 'P':
		return intentAction(session.IntentTogglePause), true
	case 'r', 'R':
		return intentAction(session.IntentRestartToMenu), true
	case 'q', 'Q':
		return intentAction(session.IntentQuit), true
	case 's', 'S':
		if state == session.StateMenu {
			return Action{Kind: ActionToggleStats}, true
		}
	case 'm', 'M':
		return Action{Kind: ActionToggleMute}, true
	}
	return Action{}, false
}
