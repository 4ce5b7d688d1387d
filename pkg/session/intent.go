package session

// IntentKind 输入意图类型
type IntentKind int

const (
	// IntentStartGame 菜单中开始游戏
	IntentStartGame IntentKind = iota
	// IntentTogglePause 切换暂停
	IntentTogglePause
	// IntentSubmitAnswer 提交答案；Text 为空时提交输入框内容
	IntentSubmitAnswer
	// IntentInputDigit 向输入框追加一个数字
	IntentInputDigit
	// IntentInputBackspace 删除输入框最后一个字符
	IntentInputBackspace
	// IntentAdvanceStage 过关后进入下一关
	IntentAdvanceStage
	// IntentRestartToMenu 回到主菜单并完全重置
	IntentRestartToMenu
	// IntentQuit 退出程序
	IntentQuit
)

// String 返回意图名称
func (k IntentKind) String() string {
	switch k {
	case IntentStartGame:
		return "StartGame"
	case IntentTogglePause:
		return "TogglePause"
	case IntentSubmitAnswer:
		return "SubmitAnswer"
	case IntentInputDigit:
		return "InputDigit"
	case IntentInputBackspace:
		return "InputBackspace"
	case IntentAdvanceStage:
		return "AdvanceStage"
	case IntentRestartToMenu:
		return "RestartToMenu"
	case IntentQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Intent 由表现层从按键映射而来的意图
type Intent struct {
	Kind  IntentKind
	Text  string // IntentSubmitAnswer 的答案文本
	Digit rune   // IntentInputDigit 的字符
}
