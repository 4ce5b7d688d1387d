package components

// TextInputComponent 答案输入框状态
// 只接受数字，Enter 提交后清空
type TextInputComponent struct {
	Text      string // 当前输入的文本
	MaxLength int    // 最大字符数（0 = 无限制）

	// 光标状态
	CursorVisible    bool    // 光标是否可见（闪烁效果）
	CursorBlinkTimer float64 // 光标闪烁计时器（毫秒）
	CursorBlinkMs    float64 // 闪烁周期（毫秒）
}
