package systems

import (
	"github.com/decker502/arithmetron/pkg/components"
)

// TextInputSystem 答案输入框
// 只接受数字字符，长度受 MaxLength 限制
type TextInputSystem struct {
	input *components.TextInputComponent
}

// NewTextInputSystem 创建输入系统
//
// 参数:
//   - maxLength: 最大字符数（0 = 无限制）
//   - blinkMs: 光标闪烁周期（毫秒）
func NewTextInputSystem(maxLength int, blinkMs float64) *TextInputSystem {
	return &TextInputSystem{
		input: &components.TextInputComponent{
			MaxLength:     maxLength,
			CursorVisible: true,
			CursorBlinkMs: blinkMs,
		},
	}
}

// Component 返回输入框状态（只读使用）
func (s *TextInputSystem) Component() *components.TextInputComponent {
	return s.input
}

// Text 返回当前输入
func (s *TextInputSystem) Text() string {
	return s.input.Text
}

// CursorVisible 返回光标当前是否可见
func (s *TextInputSystem) CursorVisible() bool {
	return s.input.CursorVisible
}

// InsertDigit 追加一个数字
// 非数字字符或达到长度上限时忽略，返回是否接受
func (s *TextInputSystem) InsertDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	if s.input.MaxLength > 0 && len(s.input.Text) >= s.input.MaxLength {
		return false
	}
	s.input.Text += string(r)
	s.showCursor()
	return true
}

// DeleteCharBefore 删除最后一个字符（退格）
func (s *TextInputSystem) DeleteCharBefore() {
	if s.input.Text == "" {
		return
	}
	s.input.Text = s.input.Text[:len(s.input.Text)-1]
	s.showCursor()
}

// Take 取出当前输入并清空
func (s *TextInputSystem) Take() string {
	text := s.input.Text
	s.Clear()
	return text
}

// Clear 清空输入
func (s *TextInputSystem) Clear() {
	s.input.Text = ""
	s.showCursor()
}

// Update 更新光标闪烁
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（毫秒）
func (s *TextInputSystem) Update(deltaTime float64) {
	if s.input.CursorBlinkMs <= 0 {
		return
	}
	s.input.CursorBlinkTimer += deltaTime
	if s.input.CursorBlinkTimer >= s.input.CursorBlinkMs {
		s.input.CursorBlinkTimer = 0
		s.input.CursorVisible = !s.input.CursorVisible
	}
}

// showCursor 输入时光标应该可见
func (s *TextInputSystem) showCursor() {
	s.input.CursorBlinkTimer = 0
	s.input.CursorVisible = true
}
