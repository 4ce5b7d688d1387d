package components

// ProblemComponent 敌人携带的算术题
type ProblemComponent struct {
	Text   string // 显示文本，如 "3+4"
	Answer int    // 正确答案
}
