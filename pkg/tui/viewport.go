// Package tui 终端前端
//
// 用 tcell 绘制会话快照，把按键事件映射为会话意图，用 beep 合成提示音。
// 会话本身与桌面版完全相同，只是像素坐标被缩放到字符格。
package tui

import "math"

const (
	// hudRows 顶部 HUD 占用的行数
	hudRows = 1
	// inputRows 底部输入框占用的行数
	inputRows = 1
)

// Viewport 世界坐标到终端字符格的映射
// 顶部一行留给 HUD，底部一行留给输入框，中间是游戏区域
type Viewport struct {
	Cols, Rows     int
	WorldW, WorldH float64
}

// NewViewport 创建视口
func NewViewport(cols, rows int, worldW, worldH float64) Viewport {
	return Viewport{Cols: cols, Rows: rows, WorldW: worldW, WorldH: worldH}
}

// PlayRows 游戏区域的行数
func (v Viewport) PlayRows() int {
	rows := v.Rows - hudRows - inputRows
	if rows < 1 {
		return 1
	}
	return rows
}

// ToCell 将世界坐标转换为字符格
// 返回的坐标可能在屏幕外；ok 表示是否落在游戏区域内
func (v Viewport) ToCell(x, y float64) (col, row int, ok bool) {
	if v.Cols <= 0 || v.WorldW <= 0 || v.WorldH <= 0 {
		return 0, 0, false
	}
	col = int(math.Floor(x / v.WorldW * float64(v.Cols)))
	row = int(math.Floor(y/v.WorldH*float64(v.PlayRows()))) + hudRows
	ok = col >= 0 && col < v.Cols && row >= hudRows && row < hudRows+v.PlayRows()
	return col, row, ok
}

// BoundaryRow 越界线所在的行
func (v Viewport) BoundaryRow(boundaryY float64) int {
	_, row, _ := v.ToCell(0, boundaryY)
	return row
}

// InputRow 输入框所在的行
func (v Viewport) InputRow() int {
	return v.Rows - inputRows
}
