package tui

import "testing"

func TestViewportToCell(t *testing.T) {
	// 80x42 终端：HUD 1 行 + 游戏区 40 行 + 输入 1 行
	vp := NewViewport(80, 42, 800, 800)

	tests := []struct {
		name         string
		x, y         float64
		wantCol      int
		wantRow      int
		wantInPlayOK bool
	}{
		{"origin", 0, 0, 0, 1, true},
		{"center", 400, 400, 40, 21, true},
		{"last cell", 799, 799, 79, 40, true},
		{"above screen", 400, -100, 40, -4, false},
		{"right of screen", 800, 400, 80, 21, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := vp.ToCell(tt.x, tt.y)
			if col != tt.wantCol || row != tt.wantRow || ok != tt.wantInPlayOK {
				t.Errorf("ToCell(%v, %v): got (%d, %d, %v), want (%d, %d, %v)",
					tt.x, tt.y, col, row, ok, tt.wantCol, tt.wantRow, tt.wantInPlayOK)
			}
		})
	}
}

func TestViewportRows(t *testing.T) {
	vp := NewViewport(80, 24, 800, 850)
	if got := vp.PlayRows(); got != 22 {
		t.Errorf("PlayRows: got %d, want 22", got)
	}
	if got := vp.InputRow(); got != 23 {
		t.Errorf("InputRow: got %d, want 23", got)
	}

	// 边界线在游戏区内部
	row := vp.BoundaryRow(790)
	if row < 1 || row > 22 {
		t.Errorf("BoundaryRow(790): got %d, want within play area", row)
	}

	tiny := NewViewport(10, 1, 800, 850)
	if got := tiny.PlayRows(); got != 1 {
		t.Errorf("PlayRows on tiny terminal: got %d, want 1", got)
	}
}

func TestViewportDegenerate(t *testing.T) {
	vp := NewViewport(0, 0, 800, 850)
	if _, _, ok := vp.ToCell(10, 10); ok {
		t.Error("Zero-size viewport should not map any point")
	}
}
