package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可以独立更新和绘制的场景
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一帧的毫秒数
	Update(deltaTime float64)

	// Draw 将场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Quitter 可选接口：场景请求退出程序时返回 true
type Quitter interface {
	QuitRequested() bool
}
