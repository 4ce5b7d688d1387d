package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 管理当前活动场景
// 任意时刻只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager 创建没有活动场景的管理器，使用 SwitchTo 设置初始场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// QuitRequested 当前场景实现 Quitter 且请求退出时返回 true
func (sm *SceneManager) QuitRequested() bool {
	if q, ok := sm.currentScene.(Quitter); ok {
		return q.QuitRequested()
	}
	return false
}
