package session

// Cue 音效标识
type Cue string

const (
	CueLaser       Cue = "laser"
	CueExplosion   Cue = "explosion"
	CueScore       Cue = "score"
	CueStageClear  Cue = "stage-clear"
	CueGameOver    Cue = "game-over"
	CueButtonHover Cue = "button-hover"
)

// Track 背景音乐标识
type Track string

const (
	TrackMenu Track = "menu"
	TrackGame Track = "game"
)

// Presenter 会话驱动的音频输出
// 实现方负责处理资源加载失败，会话从不检查结果
type Presenter interface {
	PlayCue(cue Cue)
	PlayMusic(track Track)
	StopMusic()
}

// StatsReporter 统计上报
// 每次命中上报一次（delta=1），每次过关上报一次（delta=0）；会话从不读回
type StatsReporter interface {
	ReportProgress(highestStageReached, enemiesDestroyedDelta int)
}

// Renderer 以只读快照绘制一帧
type Renderer interface {
	Render(snap Snapshot)
}

type nopPresenter struct{}

func (nopPresenter) PlayCue(Cue)     {}
func (nopPresenter) PlayMusic(Track) {}
func (nopPresenter) StopMusic()      {}

type nopStats struct{}

func (nopStats) ReportProgress(int, int) {}
