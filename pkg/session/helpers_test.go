package session

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/decker502/arithmetron/pkg/config"
	"github.com/decker502/arithmetron/pkg/ecs"
	"github.com/decker502/arithmetron/pkg/entities"
	"github.com/decker502/arithmetron/pkg/problem"
)

// frameMs 默认 60 FPS 下的一帧
const frameMs = 1000.0 / 60

// recordingPresenter 记录会话发出的音频调用
type recordingPresenter struct {
	cues  []Cue
	music []Track
	stops int
}

func (p *recordingPresenter) PlayCue(cue Cue)       { p.cues = append(p.cues, cue) }
func (p *recordingPresenter) PlayMusic(track Track) { p.music = append(p.music, track) }
func (p *recordingPresenter) StopMusic()            { p.stops++ }

func (p *recordingPresenter) count(cue Cue) int {
	n := 0
	for _, c := range p.cues {
		if c == cue {
			n++
		}
	}
	return n
}

// progressReport 一次统计上报
type progressReport struct {
	stage, delta int
}

type recordingStats struct {
	reports []progressReport
}

func (r *recordingStats) ReportProgress(stage, delta int) {
	r.reports = append(r.reports, progressReport{stage, delta})
}

// newTestSession 创建使用默认配置的会话
func newTestSession(t *testing.T, stages config.StageTable, seed int64) (*Session, *recordingPresenter, *recordingStats) {
	t.Helper()
	presenter := &recordingPresenter{}
	stats := &recordingStats{}
	s, err := New(config.DefaultGameConfig(), stages, rand.New(rand.NewSource(seed)), presenter, stats)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s, presenter, stats
}

// mustStageTable 创建测试用关卡表
func mustStageTable(t *testing.T, stages ...config.Stage) config.StageTable {
	t.Helper()
	table, err := config.NewStageTable(stages)
	if err != nil {
		t.Fatalf("NewStageTable() error: %v", err)
	}
	return table
}

// startPlaying 从菜单开始并等待起飞动画结束
func startPlaying(t *testing.T, s *Session) {
	t.Helper()
	if !s.StartGame() {
		t.Fatal("StartGame() rejected in Menu")
	}
	for i := 0; i < 200 && s.State() == StateLaunchAnimation; i++ {
		s.Advance(frameMs)
	}
	if s.State() != StatePlay {
		t.Fatalf("Expected Play after launch animation, got %v", s.State())
	}
}

// placeEnemy 直接放置一个静止敌人
func placeEnemy(t *testing.T, s *Session, x, y float64, a, b int) ecs.EntityID {
	t.Helper()
	p := problem.Problem{Op: problem.Add, A: a, B: b, Answer: a + b, Text: fmt.Sprintf("%d+%d", a, b)}
	id, err := entities.NewEnemy(s.em, s.config, x, y, 0, p)
	if err != nil {
		t.Fatalf("NewEnemy() error: %v", err)
	}
	return id
}

// advanceUntil 推进帧直到条件满足或超过上限
func advanceUntil(t *testing.T, s *Session, maxFrames int, done func() bool) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		if done() {
			return
		}
		s.Advance(frameMs)
	}
	if !done() {
		t.Fatalf("condition not reached after %d frames (state %v)", maxFrames, s.State())
	}
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}
