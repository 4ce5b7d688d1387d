package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/decker502/arithmetron/pkg/session"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// SampleRate 提示音采样率
const SampleRate = beep.SampleRate(44100)

// cueVolume 提示音音量（以 2 为底的对数增益）
const cueVolume = -1.5

// tone 一段正弦音
type tone struct {
	freq     float64
	duration time.Duration
}

// cueTones 每种提示音的音符序列
var cueTones = map[session.Cue][]tone{
	session.CueLaser:       {{1400, 30 * time.Millisecond}, {1000, 40 * time.Millisecond}},
	session.CueExplosion:   {{140, 60 * time.Millisecond}, {90, 90 * time.Millisecond}},
	session.CueScore:       {{660, 50 * time.Millisecond}, {990, 70 * time.Millisecond}},
	session.CueStageClear:  {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 160 * time.Millisecond}},
	session.CueGameOver:    {{392, 160 * time.Millisecond}, {330, 160 * time.Millisecond}, {262, 280 * time.Millisecond}},
	session.CueButtonHover: {{880, 25 * time.Millisecond}},
}

// CueStreamer 为提示音合成有限长度的音频流
func CueStreamer(rate beep.SampleRate, cue session.Cue) (beep.Streamer, error) {
	tones, ok := cueTones[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %q", cue)
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(rate, t.freq)
		if err != nil {
			return nil, fmt.Errorf("cue %q: %w", cue, err)
		}
		parts = append(parts, beep.Take(rate.N(t.duration), sine))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: cueVolume}, nil
}

// Beeper 用合成正弦音实现 session.Presenter
// 扬声器初始化失败时静默运行；背景音乐只记录曲目，不合成
type Beeper struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	track       session.Track

	logger zerolog.Logger
}

// NewBeeper 创建提示音输出，调用 Init 之前所有提示音都是空操作
func NewBeeper() *Beeper {
	return &Beeper{
		mixer:  &beep.Mixer{},
		logger: logging.For("Beeper"),
	}
}

// Init 初始化扬声器
func (b *Beeper) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close 停止所有声音并关闭扬声器
func (b *Beeper) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.initialized = false
}

// PlayCue 实现 session.Presenter
func (b *Beeper) PlayCue(cue session.Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || b.muted {
		return
	}
	s, err := CueStreamer(SampleRate, cue)
	if err != nil {
		b.logger.Warn().Err(err).Msg("cannot synthesize cue")
		return
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// PlayMusic 实现 session.Presenter，只记录当前曲目
func (b *Beeper) PlayMusic(track session.Track) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.track = track
	b.logger.Debug().Str("track", string(track)).Msg("music requested")
}

// StopMusic 实现 session.Presenter
func (b *Beeper) StopMusic() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.track = ""
}

// Track 返回最近请求的曲目，停止后为空
func (b *Beeper) Track() session.Track {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.track
}

// ToggleMute 切换静音，返回切换后的状态
func (b *Beeper) ToggleMute() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = !b.muted
	return b.muted
}

// SetMuted 设置静音
func (b *Beeper) SetMuted(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = muted
}

// Muted 返回是否静音
func (b *Beeper) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}
