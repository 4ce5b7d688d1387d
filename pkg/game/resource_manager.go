package game

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/png" // 注册 PNG 解码器
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/arithmetron/pkg/embedded"
	"github.com/decker502/arithmetron/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"
)

// ResourceManager 集中加载并缓存图像、音频和字体
//
// 资源优先从嵌入文件系统读取，未初始化时回退到磁盘。
// 加载失败不是致命错误：图像用占位图代替，字体回退到 basicfont，
// 音频返回 nil 由调用方静默跳过。
//
// 非线程安全，只能在游戏主循环中使用。
type ResourceManager struct {
	imageCache       map[string]*ebiten.Image
	placeholderCache map[string]*ebiten.Image
	audioCache       map[string]*audio.Player
	audioContext     *audio.Context // 为 nil 时禁用音频
	fontFaceCache    map[string]text.Face
	defaultFace      text.Face

	config      *ResourceConfig
	resourceMap map[string]string // 资源ID -> 文件路径
	failed      map[string]bool   // 已记录过失败的资源，避免每帧重复日志

	logger zerolog.Logger
}

// NewResourceManager 创建资源管理器
//
// 参数:
//   - audioContext: 全局音频上下文，为 nil 时所有音频加载都会失败
//
// 返回:
//   - *ResourceManager: 缓存为空的资源管理器
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:       make(map[string]*ebiten.Image),
		placeholderCache: make(map[string]*ebiten.Image),
		audioCache:       make(map[string]*audio.Player),
		audioContext:     audioContext,
		fontFaceCache:    make(map[string]text.Face),
		resourceMap:      make(map[string]string),
		failed:           make(map[string]bool),
		logger:           logging.For("ResourceManager"),
	}
}

// readResource 读取资源文件
func (rm *ResourceManager) readResource(path string) ([]byte, error) {
	if embedded.IsInitialized() {
		if data, err := embedded.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return os.ReadFile(path)
}

// LoadResourceConfig 加载资源配置并建立ID映射
//
// 参数:
//   - configPath: 配置文件路径（如 "assets/config/resources.yaml"）
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := rm.readResource(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}
	cfg, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}
	rm.config = cfg
	rm.resourceMap = cfg.ResourceMap()
	rm.logger.Debug().Int("resources", len(rm.resourceMap)).Msg("resource config loaded")
	return nil
}

// ResolvePath 返回资源ID对应的文件路径
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	path, ok := rm.resourceMap[resourceID]
	return path, ok
}

// LoadImage 加载并缓存图像
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cached, exists := rm.imageCache[path]; exists {
		return cached, nil
	}

	data, err := rm.readResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadImageByID 通过资源ID加载图像
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	path, ok := rm.resourceMap[resourceID]
	if !ok {
		return nil, fmt.Errorf("image resource %s not found in config", resourceID)
	}
	return rm.LoadImage(path)
}

// ImageOrPlaceholder 返回资源ID对应的图像，加载失败时返回占位图
//
// 参数:
//   - resourceID: 帧图像ID，为空时直接返回占位图
//   - width, height: 占位图尺寸
//
// 返回:
//   - *ebiten.Image: 图像或占位图
//   - bool: 是否为真实图像
func (rm *ResourceManager) ImageOrPlaceholder(resourceID string, width, height float64) (*ebiten.Image, bool) {
	if resourceID != "" && !rm.failed[resourceID] {
		img, err := rm.LoadImageByID(resourceID)
		if err == nil {
			return img, true
		}
		rm.failed[resourceID] = true
		rm.logger.Warn().Err(err).Str("id", resourceID).Msg("using placeholder image")
	}
	return rm.placeholder(resourceID, width, height), false
}

// placeholder 生成带边框的纯色占位图，按ID和尺寸缓存
func (rm *ResourceManager) placeholder(resourceID string, width, height float64) *ebiten.Image {
	w, h := int(width), int(height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	key := fmt.Sprintf("%s:%dx%d", resourceID, w, h)
	if cached, ok := rm.placeholderCache[key]; ok {
		return cached
	}

	img := ebiten.NewImage(w, h)
	img.Fill(PlaceholderColor(resourceID))
	border := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for x := 0; x < w; x++ {
		img.Set(x, 0, border)
		img.Set(x, h-1, border)
	}
	for y := 0; y < h; y++ {
		img.Set(0, y, border)
		img.Set(w-1, y, border)
	}

	rm.placeholderCache[key] = img
	return img
}

// PlaceholderColor 按资源ID前缀选择占位图颜色
func PlaceholderColor(resourceID string) color.RGBA {
	switch {
	case strings.HasPrefix(resourceID, "IMAGE_PLAYER"):
		return color.RGBA{R: 40, G: 160, B: 220, A: 255}
	case strings.HasPrefix(resourceID, "IMAGE_ENEMY"):
		return color.RGBA{R: 200, G: 50, B: 60, A: 255}
	case strings.HasPrefix(resourceID, "IMAGE_LASER"):
		return color.RGBA{R: 250, G: 230, B: 60, A: 255}
	case strings.HasPrefix(resourceID, "IMAGE_EXPLOSION"):
		return color.RGBA{R: 250, G: 140, B: 30, A: 255}
	}
	if resourceID == "" {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	h := fnv.New32a()
	h.Write([]byte(resourceID))
	sum := h.Sum32()
	return color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255}
}

// decodeAudio 按扩展名解码音频
func (rm *ResourceManager) decodeAudio(path string) (io.ReadSeeker, int64, error) {
	if rm.audioContext == nil {
		return nil, 0, fmt.Errorf("audio disabled, cannot load %s", path)
	}

	data, err := rm.readResource(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open audio file %s: %w", path, err)
	}
	reader := bytes.NewReader(data)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return stream, stream.Length(), nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return stream, stream.Length(), nil
	case ".wav":
		stream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return stream, stream.Length(), nil
	default:
		return nil, 0, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}
}

// LoadAudio 加载循环播放的背景音乐
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	if cached, exists := rm.audioCache[path]; exists {
		return cached, nil
	}
	stream, length, err := rm.decodeAudio(path)
	if err != nil {
		return nil, err
	}
	player, err := rm.audioContext.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	rm.audioCache[path] = player
	return player, nil
}

// LoadSoundEffect 加载单次播放的音效
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cached, exists := rm.audioCache[path]; exists {
		return cached, nil
	}
	stream, _, err := rm.decodeAudio(path)
	if err != nil {
		return nil, err
	}
	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	rm.audioCache[path] = player
	return player, nil
}

// LoadFont 加载 TrueType/OpenType 字体
func (rm *ResourceManager) LoadFont(path string, size float64) (text.Face, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cached, exists := rm.fontFaceCache[cacheKey]; exists {
		return cached, nil
	}

	data, err := rm.readResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// FontOrDefault 通过资源ID加载字体，失败时回退到 basicfont 7x13
func (rm *ResourceManager) FontOrDefault(resourceID string, size float64) text.Face {
	if path, ok := rm.resourceMap[resourceID]; ok && !rm.failed[resourceID] {
		face, err := rm.LoadFont(path, size)
		if err == nil {
			return face
		}
		rm.failed[resourceID] = true
		rm.logger.Warn().Err(err).Str("id", resourceID).Msg("using fallback font")
	}
	return rm.DefaultFont()
}

// DefaultFont 返回内置的 basicfont 字体
func (rm *ResourceManager) DefaultFont() text.Face {
	if rm.defaultFace == nil {
		rm.defaultFace = text.NewGoXFace(basicfont.Face7x13)
	}
	return rm.defaultFace
}
