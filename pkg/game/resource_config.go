package game

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ResourceConfig 资源配置（assets/config/resources.yaml）
//
// 结构:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"`
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup 一组可以一起加载的资源
type ResourceGroup struct {
	Images []ResourceEntry `yaml:"images"`
	Sounds []ResourceEntry `yaml:"sounds"`
	Fonts  []ResourceEntry `yaml:"fonts"`
}

// ResourceEntry 单个资源：ID 与相对 base_path 的路径
//
// 示例:
//
//	- id: IMAGE_PLAYER_1
//	  path: images/player_1
type ResourceEntry struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// ParseResourceConfig 解析资源配置
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	return &cfg, nil
}

// ResourceMap 构建资源ID到完整路径的映射
// 图像缺省扩展名为 .png，声音缺省为 .ogg
//
//	IMAGE_PLAYER_1 -> assets/images/player_1.png
//	SOUND_LASER    -> assets/sounds/laser.wav
func (c *ResourceConfig) ResourceMap() map[string]string {
	resources := make(map[string]string)
	for _, group := range c.Groups {
		for _, img := range group.Images {
			resources[img.ID] = withDefaultExt(buildFullPath(c.BasePath, img.Path), ".png")
		}
		for _, sound := range group.Sounds {
			resources[sound.ID] = withDefaultExt(buildFullPath(c.BasePath, sound.Path), ".ogg")
		}
		for _, font := range group.Fonts {
			resources[font.ID] = buildFullPath(c.BasePath, font.Path)
		}
	}
	return resources
}

// buildFullPath 拼接 base_path 与相对路径
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}

func withDefaultExt(path, ext string) string {
	if filepath.Ext(path) == "" {
		return path + ext
	}
	return path
}
