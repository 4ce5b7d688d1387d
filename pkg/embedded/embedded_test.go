package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func initTestFS(t *testing.T) {
	t.Helper()
	assets := fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte("version: \"1.0\"\n")},
		"assets/images/player_1.png":   {Data: []byte{0x89, 'P', 'N', 'G'}},
	}
	data := fstest.MapFS{
		"data/stages.yaml": {Data: []byte("stages: []\n")},
	}
	Init(assets, data)
	t.Cleanup(Reset)
}

// TestNotInitialized 测试未初始化时的访问
func TestNotInitialized(t *testing.T) {
	Reset()

	if IsInitialized() {
		t.Fatal("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("assets/test.txt"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if _, err := Open("data/stages.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v, want ErrNotInitialized", err)
	}
	if Exists("data/stages.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

// TestReadFile 测试按前缀路由到对应的文件系统
func TestReadFile(t *testing.T) {
	initTestFS(t)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"data file", "data/stages.yaml", "stages: []\n", false},
		{"assets file", "assets/config/resources.yaml", "version: \"1.0\"\n", false},
		{"dot prefix", "./data/stages.yaml", "stages: []\n", false},
		{"unknown prefix", "other/file.txt", "", true},
		{"missing", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q) error: %v", tt.path, err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestExistsAndReadDir 测试存在性检查和目录读取
func TestExistsAndReadDir(t *testing.T) {
	initTestFS(t)

	if !Exists("assets/images/player_1.png") {
		t.Error("Exists() should find player_1.png")
	}
	if Exists("assets/images/enemy_1.png") {
		t.Error("Exists() should not find enemy_1.png")
	}

	entries, err := ReadDir("assets/images")
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "player_1.png" {
		t.Errorf("ReadDir() = %v, want [player_1.png]", entries)
	}
}
