package embedded

import (
	"testing"
	"testing/fstest"
)

func resetState() {
	assetsFS = nil
	dataFS = nil
	initialized = false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	resetState()
	defer resetState()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{}, fstest.MapFS{})

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestOpenNotInitialized 测试未初始化时调用 Open
func TestOpenNotInitialized(t *testing.T) {
	resetState()

	if _, err := Open("assets/test.png"); err == nil {
		t.Error("Expected error when calling Open() before Init()")
	}
	if _, err := ReadFile("data/game.yaml"); err == nil {
		t.Error("Expected error when calling ReadFile() before Init()")
	}
}

// TestReadFileRouting 测试前缀路由到对应的文件系统
func TestReadFileRouting(t *testing.T) {
	resetState()
	defer resetState()

	Init(
		fstest.MapFS{"sprites/ship.png": {Data: []byte("ship")}},
		fstest.MapFS{"game.yaml": {Data: []byte("cfg")}},
	)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "asset", path: "assets/sprites/ship.png", want: "ship"},
		{name: "asset with dot prefix", path: "./assets/sprites/ship.png", want: "ship"},
		{name: "data", path: "data/game.yaml", want: "cfg"},
		{name: "missing asset", path: "assets/sprites/none.png", wantErr: true},
		{name: "unknown prefix", path: "other/game.yaml", wantErr: true},
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

// TestNilAssetsFS 测试未配置资源目录时的降级
func TestNilAssetsFS(t *testing.T) {
	resetState()
	defer resetState()

	Init(nil, fstest.MapFS{"game.yaml": {Data: []byte("cfg")}})

	if Exists("assets/sprites/ship.png") {
		t.Error("Exists should be false without an assets file system")
	}
	if !Exists("data/game.yaml") {
		t.Error("data file should exist")
	}
	if Assets() != nil {
		t.Error("Assets() should be nil")
	}
}
