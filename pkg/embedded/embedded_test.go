package embedded

import (
	"testing"
	"testing/fstest"
)

func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"data/particles.yaml": &fstest.MapFile{Data: []byte("baseCount: 80\n")},
		"data/extra.yaml":     &fstest.MapFile{Data: []byte("x: 1\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	// 重置状态
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(newTestFS())

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// nil 文件系统视为未初始化
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false after Init(nil)")
	}

	// 重置状态以避免影响其他测试
	initialized = false
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	initialized = false

	_, err := ReadFile("data/particles.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestExistsNotInitialized 测试未初始化时 Exists 返回 false
func TestExistsNotInitialized(t *testing.T) {
	initialized = false

	if Exists("data/particles.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFileDataPath 测试读取数据文件
func TestReadFileDataPath(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	data, err := ReadFile("data/particles.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "baseCount: 80\n" {
		t.Errorf("ReadFile() = %q", data)
	}
}

// TestPathNormalization 测试路径标准化
func TestPathNormalization(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	paths := []string{
		"data/particles.yaml",
		"./data/particles.yaml",
	}
	for _, p := range paths {
		if !Exists(p) {
			t.Errorf("Exists(%q) = false, want true", p)
		}
	}
}

// TestReadFileInvalidPrefix 测试无效路径前缀
func TestReadFileInvalidPrefix(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	_, err := ReadFile("assets/particles.yaml")
	if err == nil {
		t.Error("Expected error for invalid prefix")
	}
	if Exists("particles.yaml") {
		t.Error("Expected Exists() to return false for invalid prefix")
	}
}

// TestGlobDataPath 测试 Glob 匹配
func TestGlobDataPath(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() returned %d matches, want 2: %v", len(matches), matches)
	}

	if _, err := Glob("assets/*.png"); err == nil {
		t.Error("Expected error for invalid glob prefix")
	}
}

// TestMissingFile 测试文件不存在
func TestMissingFile(t *testing.T) {
	Init(newTestFS())
	defer func() { initialized = false }()

	if Exists("data/missing.yaml") {
		t.Error("Expected Exists() to return false for missing file")
	}
	if _, err := ReadFile("data/missing.yaml"); err == nil {
		t.Error("Expected error reading missing file")
	}
}
