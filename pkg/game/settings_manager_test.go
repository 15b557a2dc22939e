package game

import (
	"math"
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Intensity != 1.0 {
		t.Errorf("Intensity: got %v, want 1.0", s.Intensity)
	}
	if !s.ParticlesEnabled {
		t.Error("ParticlesEnabled: got false, want true")
	}
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestSettingsManager_NilGdata 测试降级模式
func TestSettingsManager_NilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.GetSettings().Intensity != 1.0 {
		t.Errorf("degraded mode Intensity: got %v, want 1.0", sm.GetSettings().Intensity)
	}

	sm.SetIntensity(2)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	// 重新加载恢复默认值
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().Intensity != 1.0 {
		t.Errorf("after Load() Intensity: got %v, want 1.0", sm.GetSettings().Intensity)
	}
}

// TestSettingsManager_LoadSave 测试保存后重新加载
func TestSettingsManager_LoadSave(t *testing.T) {
	m := openTestGdata(t, "test_aurafx_settings")

	sm1 := NewSettingsManager(m)
	sm1.SetIntensity(2.5)
	sm1.SetParticlesEnabled(false)
	sm1.SetFullscreen(true)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	s := sm2.GetSettings()
	if s.Intensity != 2.5 {
		t.Errorf("loaded Intensity: got %v, want 2.5", s.Intensity)
	}
	if s.ParticlesEnabled {
		t.Error("loaded ParticlesEnabled: got true, want false")
	}
	if !s.Fullscreen {
		t.Error("loaded Fullscreen: got false, want true")
	}
}

// TestSettingsManager_CorruptData 测试损坏数据回退到默认设置
func TestSettingsManager_CorruptData(t *testing.T) {
	m := openTestGdata(t, "test_aurafx_settings_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("intensity: [oops")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(m)
	if sm.GetSettings().Intensity != 1.0 {
		t.Errorf("Intensity after corrupt load: got %v, want default 1.0", sm.GetSettings().Intensity)
	}
}

// TestSetIntensityClamp 测试强度范围校验
func TestSetIntensityClamp(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		input    float64
		expected float64
	}{
		{1.5, 1.5},        // 正常值
		{0.5, 0.5},        // 下限
		{3.0, 3.0},        // 上限
		{0, 0.5},          // 低于下限
		{-2, 0.5},         // 负数
		{10, 3.0},         // 高于上限
		{math.NaN(), 0.5}, // NaN
	}

	for _, tt := range tests {
		sm.SetIntensity(tt.input)
		if sm.GetSettings().Intensity != tt.expected {
			t.Errorf("SetIntensity(%v): got %v, want %v",
				tt.input, sm.GetSettings().Intensity, tt.expected)
		}
	}
}

// TestStepIntensity 测试按步长调整强度
func TestStepIntensity(t *testing.T) {
	sm := NewSettingsManager(nil)

	if got := sm.StepIntensity(1); got != 1.5 {
		t.Errorf("StepIntensity(+1) = %v, want 1.5", got)
	}
	if got := sm.StepIntensity(-3); got != 0.5 {
		t.Errorf("StepIntensity(-3) = %v, want 0.5 (clamped)", got)
	}
	if got := sm.StepIntensity(10); got != 3.0 {
		t.Errorf("StepIntensity(+10) = %v, want 3.0 (clamped)", got)
	}
}
